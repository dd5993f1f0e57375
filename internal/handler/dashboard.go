package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/segyhp/finance-tracker/pkg/response"
)

type DashboardHandler struct {
	service DashboardService
	now     func() time.Time
}

func NewDashboardHandler(service DashboardService) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		now:     time.Now,
	}
}

// Monthly aggregates one month; ?year= and ?month= default to the current month
func (h *DashboardHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	year, month := now.Year(), int(now.Month())

	query := r.URL.Query()
	if raw := query.Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "year must be a number", err)
			return
		}
		year = parsed
	}
	if raw := query.Get("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "month must be a number", err)
			return
		}
		month = parsed
	}

	dashboard, err := h.service.Monthly(r.Context(), year, time.Month(month))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, dashboard)
}
