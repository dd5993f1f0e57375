package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/pkg/response"
)

const (
	defaultUpcomingDays = 7
	maxUpcomingDays     = 365
)

type InstallmentHandler struct {
	service   InstallmentService
	validator *validator.Validate
}

func NewInstallmentHandler(service InstallmentService, validate *validator.Validate) *InstallmentHandler {
	return &InstallmentHandler{
		service:   service,
		validator: validate,
	}
}

// Preview computes the amortization of an unsaved plan form. Incomplete
// forms answer with zeroed figures instead of an error.
func (h *InstallmentHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var request domain.PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	response.Success(w, h.service.Preview(request))
}

func (h *InstallmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateInstallmentPlanRequest
	if !decodeAndValidate(w, r, h.validator, &request) {
		return
	}

	plan, err := h.service.CreatePlan(r.Context(), &request)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, plan)
}

func (h *InstallmentHandler) List(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.ListPlans(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, plans)
}

func (h *InstallmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	plan, err := h.service.GetPlan(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, plan)
}

func (h *InstallmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var request domain.UpdateInstallmentPlanRequest
	if !decodeAndValidate(w, r, h.validator, &request) {
		return
	}

	plan, err := h.service.UpdatePlan(r.Context(), id, &request)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, plan)
}

func (h *InstallmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeletePlan(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}

// Pay settles a single installment
func (h *InstallmentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "installmentId")
	if !ok {
		return
	}

	var request domain.PayInstallmentRequest
	if !decodeAndValidate(w, r, h.validator, &request) {
		return
	}

	installment, err := h.service.PayInstallment(r.Context(), id, &request)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, installment)
}

// Upcoming lists pending installments due within ?days= (default 7)
func (h *InstallmentHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	days := defaultUpcomingDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxUpcomingDays {
			response.BadRequest(w, "days must be between 1 and 365", err)
			return
		}
		days = parsed
	}

	payments, err := h.service.Upcoming(r.Context(), days)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, payments)
}
