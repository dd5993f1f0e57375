package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/segyhp/finance-tracker/pkg/response"

	"github.com/redis/go-redis/v9"
)

type dbPinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db      dbPinger
	redis   redis.UniversalClient
	timeout time.Duration
}

func NewHealthHandler(db dbPinger, redis redis.UniversalClient, timeout time.Duration) *HealthHandler {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &HealthHandler{
		db:      db,
		redis:   redis,
		timeout: timeout,
	}
}

type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Health performs a basic health check
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	response.Success(w, status)
}

// Ready performs readiness check including database and redis connectivity
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		status.Status = "error"
		status.Checks["database"] = "failed: " + err.Error()
	} else {
		status.Checks["database"] = "ok"
	}

	if h.redis == nil {
		status.Checks["redis"] = "disabled"
	} else if err := h.redis.Ping(ctx).Err(); err != nil {
		status.Status = "error"
		status.Checks["redis"] = "failed: " + err.Error()
	} else {
		status.Checks["redis"] = "ok"
	}

	if status.Status == "error" {
		response.JSON(w, http.StatusServiceUnavailable, status)
		return
	}

	response.Success(w, status)
}
