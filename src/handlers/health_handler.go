package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/username/bigmacindex/src/logger"
)

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db        Pinger
	startTime time.Time
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, startTime: time.Now()}
}

type HealthStatus struct {
	Status   string `json:"status"` // "healthy" or "unhealthy"
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
	Error    string `json:"error,omitempty"`
}

// HandleHealth answers 503 when the database ping fails.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := HealthStatus{
		Status:   "healthy",
		Database: "up",
		Uptime:   time.Since(h.startTime).Round(time.Second).String(),
	}
	code := http.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		logger.FromContext(r.Context()).Error("Health check failed", "error", err)
		status.Status = "unhealthy"
		status.Database = "down"
		status.Error = err.Error()
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(status)
}
