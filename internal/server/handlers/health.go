package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"starforge/internal/shared/response"
)

const checkTimeout = 2 * time.Second

type HealthResponse struct {
	Status     string            `json:"status"`
	Timestamp  string            `json:"timestamp"`
	Components map[string]string `json:"components"`
}

// Check reports whether one backing service is reachable.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

type HealthHandler struct {
	checks []Check
	now    func() time.Time
}

func NewHealthHandler(checks ...Check) *HealthHandler {
	return &HealthHandler{checks: checks, now: time.Now}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "health")

	resp := HealthResponse{
		Status:     "healthy",
		Timestamp:  h.now().UTC().Format(time.RFC3339),
		Components: make(map[string]string, len(h.checks)),
	}

	for _, check := range h.checks {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		err := check.Ping(ctx)
		cancel()

		if err != nil {
			logger.Warn("Health check failed", "component", check.Name, "error", err)
			resp.Components[check.Name] = "disconnected"
			resp.Status = "degraded"
			continue
		}
		resp.Components[check.Name] = "connected"
	}

	status := http.StatusOK
	if resp.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	response.JSON(w, status, resp)
}
