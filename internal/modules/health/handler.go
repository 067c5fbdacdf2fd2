// Package health serves the liveness and readiness probes.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/intloko-backend/internal/httpx"
)

const checkTimeout = 3 * time.Second

// Check pings one dependency.
type Check func(ctx context.Context) error

// Response is the JSON body of both probes.
type Response struct {
	Status     string                `json:"status"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

type Handler struct {
	checks map[string]Check
	log    *slog.Logger
}

// NewHandler creates a Handler. Readiness fails when any check fails.
func NewHandler(checks map[string]Check, logger *slog.Logger) *Handler {
	return &Handler{checks: checks, log: logger}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health/live", h.live)
	router.Get("/health/ready", h.ready)
}

func (h *Handler) live(w http.ResponseWriter, r *http.Request) {
	httpx.Respond(w, http.StatusOK, Response{Status: "ok", Timestamp: time.Now()})
}

func (h *Handler) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	resp := Response{Status: "ok", Components: make(map[string]CompStatus, len(h.checks))}
	for name, check := range h.checks {
		start := time.Now()
		if err := check(ctx); err != nil {
			h.log.WarnContext(ctx, "readiness check failed",
				slog.String("component", name),
				slog.String("error", err.Error()),
			)
			resp.Components[name] = CompStatus{Status: "down"}
			resp.Status = "down"
			continue
		}
		resp.Components[name] = CompStatus{Status: "ok", Latency: time.Since(start).String()}
	}
	resp.Timestamp = time.Now()

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	httpx.Respond(w, status, resp)
}
