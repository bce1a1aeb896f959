// internal/handlers/http/health_handler.go
// Handler sederhana untuk health check (liveness) dan readiness

package http

import (
	"encoding/json"
	"net/http"
	"time"

	"mcp-weather/internal/config"
	mcphandlers "mcp-weather/internal/handlers/mcp"
	"mcp-weather/internal/util"
)

// Health menghitung uptime dari Started memakai Clock (bisa di-fix saat test).
type Health struct {
	Clock   util.Clock
	Started time.Time
}

func NewHealth(clock util.Clock) *Health {
	if clock == nil {
		clock = util.RealClock{}
	}
	return &Health{Clock: clock, Started: clock.Now()}
}

func (h *Health) uptime() float64 {
	return h.Clock.Now().Sub(h.Started).Seconds()
}

// Live: GET /healthz
func (h *Health) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"version":        config.BuildVersion,
		"uptime_seconds": h.uptime(),
	})
}

// Ready: GET /readyz, 503 bila ada dependency capability yang belum di-set.
func (h *Health) Ready(w http.ResponseWriter, r *http.Request) {
	deps := mcphandlers.ReadyStatus()
	code, status := http.StatusOK, "ready"
	for _, ok := range deps {
		if !ok {
			code, status = http.StatusServiceUnavailable, "not_ready"
			break
		}
	}
	writeJSON(w, code, map[string]any{
		"status": status,
		"deps":   deps,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
