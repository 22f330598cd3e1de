// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/okian/arrows/internal/app"
)

// StatsDependencies defines the interface for server statistics.
type StatsDependencies interface {
	Stats(ctx context.Context) (app.Stats, error)
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	deps StatsDependencies
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(deps StatsDependencies) *StatsHandler {
	return &StatsHandler{deps: deps}
}

type statsResponse struct {
	Success   bool      `json:"success"`
	Stats     app.Stats `json:"stats"`
	Timestamp int64     `json:"timestamp"`
}

// HandleStats handles GET /api/stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.deps.Stats(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{
		Success:   true,
		Stats:     st,
		Timestamp: time.Now().Unix(),
	})
}
