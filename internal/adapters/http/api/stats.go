package api

import (
	"context"
	"net/http"

	"github.com/okian/yogicgames/internal/domain/types"
)

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	Stats(ctx context.Context) (types.Stats, error)
	GetStats() map[string]interface{}
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	statsProvider StatsProvider
}

type statsResponse struct {
	Catalog *types.Stats           `json:"catalog,omitempty"`
	Service map[string]interface{} `json:"service"`
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

// HandleStats handles GET /stats requests. Service state is always reported;
// catalog figures only once a snapshot is published.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	resp := statsResponse{Service: h.statsProvider.GetStats()}
	if st, err := h.statsProvider.Stats(r.Context()); err == nil {
		resp.Catalog = &st
	}
	writeJSON(w, http.StatusOK, resp)
}
