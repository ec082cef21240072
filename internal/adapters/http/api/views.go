package api

import (
	"context"
	"net/http"

	"github.com/okian/yogicgames/internal/domain/types"
	"github.com/okian/yogicgames/pkg/logger"
)

// ViewDependencies defines the interface for catalog-wide derived views.
type ViewDependencies interface {
	Facets(ctx context.Context) (types.Facets, error)
	Trend(ctx context.Context) (types.Trend, error)
}

// ViewsHandler serves facets and the rank-on-score trend.
type ViewsHandler struct {
	deps   ViewDependencies
	logger logger.Logger
}

// NewViewsHandler creates a new views handler.
func NewViewsHandler(deps ViewDependencies, log logger.Logger) *ViewsHandler {
	return &ViewsHandler{deps: deps, logger: log}
}

// HandleFacets handles GET /facets requests.
func (h *ViewsHandler) HandleFacets(w http.ResponseWriter, r *http.Request) {
	facets, err := h.deps.Facets(r.Context())
	if err != nil {
		fail(r.Context(), h.logger, w, "api.facets", err)
		return
	}
	writeJSON(w, http.StatusOK, facets)
}

// HandleTrend handles GET /trend requests. A catalog without a defined fit
// still answers 200 with available=false.
func (h *ViewsHandler) HandleTrend(w http.ResponseWriter, r *http.Request) {
	t, err := h.deps.Trend(r.Context())
	if err != nil {
		fail(r.Context(), h.logger, w, "api.trend", err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}
