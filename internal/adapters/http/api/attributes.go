package api

import (
	"context"
	"net/http"

	"github.com/okian/yogicgames/internal/domain/types"
	"github.com/okian/yogicgames/pkg/logger"
)

// AttributeDependencies defines the interface for schema and explorer reads.
type AttributeDependencies interface {
	Definitions(ctx context.Context) []types.AttributeDefinition
	Explorer(ctx context.Context, dimension string, n int) (types.Explorer, error)
}

// AttributesHandler serves the attribute definitions and explorer.
type AttributesHandler struct {
	deps     AttributeDependencies
	maxLimit int
	logger   logger.Logger
}

// NewAttributesHandler creates a new attributes handler.
func NewAttributesHandler(deps AttributeDependencies, maxLimit int, log logger.Logger) *AttributesHandler {
	return &AttributesHandler{deps: deps, maxLimit: maxLimit, logger: log}
}

// HandleDefinitions handles GET /attributes requests.
func (h *AttributesHandler) HandleDefinitions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newListResponse(h.deps.Definitions(r.Context())))
}

// HandleExplorer handles GET /attributes/{dimension}?limit=N requests.
func (h *AttributesHandler) HandleExplorer(w http.ResponseWriter, r *http.Request) {
	const op = "api.attribute_explorer"
	n, err := parseLimit(r.URL.Query(), "limit", h.maxLimit)
	if err != nil {
		fail(r.Context(), h.logger, w, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	view, err := h.deps.Explorer(r.Context(), r.PathValue("dimension"), n)
	if err != nil {
		fail(r.Context(), h.logger, w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
