package api

import (
	"context"
	"net/http"
	"strings"

	service "github.com/okian/yogicgames/internal/app"
	"github.com/okian/yogicgames/internal/domain/types"
	"github.com/okian/yogicgames/pkg/logger"
)

// GameDependencies defines the interface for list and detail operations.
type GameDependencies interface {
	List(ctx context.Context, q service.ListQuery) (types.GameList, error)
	Game(ctx context.Context, key string) (types.GameDetail, error)
	Similar(ctx context.Context, key string, k int) ([]types.SimilarGame, error)
}

// GamesHandler serves the catalog list, detail and similar-games routes.
type GamesHandler struct {
	deps     GameDependencies
	maxLimit int
	logger   logger.Logger
}

// NewGamesHandler creates a new games handler.
func NewGamesHandler(deps GameDependencies, maxLimit int, log logger.Logger) *GamesHandler {
	return &GamesHandler{deps: deps, maxLimit: maxLimit, logger: log}
}

// HandleList handles GET /games?q=&tier=&platform=&rating=&sort=&limit= requests.
func (h *GamesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_games"
	p, err := parseListParams(r.URL.Query(), h.maxLimit)
	if err != nil {
		fail(r.Context(), h.logger, w, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	list, err := h.deps.List(r.Context(), service.ListQuery{
		Search:   p.Search,
		Tier:     p.Tier,
		Platform: p.Platform,
		Rating:   p.Rating,
		Sort:     p.Sort,
		Limit:    p.Limit,
	})
	if err != nil {
		fail(r.Context(), h.logger, w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleGet handles GET /games/{slug} requests. The id is accepted in place
// of the slug.
func (h *GamesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_game"
	key := strings.TrimSpace(r.PathValue("slug"))
	if key == "" {
		fail(r.Context(), h.logger, w, op, NewKind(op, ErrBadRequest))
		return
	}
	detail, err := h.deps.Game(r.Context(), key)
	if err != nil {
		fail(r.Context(), h.logger, w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// HandleSimilar handles GET /games/{slug}/similar?k=N requests. Without k
// the configured neighbour count applies; k=0 yields an empty list.
func (h *GamesHandler) HandleSimilar(w http.ResponseWriter, r *http.Request) {
	const op = "api.similar_games"
	key := strings.TrimSpace(r.PathValue("slug"))
	if key == "" {
		fail(r.Context(), h.logger, w, op, NewKind(op, ErrBadRequest))
		return
	}
	k, ok, err := optionalCount(r.URL.Query(), "k", h.maxLimit)
	if err != nil {
		fail(r.Context(), h.logger, w, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	if !ok {
		k = service.DefaultCount
	}
	similar, err := h.deps.Similar(r.Context(), key, k)
	if err != nil {
		fail(r.Context(), h.logger, w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(similar))
}
