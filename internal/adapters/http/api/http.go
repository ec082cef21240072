// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	repository "github.com/okian/yogicgames/internal/adapters/repository"
	service "github.com/okian/yogicgames/internal/app"
	"github.com/okian/yogicgames/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	GameDependencies
	LeaderboardDependencies
	AttributeDependencies
	ViewDependencies
	StatsProvider
}

// Server wires HTTP routes for the catalog API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	gamesHandler       *GamesHandler
	leaderboardHandler *LeaderboardHandler
	attributesHandler  *AttributesHandler
	viewsHandler       *ViewsHandler

	maxLimit int
	logger   logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{maxLimit: DefaultMaxLimit}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Nop()
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(deps)
	s.gamesHandler = NewGamesHandler(deps, s.maxLimit, s.logger)
	s.leaderboardHandler = NewLeaderboardHandler(deps, s.maxLimit, s.logger)
	s.attributesHandler = NewAttributesHandler(deps, s.maxLimit, s.logger)
	s.viewsHandler = NewViewsHandler(deps, s.logger)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("GET /healthz", s.instrument("healthz", s.healthHandler.HandleHealth))
	mux.HandleFunc("GET /stats", s.instrument("stats", s.statsHandler.HandleStats))
	mux.HandleFunc("GET /games", s.instrument("games", s.gamesHandler.HandleList))
	mux.HandleFunc("GET /games/{slug}", s.instrument("game", s.gamesHandler.HandleGet))
	mux.HandleFunc("GET /games/{slug}/similar", s.instrument("similar", s.gamesHandler.HandleSimilar))
	mux.HandleFunc("GET /leaderboard", s.instrument("leaderboard", s.leaderboardHandler.HandleGetLeaderboard))
	mux.HandleFunc("GET /attributes", s.instrument("attributes", s.attributesHandler.HandleDefinitions))
	mux.HandleFunc("GET /attributes/{dimension}", s.instrument("explorer", s.attributesHandler.HandleExplorer))
	mux.HandleFunc("GET /facets", s.instrument("facets", s.viewsHandler.HandleFacets))
	mux.HandleFunc("GET /trend", s.instrument("trend", s.viewsHandler.HandleTrend))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// listResponse wraps slices so the top-level JSON value is always an object.
type listResponse[T any] struct {
	Count int `json:"count"`
	Items []T `json:"items"`
}

func newListResponse[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Count: len(items), Items: items}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// classify maps an error from the service layer to a status and code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, service.ErrInvalidQuery):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrNotFound), errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrUnavailable), errors.Is(err, service.ErrNotStarted), errors.Is(err, repository.ErrEmptySnapshot):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// fail renders err with the status chosen by classify and logs server-side
// failures.
func fail(ctx context.Context, log logger.Logger, w http.ResponseWriter, op string, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		log.Error(ctx, "request failed", logger.String("op", op), logger.Error(err))
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		err = Wrap(op, err)
	}
	writeError(w, status, code, err)
}
