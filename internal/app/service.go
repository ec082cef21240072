// Package service composes the snapshot store, scorer and schema into the
// read operations served by the HTTP API. Derived views are memoized per
// snapshot version.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"gonum.org/v1/gonum/stat"

	"github.com/okian/yogicgames/internal/adapters/loader"
	repository "github.com/okian/yogicgames/internal/adapters/repository"
	"github.com/okian/yogicgames/internal/domain/attribute"
	"github.com/okian/yogicgames/internal/domain/catalog"
	"github.com/okian/yogicgames/internal/domain/model"
	"github.com/okian/yogicgames/internal/domain/scoring"
	"github.com/okian/yogicgames/internal/domain/similarity"
	"github.com/okian/yogicgames/internal/domain/trend"
	"github.com/okian/yogicgames/internal/domain/types"
	"github.com/okian/yogicgames/pkg/logger"
	"github.com/okian/yogicgames/pkg/metrics"
)

// DefaultCount asks Similar for the configured neighbour count.
const DefaultCount = -1

// Service implements the API dependencies for the game catalog.
type Service struct {
	mu sync.RWMutex

	// Core components
	store  *repository.SnapshotStore
	loader *loader.Loader
	scorer *scoring.WeightedScorer
	schema *attribute.Schema
	views  *cache.Cache

	// Configuration
	catalogPath     string
	seed            []model.Game
	strict          bool
	similarCount    int
	explorerLimit   int
	leaderboardSize int
	cacheTTL        time.Duration
	cacheCleanup    time.Duration

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		schema:          attribute.Default(),
		similarCount:    similarity.DefaultK,
		explorerLimit:   catalog.DefaultAttributeLimit,
		leaderboardSize: catalog.DefaultLeaderboardSize,
		cacheTTL:        5 * time.Minute,
		cacheCleanup:    10 * time.Minute,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the components and publishes the first snapshot.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting catalog service...")

	s.scorer = scoring.NewWeightedScorer(scoring.WithSchema(s.schema))
	s.loader = loader.New(
		loader.WithScorer(s.scorer),
		loader.WithStrict(s.strict),
		loader.WithLogger(s.logger.Named("loader").With(logger.Bool("strict", s.strict))),
	)
	s.store = repository.NewSnapshotStore()
	s.views = cache.New(s.cacheTTL, s.cacheCleanup)

	snap, err := s.reload(ctx)
	if err != nil {
		return err
	}

	s.started = true
	s.logger.Info(ctx, "catalog service started",
		logger.Int("games", snap.Len()),
		logger.Uint64("version", snap.Version),
		logger.String("catalog", snap.Source),
		logger.Bool("strict", s.strict),
	)
	return nil
}

// Reload re-reads the catalog source and publishes it as a new snapshot.
// On failure the current snapshot stays in place.
func (s *Service) Reload(ctx context.Context) (*repository.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	return s.reload(ctx)
}

// reload assumes s.mu is held for writing.
func (s *Service) reload(ctx context.Context) (*repository.Snapshot, error) {
	start := time.Now()

	games, source, err := s.readCatalog(ctx)
	if err != nil {
		metrics.RecordCatalogLoadFailure()
		s.logger.Error(ctx, "catalog load failed", logger.String("catalog", source), logger.Error(err))
		return nil, err
	}

	snap, err := s.store.Publish(ctx, games, source)
	if err != nil {
		metrics.RecordCatalogLoadFailure()
		s.logger.Error(ctx, "catalog publish failed", logger.Error(err))
		return nil, err
	}

	s.views.Flush()
	metrics.UpdateViewCacheItems(0)
	metrics.RecordCatalogLoad(float64(time.Since(start).Microseconds()) / 1000)
	s.logger.Info(ctx, "catalog published",
		logger.Int("games", snap.Len()),
		logger.Uint64("version", snap.Version),
		logger.Duration("took", time.Since(start)),
	)
	return snap, nil
}

func (s *Service) readCatalog(ctx context.Context) ([]model.Game, string, error) {
	if s.seed != nil {
		games := make([]model.Game, len(s.seed))
		for i, g := range s.seed {
			score, err := s.scorer.Score(g.Attributes)
			if err != nil {
				return nil, "memory", fmt.Errorf("%w: %q: %w", loader.ErrInvalidGame, g.Title, err)
			}
			g.Score = score
			if g.ID == "" {
				g.ID = loader.DeriveID(g.Title)
			}
			games[i] = g
		}
		return games, "memory", nil
	}
	if s.catalogPath == "" {
		return nil, "", ErrNoCatalog
	}
	games, err := s.loader.LoadFile(ctx, s.catalogPath)
	return games, s.catalogPath, err
}

// Stop marks the service stopped and drops the view cache.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping catalog service...")
	s.views.Flush()
	s.started = false
	s.logger.Info(context.Background(), "catalog service stopped")
}

// snapshot returns the current snapshot for one consistent computation.
func (s *Service) snapshot(ctx context.Context) (*repository.Snapshot, error) {
	s.mu.RLock()
	started, store := s.started, s.store
	s.mu.RUnlock()

	if !started {
		return nil, ErrNotStarted
	}
	return store.Current(ctx)
}

// memo returns the cached view for key under snap's version, computing and
// storing it on a miss. Cached values are shared and must not be mutated.
func memo[T any](s *Service, snap *repository.Snapshot, view, key string, compute func() (T, error)) (T, error) {
	k := fmt.Sprintf("%d|%s|%s", snap.Version, view, key)
	if v, ok := s.views.Get(k); ok {
		metrics.RecordViewCacheHit(view)
		return v.(T), nil
	}
	metrics.RecordViewCacheMiss(view)

	start := time.Now()
	out, err := compute()
	metrics.RecordViewQuery(view, float64(time.Since(start).Microseconds())/1000)
	if err != nil {
		var zero T
		return zero, err
	}
	s.views.SetDefault(k, out)
	metrics.UpdateViewCacheItems(s.views.ItemCount())
	return out, nil
}

// ListQuery holds the list filters, sort key and cap.
type ListQuery struct {
	Search   string
	Tier     string
	Platform string
	Rating   string
	Sort     string
	Limit    int
}

// List returns the filtered, sorted games. Total counts matches before the
// limit is applied.
func (s *Service) List(ctx context.Context, q ListQuery) (types.GameList, error) {
	field, err := catalog.ParseSortField(q.Sort)
	if err != nil {
		return types.GameList{}, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return types.GameList{}, err
	}
	key := strings.Join([]string{q.Search, q.Tier, q.Platform, q.Rating, string(field), fmt.Sprint(q.Limit)}, "\x00")
	return memo(s, snap, "list", key, func() (types.GameList, error) {
		page, total := catalog.Search(snap.Games(), catalog.Query{
			Predicates: catalog.Predicates{Search: q.Search, Tier: q.Tier, Platform: q.Platform, Rating: q.Rating},
			Sort:       field,
			Limit:      q.Limit,
		})
		return types.GameList{Total: total, Count: len(page), Items: types.Summaries(page)}, nil
	})
}

// lookup finds a game by slug, then by id.
func (s *Service) lookup(ctx context.Context, snap *repository.Snapshot, key string) (model.Game, error) {
	if g, ok := snap.BySlug(key); ok {
		return g, nil
	}
	if g, ok := snap.ByID(key); ok {
		return g, nil
	}
	metrics.RecordErrorByComponent("service", "not_found")
	return model.Game{}, fmt.Errorf("%w: %q", repository.ErrNotFound, key)
}

// Game returns the detail view for the game with slug or id key.
func (s *Service) Game(ctx context.Context, key string) (types.GameDetail, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return types.GameDetail{}, err
	}
	g, err := s.lookup(ctx, snap, key)
	if err != nil {
		return types.GameDetail{}, err
	}
	return memo(s, snap, "detail", g.ID, func() (types.GameDetail, error) {
		b, err := s.scorer.Breakdown(g.Attributes)
		if err != nil {
			return types.GameDetail{}, err
		}
		similar, err := s.nearest(snap, g, s.similarCount)
		if err != nil {
			return types.GameDetail{}, err
		}
		return types.NewGameDetail(g, b, similar), nil
	})
}

// Similar returns the k nearest games to the game with slug or id key. A
// negative k (DefaultCount) uses the configured count; zero yields none.
func (s *Service) Similar(ctx context.Context, key string, k int) ([]types.SimilarGame, error) {
	if k < 0 {
		k = s.similarCount
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	g, err := s.lookup(ctx, snap, key)
	if err != nil {
		return nil, err
	}
	return memo(s, snap, "similar", fmt.Sprintf("%s|%d", g.ID, k), func() ([]types.SimilarGame, error) {
		return s.nearest(snap, g, k)
	})
}

func (s *Service) nearest(snap *repository.Snapshot, g model.Game, k int) ([]types.SimilarGame, error) {
	matches, err := similarity.Nearest(s.schema, g, snap.Games(), k)
	if err != nil {
		return nil, err
	}
	out := make([]types.SimilarGame, len(matches))
	for i, m := range matches {
		out[i] = types.SimilarGame{GameSummary: types.NewGameSummary(m.Game), Distance: m.Distance}
	}
	return out, nil
}

// Leaderboard returns the n best and n worst games. A non-positive n uses
// the configured default.
func (s *Service) Leaderboard(ctx context.Context, n int) (types.Leaderboard, error) {
	if n <= 0 {
		n = s.leaderboardSize
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return types.Leaderboard{}, err
	}
	return memo(s, snap, "leaderboard", fmt.Sprint(n), func() (types.Leaderboard, error) {
		games := snap.Games()
		return types.Leaderboard{
			Top:    types.Summaries(catalog.TopN(games, n)),
			Bottom: types.Summaries(catalog.BottomN(games, n)),
		}, nil
	})
}

// Explorer ranks games by one dimension. A non-positive n uses the
// configured default.
func (s *Service) Explorer(ctx context.Context, dimension string, n int) (types.Explorer, error) {
	dim, err := attribute.ParseDimension(dimension)
	if err != nil {
		return types.Explorer{}, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	def, ok := s.schema.Lookup(dim)
	if !ok {
		return types.Explorer{}, fmt.Errorf("%w: %w: %q", ErrInvalidQuery, attribute.ErrUnknownDimension, dim)
	}
	if n <= 0 {
		n = s.explorerLimit
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return types.Explorer{}, err
	}
	return memo(s, snap, "explorer", fmt.Sprintf("%s|%d", dim, n), func() (types.Explorer, error) {
		ranked, err := catalog.ByAttribute(snap.Games(), dim, n)
		if err != nil {
			return types.Explorer{}, err
		}
		rows := make([]types.ExplorerRow, len(ranked))
		for i, g := range ranked {
			v, _ := g.Attributes.Get(dim)
			rows[i] = types.ExplorerRow{GameSummary: types.NewGameSummary(g), Value: v}
		}
		return types.Explorer{Dimension: types.NewAttributeDefinition(def), Rows: rows}, nil
	})
}

// Trend returns the rank-on-score regression. When the fit is undefined the
// view is returned with Available false and no error.
func (s *Service) Trend(ctx context.Context) (types.Trend, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return types.Trend{}, err
	}
	return memo(s, snap, "trend", "", func() (types.Trend, error) {
		a, err := trend.RankOnScore(snap.Games())
		if err != nil && !errors.Is(err, trend.ErrNoPoints) && !errors.Is(err, trend.ErrDegenerate) {
			return types.Trend{}, err
		}
		t := types.Trend{Available: err == nil, Points: make([]types.TrendPoint, len(a.Points))}
		if t.Available {
			t.Slope = a.Line.Slope
			t.Intercept = a.Line.Intercept
			t.Correlation = a.Correlation
		}
		for i, p := range a.Points {
			t.Points[i] = types.TrendPoint{ID: p.Game.ID, Title: p.Game.Title, Rank: p.Game.Rank, Score: p.Game.Score}
			if t.Available {
				predicted := p.Predicted
				t.Points[i].Predicted = &predicted
			}
		}
		return t, nil
	})
}

// Definitions returns the attribute schema, positives first.
func (s *Service) Definitions(ctx context.Context) []types.AttributeDefinition {
	defs := s.schema.Definitions()
	out := make([]types.AttributeDefinition, len(defs))
	for i, d := range defs {
		out[i] = types.NewAttributeDefinition(d)
	}
	return out
}

// Facets returns the distinct filter values.
func (s *Service) Facets(ctx context.Context) (types.Facets, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return types.Facets{}, err
	}
	return memo(s, snap, "facets", "", func() (types.Facets, error) {
		f := catalog.CollectFacets(snap.Games())
		return types.Facets{Tiers: f.Tiers, Platforms: f.Platforms, Ratings: f.Ratings}, nil
	})
}

// Stats describes the published catalog.
func (s *Service) Stats(ctx context.Context) (types.Stats, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return types.Stats{}, err
	}
	games := snap.Games()
	st := types.Stats{
		Games:      len(games),
		Version:    snap.Version,
		LoadedAt:   snap.LoadedAt.UTC().Format(time.RFC3339),
		Source:     snap.Source,
		Dimensions: s.schema.Len(),
	}
	st.ScoreFloor, st.ScoreCeiling = s.scorer.Bounds()
	if len(games) > 0 {
		scores := make([]float64, len(games))
		for i, g := range games {
			scores[i] = g.Score
		}
		st.MeanScore = scoring.Round(stat.Mean(scores, nil), 2)
		st.TopScore = catalog.TopN(games, 1)[0].Score
	}
	return st, nil
}

// GetStats returns service state for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"strict":      s.strict,
		"similar":     s.similarCount,
		"goroutines":  runtime.NumGoroutine(),
		"cachedViews": 0,
	}
	if s.started {
		ctx := context.Background()
		stats["games"] = s.store.Count(ctx)
		stats["cachedViews"] = s.views.ItemCount()
		if snap, err := s.store.Current(ctx); err == nil {
			stats["version"] = snap.Version
			stats["source"] = snap.Source
		}
	}
	return stats
}
