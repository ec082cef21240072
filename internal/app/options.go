package service

import (
	"time"

	"github.com/okian/yogicgames/internal/domain/attribute"
	"github.com/okian/yogicgames/internal/domain/model"
	"github.com/okian/yogicgames/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCatalogPath sets the catalog file read on Start and Reload.
func WithCatalogPath(path string) Option {
	return func(s *Service) {
		s.catalogPath = path
	}
}

// WithGames serves an in-memory catalog instead of a file. Scores are
// recomputed from the attribute vectors.
func WithGames(games []model.Game) Option {
	return func(s *Service) {
		s.seed = games
	}
}

// WithSchema sets the attribute schema used for scoring and similarity.
func WithSchema(schema *attribute.Schema) Option {
	return func(s *Service) {
		if schema != nil {
			s.schema = schema
		}
	}
}

// WithStrictCatalog makes catalog inconsistencies fatal to loading.
func WithStrictCatalog(strict bool) Option {
	return func(s *Service) {
		s.strict = strict
	}
}

// WithSimilarCount sets the number of neighbours on the detail view.
func WithSimilarCount(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.similarCount = k
		}
	}
}

// WithExplorerLimit sets the default attribute explorer length.
func WithExplorerLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.explorerLimit = n
		}
	}
}

// WithLeaderboardSize sets the default top and bottom list length.
func WithLeaderboardSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.leaderboardSize = n
		}
	}
}

// WithCacheTTL sets the derived view cache expiry and janitor interval.
func WithCacheTTL(ttl, cleanup time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 && cleanup > 0 {
			s.cacheTTL = ttl
			s.cacheCleanup = cleanup
		}
	}
}
