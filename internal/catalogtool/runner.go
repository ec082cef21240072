package catalogtool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/yogicgames/internal/adapters/loader"
	"github.com/okian/yogicgames/internal/domain/catalog"
	"github.com/okian/yogicgames/internal/domain/model"
	"github.com/okian/yogicgames/internal/domain/scoring"
	"github.com/okian/yogicgames/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes one tool invocation: obtain the catalog, verify it, write it
// out when asked and log the reports. Verification failures are returned as
// ErrVerification after the reports are printed.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	scorer := scoring.NewWeightedScorer()

	// Step 1: Load or generate
	games, source, err := obtain(ctx, config, scorer)
	if err != nil {
		return stats, err
	}
	stats.Games = len(games)
	stats.Source = source

	// Step 2: Verify invariants
	violations := Verify(ctx, games, scorer)
	stats.Violations = len(violations)

	// Step 3: Write output
	if config.Output != "" {
		if err := saveCatalog(ctx, config.Output, games); err != nil {
			return stats, err
		}
	}

	// Step 4: Reports
	top := config.TopN
	if top <= 0 {
		top = catalog.DefaultLeaderboardSize
	}
	if err := runReports(ctx, config, games, top); err != nil {
		if len(violations) == 0 {
			return stats, err
		}
		logger.Get().Warn(ctx, "reports skipped", logger.Error(err))
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if len(violations) > 0 {
		return stats, fmt.Errorf("%w: %d violation(s)", ErrVerification, len(violations))
	}
	return stats, nil
}

func obtain(ctx context.Context, config *Config, scorer *scoring.WeightedScorer) ([]model.Game, string, error) {
	switch {
	case config.Generate > 0:
		games, err := Generate(ctx, config.Generate, config.Seed, scorer)
		if err != nil {
			return nil, "", fmt.Errorf("generation failed: %w", err)
		}
		return games, fmt.Sprintf("generated(n=%d,seed=%d)", config.Generate, config.Seed), nil
	case config.CatalogPath != "":
		l := loader.New(
			loader.WithScorer(scorer),
			loader.WithStrict(config.Strict),
			loader.WithLogger(logger.Named("loader")),
		)
		games, err := l.LoadFile(ctx, config.CatalogPath)
		if err != nil {
			return nil, "", fmt.Errorf("load failed: %w", err)
		}
		return games, config.CatalogPath, nil
	default:
		return nil, "", ErrNoInput
	}
}

// runReports publishes games to an in-memory service and logs the requested
// views.
func runReports(ctx context.Context, config *Config, games []model.Game, top int) error {
	svc, err := newReportService(ctx, games, top)
	if err != nil {
		return fmt.Errorf("catalog not servable: %w", err)
	}
	defer svc.Stop()

	if err := reportLeaderboard(ctx, svc); err != nil {
		return fmt.Errorf("leaderboard report: %w", err)
	}
	if err := reportTrend(ctx, svc); err != nil {
		return fmt.Errorf("trend report: %w", err)
	}
	if config.Attr != "" {
		if err := reportExplorer(ctx, svc, config.Attr); err != nil {
			return fmt.Errorf("attribute report: %w", err)
		}
	}
	if config.Similar != "" {
		if err := reportSimilar(ctx, svc, config.Similar); err != nil {
			return fmt.Errorf("similar report: %w", err)
		}
	}
	return nil
}

// saveCatalog writes games to filename, creating its directory.
func saveCatalog(ctx context.Context, filename string, games []model.Game) error {
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := loader.WriteFile(filename, games); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	logger.Get().Info(ctx, "catalog saved to file", logger.String("filename", filename), logger.Int("games", len(games)))
	return nil
}

// displayFinalStats logs the run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	logger.Get().Info(ctx, "final statistics",
		logger.String("catalog", stats.Source),
		logger.Int("games", stats.Games),
		logger.Int("violations", stats.Violations),
		logger.Duration("duration", stats.Duration))
}
