package catalogtool

import (
	"context"
	"errors"
	"fmt"

	repository "github.com/okian/yogicgames/internal/adapters/repository"
	service "github.com/okian/yogicgames/internal/app"
	"github.com/okian/yogicgames/internal/domain/catalog"
	"github.com/okian/yogicgames/internal/domain/model"
	"github.com/okian/yogicgames/internal/domain/scoring"
	"github.com/okian/yogicgames/internal/domain/types"
	"github.com/okian/yogicgames/pkg/logger"
)

// newReportService serves games from memory through the same views the
// HTTP API exposes.
func newReportService(ctx context.Context, games []model.Game, top int) (*service.Service, error) {
	svc := service.New(
		service.WithGames(games),
		service.WithLeaderboardSize(top),
		service.WithExplorerLimit(catalog.DefaultAttributeLimit),
		service.WithLogger(logger.Named("service")),
	)
	if err := svc.Start(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// reportLeaderboard logs the best and worst games.
func reportLeaderboard(ctx context.Context, svc *service.Service) error {
	board, err := svc.Leaderboard(ctx, 0)
	if err != nil {
		return err
	}
	log := logger.Named("leaderboard")
	for i, g := range board.Top {
		log.Info(ctx, "top", summaryFields(i+1, g)...)
	}
	for i, g := range board.Bottom {
		log.Info(ctx, "bottom", summaryFields(i+1, g)...)
	}
	return nil
}

// reportTrend logs the rank-on-score regression, or that none could be
// fitted.
func reportTrend(ctx context.Context, svc *service.Service) error {
	t, err := svc.Trend(ctx)
	if err != nil {
		return err
	}
	log := logger.Named("trend")
	if !t.Available {
		log.Info(ctx, "trend unavailable", logger.Int("points", len(t.Points)))
		return nil
	}
	log.Info(ctx, "rank on score",
		logger.Float64("slope", scoring.Round(t.Slope, 4)),
		logger.Float64("intercept", scoring.Round(t.Intercept, 2)),
		logger.Float64("correlation", scoring.Round(t.Correlation, 4)),
	)
	for _, p := range t.Points {
		log.Debug(ctx, "point",
			logger.String("title", p.Title),
			logger.Int("rank", p.Rank),
			logger.Float64("predicted", *p.Predicted),
		)
	}
	return nil
}

// reportExplorer logs the games ranked by one dimension.
func reportExplorer(ctx context.Context, svc *service.Service, dimension string) error {
	view, err := svc.Explorer(ctx, dimension, 0)
	if err != nil {
		return err
	}
	log := logger.Named("explorer")
	for i, row := range view.Rows {
		log.Info(ctx, string(view.Dimension.Key), append(summaryFields(i+1, row.GameSummary), logger.Float64("value", row.Value))...)
	}
	return nil
}

// reportSimilar logs the nearest games to the game with slug or id key.
func reportSimilar(ctx context.Context, svc *service.Service, key string) error {
	similar, err := svc.Similar(ctx, key, service.DefaultCount)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %q", ErrUnknownGame, key)
	}
	if err != nil {
		return err
	}
	log := logger.Named("similar")
	for i, s := range similar {
		log.Info(ctx, key, append(summaryFields(i+1, s.GameSummary), logger.Float64("distance", scoring.Round(s.Distance, 3)))...)
	}
	return nil
}

func summaryFields(pos int, g types.GameSummary) []logger.Field {
	return []logger.Field{
		logger.Int("pos", pos),
		logger.String("title", g.Title),
		logger.Int("rank", g.Rank),
		logger.Float64("score", g.Score),
		logger.String("band", string(g.Band)),
	}
}
