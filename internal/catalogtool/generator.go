package catalogtool

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"strconv"

	"github.com/google/uuid"

	"github.com/okian/yogicgames/internal/domain/attribute"
	"github.com/okian/yogicgames/internal/domain/model"
	"github.com/okian/yogicgames/internal/domain/scoring"
	"github.com/okian/yogicgames/pkg/logger"
)

// Rating profile cases.
const (
	caseUplifting = iota
	caseBalanced
	caseCompulsive
	caseHarmful
	caseMixed
	profileCount
)

// Tier thresholds on the derived score.
const (
	tierTranscendent = 50.0
	tierElevated     = 20.0
	tierBalanced     = 0.0
	tierMixed        = -20.0
	tierDraining     = -50.0
)

var (
	titleAdjectives = []string{
		"Silent", "Endless", "Golden", "Hollow", "Crimson", "Quiet", "Neon", "Ancient",
		"Wandering", "Burning", "Gentle", "Infinite", "Broken", "Sacred", "Frozen", "Restless",
	}
	titleNouns = []string{
		"Garden", "Arena", "Kingdom", "Voyage", "Citadel", "River", "Empire", "Temple",
		"Frontier", "Orchard", "Labyrinth", "Harbor", "Summit", "Colony", "Forge", "Meadow",
	}
	platforms = []string{
		"PC", "PC, PS5, Xbox Series X", "Switch", "Mobile", "PS5", "PC, Switch", "Xbox Series X, PC", "iOS, Android",
	}
	ratings = []string{"E", "E10+", "T", "M"}
)

// Generate builds n synthetic games deterministically from seed. Titles and
// ids are unique, ranks are a permutation of 1..n and scores are derived
// with scorer.
func Generate(ctx context.Context, n int, seed int64, scorer *scoring.WeightedScorer) ([]model.Game, error) {
	if n <= 0 {
		return []model.Game{}, nil
	}
	logger.Get().Info(ctx, "generating synthetic catalog", logger.Int("games", n), logger.Any("seed", seed))

	type gameResult struct {
		index int
		game  model.Game
		err   error
	}

	resultChan := make(chan gameResult, n)

	workerCount := min(runtime.NumCPU(), n)
	perWorker := n / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * perWorker
		end := start + perWorker
		if worker == workerCount-1 {
			end = n // Last worker gets remaining games
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- gameResult{index: i, err: ctx.Err()}
					return
				default:
					g, err := generateGame(seed, i, scorer)
					resultChan <- gameResult{index: i, game: g, err: err}
				}
			}
		}(start, end)
	}

	games := make([]model.Game, n)
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate game %d: %w", result.index, result.err)
			}
			games[result.index] = result.game
		}
	}

	uniqueTitles(games)
	assignRanks(games, seed)

	logger.Get().Info(ctx, "generated catalog", logger.Int("games", len(games)))
	return games, nil
}

// generateGame derives game i from its own source so output does not depend
// on worker scheduling.
func generateGame(seed int64, i int, scorer *scoring.WeightedScorer) (model.Game, error) {
	rng := rand.New(rand.NewSource(seed*1_000_003 + int64(i)))

	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return model.Game{}, fmt.Errorf("id: %w", err)
	}

	attrs, err := randomVector(rng, scorer.Schema())
	if err != nil {
		return model.Game{}, err
	}
	score, err := scorer.Score(attrs)
	if err != nil {
		return model.Game{}, err
	}

	title := titleAdjectives[rng.Intn(len(titleAdjectives))] + " " + titleNouns[rng.Intn(len(titleNouns))]
	platform := platforms[rng.Intn(len(platforms))]

	g := model.Game{
		ID:             id.String(),
		Title:          title,
		Tier:           tierFor(score),
		Platform:       platform,
		ActivePlayers:  strconv.Itoa(1+rng.Intn(200)) + " million",
		OriginalRating: ratings[rng.Intn(len(ratings))],
		Description:    "A synthetic " + platform + " game generated for catalog testing.",
		Attributes:     attrs,
		Score:          score,
	}
	if rng.Intn(3) == 0 && g.PrimaryPlatform() == "PC" {
		g.SteamAppID = strconv.Itoa(100000 + rng.Intn(2_000_000))
	}
	return g, nil
}

// randomVector draws half-point ratings following one of the rating profiles.
func randomVector(rng *rand.Rand, schema *attribute.Schema) (attribute.Vector, error) {
	var posMin, posMax, negMin, negMax float64
	switch rng.Intn(profileCount) {
	case caseUplifting:
		posMin, posMax, negMin, negMax = 3, 5, 0, 2
	case caseBalanced:
		posMin, posMax, negMin, negMax = 2, 4, 1, 3
	case caseCompulsive:
		posMin, posMax, negMin, negMax = 1, 3, 3, 5
	case caseHarmful:
		posMin, posMax, negMin, negMax = 0, 2, 4, 5
	default:
		posMin, posMax, negMin, negMax = 0, 5, 0, 5
	}

	var v attribute.Vector
	var err error
	for _, def := range schema.Definitions() {
		lo, hi := posMin, posMax
		if def.Polarity == attribute.Negative {
			lo, hi = negMin, negMax
		}
		if v, err = v.With(def.Key, halfStep(lo+rng.Float64()*(hi-lo))); err != nil {
			return attribute.Vector{}, err
		}
	}
	return v, nil
}

func halfStep(x float64) float64 {
	return math.Round(x*2) / 2
}

func tierFor(score float64) string {
	switch {
	case score >= tierTranscendent:
		return "S - Transcendent"
	case score >= tierElevated:
		return "A - Elevated"
	case score >= tierBalanced:
		return "B - Balanced"
	case score >= tierMixed:
		return "C - Mixed"
	case score >= tierDraining:
		return "D - Draining"
	default:
		return "F - Harmful"
	}
}

// uniqueTitles numbers repeated titles so slugs stay unique.
func uniqueTitles(games []model.Game) {
	seen := make(map[string]int, len(games))
	for i := range games {
		base := games[i].Title
		seen[base]++
		if n := seen[base]; n > 1 {
			games[i].Title = base + " " + strconv.Itoa(n)
		}
	}
}

// assignRanks gives the games a seeded permutation of 1..n.
func assignRanks(games []model.Game, seed int64) {
	perm := rand.New(rand.NewSource(seed)).Perm(len(games))
	for i := range games {
		games[i].Rank = perm[i] + 1
	}
}
