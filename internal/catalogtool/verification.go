package catalogtool

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/okian/yogicgames/internal/domain/dedupe"
	"github.com/okian/yogicgames/internal/domain/model"
	"github.com/okian/yogicgames/internal/domain/scoring"
	"github.com/okian/yogicgames/internal/domain/similarity"
	"github.com/okian/yogicgames/pkg/logger"
)

// Verification limits.
const (
	scoreTolerance     = 0.005
	similaritySample   = 200
	similarityNeighbor = similarity.DefaultK
)

// Violation is one failed invariant.
type Violation struct {
	Check  string
	GameID string
	Detail string
}

func (v Violation) String() string {
	if v.GameID == "" {
		return v.Check + ": " + v.Detail
	}
	return fmt.Sprintf("%s: %s: %s", v.Check, v.GameID, v.Detail)
}

// Verify checks the catalog invariants: unique ids and slugs, ranks forming
// 1..N, valid ratings, stored scores equal to the derived score and
// neighbour lists ordered by distance without the game itself.
func Verify(ctx context.Context, games []model.Game, scorer *scoring.WeightedScorer) []Violation {
	logger.Get().Info(ctx, "verifying catalog", logger.Int("games", len(games)))

	var out []Violation
	out = append(out, verifyIdentity(ctx, games)...)
	out = append(out, verifyRanks(games)...)
	out = append(out, verifyScores(games, scorer)...)
	out = append(out, verifySimilarity(games, scorer)...)

	if len(out) == 0 {
		logger.Get().Info(ctx, "catalog verification passed")
		return nil
	}
	for _, v := range out {
		logger.Get().Warn(ctx, "invariant violated", logger.String("violation", v.String()))
	}
	return out
}

func verifyIdentity(ctx context.Context, games []model.Game) []Violation {
	reg := dedupe.NewInMemoryRegistry()
	var out []Violation
	for _, g := range games {
		if strings.TrimSpace(g.ID) == "" {
			out = append(out, Violation{Check: "id", Detail: fmt.Sprintf("game %q has no id", g.Title)})
			continue
		}
		if holder, dup := reg.Claim(ctx, "id", g.ID, g.Title); dup {
			out = append(out, Violation{Check: "id", GameID: g.ID, Detail: fmt.Sprintf("%q reuses the id of %q", g.Title, holder)})
		}
		if owner, dup := reg.Claim(ctx, "slug", g.Slug(), g.ID); dup {
			out = append(out, Violation{Check: "slug", GameID: g.ID, Detail: fmt.Sprintf("slug %q already used by %s", g.Slug(), owner)})
		}
	}
	return out
}

func verifyRanks(games []model.Game) []Violation {
	n := len(games)
	seen := make([]bool, n+1)
	var out []Violation
	for _, g := range games {
		switch {
		case g.Rank < 1 || g.Rank > n:
			out = append(out, Violation{Check: "rank", GameID: g.ID, Detail: fmt.Sprintf("rank %d outside 1..%d", g.Rank, n)})
		case seen[g.Rank]:
			out = append(out, Violation{Check: "rank", GameID: g.ID, Detail: fmt.Sprintf("rank %d repeated", g.Rank)})
		default:
			seen[g.Rank] = true
		}
	}
	for r := 1; r <= n; r++ {
		if !seen[r] {
			out = append(out, Violation{Check: "rank", Detail: fmt.Sprintf("rank %d missing", r)})
		}
	}
	return out
}

func verifyScores(games []model.Game, scorer *scoring.WeightedScorer) []Violation {
	var out []Violation
	for _, g := range games {
		if err := g.Attributes.Validate(); err != nil {
			out = append(out, Violation{Check: "ratings", GameID: g.ID, Detail: err.Error()})
			continue
		}
		derived, err := scorer.Score(g.Attributes)
		if err != nil {
			out = append(out, Violation{Check: "score", GameID: g.ID, Detail: err.Error()})
			continue
		}
		if math.Abs(derived-g.Score) > scoreTolerance {
			out = append(out, Violation{Check: "score", GameID: g.ID, Detail: fmt.Sprintf("stored %.2f, derived %.2f", g.Score, derived)})
		}
	}
	return out
}

// verifySimilarity checks neighbour ordering for the first games of the
// catalog; the check is quadratic in catalog size.
func verifySimilarity(games []model.Game, scorer *scoring.WeightedScorer) []Violation {
	sample := games
	if len(sample) > similaritySample {
		sample = sample[:similaritySample]
	}
	var out []Violation
	for _, g := range sample {
		if g.Attributes.Validate() != nil {
			continue
		}
		matches, err := similarity.Nearest(scorer.Schema(), g, games, similarityNeighbor)
		if err != nil {
			out = append(out, Violation{Check: "similarity", GameID: g.ID, Detail: err.Error()})
			continue
		}
		for i, m := range matches {
			if m.Game.ID == g.ID {
				out = append(out, Violation{Check: "similarity", GameID: g.ID, Detail: "game listed as its own neighbour"})
			}
			if i > 0 && m.Distance < matches[i-1].Distance {
				out = append(out, Violation{Check: "similarity", GameID: g.ID, Detail: "neighbours not ordered by distance"})
			}
		}
	}
	return out
}
