// Package similarity ranks games by unweighted Euclidean distance between
// their attribute vectors. The metric deliberately ignores scoring weights.
package similarity

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/okian/yogicgames/internal/domain/attribute"
	"github.com/okian/yogicgames/internal/domain/model"
)

// DefaultK is the number of neighbours shown for a game.
const DefaultK = 3

// Match is a candidate and its distance from the reference.
type Match struct {
	Game     model.Game
	Distance float64
}

// Distance returns sqrt(Σ(a_i − b_i)²) over every dimension in schema.
func Distance(schema *attribute.Schema, a, b attribute.Vector) (float64, error) {
	av, err := vectorValues(schema, a)
	if err != nil {
		return 0, err
	}
	bv, err := vectorValues(schema, b)
	if err != nil {
		return 0, err
	}
	return floats.Distance(av, bv, 2), nil
}

// Nearest returns up to k games from pool closest to ref, nearest first.
// ref is excluded by ID. Equal distances keep pool order. k <= 0 or an
// empty pool yields an empty result.
func Nearest(schema *attribute.Schema, ref model.Game, pool []model.Game, k int) ([]Match, error) {
	if k <= 0 || len(pool) == 0 {
		return []Match{}, nil
	}
	rv, err := vectorValues(schema, ref.Attributes)
	if err != nil {
		return nil, fmt.Errorf("reference %q: %w", ref.ID, err)
	}

	matches := make([]Match, 0, len(pool))
	for _, g := range pool {
		if g.ID == ref.ID {
			continue
		}
		cv, err := vectorValues(schema, g.Attributes)
		if err != nil {
			return nil, fmt.Errorf("candidate %q: %w", g.ID, err)
		}
		matches = append(matches, Match{Game: g, Distance: floats.Distance(rv, cv, 2)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	if k < len(matches) {
		matches = matches[:k]
	}
	return matches, nil
}

func vectorValues(schema *attribute.Schema, v attribute.Vector) ([]float64, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v.Values(schema)
}
