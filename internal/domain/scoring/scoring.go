// Package scoring reduces an attribute vector to a single signed score using
// the schema's fixed per-dimension weights.
package scoring

import (
	"fmt"
	"math"

	"github.com/okian/yogicgames/internal/domain/attribute"
)

const (
	// precision is the number of decimal places a score keeps.
	precision     = 2
	highBandFloor = 20.0
)

// Option applies a configuration option to the WeightedScorer.
type Option func(*WeightedScorer)

// WithSchema sets the schema whose weights drive the score.
func WithSchema(schema *attribute.Schema) Option {
	return func(s *WeightedScorer) {
		if schema != nil {
			s.schema = schema
		}
	}
}

// Scorer computes a score from an attribute vector.
type Scorer interface {
	Score(v attribute.Vector) (float64, error)
}

// WeightedScorer implements Scorer as Σ(positive·weight) − Σ(negative·weight).
type WeightedScorer struct {
	schema *attribute.Schema
}

// NewWeightedScorer creates a scorer over the default schema rounding to 2 dp.
func NewWeightedScorer(opts ...Option) *WeightedScorer {
	s := &WeightedScorer{
		schema: attribute.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schema returns the schema the scorer was built with.
func (s *WeightedScorer) Schema() *attribute.Schema { return s.schema }

// Score computes the rounded net score for v.
func (s *WeightedScorer) Score(v attribute.Vector) (float64, error) {
	b, err := s.Breakdown(v)
	if err != nil {
		return 0, err
	}
	return b.Score, nil
}

// Bounds returns the lowest and highest score the schema can produce: every
// negative dimension maxed with every positive one at zero, and the reverse.
func (s *WeightedScorer) Bounds() (lo, hi float64) {
	lo, _ = s.Score(attribute.Uniform(attribute.MinRating, attribute.MaxRating))
	hi, _ = s.Score(attribute.Uniform(attribute.MaxRating, attribute.MinRating))
	return lo, hi
}

// Contribution is the weighted effect of one dimension on the score.
type Contribution struct {
	Definition attribute.Definition
	Value      float64
	// Weighted is value·weight·sign; negative for negative dimensions.
	Weighted float64
}

// Breakdown explains a score.
type Breakdown struct {
	Positive      float64
	Negative      float64
	Score         float64
	Contributions []Contribution
}

// Breakdown computes per-dimension contributions and the rounded score.
// Positive and Negative are the unrounded subtotals (Negative is reported as
// a magnitude).
func (s *WeightedScorer) Breakdown(v attribute.Vector) (Breakdown, error) {
	if err := v.Validate(); err != nil {
		return Breakdown{}, fmt.Errorf("score: %w", err)
	}
	defs := s.schema.Definitions()
	b := Breakdown{Contributions: make([]Contribution, 0, len(defs))}
	for _, def := range defs {
		val, err := v.Get(def.Key)
		if err != nil {
			return Breakdown{}, fmt.Errorf("score: %w", err)
		}
		w := val * def.Weight
		switch def.Polarity {
		case attribute.Positive:
			b.Positive += w
		case attribute.Negative:
			b.Negative += w
		}
		b.Contributions = append(b.Contributions, Contribution{
			Definition: def,
			Value:      val,
			Weighted:   w * def.Polarity.Sign(),
		})
	}
	b.Score = Round(b.Positive-b.Negative, precision)
	return b, nil
}

// Score computes the score of v under schema, rounded to 2 decimal places.
func Score(schema *attribute.Schema, v attribute.Vector) (float64, error) {
	return NewWeightedScorer(WithSchema(schema)).Score(v)
}

// Round rounds x half away from zero to digits decimal places. A negative
// digits value returns x unchanged.
func Round(x float64, digits int) float64 {
	if digits < 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	p := math.Pow10(digits)
	r := math.Round(x*p) / p
	if r == 0 {
		return 0 // no negative zero
	}
	return r
}

// Band groups scores for display.
type Band string

// Score bands.
const (
	BandHigh    Band = "high"
	BandNeutral Band = "neutral"
	BandLow     Band = "low"
)

// Classify returns the display band for score.
func Classify(score float64) Band {
	switch {
	case score >= highBandFloor:
		return BandHigh
	case score >= 0:
		return BandNeutral
	default:
		return BandLow
	}
}
