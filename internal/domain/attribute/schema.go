package attribute

import (
	"fmt"
	"sync"
)

// Definition is the per-dimension metadata shown to readers and used by scoring.
type Definition struct {
	Key         Dimension
	Label       string
	Description string
	Weight      float64
	Polarity    Polarity
}

// Schema is an ordered, read-only table of definitions covering every
// dimension exactly once. Scoring and similarity iterate it instead of
// enumerating keys dynamically.
type Schema struct {
	defs  []Definition
	index map[Dimension]int
}

// NewSchema validates defs and returns a Schema. Every known dimension must
// appear exactly once with a positive weight and a known polarity.
func NewSchema(defs ...Definition) (*Schema, error) {
	s := &Schema{
		defs:  make([]Definition, 0, len(defs)),
		index: make(map[Dimension]int, len(defs)),
	}
	for _, d := range defs {
		if _, err := ParseDimension(string(d.Key)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
		}
		if _, dup := s.index[d.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate dimension %q", ErrInvalidSchema, d.Key)
		}
		if d.Weight <= 0 {
			return nil, fmt.Errorf("%w: weight for %q must be positive", ErrInvalidSchema, d.Key)
		}
		if d.Polarity != Positive && d.Polarity != Negative {
			return nil, fmt.Errorf("%w: polarity for %q", ErrInvalidSchema, d.Key)
		}
		s.index[d.Key] = len(s.defs)
		s.defs = append(s.defs, d)
	}
	for _, d := range Dimensions() {
		if _, ok := s.index[d]; !ok {
			return nil, fmt.Errorf("%w: %w %q", ErrInvalidSchema, ErrMissingDimension, d)
		}
	}
	return s, nil
}

var (
	defaultSchema     *Schema
	defaultSchemaOnce sync.Once
)

// Default returns the process-wide schema with the fixed weights. It is built
// once and never mutated.
func Default() *Schema {
	defaultSchemaOnce.Do(func() {
		s, err := NewSchema(defaultDefinitions()...)
		if err != nil {
			panic("attribute: default schema is invalid: " + err.Error())
		}
		defaultSchema = s
	})
	return defaultSchema
}

// Definitions returns a copy of the definitions in schema order.
func (s *Schema) Definitions() []Definition {
	out := make([]Definition, len(s.defs))
	copy(out, s.defs)
	return out
}

// Lookup returns the definition for d.
func (s *Schema) Lookup(d Dimension) (Definition, bool) {
	i, ok := s.index[d]
	if !ok {
		return Definition{}, false
	}
	return s.defs[i], true
}

// Positive returns the positive definitions in schema order.
func (s *Schema) Positive() []Definition { return s.byPolarity(Positive) }

// Negative returns the negative definitions in schema order.
func (s *Schema) Negative() []Definition { return s.byPolarity(Negative) }

// Len returns the number of dimensions.
func (s *Schema) Len() int { return len(s.defs) }

func (s *Schema) byPolarity(p Polarity) []Definition {
	out := make([]Definition, 0, len(s.defs))
	for _, d := range s.defs {
		if d.Polarity == p {
			out = append(out, d)
		}
	}
	return out
}

func defaultDefinitions() []Definition {
	return []Definition{
		{Key: Sattva, Label: "Sattva (Purity)", Description: "Quality of harmony, balance, clarity, and light in the mind.", Weight: 3.0, Polarity: Positive},
		{Key: Vairagya, Label: "Vairagya (Detachment)", Description: "Dispassion towards outcomes, rewards, and worldly objects.", Weight: 2.0, Polarity: Positive},
		{Key: Viveka, Label: "Viveka (Discernment)", Description: "Ability to distinguish between the Real (permanent) and Unreal (temporary).", Weight: 2.0, Polarity: Positive},
		{Key: Ekagrata, Label: "Ekagrata (Focus)", Description: "One-pointed concentration and unbroken attention flow.", Weight: 1.5, Polarity: Positive},
		{Key: Santosha, Label: "Santosha (Contentment)", Description: "Acceptance of the present moment; lack of craving for 'more'.", Weight: 1.5, Polarity: Positive},
		{Key: FrustrationTolerance, Label: "Frustration Tol.", Description: "Capacity to endure setbacks and failure without mental agitation.", Weight: 1.0, Polarity: Positive},
		{Key: ImpulseControl, Label: "Impulse Control", Description: "Ability to resist immediate desires, loot, or reactive behaviors.", Weight: 1.0, Polarity: Positive},
		{Key: EgoConfrontation, Label: "Ego Confrontation", Description: "Mechanisms that challenge self-importance or humble the player.", Weight: 1.5, Polarity: Positive},
		{Key: Sanga, Label: "Sanga (Company)", Description: "Association with wise company; positive community interaction.", Weight: 2.0, Polarity: Positive},

		{Key: Rajas, Label: "Rajas (Passion)", Description: "Frenetic energy, restlessness, anxiety, and desire-driven activity.", Weight: 0.5, Polarity: Negative},
		{Key: Tamas, Label: "Tamas (Inertia)", Description: "Lethargy, dullness, ignorance, and darkness of mind.", Weight: 2.5, Polarity: Negative},
		{Key: AddictionPotential, Label: "Addiction Pot.", Description: "Design features (loops, loot boxes) creating dependency.", Weight: 2.0, Polarity: Negative},
		{Key: TimeWasting, Label: "Time Wasting", Description: "Consumption of time without productive yield or true rest.", Weight: 1.5, Polarity: Negative},
		{Key: Dissociation, Label: "Dissociation", Description: "Disconnecting from physical reality/self; 'zoning out'.", Weight: 1.0, Polarity: Negative},
		{Key: SamskaraFormation, Label: "Samskara Form.", Description: "Deepening of negative mental grooves or habitual patterns.", Weight: 4.0, Polarity: Negative},
		{Key: AhimsaViolation, Label: "Ahimsa Violation", Description: "Engaging in, witnessing, or normalizing violence/harm.", Weight: 3.0, Polarity: Negative},
		{Key: PratyaharaDisturbance, Label: "Pratyahara Dist.", Description: "Sensory overload preventing withdrawal/rest of the senses.", Weight: 2.0, Polarity: Negative},
		{Key: SankalpaUndermining, Label: "Sankalpa Underm.", Description: "Weakening of willpower or distraction from life's core purpose.", Weight: 2.5, Polarity: Negative},
	}
}
