package attribute

import (
	"fmt"
	"math"
	"sort"
)

// Vector holds one rating per dimension. It is a plain value; once attached
// to a game it is never modified.
type Vector struct {
	Sattva               float64 `json:"sattva" yaml:"sattva"`
	Vairagya             float64 `json:"vairagya" yaml:"vairagya"`
	Viveka               float64 `json:"viveka" yaml:"viveka"`
	Ekagrata             float64 `json:"ekagrata" yaml:"ekagrata"`
	Santosha             float64 `json:"santosha" yaml:"santosha"`
	FrustrationTolerance float64 `json:"frustrationTolerance" yaml:"frustrationTolerance"`
	ImpulseControl       float64 `json:"impulseControl" yaml:"impulseControl"`
	EgoConfrontation     float64 `json:"egoConfrontation" yaml:"egoConfrontation"`
	Sanga                float64 `json:"sanga" yaml:"sanga"`

	Rajas                 float64 `json:"rajas" yaml:"rajas"`
	Tamas                 float64 `json:"tamas" yaml:"tamas"`
	AddictionPotential    float64 `json:"addictionPotential" yaml:"addictionPotential"`
	TimeWasting           float64 `json:"timeWasting" yaml:"timeWasting"`
	Dissociation          float64 `json:"dissociation" yaml:"dissociation"`
	SamskaraFormation     float64 `json:"samskaraFormation" yaml:"samskaraFormation"`
	AhimsaViolation       float64 `json:"ahimsaViolation" yaml:"ahimsaViolation"`
	PratyaharaDisturbance float64 `json:"pratyaharaDisturbance" yaml:"pratyaharaDisturbance"`
	SankalpaUndermining   float64 `json:"sankalpaUndermining" yaml:"sankalpaUndermining"`
}

// Get returns the rating for d.
func (v Vector) Get(d Dimension) (float64, error) {
	if p := v.field(d); p != nil {
		return *p, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDimension, d)
}

// With returns a copy of v with d set to val.
func (v Vector) With(d Dimension, val float64) (Vector, error) {
	p := v.field(d)
	if p == nil {
		return v, fmt.Errorf("%w: %q", ErrUnknownDimension, d)
	}
	*p = val
	return v, nil
}

// field returns a pointer into v for d, or nil when d is unknown.
func (v *Vector) field(d Dimension) *float64 {
	switch d {
	case Sattva:
		return &v.Sattva
	case Vairagya:
		return &v.Vairagya
	case Viveka:
		return &v.Viveka
	case Ekagrata:
		return &v.Ekagrata
	case Santosha:
		return &v.Santosha
	case FrustrationTolerance:
		return &v.FrustrationTolerance
	case ImpulseControl:
		return &v.ImpulseControl
	case EgoConfrontation:
		return &v.EgoConfrontation
	case Sanga:
		return &v.Sanga
	case Rajas:
		return &v.Rajas
	case Tamas:
		return &v.Tamas
	case AddictionPotential:
		return &v.AddictionPotential
	case TimeWasting:
		return &v.TimeWasting
	case Dissociation:
		return &v.Dissociation
	case SamskaraFormation:
		return &v.SamskaraFormation
	case AhimsaViolation:
		return &v.AhimsaViolation
	case PratyaharaDisturbance:
		return &v.PratyaharaDisturbance
	case SankalpaUndermining:
		return &v.SankalpaUndermining
	default:
		return nil
	}
}

// Values returns the ratings in schema order.
func (v Vector) Values(s *Schema) ([]float64, error) {
	out := make([]float64, 0, s.Len())
	for _, def := range s.defs {
		val, err := v.Get(def.Key)
		if err != nil {
			return nil, err
		}
		out = append(out, val)
	}
	return out, nil
}

// Validate checks that every rating is finite and within [MinRating, MaxRating].
func (v Vector) Validate() error {
	for _, d := range Dimensions() {
		val, _ := v.Get(d)
		if math.IsNaN(val) || math.IsInf(val, 0) || val < MinRating || val > MaxRating {
			return fmt.Errorf("%w: %s=%v", ErrRatingOutOfRange, d, val)
		}
	}
	return nil
}

// FromMap converts a dynamic key/value mapping into a Vector. All dimensions
// must be present; unknown keys are rejected. Missing keys are never zeroed.
func FromMap(m map[string]float64) (Vector, error) {
	var v Vector
	var unknown []string
	seen := make(map[Dimension]bool, len(m))
	for key, val := range m {
		p := v.field(Dimension(key))
		if p == nil {
			unknown = append(unknown, key)
			continue
		}
		*p = val
		seen[Dimension(key)] = true
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Vector{}, fmt.Errorf("%w: %v", ErrUnknownDimension, unknown)
	}
	var missing []string
	for _, d := range Dimensions() {
		if !seen[d] {
			missing = append(missing, string(d))
		}
	}
	if len(missing) > 0 {
		return Vector{}, fmt.Errorf("%w: %v", ErrMissingDimension, missing)
	}
	return v, nil
}

// Map returns the ratings keyed by dimension name.
func (v Vector) Map() map[string]float64 {
	out := make(map[string]float64, len(Dimensions()))
	for _, d := range Dimensions() {
		val, _ := v.Get(d)
		out[string(d)] = val
	}
	return out
}

// Uniform returns a vector with positives set to pos and negatives set to neg.
func Uniform(pos, neg float64) Vector {
	return Vector{
		Sattva: pos, Vairagya: pos, Viveka: pos, Ekagrata: pos, Santosha: pos,
		FrustrationTolerance: pos, ImpulseControl: pos, EgoConfrontation: pos, Sanga: pos,
		Rajas: neg, Tamas: neg, AddictionPotential: neg, TimeWasting: neg, Dissociation: neg,
		SamskaraFormation: neg, AhimsaViolation: neg, PratyaharaDisturbance: neg, SankalpaUndermining: neg,
	}
}
