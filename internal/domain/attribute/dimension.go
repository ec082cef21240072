// Package attribute defines the fixed set of rated dimensions a game is
// scored along, their display metadata and weights, and the typed vector
// that carries one rating per dimension.
package attribute

import (
	"fmt"
	"strings"
)

// Dimension is the stable key of one rated facet.
type Dimension string

// Positive dimensions.
const (
	Sattva               Dimension = "sattva"
	Vairagya             Dimension = "vairagya"
	Viveka               Dimension = "viveka"
	Ekagrata             Dimension = "ekagrata"
	Santosha             Dimension = "santosha"
	FrustrationTolerance Dimension = "frustrationTolerance"
	ImpulseControl       Dimension = "impulseControl"
	EgoConfrontation     Dimension = "egoConfrontation"
	Sanga                Dimension = "sanga"
)

// Negative dimensions.
const (
	Rajas                 Dimension = "rajas"
	Tamas                 Dimension = "tamas"
	AddictionPotential    Dimension = "addictionPotential"
	TimeWasting           Dimension = "timeWasting"
	Dissociation          Dimension = "dissociation"
	SamskaraFormation     Dimension = "samskaraFormation"
	AhimsaViolation       Dimension = "ahimsaViolation"
	PratyaharaDisturbance Dimension = "pratyaharaDisturbance"
	SankalpaUndermining   Dimension = "sankalpaUndermining"
)

// Rating bounds observed in the source data.
const (
	MinRating = 0.0
	MaxRating = 5.0
)

// Dimensions lists every known dimension, positives first, in display order.
func Dimensions() []Dimension {
	return []Dimension{
		Sattva, Vairagya, Viveka, Ekagrata, Santosha,
		FrustrationTolerance, ImpulseControl, EgoConfrontation, Sanga,
		Rajas, Tamas, AddictionPotential, TimeWasting, Dissociation,
		SamskaraFormation, AhimsaViolation, PratyaharaDisturbance, SankalpaUndermining,
	}
}

// ParseDimension resolves a key to a Dimension. Matching is exact first and
// then case-insensitive, so "Sattva" and "frustrationtolerance" resolve.
func ParseDimension(key string) (Dimension, error) {
	key = strings.TrimSpace(key)
	for _, d := range Dimensions() {
		if string(d) == key {
			return d, nil
		}
	}
	for _, d := range Dimensions() {
		if strings.EqualFold(string(d), key) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDimension, key)
}

// Polarity says whether a dimension adds to or subtracts from the score.
type Polarity int

// Polarity values.
const (
	Positive Polarity = 1
	Negative Polarity = -1
)

// Sign returns +1 for positive and -1 for negative dimensions.
func (p Polarity) Sign() float64 { return float64(p) }

func (p Polarity) String() string {
	switch p {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return "unknown"
	}
}

// MarshalText renders the polarity as "positive" or "negative".
func (p Polarity) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText accepts the forms produced by MarshalText.
func (p *Polarity) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "positive":
		*p = Positive
	case "negative":
		*p = Negative
	default:
		return fmt.Errorf("%w: polarity %q", ErrInvalidSchema, b)
	}
	return nil
}
