package scoring_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/yogicgames/internal/domain/attribute"
	"github.com/okian/yogicgames/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleVector() attribute.Vector {
	return attribute.Vector{
		Sattva: 3, Vairagya: 3, Viveka: 2, Ekagrata: 5, Santosha: 2,
		FrustrationTolerance: 4, ImpulseControl: 3, EgoConfrontation: 2, Sanga: 1,
		Rajas: 3, Tamas: 1, AddictionPotential: 3, TimeWasting: 3, Dissociation: 2,
		SamskaraFormation: 2, AhimsaViolation: 0, PratyaharaDisturbance: 2, SankalpaUndermining: 2,
	}
}

func TestWeightedScorer_Score(t *testing.T) {
	Convey("Given a scorer over the default schema", t, func() {
		scorer := scoring.NewWeightedScorer()

		Convey("When every positive is 5 and every negative is 0", func() {
			score, err := scorer.Score(attribute.Uniform(5, 0))

			Convey("Then the score is 5 times the positive weight sum", func() {
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 77.5)
			})
		})

		Convey("When every positive is 0 and every negative is 5", func() {
			score, err := scorer.Score(attribute.Uniform(0, 5))

			Convey("Then the score is minus 5 times the negative weight sum", func() {
				So(err, ShouldBeNil)
				So(score, ShouldEqual, -95.0)
			})
		})

		Convey("When scoring a mixed vector", func() {
			score, err := scorer.Score(sampleVector())

			Convey("Then positives 41.5 minus negatives 33.5 gives 8", func() {
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 8.0)
			})

			Convey("And scoring again yields the identical number", func() {
				again, _ := scorer.Score(sampleVector())
				So(again, ShouldEqual, score)
			})
		})

		Convey("When one dimension moves by one point", func() {
			base, _ := scorer.Score(sampleVector())

			Convey("Then the score moves by exactly that dimension's signed weight", func() {
				for _, def := range scorer.Schema().Definitions() {
					cur, _ := sampleVector().Get(def.Key)
					delta := 1.0
					if cur+delta > attribute.MaxRating {
						delta = -1.0
					}
					moved, err := sampleVector().With(def.Key, cur+delta)
					So(err, ShouldBeNil)
					got, err := scorer.Score(moved)
					So(err, ShouldBeNil)
					So(got-base, ShouldAlmostEqual, def.Weight*def.Polarity.Sign()*delta, 1e-9)
				}
			})
		})

		Convey("When the result needs rounding", func() {
			v := attribute.Uniform(0, 0)
			v.Sattva = 0.333

			Convey("Then it is rounded to two decimal places", func() {
				score, err := scorer.Score(v)
				So(err, ShouldBeNil)
				So(score, ShouldEqual, 1.0)
			})
		})

		Convey("When a rating is malformed", func() {
			v := sampleVector()
			v.Tamas = math.NaN()

			Convey("Then scoring fails fast instead of skewing the result", func() {
				_, err := scorer.Score(v)
				So(errors.Is(err, attribute.ErrRatingOutOfRange), ShouldBeTrue)
			})
		})
	})
}

func TestWeightedScorer_Breakdown(t *testing.T) {
	Convey("Given a breakdown of the mixed vector", t, func() {
		b, err := scoring.NewWeightedScorer().Breakdown(sampleVector())
		So(err, ShouldBeNil)

		Convey("Then subtotals and contributions are reported", func() {
			So(b.Positive, ShouldEqual, 41.5)
			So(b.Negative, ShouldEqual, 33.5)
			So(b.Score, ShouldEqual, 8.0)
			So(len(b.Contributions), ShouldEqual, 18)
			So(b.Contributions[0].Definition.Key, ShouldEqual, attribute.Sattva)
			So(b.Contributions[0].Weighted, ShouldEqual, 9.0)
			So(b.Contributions[15].Definition.Key, ShouldEqual, attribute.AhimsaViolation)
			So(b.Contributions[17].Weighted, ShouldEqual, -5.0)
		})
	})
}

func TestWeightedScorer_Bounds(t *testing.T) {
	Convey("Given the default scorer", t, func() {
		lo, hi := scoring.NewWeightedScorer().Bounds()

		Convey("Then the bounds are the extreme vectors' scores", func() {
			So(lo, ShouldEqual, -95.0)
			So(hi, ShouldEqual, 77.5)
		})
	})
}

func TestScoreFunction(t *testing.T) {
	Convey("Given an injected schema with doubled sattva weight", t, func() {
		defs := attribute.Default().Definitions()
		defs[0].Weight = 6
		schema, err := attribute.NewSchema(defs...)
		So(err, ShouldBeNil)

		Convey("Then Score uses the injected weights", func() {
			v := attribute.Uniform(0, 0)
			v.Sattva = 1
			score, err := scoring.Score(schema, v)
			So(err, ShouldBeNil)
			So(score, ShouldEqual, 6.0)
		})
	})
}

func TestRound(t *testing.T) {
	Convey("Given values to round", t, func() {
		So(scoring.Round(1.234567, 2), ShouldEqual, 1.23)
		So(scoring.Round(0.125, 2), ShouldEqual, 0.13)
		So(scoring.Round(-2.5, 0), ShouldEqual, -3.0)
		So(scoring.Round(-0.001, 2), ShouldEqual, 0.0)
		So(math.Signbit(scoring.Round(-0.001, 2)), ShouldBeFalse)
		So(scoring.Round(1.23456, -1), ShouldEqual, 1.23456)
	})
}

func TestClassify(t *testing.T) {
	Convey("Given scores on band edges", t, func() {
		So(scoring.Classify(20), ShouldEqual, scoring.BandHigh)
		So(scoring.Classify(19.99), ShouldEqual, scoring.BandNeutral)
		So(scoring.Classify(0), ShouldEqual, scoring.BandNeutral)
		So(scoring.Classify(-0.01), ShouldEqual, scoring.BandLow)
	})
}
