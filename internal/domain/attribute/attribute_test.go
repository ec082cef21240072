package attribute_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/yogicgames/internal/domain/attribute"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaultSchema(t *testing.T) {
	Convey("Given the default schema", t, func() {
		s := attribute.Default()

		Convey("Then it covers all eighteen dimensions", func() {
			So(s.Len(), ShouldEqual, 18)
			So(len(s.Positive()), ShouldEqual, 9)
			So(len(s.Negative()), ShouldEqual, 9)
		})

		Convey("Then weights match the fixed table", func() {
			sattva, ok := s.Lookup(attribute.Sattva)
			So(ok, ShouldBeTrue)
			So(sattva.Weight, ShouldEqual, 3.0)
			So(sattva.Polarity, ShouldEqual, attribute.Positive)

			samskara, ok := s.Lookup(attribute.SamskaraFormation)
			So(ok, ShouldBeTrue)
			So(samskara.Weight, ShouldEqual, 4.0)
			So(samskara.Polarity, ShouldEqual, attribute.Negative)
		})

		Convey("Then positive and negative weights sum to 15.5 and 19", func() {
			pos, neg := 0.0, 0.0
			for _, d := range s.Positive() {
				pos += d.Weight
			}
			for _, d := range s.Negative() {
				neg += d.Weight
			}
			So(pos, ShouldEqual, 15.5)
			So(neg, ShouldEqual, 19.0)
		})

		Convey("Then Definitions returns a defensive copy", func() {
			defs := s.Definitions()
			defs[0].Weight = 100
			d, _ := s.Lookup(defs[0].Key)
			So(d.Weight, ShouldEqual, 3.0)
		})

		Convey("Then it is the same instance on every call", func() {
			So(attribute.Default(), ShouldPointTo, s)
		})
	})
}

func TestNewSchema(t *testing.T) {
	Convey("Given schema definitions", t, func() {
		defs := attribute.Default().Definitions()

		Convey("When a dimension is missing", func() {
			_, err := attribute.NewSchema(defs[1:]...)
			So(errors.Is(err, attribute.ErrInvalidSchema), ShouldBeTrue)
			So(errors.Is(err, attribute.ErrMissingDimension), ShouldBeTrue)
		})

		Convey("When a dimension is duplicated", func() {
			_, err := attribute.NewSchema(append(defs, defs[0])...)
			So(errors.Is(err, attribute.ErrInvalidSchema), ShouldBeTrue)
		})

		Convey("When a weight is not positive", func() {
			defs[3].Weight = 0
			_, err := attribute.NewSchema(defs...)
			So(errors.Is(err, attribute.ErrInvalidSchema), ShouldBeTrue)
		})

		Convey("When a key is unknown", func() {
			defs[0].Key = "karma"
			_, err := attribute.NewSchema(defs...)
			So(errors.Is(err, attribute.ErrUnknownDimension), ShouldBeTrue)
		})
	})
}

func TestParseDimension(t *testing.T) {
	Convey("Given dimension keys", t, func() {
		d, err := attribute.ParseDimension("frustrationTolerance")
		So(err, ShouldBeNil)
		So(d, ShouldEqual, attribute.FrustrationTolerance)

		d, err = attribute.ParseDimension(" TAMAS ")
		So(err, ShouldBeNil)
		So(d, ShouldEqual, attribute.Tamas)

		_, err = attribute.ParseDimension("karma")
		So(errors.Is(err, attribute.ErrUnknownDimension), ShouldBeTrue)
	})
}

func TestFromMap(t *testing.T) {
	Convey("Given a complete rating map", t, func() {
		m := attribute.Uniform(2, 1).Map()

		Convey("Then it converts to a vector", func() {
			v, err := attribute.FromMap(m)
			So(err, ShouldBeNil)
			So(v, ShouldResemble, attribute.Uniform(2, 1))
		})

		Convey("When a dimension is missing", func() {
			delete(m, "sanga")
			_, err := attribute.FromMap(m)
			So(errors.Is(err, attribute.ErrMissingDimension), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "sanga")
		})

		Convey("When an unknown key is present", func() {
			m["karma"] = 3
			_, err := attribute.FromMap(m)
			So(errors.Is(err, attribute.ErrUnknownDimension), ShouldBeTrue)
		})
	})
}

func TestVector(t *testing.T) {
	Convey("Given a vector", t, func() {
		v := attribute.Uniform(4, 1)

		Convey("Then Values follow schema order", func() {
			vals, err := v.Values(attribute.Default())
			So(err, ShouldBeNil)
			So(len(vals), ShouldEqual, 18)
			So(vals[0], ShouldEqual, 4)
			So(vals[17], ShouldEqual, 1)
		})

		Convey("Then With returns a modified copy", func() {
			w, err := v.With(attribute.Tamas, 5)
			So(err, ShouldBeNil)
			So(w.Tamas, ShouldEqual, 5)
			So(v.Tamas, ShouldEqual, 1)

			_, err = v.With("karma", 1)
			So(errors.Is(err, attribute.ErrUnknownDimension), ShouldBeTrue)
		})

		Convey("Then Validate accepts in-range ratings", func() {
			So(v.Validate(), ShouldBeNil)
		})

		Convey("Then Validate rejects out-of-range and non-finite ratings", func() {
			w, _ := v.With(attribute.Sattva, 5.5)
			So(errors.Is(w.Validate(), attribute.ErrRatingOutOfRange), ShouldBeTrue)

			w, _ = v.With(attribute.Rajas, math.NaN())
			So(errors.Is(w.Validate(), attribute.ErrRatingOutOfRange), ShouldBeTrue)

			w, _ = v.With(attribute.Rajas, -1)
			So(errors.Is(w.Validate(), attribute.ErrRatingOutOfRange), ShouldBeTrue)
		})
	})
}

func TestPolarity_Text(t *testing.T) {
	Convey("Given the two polarities", t, func() {
		Convey("Then they round-trip through their text form", func() {
			for _, p := range []attribute.Polarity{attribute.Positive, attribute.Negative} {
				b, err := p.MarshalText()
				So(err, ShouldBeNil)

				var back attribute.Polarity
				So(back.UnmarshalText(b), ShouldBeNil)
				So(back, ShouldEqual, p)
			}
		})

		Convey("Then unknown text is rejected", func() {
			var p attribute.Polarity
			So(errors.Is(p.UnmarshalText([]byte("neutral")), attribute.ErrInvalidSchema), ShouldBeTrue)
		})
	})
}
