package catalog_test

import (
	"errors"
	"testing"

	"github.com/okian/yogicgames/internal/domain/attribute"
	"github.com/okian/yogicgames/internal/domain/catalog"
	"github.com/okian/yogicgames/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func fixture() []model.Game {
	return []model.Game{
		{ID: "a", Rank: 3, Title: "zelda: Breath", Tier: "A - Elevated", Platform: "Nintendo Switch", OriginalRating: "E10+", Description: "Open air", Score: 40, Attributes: attribute.Vector{Sattva: 4, Rajas: 1}},
		{ID: "b", Rank: 1, Title: "Apex Arena", Tier: "D - Draining", Platform: "PC, PS5", OriginalRating: "T", Description: "Battle royale shooter", Score: -30, Attributes: attribute.Vector{Sattva: 1, Rajas: 5}},
		{ID: "c", Rank: 2, Title: "Baba Is You", Tier: "S - Transcendent", Platform: "PC, Switch", OriginalRating: "E", Description: "Rule puzzles", Score: 55, Attributes: attribute.Vector{Sattva: 4, Rajas: 0}},
		{ID: "d", Rank: 4, Title: "Candy Crush", Tier: "F - Harmful", Platform: "Mobile", OriginalRating: "E", Description: "Match three", Score: -60, Attributes: attribute.Vector{Sattva: 0, Rajas: 4}},
		{ID: "e", Rank: 5, Title: "Stardew Valley", Tier: "B - Neutral", Platform: "PC", OriginalRating: "E", Description: "Farming, calm", Score: 12.5, Attributes: attribute.Vector{Sattva: 3, Rajas: 1}},
	}
}

func ids(games []model.Game) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.ID
	}
	return out
}

func TestParseSortField(t *testing.T) {
	Convey("Given sort keys", t, func() {
		Convey("Then known keys and the name alias resolve", func() {
			for in, want := range map[string]catalog.SortField{
				"": catalog.SortScore, "score": catalog.SortScore, "RANK": catalog.SortRank,
				"title": catalog.SortTitle, "name": catalog.SortTitle,
			} {
				got, err := catalog.ParseSortField(in)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, want)
			}
		})

		Convey("Then unknown keys fail", func() {
			_, err := catalog.ParseSortField("players")
			So(errors.Is(err, catalog.ErrUnknownSortField), ShouldBeTrue)
		})
	})
}

func TestSort(t *testing.T) {
	Convey("Given a catalog", t, func() {
		games := fixture()

		Convey("When sorting by rank", func() {
			So(ids(catalog.Sort(games, catalog.SortRank)), ShouldResemble, []string{"b", "c", "a", "d", "e"})
		})

		Convey("When sorting by score", func() {
			So(ids(catalog.Sort(games, catalog.SortScore)), ShouldResemble, []string{"c", "a", "e", "b", "d"})
		})

		Convey("When sorting by title", func() {
			Convey("Then ordering ignores letter case", func() {
				So(ids(catalog.Sort(games, catalog.SortTitle)), ShouldResemble, []string{"b", "c", "d", "e", "a"})
			})
		})

		Convey("Then the input order is untouched", func() {
			catalog.Sort(games, catalog.SortScore)
			So(ids(games), ShouldResemble, []string{"a", "b", "c", "d", "e"})
		})

		Convey("Then equal scores keep input order", func() {
			tied := []model.Game{{ID: "x", Score: 1}, {ID: "y", Score: 1}, {ID: "z", Score: 2}}
			So(ids(catalog.Sort(tied, catalog.SortScore)), ShouldResemble, []string{"z", "x", "y"})
		})

		Convey("Then an empty catalog yields an empty result", func() {
			out := catalog.Sort(nil, catalog.SortRank)
			So(out, ShouldNotBeNil)
			So(out, ShouldBeEmpty)
		})
	})
}

func TestFilter(t *testing.T) {
	Convey("Given a catalog", t, func() {
		games := fixture()

		Convey("When no predicate is set", func() {
			out := catalog.Filter(games, catalog.Predicates{Search: "   "})

			Convey("Then the full catalog comes back in order", func() {
				So(ids(out), ShouldResemble, ids(games))
			})
		})

		Convey("When searching", func() {
			Convey("Then titles match case-insensitively", func() {
				So(ids(catalog.Filter(games, catalog.Predicates{Search: "BABA"})), ShouldResemble, []string{"c"})
			})
			Convey("Then descriptions match too", func() {
				So(ids(catalog.Filter(games, catalog.Predicates{Search: "shooter"})), ShouldResemble, []string{"b"})
			})
		})

		Convey("When filtering by platform substring", func() {
			So(ids(catalog.Filter(games, catalog.Predicates{Platform: "switch"})), ShouldResemble, []string{"a", "c"})
		})

		Convey("When filtering by tier", func() {
			So(ids(catalog.Filter(games, catalog.Predicates{Tier: "S - "})), ShouldResemble, []string{"c"})
		})

		Convey("When filtering by rating", func() {
			Convey("Then the match is exact", func() {
				So(ids(catalog.Filter(games, catalog.Predicates{Rating: "E"})), ShouldResemble, []string{"c", "d", "e"})
			})
		})

		Convey("When combining predicates", func() {
			out := catalog.Filter(games, catalog.Predicates{Platform: "PC", Rating: "E"})
			So(ids(out), ShouldResemble, []string{"c", "e"})
		})
	})
}

func TestSearch(t *testing.T) {
	Convey("Given a query with filters, sort and limit", t, func() {
		q := catalog.Query{Predicates: catalog.Predicates{Platform: "PC"}, Sort: catalog.SortRank, Limit: 2}

		Convey("Then filters apply before ordering and the cap", func() {
			page, total := catalog.Search(fixture(), q)
			So(ids(page), ShouldResemble, []string{"b", "c"})
			So(total, ShouldEqual, 3)
		})

		Convey("Then a zero limit keeps every match", func() {
			q.Limit = 0
			page, total := catalog.Search(fixture(), q)
			So(ids(page), ShouldResemble, []string{"b", "c", "e"})
			So(total, ShouldEqual, 3)
		})
	})
}

func TestEmptyCatalog(t *testing.T) {
	Convey("Given an empty catalog", t, func() {
		cases := []struct {
			name  string
			games []model.Game
		}{{"nil", nil}, {"empty", []model.Game{}}}
		for _, c := range cases {
			games := c.games
			Convey("When it is "+c.name, func() {
				Convey("Then Filter returns an empty result", func() {
					out := catalog.Filter(games, catalog.Predicates{})
					So(out, ShouldNotBeNil)
					So(out, ShouldBeEmpty)

					out = catalog.Filter(games, catalog.Predicates{Platform: "PC"})
					So(out, ShouldNotBeNil)
					So(out, ShouldBeEmpty)
				})

				Convey("Then TopN and BottomN return empty results", func() {
					top := catalog.TopN(games, 5)
					So(top, ShouldNotBeNil)
					So(top, ShouldBeEmpty)

					bottom := catalog.BottomN(games, 5)
					So(bottom, ShouldNotBeNil)
					So(bottom, ShouldBeEmpty)
				})

				Convey("Then ByAttribute returns an empty result", func() {
					out, err := catalog.ByAttribute(games, attribute.Sattva, 5)
					So(err, ShouldBeNil)
					So(out, ShouldNotBeNil)
					So(out, ShouldBeEmpty)
				})

				Convey("Then Search reports no matches", func() {
					page, total := catalog.Search(games, catalog.Query{Sort: catalog.SortTitle, Limit: 3})
					So(page, ShouldNotBeNil)
					So(page, ShouldBeEmpty)
					So(total, ShouldEqual, 0)
				})
			})
		}
	})
}

func TestLeaderboards(t *testing.T) {
	Convey("Given a catalog", t, func() {
		games := fixture()

		Convey("When taking the top 2", func() {
			So(ids(catalog.TopN(games, 2)), ShouldResemble, []string{"c", "a"})
		})

		Convey("When taking the bottom 2", func() {
			Convey("Then the worst scores come back worst first", func() {
				So(ids(catalog.BottomN(games, 2)), ShouldResemble, []string{"d", "b"})
			})
		})

		Convey("When n exceeds the catalog", func() {
			So(catalog.TopN(games, 50), ShouldHaveLength, 5)
			So(ids(catalog.BottomN(games, 50)), ShouldResemble, []string{"d", "b", "e", "a", "c"})
		})

		Convey("When n is zero", func() {
			So(catalog.TopN(games, 0), ShouldBeEmpty)
			So(catalog.BottomN(games, -1), ShouldBeEmpty)
		})
	})
}

func TestByAttribute(t *testing.T) {
	Convey("Given a catalog", t, func() {
		games := fixture()

		Convey("When ranking by sattva", func() {
			out, err := catalog.ByAttribute(games, attribute.Sattva, catalog.DefaultAttributeLimit)

			Convey("Then ties break on score and all games return", func() {
				So(err, ShouldBeNil)
				So(ids(out), ShouldResemble, []string{"c", "a", "e", "b", "d"})
			})
		})

		Convey("When ranking by a negative dimension", func() {
			out, err := catalog.ByAttribute(games, attribute.Rajas, 2)

			Convey("Then the raw value orders descending", func() {
				So(err, ShouldBeNil)
				So(ids(out), ShouldResemble, []string{"b", "d"})
			})
		})

		Convey("When the dimension is unknown", func() {
			_, err := catalog.ByAttribute(games, attribute.Dimension("karma"), 5)
			So(errors.Is(err, attribute.ErrUnknownDimension), ShouldBeTrue)
		})
	})
}

func TestFacetsAndLookups(t *testing.T) {
	Convey("Given a catalog", t, func() {
		games := fixture()

		Convey("When collecting facets", func() {
			f := catalog.CollectFacets(games)

			Convey("Then values are distinct and sorted", func() {
				So(f.Ratings, ShouldResemble, []string{"E", "E10+", "T"})
				So(f.Platforms, ShouldResemble, []string{"Mobile", "Nintendo Switch", "PC"})
				So(f.Tiers, ShouldHaveLength, 5)
			})
		})

		Convey("When looking up by id", func() {
			g, ok := catalog.FindByID(games, "c")
			So(ok, ShouldBeTrue)
			So(g.Title, ShouldEqual, "Baba Is You")

			_, ok = catalog.FindByID(games, "nope")
			So(ok, ShouldBeFalse)
		})

		Convey("When looking up by slug", func() {
			g, ok := catalog.FindBySlug(games, "zelda-breath")
			So(ok, ShouldBeTrue)
			So(g.ID, ShouldEqual, "a")

			_, ok = catalog.FindBySlug(games, "")
			So(ok, ShouldBeFalse)
		})
	})
}
