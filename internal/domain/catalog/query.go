// Package catalog holds the pure query helpers over an in-memory set of
// games: sorting, filtering, leaderboards, the attribute explorer ranking,
// facets and lookups. Every function returns a new slice and leaves its
// input untouched; an empty input always yields an empty result.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/okian/yogicgames/internal/domain/attribute"
	"github.com/okian/yogicgames/internal/domain/model"
)

// Default view sizes.
const (
	DefaultLeaderboardSize = 5
	DefaultAttributeLimit  = 20
)

// SortField selects the list ordering.
type SortField string

// Sort fields.
const (
	SortRank  SortField = "rank"  // ascending
	SortScore SortField = "score" // descending
	SortTitle SortField = "title" // alphabetical
)

// ParseSortField resolves a sort key. Empty means SortScore; "name" is an
// alias for SortTitle.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "score":
		return SortScore, nil
	case "rank":
		return SortRank, nil
	case "title", "name":
		return SortTitle, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSortField, s)
	}
}

// Sort returns games ordered by field. Ties keep input order. An unknown
// field returns an unsorted copy.
func Sort(games []model.Game, field SortField) []model.Game {
	out := clone(games)
	switch field {
	case SortRank:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	case SortScore:
		sortByScoreDesc(out)
	case SortTitle:
		// Collator keeps internal buffers; one per call.
		c := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Title, out[j].Title) < 0
		})
	}
	return out
}

// Predicates are the optional list filters. Empty fields are no-ops and all
// set fields must match.
type Predicates struct {
	// Search matches title or description, case-insensitive substring.
	Search string
	// Tier matches as a case-insensitive substring of the tier.
	Tier string
	// Platform matches as a case-insensitive substring of the platforms.
	Platform string
	// Rating matches the original rating exactly, ignoring case.
	Rating string
}

// Active reports whether any predicate is set.
func (p Predicates) Active() bool {
	return strings.TrimSpace(p.Search) != "" || p.Tier != "" || p.Platform != "" || p.Rating != ""
}

// Matches reports whether g satisfies every set predicate.
func (p Predicates) Matches(g model.Game) bool {
	if q := strings.ToLower(strings.TrimSpace(p.Search)); q != "" {
		if !strings.Contains(strings.ToLower(g.Title), q) && !strings.Contains(strings.ToLower(g.Description), q) {
			return false
		}
	}
	if p.Tier != "" && !containsFold(g.Tier, p.Tier) {
		return false
	}
	if p.Platform != "" && !containsFold(g.Platform, p.Platform) {
		return false
	}
	if p.Rating != "" && !strings.EqualFold(g.OriginalRating, p.Rating) {
		return false
	}
	return true
}

// Filter returns the games matching p in input order.
func Filter(games []model.Game, p Predicates) []model.Game {
	if !p.Active() {
		return clone(games)
	}
	out := make([]model.Game, 0, len(games))
	for _, g := range games {
		if p.Matches(g) {
			out = append(out, g)
		}
	}
	return out
}

// Query is a list request: filters, ordering and an optional cap.
type Query struct {
	Predicates
	Sort SortField
	// Limit caps the result; zero or negative means no cap.
	Limit int
}

// Search applies q.Predicates, then q.Sort, then q.Limit. total is the
// number of matches before the limit.
func Search(games []model.Game, q Query) (page []model.Game, total int) {
	page = Sort(Filter(games, q.Predicates), q.Sort)
	total = len(page)
	if q.Limit > 0 && q.Limit < total {
		page = page[:q.Limit]
	}
	return page, total
}

// TopN returns the n highest scoring games, best first.
func TopN(games []model.Game, n int) []model.Game {
	if n <= 0 {
		return []model.Game{}
	}
	out := Sort(games, SortScore)
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// BottomN returns the n lowest scoring games, worst first: the tail of the
// score-descending order, reversed.
func BottomN(games []model.Game, n int) []model.Game {
	if n <= 0 {
		return []model.Game{}
	}
	sorted := Sort(games, SortScore)
	if n < len(sorted) {
		sorted = sorted[len(sorted)-n:]
	}
	out := make([]model.Game, len(sorted))
	for i, g := range sorted {
		out[len(sorted)-1-i] = g
	}
	return out
}

// ByAttribute ranks games by the raw value of dim descending, breaking ties
// by score descending, and returns the first n. The weighted score plays no
// part except as the tie-break.
func ByAttribute(games []model.Game, dim attribute.Dimension, n int) ([]model.Game, error) {
	if _, err := (attribute.Vector{}).Get(dim); err != nil {
		return nil, err
	}
	if n <= 0 {
		return []model.Game{}, nil
	}
	out := clone(games)
	sort.SliceStable(out, func(i, j int) bool {
		vi, _ := out[i].Attributes.Get(dim)
		vj, _ := out[j].Attributes.Get(dim)
		if vi != vj {
			return vi > vj
		}
		return out[i].Score > out[j].Score
	})
	if n < len(out) {
		out = out[:n]
	}
	return out, nil
}

// Facets are the distinct values offered as filter chips.
type Facets struct {
	Tiers     []string
	Platforms []string
	Ratings   []string
}

// CollectFacets returns sorted distinct tiers, primary platforms and
// original ratings.
func CollectFacets(games []model.Game) Facets {
	tiers := map[string]struct{}{}
	platforms := map[string]struct{}{}
	ratings := map[string]struct{}{}
	for _, g := range games {
		if g.Tier != "" {
			tiers[g.Tier] = struct{}{}
		}
		if p := g.PrimaryPlatform(); p != "" {
			platforms[p] = struct{}{}
		}
		if g.OriginalRating != "" {
			ratings[g.OriginalRating] = struct{}{}
		}
	}
	return Facets{Tiers: keys(tiers), Platforms: keys(platforms), Ratings: keys(ratings)}
}

// FindByID returns the game with id. The boolean is false on a miss.
func FindByID(games []model.Game, id string) (model.Game, bool) {
	for _, g := range games {
		if g.ID == id {
			return g, true
		}
	}
	return model.Game{}, false
}

// FindBySlug returns the game whose title slug equals slug. The boolean is
// false on a miss.
func FindBySlug(games []model.Game, slug string) (model.Game, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return model.Game{}, false
	}
	for _, g := range games {
		if g.Slug() == slug {
			return g, true
		}
	}
	return model.Game{}, false
}

func sortByScoreDesc(games []model.Game) {
	sort.SliceStable(games, func(i, j int) bool { return games[i].Score > games[j].Score })
}

func clone(games []model.Game) []model.Game {
	out := make([]model.Game, len(games))
	copy(out, games)
	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
