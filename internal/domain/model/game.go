// Package model contains the catalog entity passed between layers.
package model

import (
	"regexp"
	"strings"

	"github.com/okian/yogicgames/internal/domain/attribute"
)

// Game is one rated catalog entry. Games are built once at load time and
// never mutated afterwards.
type Game struct {
	ID             string           // stable identifier
	Rank           int              // market-success position, 1..N
	Title          string           // display title
	Tier           string           // e.g. "S - Transcendent"
	Platform       string           // comma-separated platforms
	ActivePlayers  string           // free-text player count
	OriginalRating string           // categorical rating from the source, e.g. "E", "M"
	Description    string           // free-text description
	Criticism      string           // free-text critique
	Attributes     attribute.Vector // one rating per dimension
	Score          float64          // derived from Attributes
	SteamAppID     string           // optional storefront id
	Comments       []Comment        // optional user ratings
}

// Comment is a user rating attached to a game.
type Comment struct {
	ID     string
	User   string
	Rating int
	Text   string
	Date   string
}

// Slug returns the URL-safe token for the game's title.
func (g Game) Slug() string { return Slug(g.Title) }

// TierName returns the part of the tier after " - ", or the whole tier.
func (g Game) TierName() string {
	if _, name, ok := strings.Cut(g.Tier, " - "); ok {
		return strings.TrimSpace(name)
	}
	return strings.TrimSpace(g.Tier)
}

// PrimaryPlatform returns the first comma-separated platform.
func (g Game) PrimaryPlatform() string {
	first, _, _ := strings.Cut(g.Platform, ",")
	return strings.TrimSpace(first)
}

var (
	slugStrip  = regexp.MustCompile(`[^\w\s-]`)
	slugSpaces = regexp.MustCompile(`\s+`)
	slugDashes = regexp.MustCompile(`-+`)
)

// Slug lowercases title, strips non-word characters, and collapses
// whitespace and repeated hyphens into single hyphens.
func Slug(title string) string {
	s := strings.TrimSpace(strings.ToLower(title))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	return slugDashes.ReplaceAllString(s, "-")
}
