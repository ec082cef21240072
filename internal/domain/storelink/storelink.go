// Package storelink derives outbound links for a game: the most likely
// storefront and a pair of review searches.
package storelink

import (
	"net/url"
	"strings"

	"github.com/okian/yogicgames/internal/domain/model"
)

// Kind names the storefront a link points at.
type Kind string

// Storefronts, in match priority.
const (
	Steam       Kind = "steam"
	Nintendo    Kind = "nintendo"
	PlayStation Kind = "playstation"
	Xbox        Kind = "xbox"
	Mobile      Kind = "mobile"
	Official    Kind = "official"
	Metacritic  Kind = "metacritic"
	Review      Kind = "review"
)

// Link is one outbound link.
type Link struct {
	Kind  Kind   `json:"kind"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

var nintendoTitles = []string{"mario", "zelda", "pokémon"}

// Store returns the storefront link for g. An explicit Steam app id wins;
// otherwise platform and title keywords pick the store, falling back to a
// web search for the official site.
func Store(g model.Game) Link {
	if id := strings.TrimSpace(g.SteamAppID); id != "" {
		return Link{Kind: Steam, Label: "Steam Store", URL: "https://store.steampowered.com/app/" + escape(id)}
	}

	platform := strings.ToLower(g.Platform)
	title := strings.ToLower(g.Title)
	q := escape(g.Title)

	switch {
	case strings.Contains(platform, "switch") || containsAny(title, nintendoTitles):
		return Link{Kind: Nintendo, Label: "Nintendo eShop", URL: "https://www.nintendo.com/search/?q=" + q}
	case strings.Contains(platform, "playstation") || hasPlatform(platform, "ps", "ps4", "ps5"):
		return Link{Kind: PlayStation, Label: "PlayStation Store", URL: "https://store.playstation.com/en-us/search/" + q}
	case strings.Contains(platform, "xbox"):
		return Link{Kind: Xbox, Label: "Xbox Store", URL: "https://www.xbox.com/en-US/search?q=" + q}
	case containsAny(platform, []string{"mobile", "android", "ios"}):
		return Link{Kind: Mobile, Label: "App Store / Play", URL: "https://play.google.com/store/search?c=apps&q=" + q}
	default:
		return Link{Kind: Official, Label: "Official Search", URL: "https://www.google.com/search?q=" + escape(g.Title+" official game site")}
	}
}

// Reviews returns the review search links for g.
func Reviews(g model.Game) []Link {
	return []Link{
		{Kind: Metacritic, Label: "Metacritic", URL: "https://www.metacritic.com/search/" + escape(g.Title)},
		{Kind: Review, Label: "Analysis Search", URL: "https://www.google.com/search?q=" + escape(g.Title+" review")},
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// hasPlatform reports whether one comma-separated entry of platform equals
// one of names.
func hasPlatform(platform string, names ...string) bool {
	for _, p := range strings.Split(platform, ",") {
		p = strings.TrimSpace(p)
		for _, n := range names {
			if p == n {
				return true
			}
		}
	}
	return false
}

var componentUnescape = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escape percent-encodes s as a URI component: spaces become %20 and the
// sub-delimiters !'()* stay literal.
func escape(s string) string {
	return componentUnescape.Replace(url.QueryEscape(s))
}
