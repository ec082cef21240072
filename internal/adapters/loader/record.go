package loader

import (
	"github.com/okian/yogicgames/internal/domain/model"
)

// catalogFile is the document form: a top-level object holding games.
// A bare list of games is accepted as well.
type catalogFile struct {
	Games []record `json:"games" yaml:"games"`
}

// record is one game as it appears on disk.
type record struct {
	ID             string             `json:"id,omitempty" yaml:"id,omitempty"`
	Rank           int                `json:"rank" yaml:"rank" validate:"gte=1"`
	Title          string             `json:"title" yaml:"title" validate:"required,max=200"`
	Tier           string             `json:"tier" yaml:"tier"`
	Platform       string             `json:"platform" yaml:"platform"`
	ActivePlayers  string             `json:"activePlayers,omitempty" yaml:"activePlayers,omitempty"`
	OriginalRating string             `json:"originalRating,omitempty" yaml:"originalRating,omitempty"`
	Description    string             `json:"description,omitempty" yaml:"description,omitempty"`
	Criticism      string             `json:"criticism,omitempty" yaml:"criticism,omitempty"`
	Attributes     map[string]float64 `json:"attributes" yaml:"attributes" validate:"required"`
	YogicScore     *float64           `json:"yogicScore,omitempty" yaml:"yogicScore,omitempty"`
	SteamAppID     string             `json:"steamAppId,omitempty" yaml:"steamAppId,omitempty" validate:"omitempty,numeric"`
	UserRatings    []commentRecord    `json:"userRatings,omitempty" yaml:"userRatings,omitempty" validate:"dive"`
}

type commentRecord struct {
	ID     string `json:"id" yaml:"id"`
	User   string `json:"user" yaml:"user" validate:"required"`
	Rating int    `json:"rating" yaml:"rating" validate:"gte=0,lte=5"`
	Text   string `json:"text" yaml:"text"`
	Date   string `json:"date" yaml:"date"`
}

func toRecord(g model.Game) record {
	score := g.Score
	r := record{
		ID:             g.ID,
		Rank:           g.Rank,
		Title:          g.Title,
		Tier:           g.Tier,
		Platform:       g.Platform,
		ActivePlayers:  g.ActivePlayers,
		OriginalRating: g.OriginalRating,
		Description:    g.Description,
		Criticism:      g.Criticism,
		Attributes:     g.Attributes.Map(),
		YogicScore:     &score,
		SteamAppID:     g.SteamAppID,
	}
	for _, c := range g.Comments {
		r.UserRatings = append(r.UserRatings, commentRecord(c))
	}
	return r
}
