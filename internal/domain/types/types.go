// Package types contains the view models returned by the service and
// serialized by the HTTP adapter.
package types

import (
	"github.com/okian/yogicgames/internal/domain/attribute"
	"github.com/okian/yogicgames/internal/domain/model"
	"github.com/okian/yogicgames/internal/domain/scoring"
	"github.com/okian/yogicgames/internal/domain/storelink"
)

// GameSummary is the list-row projection of a game.
type GameSummary struct {
	ID              string       `json:"id"`
	Slug            string       `json:"slug"`
	Rank            int          `json:"rank"`
	Title           string       `json:"title"`
	Tier            string       `json:"tier"`
	TierName        string       `json:"tier_name"`
	Platform        string       `json:"platform"`
	PrimaryPlatform string       `json:"primary_platform"`
	ActivePlayers   string       `json:"active_players,omitempty"`
	OriginalRating  string       `json:"original_rating,omitempty"`
	Score           float64      `json:"score"`
	Band            scoring.Band `json:"band"`
}

// NewGameSummary projects g.
func NewGameSummary(g model.Game) GameSummary {
	return GameSummary{
		ID:              g.ID,
		Slug:            g.Slug(),
		Rank:            g.Rank,
		Title:           g.Title,
		Tier:            g.Tier,
		TierName:        g.TierName(),
		Platform:        g.Platform,
		PrimaryPlatform: g.PrimaryPlatform(),
		ActivePlayers:   g.ActivePlayers,
		OriginalRating:  g.OriginalRating,
		Score:           g.Score,
		Band:            scoring.Classify(g.Score),
	}
}

// Summaries projects every game in order.
func Summaries(games []model.Game) []GameSummary {
	out := make([]GameSummary, len(games))
	for i, g := range games {
		out[i] = NewGameSummary(g)
	}
	return out
}

// GameList is a filtered, sorted page of games. Total counts the matches
// before the limit; Count is len(Items).
type GameList struct {
	Total int           `json:"total"`
	Count int           `json:"count"`
	Items []GameSummary `json:"items"`
}

// AttributeDefinition describes one rating dimension.
type AttributeDefinition struct {
	Key         attribute.Dimension `json:"key"`
	Label       string              `json:"label"`
	Description string              `json:"description"`
	Weight      float64             `json:"weight"`
	Polarity    attribute.Polarity  `json:"polarity"`
}

// NewAttributeDefinition projects def.
func NewAttributeDefinition(def attribute.Definition) AttributeDefinition {
	return AttributeDefinition{
		Key:         def.Key,
		Label:       def.Label,
		Description: def.Description,
		Weight:      def.Weight,
		Polarity:    def.Polarity,
	}
}

// Rating is one dimension's value on the detail view.
type Rating struct {
	AttributeDefinition
	Value    float64 `json:"value"`
	Weighted float64 `json:"weighted"`
}

// SimilarGame is a nearest neighbour with its distance.
type SimilarGame struct {
	GameSummary
	Distance float64 `json:"distance"`
}

// Comment is a user rating on the detail view.
type Comment struct {
	ID     string `json:"id"`
	User   string `json:"user"`
	Rating int    `json:"rating"`
	Text   string `json:"text"`
	Date   string `json:"date"`
}

// GameDetail is everything the detail view shows for one game.
type GameDetail struct {
	GameSummary
	Description string           `json:"description"`
	Criticism   string           `json:"criticism"`
	Positive    []Rating         `json:"positive"`
	Negative    []Rating         `json:"negative"`
	PositiveSum float64          `json:"positive_sum"`
	NegativeSum float64          `json:"negative_sum"`
	Store       storelink.Link   `json:"store"`
	Reviews     []storelink.Link `json:"reviews"`
	Similar     []SimilarGame    `json:"similar"`
	Comments    []Comment        `json:"comments"`
}

// NewGameDetail builds the detail view from g, its score breakdown and its
// neighbours.
func NewGameDetail(g model.Game, b scoring.Breakdown, similar []SimilarGame) GameDetail {
	d := GameDetail{
		GameSummary: NewGameSummary(g),
		Description: g.Description,
		Criticism:   g.Criticism,
		Positive:    []Rating{},
		Negative:    []Rating{},
		PositiveSum: scoring.Round(b.Positive, 2),
		NegativeSum: scoring.Round(b.Negative, 2),
		Store:       storelink.Store(g),
		Reviews:     storelink.Reviews(g),
		Similar:     similar,
		Comments:    make([]Comment, len(g.Comments)),
	}
	if d.Similar == nil {
		d.Similar = []SimilarGame{}
	}
	for _, c := range b.Contributions {
		r := Rating{
			AttributeDefinition: NewAttributeDefinition(c.Definition),
			Value:               c.Value,
			Weighted:            c.Weighted,
		}
		if c.Definition.Polarity == attribute.Negative {
			d.Negative = append(d.Negative, r)
		} else {
			d.Positive = append(d.Positive, r)
		}
	}
	for i, c := range g.Comments {
		d.Comments[i] = Comment(c)
	}
	return d
}

// Leaderboard holds the best and worst scoring games.
type Leaderboard struct {
	Top    []GameSummary `json:"top"`
	Bottom []GameSummary `json:"bottom"`
}

// ExplorerRow is one game ranked on a single dimension.
type ExplorerRow struct {
	GameSummary
	Value float64 `json:"value"`
}

// Explorer is the attribute explorer ranking.
type Explorer struct {
	Dimension AttributeDefinition `json:"dimension"`
	Rows      []ExplorerRow       `json:"rows"`
}

// TrendPoint is one scatter point. Predicted is the fitted rank, nil when
// no line could be fitted.
type TrendPoint struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Rank      int      `json:"rank"`
	Score     float64  `json:"score"`
	Predicted *float64 `json:"predicted,omitempty"`
}

// Trend is the score/rank correlation view. When Available is false the
// fit could not be computed and only the points are meaningful.
type Trend struct {
	Available   bool         `json:"available"`
	Slope       float64      `json:"slope"`
	Intercept   float64      `json:"intercept"`
	Correlation float64      `json:"correlation"`
	Points      []TrendPoint `json:"points"`
}

// Facets are the distinct filter values.
type Facets struct {
	Tiers     []string `json:"tiers"`
	Platforms []string `json:"platforms"`
	Ratings   []string `json:"ratings"`
}

// Stats describes the loaded catalog.
type Stats struct {
	Games      int     `json:"games"`
	Version    uint64  `json:"version"`
	LoadedAt   string  `json:"loaded_at"`
	Source     string  `json:"source"`
	MeanScore  float64 `json:"mean_score"`
	TopScore   float64 `json:"top_score"`
	Dimensions int     `json:"dimensions"`
	// ScoreFloor and ScoreCeiling bound every score the schema can produce.
	ScoreFloor   float64 `json:"score_floor"`
	ScoreCeiling float64 `json:"score_ceiling"`
}
