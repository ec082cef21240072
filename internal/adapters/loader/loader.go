// Package loader reads a catalog file into games. It validates every entry,
// derives missing ids and recomputes each score from the attribute vector.
package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/okian/yogicgames/internal/domain/attribute"
	"github.com/okian/yogicgames/internal/domain/dedupe"
	"github.com/okian/yogicgames/internal/domain/model"
	"github.com/okian/yogicgames/internal/domain/scoring"
	"github.com/okian/yogicgames/internal/validation"
	"github.com/okian/yogicgames/pkg/logger"
)

// Format is a catalog encoding.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// scoreTolerance is the largest stored/derived difference treated as equal.
const scoreTolerance = 0.01

// idNamespace seeds name-based ids for entries without one.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://yogicgames.local/catalog"))

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// DeriveID returns the stable id used for a title when the source has none.
func DeriveID(title string) string {
	return uuid.NewSHA1(idNamespace, []byte(model.Slug(title))).String()
}

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithScorer sets the scorer used to derive scores.
func WithScorer(s *scoring.WeightedScorer) Option {
	return func(l *Loader) {
		if s != nil {
			l.scorer = s
		}
	}
}

// WithStrict turns stored-score mismatches and rank gaps into errors.
func WithStrict(strict bool) Option {
	return func(l *Loader) {
		l.strict = strict
	}
}

// WithLogger sets the logger for load warnings.
func WithLogger(log logger.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.logger = log
		}
	}
}

// Loader turns catalog files into games.
type Loader struct {
	scorer *scoring.WeightedScorer
	strict bool
	logger logger.Logger
}

// New creates a lenient loader scoring with the default schema.
func New(opts ...Option) *Loader {
	l := &Loader{
		scorer: scoring.NewWeightedScorer(),
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFile reads and decodes the catalog at path.
func (l *Loader) LoadFile(ctx context.Context, path string) ([]model.Game, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	games, err := l.Decode(ctx, data, format)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return games, nil
}

// Load decodes a catalog from r.
func (l *Loader) Load(ctx context.Context, r io.Reader, format Format) ([]model.Game, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return l.Decode(ctx, data, format)
}

// Decode parses data and builds games in source order.
func (l *Loader) Decode(ctx context.Context, data []byte, format Format) ([]model.Game, error) {
	records, err := decodeRecords(data, format)
	if err != nil {
		return nil, err
	}

	claims := dedupe.NewInMemoryRegistry()
	games := make([]model.Game, 0, len(records))
	for i, rec := range records {
		g, err := l.build(ctx, i, rec)
		if err != nil {
			return nil, err
		}
		if prev, dup := claims.Claim(ctx, "id", g.ID, g.Title); dup {
			return nil, fmt.Errorf("%w: id %q used by %q and %q", ErrDuplicate, g.ID, prev, g.Title)
		}
		if prev, dup := claims.Claim(ctx, "slug", g.Slug(), g.Title); dup {
			return nil, fmt.Errorf("%w: slug %q used by %q and %q", ErrDuplicate, g.Slug(), prev, g.Title)
		}
		if prev, dup := claims.Claim(ctx, "rank", fmt.Sprint(g.Rank), g.Title); dup {
			if err := l.flag(ctx, fmt.Errorf("%w: rank %d used by %q and %q", ErrRankSequence, g.Rank, prev, g.Title)); err != nil {
				return nil, err
			}
		}
		games = append(games, g)
	}

	for rank := 1; rank <= len(games); rank++ {
		if _, ok := claims.Owner(ctx, "rank", fmt.Sprint(rank)); !ok {
			if err := l.flag(ctx, fmt.Errorf("%w: rank %d missing", ErrRankSequence, rank)); err != nil {
				return nil, err
			}
			break
		}
	}
	return games, nil
}

func (l *Loader) build(ctx context.Context, index int, rec record) (model.Game, error) {
	if err := validation.Struct(rec); err != nil {
		return model.Game{}, fmt.Errorf("%w: entry %d %q: %w", ErrInvalidGame, index, rec.Title, err)
	}
	attrs, err := attribute.FromMap(rec.Attributes)
	if err != nil {
		return model.Game{}, fmt.Errorf("%w: entry %d %q: %w", ErrInvalidGame, index, rec.Title, err)
	}
	score, err := l.scorer.Score(attrs)
	if err != nil {
		return model.Game{}, fmt.Errorf("%w: entry %d %q: %w", ErrInvalidGame, index, rec.Title, err)
	}
	if rec.YogicScore != nil && math.Abs(*rec.YogicScore-score) > scoreTolerance {
		mismatch := fmt.Errorf("%w: %q stored %.2f, derived %.2f", ErrScoreMismatch, rec.Title, *rec.YogicScore, score)
		if err := l.flag(ctx, mismatch); err != nil {
			return model.Game{}, err
		}
	}

	id := strings.TrimSpace(rec.ID)
	if id == "" {
		id = DeriveID(rec.Title)
	}
	g := model.Game{
		ID:             id,
		Rank:           rec.Rank,
		Title:          strings.TrimSpace(rec.Title),
		Tier:           rec.Tier,
		Platform:       rec.Platform,
		ActivePlayers:  rec.ActivePlayers,
		OriginalRating: rec.OriginalRating,
		Description:    rec.Description,
		Criticism:      rec.Criticism,
		Attributes:     attrs,
		Score:          score,
		SteamAppID:     strings.TrimSpace(rec.SteamAppID),
	}
	for _, c := range rec.UserRatings {
		g.Comments = append(g.Comments, model.Comment(c))
	}
	return g, nil
}

// flag returns err in strict mode and logs it otherwise.
func (l *Loader) flag(ctx context.Context, err error) error {
	if l.strict {
		return err
	}
	l.logger.Warn(ctx, "catalog inconsistency", logger.Error(err))
	return nil
}

func decodeRecords(data []byte, format Format) ([]record, error) {
	switch format {
	case FormatJSON:
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) == 0 {
			return nil, nil
		}
		if trimmed[0] == '[' {
			var list []record
			if err := json.Unmarshal(trimmed, &list); err != nil {
				return nil, fmt.Errorf("decode json catalog: %w", err)
			}
			return list, nil
		}
		var doc catalogFile
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("decode json catalog: %w", err)
		}
		return doc.Games, nil

	case FormatYAML:
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("decode yaml catalog: %w", err)
		}
		if len(root.Content) == 0 {
			return nil, nil
		}
		if root.Content[0].Kind == yaml.SequenceNode {
			var list []record
			if err := root.Content[0].Decode(&list); err != nil {
				return nil, fmt.Errorf("decode yaml catalog: %w", err)
			}
			return list, nil
		}
		var doc catalogFile
		if err := root.Content[0].Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode yaml catalog: %w", err)
		}
		return doc.Games, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Encode writes games as a catalog document, including each derived score.
func Encode(w io.Writer, games []model.Game, format Format) error {
	doc := catalogFile{Games: make([]record, len(games))}
	for i, g := range games {
		doc.Games[i] = toRecord(g)
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// WriteFile encodes games to path using the format implied by its extension.
func WriteFile(path string, games []model.Game) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(f, games, format); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
