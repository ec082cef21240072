package repository

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/okian/yogicgames/internal/domain/model"
	"github.com/okian/yogicgames/pkg/metrics"
)

// Snapshot is one immutable version of the catalog.
type Snapshot struct {
	Version  uint64
	LoadedAt time.Time
	Source   string

	games  []model.Game
	byID   map[string]int
	bySlug map[string]int
}

// Len returns the number of games.
func (s *Snapshot) Len() int { return len(s.games) }

// Games returns a copy of the games in source order.
func (s *Snapshot) Games() []model.Game {
	out := make([]model.Game, len(s.games))
	copy(out, s.games)
	return out
}

// ByID looks up a game by id.
func (s *Snapshot) ByID(id string) (model.Game, bool) {
	i, ok := s.byID[id]
	if !ok {
		return model.Game{}, false
	}
	return s.games[i], true
}

// BySlug looks up a game by title slug.
func (s *Snapshot) BySlug(slug string) (model.Game, bool) {
	i, ok := s.bySlug[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return model.Game{}, false
	}
	return s.games[i], true
}

// SnapshotStore implements Store with an atomically swapped snapshot pointer.
type SnapshotStore struct {
	snapshot atomic.Pointer[Snapshot]
	version  atomic.Uint64
	now      func() time.Time
}

// NewSnapshotStore creates an empty store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{now: time.Now}
}

// Publish builds a snapshot from games and swaps it in. The previous
// snapshot stays valid for readers still holding it.
func (s *SnapshotStore) Publish(ctx context.Context, games []model.Game, source string) (*Snapshot, error) {
	snap := &Snapshot{
		Source: source,
		games:  make([]model.Game, len(games)),
		byID:   make(map[string]int, len(games)),
		bySlug: make(map[string]int, len(games)),
	}
	copy(snap.games, games)

	for i, g := range snap.games {
		if j, dup := snap.byID[g.ID]; dup {
			metrics.RecordErrorByComponent("repository", "duplicate")
			return nil, fmt.Errorf("%w: id %q at %d and %d", ErrDuplicate, g.ID, j, i)
		}
		snap.byID[g.ID] = i
		slug := g.Slug()
		if j, dup := snap.bySlug[slug]; dup {
			metrics.RecordErrorByComponent("repository", "duplicate")
			return nil, fmt.Errorf("%w: slug %q at %d and %d", ErrDuplicate, slug, j, i)
		}
		snap.bySlug[slug] = i
	}

	snap.Version = s.version.Add(1)
	snap.LoadedAt = s.now()
	s.snapshot.Store(snap)

	metrics.RecordSnapshotPublished(snap.Version, snap.LoadedAt)
	metrics.UpdateCatalogGames(snap.Len())
	return snap, nil
}

// Current returns the published snapshot.
func (s *SnapshotStore) Current(ctx context.Context) (*Snapshot, error) {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil, ErrEmptySnapshot
	}
	return snap, nil
}

// ByID returns the game with id from the current snapshot.
func (s *SnapshotStore) ByID(ctx context.Context, id string) (model.Game, error) {
	snap, err := s.Current(ctx)
	if err != nil {
		return model.Game{}, err
	}
	g, ok := snap.ByID(id)
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.Game{}, fmt.Errorf("%w: id %q", ErrNotFound, id)
	}
	return g, nil
}

// BySlug returns the game with slug from the current snapshot.
func (s *SnapshotStore) BySlug(ctx context.Context, slug string) (model.Game, error) {
	snap, err := s.Current(ctx)
	if err != nil {
		return model.Game{}, err
	}
	g, ok := snap.BySlug(slug)
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.Game{}, fmt.Errorf("%w: slug %q", ErrNotFound, slug)
	}
	return g, nil
}

// Count returns the number of games in the current snapshot, or 0.
func (s *SnapshotStore) Count(ctx context.Context) int {
	if snap := s.snapshot.Load(); snap != nil {
		return snap.Len()
	}
	return 0
}
