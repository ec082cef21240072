// Package repository holds the published catalog. Each publish swaps in a
// new immutable snapshot; readers always see one complete snapshot.
package repository

import (
	"context"

	"github.com/okian/yogicgames/internal/domain/model"
)

// Store provides read access to the current catalog and atomic replacement.
type Store interface {
	// Publish indexes games and makes them the current snapshot.
	Publish(ctx context.Context, games []model.Game, source string) (*Snapshot, error)

	// Current returns the current snapshot, or ErrEmptySnapshot before the
	// first publish.
	Current(ctx context.Context) (*Snapshot, error)

	// ByID returns the game with id. Returns ErrNotFound if unknown.
	ByID(ctx context.Context, id string) (model.Game, error)

	// BySlug returns the game whose title slug is slug. Returns ErrNotFound if unknown.
	BySlug(ctx context.Context, slug string) (model.Game, error)

	// Count returns the number of games in the current snapshot.
	Count(ctx context.Context) int
}
