// Package repository holds the published read side of the game.
package repository

import (
	"context"

	"github.com/okian/benchcoach/internal/domain/types"
)

// Snapshot is one immutable published state. Game, Stats and Events always
// describe the same version.
type Snapshot struct {
	Version uint64
	Game    types.GameView
	Stats   types.StatsView
	Events  []types.EventView
}

// Store publishes snapshots from the writer and serves them to readers.
type Store interface {
	// Publish replaces the current snapshot. Older versions are rejected with
	// ErrStaleSnapshot.
	Publish(ctx context.Context, s *Snapshot) error

	// Current returns the latest snapshot, or ErrNoSnapshot before the first
	// publish.
	Current(ctx context.Context) (*Snapshot, error)

	// Version returns the latest published version, 0 if none.
	Version(ctx context.Context) uint64
}
