package store

import (
	"context"

	"goaltrack/internal/model"
)

// Store defines the persistence interface for the goal and daily task
// collections. Implementations work in whole snapshots: Save replaces
// the previous snapshot atomically, and Load returns the last saved
// one in full.
type Store interface {
	// Load reads the current snapshot. A missing snapshot yields empty
	// collections, not an error; a snapshot that exists but cannot be
	// parsed is reported as *CorruptDataError.
	Load(ctx context.Context) ([]model.Goal, []model.DailyTask, error)

	// Save atomically replaces the snapshot with the given collections.
	// A crash mid-save must leave either the old or the new snapshot,
	// never a mix.
	Save(ctx context.Context, goals []model.Goal, tasks []model.DailyTask) error

	// Close releases any underlying resources.
	Close() error
}
