package storage

import (
	"context"

	"github.com/ripplica/ripplica/core"
)

// EntryRepository provides operations for managing cache entries.
// Implementations must be thread-safe: AddEntry calls are serialized with
// respect to each other, while reads may run concurrently.
type EntryRepository interface {
	// AddEntry appends a new cache entry to storage.
	// For entries with ID=0, generates a new ID from the sequence and
	// sets CreatedAt if not already set. Entries are immutable after
	// insertion. Returns the entry with ID and timestamp populated.
	AddEntry(ctx context.Context, entry *core.CacheEntry) (*core.CacheEntry, error)

	// GetEntry retrieves a single entry by ID.
	// Returns ErrNotFound if the entry doesn't exist.
	GetEntry(ctx context.Context, id core.ID) (*core.CacheEntry, error)

	// AllEntries retrieves every stored entry, ordered by ascending ID
	// (insertion order). The similarity cache scans this for scoring.
	AllEntries(ctx context.Context) ([]*core.CacheEntry, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)

	// Clear removes every stored entry. This is the only deletion
	// operation; individual entries are never removed.
	Clear(ctx context.Context) error

	// Close closes the repository and releases resources.
	Close() error
}
