// Copyright 2025 Ripplica Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/ripplica/ripplica/core"
	"github.com/ripplica/ripplica/storage"
)

// EntryRepository implements storage.EntryRepository backed by BadgerDB.
type EntryRepository struct {
	backend *Backend
	seq     *badger.Sequence
	logger  *slog.Logger

	// addMu serializes AddEntry calls; reads run concurrently against
	// Badger's snapshot isolation without taking it.
	addMu sync.Mutex
}

var _ storage.EntryRepository = (*EntryRepository)(nil)

// NewEntryRepository creates a new entry repository on the given backend.
func NewEntryRepository(backend *Backend) (*EntryRepository, error) {
	seq, err := backend.GetSequence(entryIDSeq)
	if err != nil {
		return nil, err
	}

	return &EntryRepository{
		backend: backend,
		seq:     seq,
		logger:  slog.Default().With("component", "entry-repository"),
	}, nil
}

// AddEntry appends a new cache entry. Entries with ID=0 get a fresh
// sequence ID; CreatedAt is set if zero. Returns the stored entry.
func (r *EntryRepository) AddEntry(ctx context.Context, entry *core.CacheEntry) (*core.CacheEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if err := core.ValidateCacheEntry(entry); err != nil {
		return nil, err
	}

	r.addMu.Lock()
	defer r.addMu.Unlock()

	if entry.Id == 0 {
		next, err := r.seq.Next()
		if err != nil {
			return nil, err
		}
		// Sequence values start at 0; keep stored IDs nonzero.
		entry.Id = core.ID(next + 1)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	data := storage.MarshalCacheEntry(entry)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeEntryKey(entry.Id), data); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("added cache entry", "id", entry.Id, "query", entry.QueryText)
	return entry, nil
}

// GetEntry retrieves a single entry by ID.
func (r *EntryRepository) GetEntry(ctx context.Context, id core.ID) (*core.CacheEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var entry *core.CacheEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeEntryKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			entry, err = storage.UnmarshalCacheEntry(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// AllEntries retrieves every stored entry in ascending ID order.
func (r *EntryRepository) AllEntries(ctx context.Context) ([]*core.CacheEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var entries []*core.CacheEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(entryPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				entry, err := storage.UnmarshalCacheEntry(val)
				if err != nil {
					return err
				}
				entries = append(entries, entry)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// Count returns the number of stored entries.
func (r *EntryRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if r.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(entryPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Clear removes every stored entry. The ID sequence is left alone, so
// entries added after a clear continue with fresh IDs.
func (r *EntryRepository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	r.logger.Info("clearing all cache entries")
	return r.backend.DropPrefix([]byte(entryPrefix))
}

// Close releases the ID sequence. The backend is closed separately by
// its owner.
func (r *EntryRepository) Close() error {
	if r.backend.IsClosed() {
		return nil
	}
	return r.seq.Release()
}
