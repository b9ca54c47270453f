package badger

import (
	"context"
	"testing"
	"time"

	"github.com/ripplica/ripplica/core"
	"github.com/ripplica/ripplica/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *EntryRepository {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func entry(query, summary string) *core.CacheEntry {
	return &core.CacheEntry{
		QueryText: query,
		Vector:    []float32{0.5, 0.5, 0.1},
		Summary:   summary,
	}
}

func TestAddEntryAssignsIDAndTimestamp(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.AddEntry(ctx, entry("what is machine learning?", "ML is a subset of AI."))
	require.NoError(t, err)
	assert.NotZero(t, added.Id)
	assert.False(t, added.CreatedAt.IsZero())
	assert.WithinDuration(t, time.Now(), added.CreatedAt, time.Minute)
}

func TestAddEntryNoImplicitDedup(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.AddEntry(ctx, entry("same query", "same summary"))
	require.NoError(t, err)
	second, err := repo.AddEntry(ctx, entry("same query", "same summary"))
	require.NoError(t, err)

	assert.NotEqual(t, first.Id, second.Id, "adding the same query twice must create two entries")

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestAddEntryRejectsInvalid(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddEntry(ctx, &core.CacheEntry{QueryText: "", Summary: "s"})
	assert.ErrorIs(t, err, core.ErrEmptyQuery)

	_, err = repo.AddEntry(ctx, &core.CacheEntry{QueryText: "q", Summary: ""})
	assert.ErrorIs(t, err, core.ErrEmptySummary)
}

func TestGetEntry(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	added, err := repo.AddEntry(ctx, entry("what is the capital of France?", "Paris."))
	require.NoError(t, err)

	got, err := repo.GetEntry(ctx, added.Id)
	require.NoError(t, err)
	assert.Equal(t, added.Id, got.Id)
	assert.Equal(t, "what is the capital of France?", got.QueryText)
	assert.Equal(t, "Paris.", got.Summary)
	assert.Equal(t, []float32{0.5, 0.5, 0.1}, got.Vector)
}

func TestGetEntryNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetEntry(context.Background(), 12345)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAllEntriesInsertionOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	queries := []string{"first query", "second query", "third query"}
	for _, q := range queries {
		_, err := repo.AddEntry(ctx, entry(q, "summary for "+q))
		require.NoError(t, err)
	}

	entries, err := repo.AllEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	for i, e := range entries {
		assert.Equal(t, queries[i], e.QueryText)
		if i > 0 {
			assert.Greater(t, e.Id, entries[i-1].Id, "AllEntries must return ascending IDs")
		}
	}
}

func TestAllEntriesEmpty(t *testing.T) {
	repo := newTestRepo(t)

	entries, err := repo.AllEntries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClear(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := repo.AddEntry(ctx, entry("query", "summary"))
		require.NoError(t, err)
	}

	require.NoError(t, repo.Clear(ctx))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	// Entries added after a clear still get fresh IDs.
	added, err := repo.AddEntry(ctx, entry("after clear", "summary"))
	require.NoError(t, err)
	assert.NotZero(t, added.Id)
}

func TestCancelledContext(t *testing.T) {
	repo := newTestRepo(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.AddEntry(ctx, entry("q", "s"))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = repo.AllEntries(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
