package storage

import (
	"testing"
	"time"

	"github.com/ripplica/ripplica/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheEntryRoundTrip(t *testing.T) {
	entry := &core.CacheEntry{
		Id:        42,
		QueryText: "what is machine learning?",
		Vector:    []float32{0.1, -0.5, 0.9, 0.0},
		Summary:   "ML is a subset of AI that learns patterns from data.",
		CreatedAt: time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
	}

	data := MarshalCacheEntry(entry)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalCacheEntry(data)
	require.NoError(t, err)
	assert.Equal(t, entry.Id, decoded.Id)
	assert.Equal(t, entry.QueryText, decoded.QueryText)
	assert.Equal(t, entry.Vector, decoded.Vector)
	assert.Equal(t, entry.Summary, decoded.Summary)
	assert.True(t, entry.CreatedAt.Equal(decoded.CreatedAt))
}

func TestCacheEntryEmptyVector(t *testing.T) {
	entry := &core.CacheEntry{
		Id:        1,
		QueryText: "q",
		Summary:   "s",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	decoded, err := UnmarshalCacheEntry(MarshalCacheEntry(entry))
	require.NoError(t, err)
	assert.Empty(t, decoded.Vector)
	assert.Equal(t, entry.QueryText, decoded.QueryText)
}

func TestUnmarshalCacheEntryTruncatedData(t *testing.T) {
	entry := &core.CacheEntry{
		Id:        7,
		QueryText: "what is the capital of France?",
		Vector:    []float32{0.3, 0.7},
		Summary:   "Paris.",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	data := MarshalCacheEntry(entry)
	_, err := UnmarshalCacheEntry(data[:len(data)/2])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestIDRoundTrip(t *testing.T) {
	for _, id := range []core.ID{0, 1, 255, 1 << 20, 1<<63 - 1} {
		decoded, err := UnmarshalID(MarshalID(id))
		require.NoError(t, err)
		assert.Equal(t, id, decoded)
	}
}
