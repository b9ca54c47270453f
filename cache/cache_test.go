package cache

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/ripplica/ripplica/ai/mock"
	"github.com/ripplica/ripplica/core"
	badgerstore "github.com/ripplica/ripplica/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// vectorFor maps queries to fixed unit vectors so tests control the
// semantic component exactly. cos(a,b) between the two machine-learning
// phrasings is 0.95; the codeforces pair scores 0.9; unrelated queries
// are orthogonal.
func vectorFor(text string) []float32 {
	angled := func(cos float64) []float32 {
		return []float32{float32(cos), float32(math.Sqrt(1 - cos*cos)), 0}
	}
	switch text {
	case "what is machine learning?":
		return []float32{1, 0, 0}
	case "explain machine learning":
		return angled(0.95)
	case "how to solve codeforces problem 158B?":
		return []float32{0, 1, 0}
	case "how do I solve codeforces problem 158B?":
		return []float32{0, float32(0.9), float32(math.Sqrt(1 - 0.81))}
	default:
		return []float32{0, 0, 1}
	}
}

func newTestCache(t *testing.T, opts ...Option) (*Cache, *mock.MockEmbedder) {
	t.Helper()

	repo, backend, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return vectorFor(text), nil
	}

	c, err := NewCache(repo, embedder, opts...)
	require.NoError(t, err)
	return c, embedder
}

func TestNewCacheDefaults(t *testing.T) {
	c, _ := newTestCache(t)
	assert.Equal(t, DefaultThreshold, c.Threshold())
}

func TestNewCacheRejectsBadWeights(t *testing.T) {
	repo, backend, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()
	defer repo.Close()

	_, err = NewCache(repo, mock.NewMockEmbedder(), WithWeights(0.7, 0.7))
	assert.ErrorIs(t, err, ErrInvalidWeights)

	_, err = NewCache(repo, mock.NewMockEmbedder(), WithWeights(-0.2, 1.2))
	assert.ErrorIs(t, err, ErrInvalidWeights)

	_, err = NewCache(repo, mock.NewMockEmbedder(), WithThreshold(1.5))
	assert.ErrorIs(t, err, ErrInvalidThreshold)
}

func TestAddAndExactMatch(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, err := c.Add(ctx, "what is machine learning?", "ML is a subset of AI.")
	require.NoError(t, err)

	// Identical query: semantic and lexical both 1.0, so the combined
	// score is 1.0 regardless of weights and clears any threshold.
	match, err := c.CheckHit(ctx, "what is machine learning?", 0.99)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.InDelta(t, 1.0, match.Combined, 1e-9)
	assert.Equal(t, "what is machine learning?", match.CachedQuery)
}

func TestParaphraseHit(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, err := c.Add(ctx, "what is machine learning?", "ML is a subset of AI.")
	require.NoError(t, err)

	// semantic 0.95, lexical (0.5+2/3)/2 = 0.5833: combined ~0.84.
	match, err := c.CheckHit(ctx, "explain machine learning", 0.7)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Greater(t, match.Combined, 0.7)
	assert.InDelta(t, 0.95, match.Semantic, 1e-6)
}

func TestNearDuplicateHit(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, err := c.Add(ctx, "how to solve codeforces problem 158B?", "Sort taxi groups greedily.")
	require.NoError(t, err)

	match, err := c.CheckHit(ctx, "how do I solve codeforces problem 158B?", 0.8)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.GreaterOrEqual(t, match.Combined, 0.8)
}

func TestUnrelatedQueryMiss(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, err := c.Add(ctx, "what is machine learning?", "ML is a subset of AI.")
	require.NoError(t, err)

	match, err := c.CheckHit(ctx, "best pizza in Rome", -1)
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestFindSimilarEmptyCache(t *testing.T) {
	c, _ := newTestCache(t)

	matches, err := c.FindSimilar(context.Background(), "anything", 5, -1)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFindSimilarOrderingAndTopK(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, err := c.Add(ctx, "explain machine learning", "summary one")
	require.NoError(t, err)
	_, err = c.Add(ctx, "what is machine learning?", "summary two")
	require.NoError(t, err)

	matches, err := c.FindSimilar(ctx, "what is machine learning?", 0, 0.5)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "what is machine learning?", matches[0].CachedQuery)
	assert.GreaterOrEqual(t, matches[0].Combined, matches[1].Combined)

	top, err := c.FindSimilar(ctx, "what is machine learning?", 1, 0.5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, matches[0].EntryId, top[0].EntryId)
}

func TestFindSimilarTieBreaksOnInsertionOrder(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	// Two identical stored queries score identically against any probe;
	// the earlier-inserted entry must come first.
	first, err := c.Add(ctx, "what is machine learning?", "older summary")
	require.NoError(t, err)
	second, err := c.Add(ctx, "what is machine learning?", "newer summary")
	require.NoError(t, err)
	require.Less(t, first.Id, second.Id)

	matches, err := c.FindSimilar(ctx, "what is machine learning?", 0, 0.9)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, first.Id, matches[0].EntryId)
	assert.Equal(t, second.Id, matches[1].EntryId)
}

func TestEmbedderFailureSurfaces(t *testing.T) {
	c, embedder := newTestCache(t)
	ctx := context.Background()

	_, err := c.Add(ctx, "what is machine learning?", "summary")
	require.NoError(t, err)

	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("backend down")
	}

	_, err = c.Add(ctx, "another query", "summary")
	assert.ErrorIs(t, err, core.ErrEmbeddingUnavailable)

	_, err = c.FindSimilar(ctx, "what is machine learning?", 1, -1)
	assert.ErrorIs(t, err, core.ErrEmbeddingUnavailable)
}

func TestEmbedderNotCalledOnEmptyCache(t *testing.T) {
	c, embedder := newTestCache(t)

	_, err := c.FindSimilar(context.Background(), "anything", 1, -1)
	require.NoError(t, err)
	assert.Zero(t, embedder.CallCount())
}

func TestStatsAndClear(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	queries := []string{"first query", "second query", "third query"}
	for _, q := range queries {
		_, err := c.Add(ctx, q, "summary for "+q)
		require.NoError(t, err)
	}

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, queries, stats.Queries)

	require.NoError(t, c.Clear(ctx))

	stats, err = c.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Count)
	assert.Empty(t, stats.Queries)
}

func TestCosineSimilarity(t *testing.T) {
	t.Run("identical vectors", func(t *testing.T) {
		v := []float32{0.5, 0.5, 0.1}
		assert.InDelta(t, 1.0, cosineSimilarity(v, v), 1e-6)
	})

	t.Run("orthogonal vectors", func(t *testing.T) {
		assert.Zero(t, cosineSimilarity([]float32{1, 0}, []float32{0, 1}))
	})

	t.Run("opposite vectors clamp to zero", func(t *testing.T) {
		assert.Zero(t, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}))
	})

	t.Run("dimension mismatch scores zero", func(t *testing.T) {
		assert.Zero(t, cosineSimilarity([]float32{1, 0}, []float32{1, 0, 0}))
	})

	t.Run("zero vector scores zero", func(t *testing.T) {
		assert.Zero(t, cosineSimilarity([]float32{0, 0}, []float32{1, 0}))
	})
}

func TestCombinedScoreMonotonicity(t *testing.T) {
	c, _ := newTestCache(t, WithWeights(0.7, 0.3))
	ctx := context.Background()

	_, err := c.Add(ctx, "what is machine learning?", "summary")
	require.NoError(t, err)

	// The paraphrase shares the semantic neighborhood and two content
	// tokens; an unrelated query shares neither. Its combined score must
	// be strictly lower.
	close, err := c.FindSimilar(ctx, "explain machine learning", 1, 0)
	require.NoError(t, err)
	require.Len(t, close, 1)

	far, err := c.FindSimilar(ctx, "best pizza in Rome", 1, 0)
	require.NoError(t, err)
	require.Len(t, far, 1)

	assert.Greater(t, close[0].Combined, far[0].Combined)
}
