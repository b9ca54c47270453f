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


package cache

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ripplica/ripplica/ai"
	"github.com/ripplica/ripplica/core"
	"github.com/ripplica/ripplica/storage"
)

const (
	// DefaultSemanticWeight is the weight of cosine similarity in the
	// combined score.
	DefaultSemanticWeight = 0.7
	// DefaultLexicalWeight is the weight of token overlap in the
	// combined score.
	DefaultLexicalWeight = 0.3
	// DefaultThreshold is the combined score at or above which a stored
	// entry counts as a hit.
	DefaultThreshold = 0.8

	weightEpsilon = 1e-9
)

// Cache scores stored queries against incoming ones and serves cached
// summaries for close matches. Safe for concurrent use as long as the
// underlying repository and embedder are.
type Cache struct {
	repo     storage.EntryRepository
	embedder ai.Embedder
	logger   *slog.Logger

	semanticWeight float64
	lexicalWeight  float64
	threshold      float64
}

// Option configures a Cache.
type Option func(*Cache) error

// WithWeights sets the semantic and lexical weights of the combined
// score. The weights must each be in [0,1] and sum to 1.
func WithWeights(semantic, lexical float64) Option {
	return func(c *Cache) error {
		if semantic < 0 || semantic > 1 || lexical < 0 || lexical > 1 ||
			math.Abs(semantic+lexical-1) > weightEpsilon {
			return fmt.Errorf("%w: semantic=%v lexical=%v", ErrInvalidWeights, semantic, lexical)
		}
		c.semanticWeight = semantic
		c.lexicalWeight = lexical
		return nil
	}
}

// WithThreshold sets the default hit threshold.
func WithThreshold(threshold float64) Option {
	return func(c *Cache) error {
		if threshold < 0 || threshold > 1 {
			return fmt.Errorf("%w: %v", ErrInvalidThreshold, threshold)
		}
		c.threshold = threshold
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) error {
		c.logger = logger.With("component", "similarity-cache")
		return nil
	}
}

// NewCache creates a similarity cache over the given repository and
// embedder.
func NewCache(repo storage.EntryRepository, embedder ai.Embedder, opts ...Option) (*Cache, error) {
	c := &Cache{
		repo:           repo,
		embedder:       embedder,
		logger:         slog.Default().With("component", "similarity-cache"),
		semanticWeight: DefaultSemanticWeight,
		lexicalWeight:  DefaultLexicalWeight,
		threshold:      DefaultThreshold,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Threshold returns the configured default hit threshold.
func (c *Cache) Threshold() float64 {
	return c.threshold
}

// Add embeds the query and stores it with its summary as a new entry.
// Every call creates a new entry; near-duplicates are not collapsed.
func (c *Cache) Add(ctx context.Context, query, summary string) (*core.CacheEntry, error) {
	vector, err := c.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrEmbeddingUnavailable, err)
	}

	entry := &core.CacheEntry{
		QueryText: query,
		Vector:    vector,
		Summary:   summary,
		CreatedAt: time.Now().UTC(),
	}
	stored, err := c.repo.AddEntry(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrCacheWrite, err)
	}

	c.logger.Debug("cached query", "id", stored.Id, "query", query)
	return stored, nil
}

// FindSimilar scores the query against every stored entry and returns
// the matches whose combined score meets the threshold, ordered by
// descending score with earlier-inserted entries winning ties. A
// negative threshold means the configured default. topK <= 0 returns
// all matches above the threshold.
func (c *Cache) FindSimilar(ctx context.Context, query string, topK int, threshold float64) ([]core.SimilarityMatch, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", core.ErrInvalidInput)
	}
	if threshold < 0 {
		threshold = c.threshold
	}
	if threshold > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidThreshold, threshold)
	}

	entries, err := c.repo.AllEntries(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	vector, err := c.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrEmbeddingUnavailable, err)
	}

	var matches []core.SimilarityMatch
	for _, entry := range entries {
		semantic := cosineSimilarity(vector, entry.Vector)
		lexical := LexicalSimilarity(query, entry.QueryText)
		combined := c.semanticWeight*semantic + c.lexicalWeight*lexical

		if combined >= threshold {
			matches = append(matches, core.SimilarityMatch{
				EntryId:     entry.Id,
				CachedQuery: entry.QueryText,
				Combined:    combined,
				Semantic:    semantic,
				Lexical:     lexical,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Combined != matches[j].Combined {
			return matches[i].Combined > matches[j].Combined
		}
		return matches[i].EntryId < matches[j].EntryId
	})

	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// CheckHit returns the best match at or above the threshold, or nil if
// no stored entry qualifies. A negative threshold means the configured
// default.
func (c *Cache) CheckHit(ctx context.Context, query string, threshold float64) (*core.SimilarityMatch, error) {
	matches, err := c.FindSimilar(ctx, query, 1, threshold)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return &matches[0], nil
}

// Entry returns the stored entry behind a match.
func (c *Cache) Entry(ctx context.Context, id core.ID) (*core.CacheEntry, error) {
	return c.repo.GetEntry(ctx, id)
}

// Stats reports the entry count and the stored query texts in insertion
// order.
func (c *Cache) Stats(ctx context.Context) (*core.CacheStats, error) {
	entries, err := c.repo.AllEntries(ctx)
	if err != nil {
		return nil, err
	}

	stats := &core.CacheStats{
		Count:   len(entries),
		Queries: make([]string, 0, len(entries)),
	}
	for _, entry := range entries {
		stats.Queries = append(stats.Queries, entry.QueryText)
	}
	return stats, nil
}

// Clear removes every cached entry.
func (c *Cache) Clear(ctx context.Context) error {
	return c.repo.Clear(ctx)
}

// cosineSimilarity computes cosine similarity between two vectors,
// clamped to [0,1]. Mismatched dimensions or a zero-magnitude vector
// score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}
