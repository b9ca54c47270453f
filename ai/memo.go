package ai

import (
	"context"
	"sync"
)

// MemoEmbedder decorates an Embedder with an exact-text memo table.
// Byte-identical input always yields the same vector within one process
// lifetime, and repeated embeddings of the same text cost one backend
// call. The memo grows without bound; eviction is an external concern.
//
// Reads and writes are guarded so concurrent pipeline runs can share one
// instance.
type MemoEmbedder struct {
	backend Embedder

	mu   sync.RWMutex
	memo map[string][]float32
}

var _ Embedder = (*MemoEmbedder)(nil)

// NewMemoEmbedder wraps backend with memoization.
func NewMemoEmbedder(backend Embedder) *MemoEmbedder {
	return &MemoEmbedder{
		backend: backend,
		memo:    make(map[string][]float32),
	}
}

// EmbedText returns the memoized vector for text, computing and storing it
// on first use. A backend failure is returned as-is and nothing is stored,
// so a later retry can still succeed.
func (m *MemoEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.mu.RLock()
	vector, ok := m.memo[text]
	m.mu.RUnlock()
	if ok {
		return vector, nil
	}

	vector, err := m.backend.EmbedText(ctx, text)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	// Another run may have stored the same text meanwhile; keep the first
	// stored vector so all callers observe one value per text.
	if existing, ok := m.memo[text]; ok {
		vector = existing
	} else {
		m.memo[text] = vector
	}
	m.mu.Unlock()

	return vector, nil
}

// EmbedTexts embeds a batch, serving memoized texts locally and batching
// only the misses to the backend.
func (m *MemoEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	results := make([][]float32, len(texts))
	var missing []string
	var missingIdx []int

	m.mu.RLock()
	for i, text := range texts {
		if vector, ok := m.memo[text]; ok {
			results[i] = vector
		} else {
			missing = append(missing, text)
			missingIdx = append(missingIdx, i)
		}
	}
	m.mu.RUnlock()

	if len(missing) == 0 {
		return results, nil
	}

	vectors, err := m.backend.EmbedTexts(ctx, missing)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	for i, vector := range vectors {
		text := missing[i]
		if existing, ok := m.memo[text]; ok {
			vector = existing
		} else {
			m.memo[text] = vector
		}
		results[missingIdx[i]] = vector
	}
	m.mu.Unlock()

	return results, nil
}

// MemoSize returns the number of memoized texts.
func (m *MemoEmbedder) MemoSize() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.memo)
}
