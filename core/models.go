package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for cache entries.
// It is assigned from a database sequence at insertion time.
type ID uint64

// RunID identifies a single pipeline run. Observers subscribe to step
// events using this identifier.
type RunID uint64

// IDFromContent generates a deterministic 64-bit value from text using
// BLAKE2b hashing. Identical content always produces the same value.
func IDFromContent(text string) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}

// NewRunID derives a run identifier from the query text and its arrival
// time. Two runs for the same query at different instants get distinct IDs.
func NewRunID(query string, arrival time.Time) RunID {
	return RunID(IDFromContent(query + "@" + arrival.Format(time.RFC3339Nano)))
}

// CacheEntry is an immutable cached answer. Entries are created when a
// fresh pipeline run completes for a valid, time-insensitive query and are
// never updated afterwards; they are removed only by a bulk clear.
type CacheEntry struct {
	Id        ID
	QueryText string
	Vector    []float32 // Embedding of QueryText, derived once at insertion
	Summary   string
	CreatedAt time.Time
}

// Classification is the verdict of the query classifier.
type Classification struct {
	Valid         bool
	TimeSensitive bool
	Confidence    float64 // In [0,1]; clear rule verdicts carry 1.0
	Reasoning     string  // Diagnostic only, never used for control flow
}

// SimilarityMatch is a scored cache candidate for a query.
// Combined = w_sem*Semantic + w_lex*Lexical (0.7/0.3 by default); both
// components are normalized to [0,1].
type SimilarityMatch struct {
	EntryId     ID
	CachedQuery string
	Combined    float64
	Semantic    float64
	Lexical     float64
}

// CacheDecision records how the orchestrator resolved the cache stage.
type CacheDecision int

const (
	// CacheSkipped means the cache was neither read nor written
	// (time-sensitive query, or the run never reached the cache stage).
	CacheSkipped CacheDecision = iota
	// CacheHit means a stored entry cleared the similarity threshold.
	CacheHit
	// CacheMiss means no stored entry cleared the threshold.
	CacheMiss
)

// String returns the decision name used in logs and step events.
func (d CacheDecision) String() string {
	switch d {
	case CacheHit:
		return "hit"
	case CacheMiss:
		return "miss"
	default:
		return "skipped"
	}
}

// Response is the completed result of one pipeline run.
// Rejected queries and stage failures surface here rather than as
// transport errors: IsValid=false means the classifier rejected the
// query, Error carries a stage failure description.
type Response struct {
	IsValid         bool    `json:"is_valid"`
	IsTimeSensitive bool    `json:"is_time_sensitive"`
	FromCache       bool    `json:"from_cache"`
	CachedQuery     string  `json:"cached_query,omitempty"`
	CacheSimilarity float64 `json:"cache_similarity,omitempty"`
	Summary         string  `json:"summary,omitempty"`
	Error           string  `json:"error,omitempty"`
	URLsFound       int     `json:"urls_found"`
	ContentScraped  int     `json:"content_scraped"`
}

// CacheStats is the read-only introspection surface of the cache.
type CacheStats struct {
	Count   int
	Queries []string
}
