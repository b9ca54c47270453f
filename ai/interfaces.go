package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding backend is unavailable; callers
	// must not substitute a zero vector on failure.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates embeddings for multiple texts in a batch.
	// The returned slice matches the order of the input texts.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Verdict is an LLM judge's opinion on whether a query seeks information.
type Verdict int

const (
	// VerdictValid means the query is an information request.
	VerdictValid Verdict = iota + 1
	// VerdictInvalid means the query is an action command or gibberish.
	VerdictInvalid
)

// Judge gives a second opinion on query validity.
// An error (backend down, unparseable response) means no opinion; the
// caller's rule-based verdict stays authoritative.
type Judge interface {
	JudgeQuery(ctx context.Context, query string) (Verdict, error)
}

// Extractor condenses scraped texts into the passages relevant to a query.
type Extractor interface {
	// ExtractFocused returns a single focused text distilled from the
	// source texts. An empty input yields an empty result, not an error.
	ExtractFocused(ctx context.Context, query string, texts []string) (string, error)
}

// Summarizer writes the final answer for a query from focused content.
type Summarizer interface {
	Summarize(ctx context.Context, query, focused string) (string, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. All returned services are safe for concurrent use.
type Provider interface {
	Embedder() Embedder
	Judge() Judge
	Extractor() Extractor
	Summarizer() Summarizer

	// Close releases resources held by the provider and its services.
	Close() error
}
