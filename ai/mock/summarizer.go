package mock

import (
	"context"
	"fmt"
	"strings"
)

// MockExtractor is a test double for ai.Extractor.
type MockExtractor struct {
	// ExtractFocusedFunc is called by ExtractFocused if set.
	ExtractFocusedFunc func(ctx context.Context, query string, texts []string) (string, error)

	callCount int
}

// NewMockExtractor creates a mock extractor that joins its inputs.
func NewMockExtractor() *MockExtractor {
	return &MockExtractor{}
}

// ExtractFocused joins the source texts. Inject ExtractFocusedFunc for
// exact control.
func (m *MockExtractor) ExtractFocused(ctx context.Context, query string, texts []string) (string, error) {
	m.callCount++

	if m.ExtractFocusedFunc != nil {
		return m.ExtractFocusedFunc(ctx, query, texts)
	}

	return strings.Join(texts, "\n"), nil
}

// CallCount returns the number of times ExtractFocused was called.
func (m *MockExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockExtractor) Reset() {
	m.callCount = 0
	m.ExtractFocusedFunc = nil
}

// MockSummarizer is a test double for ai.Summarizer.
type MockSummarizer struct {
	// SummarizeFunc is called by Summarize if set.
	SummarizeFunc func(ctx context.Context, query, focused string) (string, error)

	callCount int
}

// NewMockSummarizer creates a mock summarizer with deterministic output.
func NewMockSummarizer() *MockSummarizer {
	return &MockSummarizer{}
}

// Summarize produces a deterministic summary mentioning the query.
func (m *MockSummarizer) Summarize(ctx context.Context, query, focused string) (string, error) {
	m.callCount++

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, query, focused)
	}

	return fmt.Sprintf("summary for %q (%d chars of focused content)", query, len(focused)), nil
}

// CallCount returns the number of times Summarize was called.
func (m *MockSummarizer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockSummarizer) Reset() {
	m.callCount = 0
	m.SummarizeFunc = nil
}
