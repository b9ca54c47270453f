package mock

import (
	"context"
	"strings"

	"github.com/ripplica/ripplica/ai"
)

// MockJudge is a test double for ai.Judge.
type MockJudge struct {
	// JudgeQueryFunc is called by JudgeQuery if set.
	// If nil, uses a simple heuristic default.
	JudgeQueryFunc func(ctx context.Context, query string) (ai.Verdict, error)

	callCount int
}

// NewMockJudge creates a mock judge with default heuristic behavior.
func NewMockJudge() *MockJudge {
	return &MockJudge{}
}

// JudgeQuery returns VerdictValid for anything that looks like a question
// and VerdictInvalid otherwise. Inject JudgeQueryFunc for exact control.
func (m *MockJudge) JudgeQuery(ctx context.Context, query string) (ai.Verdict, error) {
	m.callCount++

	if m.JudgeQueryFunc != nil {
		return m.JudgeQueryFunc(ctx, query)
	}

	lower := strings.ToLower(query)
	if strings.Contains(lower, "?") ||
		strings.HasPrefix(lower, "what") ||
		strings.HasPrefix(lower, "how") ||
		strings.HasPrefix(lower, "why") ||
		strings.HasPrefix(lower, "explain") {
		return ai.VerdictValid, nil
	}
	return ai.VerdictInvalid, nil
}

// CallCount returns the number of times JudgeQuery was called.
func (m *MockJudge) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockJudge) Reset() {
	m.callCount = 0
	m.JudgeQueryFunc = nil
}
