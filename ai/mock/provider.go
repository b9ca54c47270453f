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


package mock

import "github.com/ripplica/ripplica/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock service instances.
type MockProvider struct {
	embedder   *MockEmbedder
	judge      *MockJudge
	extractor  *MockExtractor
	summarizer *MockSummarizer
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider for consistency with production constructors. Use
// the GetMock* accessors for concrete types in test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		embedder:   NewMockEmbedder(),
		judge:      NewMockJudge(),
		extractor:  NewMockExtractor(),
		summarizer: NewMockSummarizer(),
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Judge returns the mock judge.
func (p *MockProvider) Judge() ai.Judge {
	return p.judge
}

// Extractor returns the mock extractor.
func (p *MockProvider) Extractor() ai.Extractor {
	return p.extractor
}

// Summarizer returns the mock summarizer.
func (p *MockProvider) Summarizer() ai.Summarizer {
	return p.summarizer
}

// Close is a no-op for the mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the underlying mock embedder for assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockJudge returns the underlying mock judge for assertions.
func (p *MockProvider) GetMockJudge() *MockJudge {
	return p.judge
}

// GetMockExtractor returns the underlying mock extractor for assertions.
func (p *MockProvider) GetMockExtractor() *MockExtractor {
	return p.extractor
}

// GetMockSummarizer returns the underlying mock summarizer for assertions.
func (p *MockProvider) GetMockSummarizer() *MockSummarizer {
	return p.summarizer
}
