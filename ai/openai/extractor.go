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


package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ripplica/ripplica/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	// maxSourceChars bounds how much of one scraped document is sent to
	// the model per extraction call.
	maxSourceChars = 4000

	// truncatedFallbackChars is how much of a source survives when the
	// model-based extraction fails and the raw text is used instead.
	truncatedFallbackChars = 2000

	// minSourceChars filters out scrape results too short to be useful.
	minSourceChars = 100
)

// Extractor implements ai.Extractor using an OpenAI-compatible chat API.
// When the model is unavailable it falls back to the truncated source
// text, so a flaky chat host degrades answer quality instead of killing
// the run.
type Extractor struct {
	client llms.Model
	logger *slog.Logger
}

// newExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newExtractor(config *ai.Config) (*Extractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.SummaryModel),
	)
	if err != nil {
		return nil, err
	}

	return &Extractor{
		client: client,
		logger: slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewExtractor creates a new extractor using the provided configuration.
//
// Returns ai.Extractor interface to enforce abstraction.
func NewExtractor(config *ai.Config) (ai.Extractor, error) {
	return newExtractor(config)
}

// ExtractFocused distills the source texts down to the passages relevant
// to query. Sources are processed independently; a failed extraction for
// one source falls back to its truncated original rather than failing the
// whole call.
func (e *Extractor) ExtractFocused(ctx context.Context, query string, texts []string) (string, error) {
	var focused []string

	for i, text := range texts {
		if len(strings.TrimSpace(text)) < minSourceChars {
			continue
		}

		passage, err := e.extractOne(ctx, query, text)
		if err != nil {
			e.logger.Warn("model extraction failed, using truncated source",
				"source", i+1, "err", err)
			passage = truncate(text, truncatedFallbackChars)
		}
		if strings.TrimSpace(passage) != "" {
			focused = append(focused, passage)
		}
	}

	return strings.Join(focused, "\n\n"), nil
}

func (e *Extractor) extractOne(ctx context.Context, query, text string) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(extractSystemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(fmt.Sprintf(
					"QUESTION:\n%s\n\nDOCUMENT:\n%s\n\nReturn only key passages that directly answer the question. Keep the original wording but remove irrelevant content.",
					query, truncate(text, maxSourceChars))),
			},
		},
	}

	response, err := e.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.0),
		llms.WithMaxTokens(2048),
	)
	if err != nil {
		return "", err
	}

	if len(response.Choices) < 1 {
		return "", fmt.Errorf("extractor returned no choices")
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
