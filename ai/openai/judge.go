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

// Judge implements ai.Judge using an OpenAI-compatible chat API.
// It asks a small, fast model for a single-word VALID/INVALID verdict.
type Judge struct {
	client llms.Model
	logger *slog.Logger
}

// newJudge is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newJudge(config *ai.Config) (*Judge, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.JudgeModel),
	)
	if err != nil {
		return nil, err
	}

	return &Judge{
		client: client,
		logger: slog.Default().With("component", "openai-judge"),
	}, nil
}

// NewJudge creates a new judge using the provided configuration.
//
// Returns ai.Judge interface to enforce abstraction.
func NewJudge(config *ai.Config) (ai.Judge, error) {
	return newJudge(config)
}

// JudgeQuery asks the model whether query is an information request.
// An unparseable response is returned as an error so the caller's
// rule-based verdict stays authoritative.
func (j *Judge) JudgeQuery(ctx context.Context, query string) (ai.Verdict, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(judgeSystemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(fmt.Sprintf("Classify this query: %q", query)),
			},
		},
	}

	response, err := j.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.1),
		llms.WithMaxTokens(5),
	)
	if err != nil {
		j.logger.Warn("judge call failed", "err", err)
		return 0, err
	}

	if len(response.Choices) < 1 {
		return 0, fmt.Errorf("judge returned no choices")
	}

	verdict, err := parseVerdict(response.Choices[0].Content)
	if err != nil {
		j.logger.Warn("unparseable judge response", "response", response.Choices[0].Content)
		return 0, err
	}

	j.logger.Debug("judge verdict", "query", query, "verdict", verdict == ai.VerdictValid)
	return verdict, nil
}

// parseVerdict extracts VALID or INVALID from a model response.
// "INVALID" contains "VALID" as a substring, so the negative label is
// checked first.
func parseVerdict(response string) (ai.Verdict, error) {
	normalized := strings.ToUpper(strings.TrimSpace(response))
	switch {
	case strings.Contains(normalized, "INVALID"):
		return ai.VerdictInvalid, nil
	case strings.Contains(normalized, "VALID"):
		return ai.VerdictValid, nil
	default:
		return 0, fmt.Errorf("unrecognized verdict %q", response)
	}
}
