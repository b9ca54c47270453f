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

// Summarizer implements ai.Summarizer using an OpenAI-compatible chat API.
type Summarizer struct {
	client llms.Model
	logger *slog.Logger
}

// newSummarizer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newSummarizer(config *ai.Config) (*Summarizer, error) {
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

	return &Summarizer{
		client: client,
		logger: slog.Default().With("component", "openai-summarizer"),
	}, nil
}

// NewSummarizer creates a new summarizer using the provided configuration.
//
// Returns ai.Summarizer interface to enforce abstraction.
func NewSummarizer(config *ai.Config) (ai.Summarizer, error) {
	return newSummarizer(config)
}

// Summarize writes a Markdown answer to query from the focused content.
func (s *Summarizer) Summarize(ctx context.Context, query, focused string) (string, error) {
	prompt := fmt.Sprintf(
		"Question: %s\n\n"+
			"Carefully read the following focused content extracted from multiple sources. "+
			"Write a comprehensive, detailed, and well-structured answer to the user's question. "+
			"If relevant, include main debates, viewpoints, context, definitions, and a high-level synthesis.\n"+
			"CONTENT:\n%s\n\n===\n\nANSWER (in Markdown format):\n",
		query, focused)

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(summarySystemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := s.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.3),
		llms.WithMaxTokens(4096),
	)
	if err != nil {
		s.logger.Error("failed to generate summary", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		return "", fmt.Errorf("summarizer returned no choices")
	}

	summary := strings.TrimSpace(response.Choices[0].Content)
	s.logger.Debug("generated summary", "query", query, "length", len(summary))
	return summary, nil
}
