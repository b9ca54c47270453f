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


package classify

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"github.com/ripplica/ripplica/core"
)

// Leading tokens that mark a query as a question.
var interrogatives = map[string]bool{
	"what": true, "how": true, "why": true, "when": true, "where": true,
	"who": true, "whom": true, "whose": true, "which": true,
	"is": true, "are": true, "was": true, "were": true,
	"can": true, "could": true, "should": true, "would": true, "will": true,
	"do": true, "does": true, "did": true, "has": true, "have": true,
}

// Verbs that request information rather than action.
var infoVerbs = map[string]bool{
	"explain": true, "define": true, "describe": true, "compare": true,
	"summarize": true, "list": true, "tell": true, "show": true,
	"recommend": true, "suggest": true, "find": true,
}

// Leading tokens that mark a device or assistant command.
var actionCommands = map[string]bool{
	"set": true, "play": true, "open": true, "close": true, "turn": true,
	"call": true, "text": true, "remind": true, "start": true, "stop": true,
	"pause": true, "resume": true, "delete": true, "install": true,
	"uninstall": true, "launch": true, "restart": true, "shutdown": true,
	"mute": true, "unmute": true, "dial": true, "send": true, "schedule": true,
	"book": true, "order": true, "buy": true, "cancel": true,
}

// Rules is the authoritative rule-based classifier. It is stateless,
// deterministic, and never fails: every query gets a verdict.
type Rules struct {
	logger *slog.Logger
}

// NewRules creates a rule-based classifier.
func NewRules() *Rules {
	return &Rules{logger: slog.Default().With("component", "rules-classifier")}
}

var _ Classifier = (*Rules)(nil)

// Classify applies the validity rules in order, then the time-sensitivity
// rules when the query is valid. Ambiguous queries default to valid with
// reduced confidence; rejecting an answerable query costs more than
// running the pipeline on a junk one.
func (r *Rules) Classify(ctx context.Context, query string) core.Classification {
	tokens := tokenize(query)

	if len(tokens) == 0 {
		return core.Classification{
			Valid:      false,
			Confidence: 1.0,
			Reasoning:  "empty or whitespace-only query",
		}
	}

	questionLike := isQuestionLike(query, tokens)

	if actionCommands[tokens[0]] && !questionLike {
		return core.Classification{
			Valid:      false,
			Confidence: 1.0,
			Reasoning:  "action command, not an information request",
		}
	}

	if len(tokens) == 1 && !interrogatives[tokens[0]] && !strings.Contains(query, "?") {
		return core.Classification{
			Valid:      false,
			Confidence: 0.7,
			Reasoning:  "single token without question intent",
		}
	}

	c := core.Classification{Valid: true}
	switch {
	case questionLike:
		c.Confidence = 1.0
		c.Reasoning = "question form or information verb"
	case len(tokens) > 3:
		c.Confidence = 0.6
		c.Reasoning = "multi-word phrase, plausibly an information request"
	default:
		c.Confidence = 0.5
		c.Reasoning = "short phrase, no clear markers; defaulting to valid"
	}

	c.TimeSensitive = isTimeSensitive(query, tokens)
	return c
}

// tokenize lowercases and splits on non-alphanumeric runs.
func tokenize(query string) []string {
	return strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func isQuestionLike(query string, tokens []string) bool {
	if strings.Contains(query, "?") {
		return true
	}
	if interrogatives[tokens[0]] || infoVerbs[tokens[0]] {
		return true
	}
	return false
}
