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

	"github.com/ripplica/ripplica/ai"
	"github.com/ripplica/ripplica/core"
)

// Confidence at or above which the wrapped verdict is accepted without
// consulting the judge.
const confidentVerdict = 0.9

// SecondOpinion refines low-confidence verdicts with an LLM judge.
// The wrapped classifier stays authoritative when the judge is
// unreachable or returns garbage; the decorator never fails a run.
type SecondOpinion struct {
	inner  Classifier
	judge  ai.Judge
	logger *slog.Logger
}

// NewSecondOpinion wraps a classifier with an LLM judge.
func NewSecondOpinion(inner Classifier, judge ai.Judge) *SecondOpinion {
	return &SecondOpinion{
		inner:  inner,
		judge:  judge,
		logger: slog.Default().With("component", "second-opinion"),
	}
}

var _ Classifier = (*SecondOpinion)(nil)

// Classify delegates to the wrapped classifier and consults the judge
// only on low-confidence verdicts. A judge verdict replaces the validity
// decision; time sensitivity is always recomputed by rule since the
// judge has no opinion on it.
func (s *SecondOpinion) Classify(ctx context.Context, query string) core.Classification {
	verdict := s.inner.Classify(ctx, query)
	if verdict.Confidence >= confidentVerdict {
		return verdict
	}

	opinion, err := s.judge.JudgeQuery(ctx, query)
	if err != nil {
		s.logger.Warn("judge unavailable, keeping rule verdict",
			"query", query, "error", err, "cause", core.ErrClassificationDegraded)
		return verdict
	}

	refined := core.Classification{
		Valid:      opinion == ai.VerdictValid,
		Confidence: confidentVerdict,
		Reasoning:  verdict.Reasoning + "; refined by judge",
	}
	if refined.Valid {
		refined.TimeSensitive = isTimeSensitive(query, tokenize(query))
	}

	if refined.Valid != verdict.Valid {
		s.logger.Debug("judge overruled rule verdict",
			"query", query, "rules_valid", verdict.Valid, "judge_valid", refined.Valid)
	}
	return refined
}
