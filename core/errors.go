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


package core

import "errors"

// Error taxonomy for the decision core.
var (
	// ErrInvalidQuery indicates the classifier rejected the input.
	// This is a user-facing verdict, not an internal failure.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrInvalidInput indicates malformed (non-text) input to a scorer.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmbeddingUnavailable indicates the embedding backend is down.
	// Callers must not substitute a zero vector; a fresh pipeline run may
	// still proceed with the cache forced to miss.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")

	// ErrStageFailure indicates an irrecoverable failure in a fresh-run
	// stage (search, scrape, extract, summarize). Aborts the run.
	ErrStageFailure = errors.New("pipeline stage failed")

	// ErrCacheWrite indicates a failed cache store. Non-fatal: logged,
	// the freshly computed summary is still returned.
	ErrCacheWrite = errors.New("cache write failed")

	// ErrClassificationDegraded indicates the LLM second opinion was
	// unavailable and the rule-based verdict was used. Logged only.
	ErrClassificationDegraded = errors.New("classification degraded")

	// ErrEmptyQuery indicates an empty or whitespace-only query.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrEmptySummary indicates an attempt to cache an empty summary.
	ErrEmptySummary = errors.New("summary cannot be empty")

	// ErrInvalidEntry indicates a CacheEntry failed validation.
	ErrInvalidEntry = errors.New("invalid cache entry")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")
)
