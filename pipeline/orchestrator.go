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


package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/ripplica/ripplica/ai"
	"github.com/ripplica/ripplica/cache"
	"github.com/ripplica/ripplica/classify"
	"github.com/ripplica/ripplica/core"
)

const (
	defaultMaxResults     = 5
	defaultSearchAttempts = 2
	defaultSearchBackoff  = 500 * time.Millisecond
)

// Orchestrator runs a query through validation, cache lookup, and the
// fresh search-scrape-summarize path, publishing a step event as each
// stage starts.
type Orchestrator struct {
	classifier classify.Classifier
	cache      *cache.Cache
	searcher   Searcher
	scraper    Scraper
	extractor  ai.Extractor
	summarizer ai.Summarizer
	registry   *Registry
	pool       *ants.Pool
	logger     *slog.Logger

	maxResults    int
	scrapeTimeout time.Duration
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithMaxResults caps the number of search results carried into the
// scrape stage. Default is 5.
func WithMaxResults(n int) Option {
	return func(o *Orchestrator) error {
		if n < 1 {
			n = 1
		}
		o.maxResults = n
		return nil
	}
}

// WithScrapeTimeout bounds a single page fetch.
func WithScrapeTimeout(d time.Duration) Option {
	return func(o *Orchestrator) error {
		if d > 0 {
			o.scrapeTimeout = d
		}
		return nil
	}
}

// WithPoolSize sets the scrape worker pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(o *Orchestrator) error {
		if size < 1 {
			size = 1
		}
		if o.pool != nil {
			o.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		o.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger.With("component", "orchestrator")
		return nil
	}
}

// NewOrchestrator wires the pipeline stages together. The registry is
// created internally; observers reach it through Events().
func NewOrchestrator(
	classifier classify.Classifier,
	similarityCache *cache.Cache,
	searcher Searcher,
	scraper Scraper,
	extractor ai.Extractor,
	summarizer ai.Summarizer,
	opts ...Option,
) (*Orchestrator, error) {
	if classifier == nil {
		return nil, ErrClassifierRequired
	}
	if similarityCache == nil {
		return nil, ErrCacheRequired
	}
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if scraper == nil {
		return nil, ErrScraperRequired
	}
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	if summarizer == nil {
		return nil, ErrSummarizerRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		classifier:    classifier,
		cache:         similarityCache,
		searcher:      searcher,
		scraper:       scraper,
		extractor:     extractor,
		summarizer:    summarizer,
		registry:      NewRegistry(),
		pool:          pool,
		logger:        slog.Default().With("component", "orchestrator"),
		maxResults:    defaultMaxResults,
		scrapeTimeout: defaultScrapeTimeout,
	}

	for _, opt := range opts {
		if optErr := opt(o); optErr != nil {
			o.Release()
			return nil, optErr
		}
	}

	return o, nil
}

// Events returns the observer registry for subscribing to run progress.
func (o *Orchestrator) Events() *Registry {
	return o.registry
}

// NewRun allocates a run identifier for a query. Callers that want the
// full event stream subscribe with it before calling Run.
func (o *Orchestrator) NewRun(query string) core.RunID {
	return core.NewRunID(query, time.Now().UTC())
}

// Answer processes a query end to end under a fresh run ID.
func (o *Orchestrator) Answer(ctx context.Context, query string) (*core.Response, error) {
	return o.Run(ctx, o.NewRun(query), query)
}

// Run processes a query under the given run ID.
//
// Rejected queries and stage failures come back inside the Response,
// not as an error: IsValid=false means the classifier turned the query
// away, a non-empty Error field means a pipeline stage failed. The
// returned error is reserved for context cancellation.
func (o *Orchestrator) Run(ctx context.Context, runID core.RunID, query string) (*core.Response, error) {
	start := time.Now()
	log := o.logger.With("run_id", runID)

	o.publish(runID, StepValidating, "")
	classification := o.classifier.Classify(ctx, query)
	if !classification.Valid {
		log.Info("query rejected", "query", query, "reasoning", classification.Reasoning)
		o.publish(runID, StepInvalid, classification.Reasoning)
		return &core.Response{IsValid: false}, nil
	}

	if err := ctx.Err(); err != nil {
		o.publish(runID, StepFailed, "cancelled")
		return nil, err
	}

	decision := core.CacheSkipped
	if !classification.TimeSensitive {
		o.publish(runID, StepSimilarity, "")
		match, decided := o.checkCache(ctx, log, query)
		decision = decided
		if match != nil {
			response, err := o.serveHit(ctx, log, runID, classification, match)
			if err == nil && response != nil {
				return response, nil
			}
			// Entry vanished under the match; fall through to a fresh run.
			decision = core.CacheMiss
		}
	} else {
		log.Debug("time-sensitive query, bypassing cache", "query", query)
	}

	response, err := o.freshRun(ctx, log, runID, query, classification)
	if err != nil || response == nil {
		return nil, err
	}

	log.Info("run finished",
		"query", query,
		"cache", decision.String(),
		"valid", response.IsValid,
		"failed", response.Error != "",
		"duration", time.Since(start))
	return response, nil
}

// checkCache looks the query up, degrading to a miss on any failure.
// A broken embedder or store must never fail a run that can still be
// answered fresh.
func (o *Orchestrator) checkCache(ctx context.Context, log *slog.Logger, query string) (*core.SimilarityMatch, core.CacheDecision) {
	match, err := o.cache.CheckHit(ctx, query, -1)
	if err != nil {
		if errors.Is(err, core.ErrEmbeddingUnavailable) {
			log.Warn("embedder unavailable, forcing cache miss", "error", err)
		} else {
			log.Warn("cache lookup failed, treating as miss", "error", err)
		}
		return nil, core.CacheMiss
	}
	if match == nil {
		return nil, core.CacheMiss
	}
	return match, core.CacheHit
}

func (o *Orchestrator) serveHit(ctx context.Context, log *slog.Logger, runID core.RunID, classification core.Classification, match *core.SimilarityMatch) (*core.Response, error) {
	entry, err := o.cache.Entry(ctx, match.EntryId)
	if err != nil {
		log.Warn("cache hit entry unreadable, rerunning fresh", "entry_id", match.EntryId, "error", err)
		return nil, err
	}

	log.Info("cache hit",
		"cached_query", match.CachedQuery,
		"combined", match.Combined,
		"semantic", match.Semantic,
		"lexical", match.Lexical)
	o.publish(runID, StepCacheHit, fmt.Sprintf("matched %q (%.3f)", match.CachedQuery, match.Combined))
	o.publish(runID, StepDone, "")

	return &core.Response{
		IsValid:         true,
		IsTimeSensitive: classification.TimeSensitive,
		FromCache:       true,
		CachedQuery:     match.CachedQuery,
		CacheSimilarity: match.Combined,
		Summary:         entry.Summary,
	}, nil
}

func (o *Orchestrator) freshRun(ctx context.Context, log *slog.Logger, runID core.RunID, query string, classification core.Classification) (*core.Response, error) {
	response := &core.Response{
		IsValid:         true,
		IsTimeSensitive: classification.TimeSensitive,
	}

	o.publish(runID, StepSearching, "")
	var urls []string
	err := retryWithBackoff(ctx, func() error {
		var searchErr error
		urls, searchErr = o.searcher.Search(ctx, query, o.maxResults)
		if searchErr != nil {
			return searchErr
		}
		if len(urls) == 0 {
			return ErrNoSearchResults
		}
		return nil
	}, defaultSearchAttempts, defaultSearchBackoff)
	if err != nil {
		return o.fail(ctx, log, runID, response, fmt.Errorf("search: %w", err))
	}
	response.URLsFound = len(urls)

	o.publish(runID, StepScraping, fmt.Sprintf("%d urls", len(urls)))
	texts := o.scrapeAll(ctx, urls)
	if len(texts) == 0 {
		return o.fail(ctx, log, runID, response, fmt.Errorf("scrape: %w", ErrNoContent))
	}
	response.ContentScraped = len(texts)

	if err := ctx.Err(); err != nil {
		o.publish(runID, StepFailed, "cancelled")
		return nil, err
	}

	focused, err := o.extractor.ExtractFocused(ctx, query, texts)
	if err != nil {
		return o.fail(ctx, log, runID, response, fmt.Errorf("extract: %w", err))
	}

	o.publish(runID, StepSummarizing, "")
	summary, err := o.summarizer.Summarize(ctx, query, focused)
	if err != nil {
		return o.fail(ctx, log, runID, response, fmt.Errorf("summarize: %w", err))
	}
	if summary == "" {
		return o.fail(ctx, log, runID, response, fmt.Errorf("summarize: %w", core.ErrEmptySummary))
	}
	response.Summary = summary

	// Only stable answers are worth keeping; a failed write costs a
	// future cache hit, not this run.
	if !classification.TimeSensitive {
		if _, err := o.cache.Add(ctx, query, summary); err != nil {
			log.Warn("cache write failed", "query", query, "error", err)
		}
	}

	o.publish(runID, StepDone, "")
	return response, nil
}

// fail records a stage failure in the response. Cancellation is
// returned as an error instead so callers can tell the two apart.
func (o *Orchestrator) fail(ctx context.Context, log *slog.Logger, runID core.RunID, response *core.Response, stageErr error) (*core.Response, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		o.publish(runID, StepFailed, "cancelled")
		return nil, ctxErr
	}

	stageErr = fmt.Errorf("%w: %w", core.ErrStageFailure, stageErr)
	log.Error("pipeline stage failed", "error", stageErr)
	o.publish(runID, StepFailed, stageErr.Error())
	response.Error = stageErr.Error()
	return response, nil
}

func (o *Orchestrator) publish(runID core.RunID, step Step, detail string) {
	o.registry.Publish(StepEvent{RunID: runID, Step: step, Detail: detail})
}

// Release frees the scrape worker pool. The orchestrator must not be
// used afterwards.
func (o *Orchestrator) Release() {
	if o.pool != nil {
		o.pool.Release()
	}
}
