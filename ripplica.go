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


package ripplica

import (
	"context"
	"log/slog"

	"github.com/ripplica/ripplica/ai"
	"github.com/ripplica/ripplica/ai/openai"
	"github.com/ripplica/ripplica/cache"
	"github.com/ripplica/ripplica/classify"
	"github.com/ripplica/ripplica/core"
	"github.com/ripplica/ripplica/fetch"
	"github.com/ripplica/ripplica/pipeline"
	"github.com/ripplica/ripplica/storage"
	"github.com/ripplica/ripplica/storage/badger"
)

// Engine is the assembled query answering system: storage, AI services,
// similarity cache, classifier, and the pipeline orchestrator behind a
// single handle.
type Engine struct {
	backend      *badger.Backend
	repo         storage.EntryRepository
	provider     ai.Provider
	cache        *cache.Cache
	classifier   classify.Classifier
	orchestrator *pipeline.Orchestrator
	logger       *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig     *ai.Config
	provider     ai.Provider
	searcher     pipeline.Searcher
	scraper      pipeline.Scraper
	inMemory     bool
	cacheOpts    []cache.Option
	pipelineOpts []pipeline.Option
}

// WithAIConfig sets the AI backend configuration.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithProvider injects a pre-built AI provider, bypassing the default
// OpenAI-compatible one. Tests use this with mocks.
func WithProvider(provider ai.Provider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithSearcher overrides the default DuckDuckGo searcher.
func WithSearcher(searcher pipeline.Searcher) EngineOption {
	return func(o *engineOptions) {
		if searcher != nil {
			o.searcher = searcher
		}
	}
}

// WithScraper overrides the default page scraper.
func WithScraper(scraper pipeline.Scraper) EngineOption {
	return func(o *engineOptions) {
		if scraper != nil {
			o.scraper = scraper
		}
	}
}

// WithInMemoryStorage keeps all cache entries in memory, discarded on
// close.
func WithInMemoryStorage() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// WithCacheOptions forwards options to the similarity cache.
func WithCacheOptions(opts ...cache.Option) EngineOption {
	return func(o *engineOptions) {
		o.cacheOpts = append(o.cacheOpts, opts...)
	}
}

// WithPipelineOptions forwards options to the orchestrator.
func WithPipelineOptions(opts ...pipeline.Option) EngineOption {
	return func(o *engineOptions) {
		o.pipelineOpts = append(o.pipelineOpts, opts...)
	}
}

// NewEngine opens storage at filePath and wires the full pipeline.
// Embeddings are memoized per process, so checking and storing the same
// query costs one backend round trip.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	repo, err := badger.NewEntryRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			repo.Close()
			backend.Close()
			return nil, err
		}
	}

	similarityCache, err := cache.NewCache(repo, ai.NewMemoEmbedder(provider.Embedder()), options.cacheOpts...)
	if err != nil {
		provider.Close()
		repo.Close()
		backend.Close()
		return nil, err
	}

	classifier := classify.NewSecondOpinion(classify.NewRules(), provider.Judge())

	searcher := options.searcher
	if searcher == nil {
		searcher = fetch.NewDuckDuckGo()
	}
	scraper := options.scraper
	if scraper == nil {
		scraper = fetch.NewPageScraper()
	}

	orchestrator, err := pipeline.NewOrchestrator(
		classifier,
		similarityCache,
		searcher,
		scraper,
		provider.Extractor(),
		provider.Summarizer(),
		options.pipelineOpts...,
	)
	if err != nil {
		provider.Close()
		repo.Close()
		backend.Close()
		return nil, err
	}

	return &Engine{
		backend:      backend,
		repo:         repo,
		provider:     provider,
		cache:        similarityCache,
		classifier:   classifier,
		orchestrator: orchestrator,
		logger:       slog.Default(),
	}, nil
}

// Answer processes a query end to end under a fresh run ID.
func (e *Engine) Answer(ctx context.Context, query string) (*core.Response, error) {
	return e.orchestrator.Answer(ctx, query)
}

// NewRun allocates a run identifier so callers can subscribe to the run's
// step events before starting it.
func (e *Engine) NewRun(query string) core.RunID {
	return e.orchestrator.NewRun(query)
}

// Run processes a query under a pre-allocated run ID.
func (e *Engine) Run(ctx context.Context, runID core.RunID, query string) (*core.Response, error) {
	return e.orchestrator.Run(ctx, runID, query)
}

// Events returns the registry for subscribing to pipeline step events.
func (e *Engine) Events() *pipeline.Registry {
	return e.orchestrator.Events()
}

// Classify runs only the classification stage.
func (e *Engine) Classify(ctx context.Context, query string) core.Classification {
	return e.classifier.Classify(ctx, query)
}

// Cache exposes the similarity cache for admin operations.
func (e *Engine) Cache() *cache.Cache {
	return e.cache
}

// Close releases the pipeline, AI provider, and storage.
func (e *Engine) Close() error {
	e.orchestrator.Release()

	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}
	if err := e.repo.Close(); err != nil {
		e.logger.Error("error closing entry repository", "err", err)
		return err
	}
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
