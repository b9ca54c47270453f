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

import "errors"

var (
	// ErrClassifierRequired indicates a nil classifier was provided.
	ErrClassifierRequired = errors.New("classifier is required")

	// ErrCacheRequired indicates a nil similarity cache was provided.
	ErrCacheRequired = errors.New("similarity cache is required")

	// ErrSearcherRequired indicates a nil searcher was provided.
	ErrSearcherRequired = errors.New("searcher is required")

	// ErrScraperRequired indicates a nil scraper was provided.
	ErrScraperRequired = errors.New("scraper is required")

	// ErrExtractorRequired indicates a nil extractor was provided.
	ErrExtractorRequired = errors.New("extractor is required")

	// ErrSummarizerRequired indicates a nil summarizer was provided.
	ErrSummarizerRequired = errors.New("summarizer is required")

	// ErrNoSearchResults indicates the search stage found no usable URLs.
	ErrNoSearchResults = errors.New("search returned no results")

	// ErrNoContent indicates no page yielded usable text.
	ErrNoContent = errors.New("no scraped content")

	// ErrInvalidMaxAttempts indicates a retry call with maxAttempts <= 0.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
