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


// Package ai provides abstractions for the AI services used by Ripplica.
//
// The decision core depends on four capabilities, each behind an
// interface so business logic never couples to a concrete backend:
//
//   - Embedder: generates vector embeddings from query text
//   - Judge: gives an LLM second opinion on query validity
//   - Extractor: pulls query-relevant passages out of scraped content
//   - Summarizer: writes the final answer from focused content
//
// Provider aggregates the four for convenient initialization.
//
// Production constructors (openai.NewProvider and friends) return
// interface types to enforce abstraction. Test constructors in ai/mock
// return concrete types so tests can inject behavior via function fields
// and assert on call counts.
//
// MemoEmbedder decorates any Embedder with an unbounded exact-text memo,
// guaranteeing byte-identical input yields an identical vector within one
// process lifetime without repeated backend calls.
package ai
