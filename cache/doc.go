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


// Package cache implements the semantic similarity cache.
//
// A Cache pairs an entry repository with an embedder and scores stored
// queries against incoming ones using a weighted blend of cosine
// similarity over embedding vectors and lexical token overlap. Queries
// scoring at or above the hit threshold reuse the cached summary instead
// of triggering a fresh pipeline run.
package cache
