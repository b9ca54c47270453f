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


// Package mock provides test doubles for the ai package interfaces.
//
// Each mock supports behavior injection via function fields and tracks
// call counts for assertions. The default behaviors are deterministic so
// tests can rely on exact values: MockEmbedder derives unit vectors from
// an FNV hash of the input text, which makes identical texts perfectly
// self-similar under cosine similarity.
package mock
