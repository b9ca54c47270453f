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


// Package pipeline orchestrates query answering.
//
// A run moves through validation, an optional cache lookup, and the
// fresh path of web search, concurrent page scraping, focused
// extraction, and summarization. Each stage transition is published to
// the run's observers through a Registry; delivery is best-effort and
// never blocks the pipeline.
package pipeline
