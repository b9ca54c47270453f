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


// Package classify decides whether a query is answerable and whether its
// answer goes stale.
//
// Rules is the authoritative rule-based classifier; it never fails.
// SecondOpinion wraps any classifier with an LLM judge that refines
// low-confidence verdicts, degrading silently to the wrapped verdict
// when the judge is unreachable.
package classify
