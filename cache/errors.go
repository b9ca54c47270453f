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


package cache

import "errors"

var (
	// ErrInvalidWeights indicates the semantic and lexical weights do not
	// sum to 1 or fall outside [0,1].
	ErrInvalidWeights = errors.New("similarity weights must be in [0,1] and sum to 1")

	// ErrInvalidThreshold indicates a similarity threshold outside [0,1].
	ErrInvalidThreshold = errors.New("similarity threshold must be in [0,1]")
)
