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


package fetch

import "errors"

var (
	// ErrBadStatus indicates a non-2xx response from the remote host.
	ErrBadStatus = errors.New("unexpected HTTP status")

	// ErrUnsupportedContent indicates a response that is not HTML.
	ErrUnsupportedContent = errors.New("unsupported content type")

	// ErrContentTooShort indicates a page whose extracted text is too
	// short to be worth summarizing.
	ErrContentTooShort = errors.New("extracted content too short")
)
