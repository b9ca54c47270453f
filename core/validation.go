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


package core

import (
	"fmt"
	"strings"
	"time"
)

// ValidateCacheEntry validates a CacheEntry according to domain rules.
//
// Validation rules:
//   - QueryText must not be empty or whitespace-only
//   - Summary must not be empty
//   - CreatedAt must not be in the future
//
// NOT validated:
//   - Vector (populated by the cache layer before storage)
//   - ID (0 is valid before the database sequence assigns one)
func ValidateCacheEntry(entry *CacheEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidEntry)
	}

	if strings.TrimSpace(entry.QueryText) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrEmptyQuery)
	}

	if entry.Summary == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrEmptySummary)
	}

	if !IsValidTimestamp(entry.CreatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrInvalidTimestamp)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
