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


// Package storage defines the persistence interface for cache entries
// and their binary serialization.
//
// Entries are append-only: they are created once, never updated, and
// removed only by a bulk clear. The EntryRepository contract reflects
// this. Serialization uses the MUS format; serializers live in the core
// package next to the types they encode.
//
// The storage/badger sub-package provides the production implementation
// backed by BadgerDB, including an in-memory mode for tests.
package storage
