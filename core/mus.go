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
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for types that cross the storage boundary.
// Timestamps are stored as Unix microseconds.
var (
	IDMUS         = idMUS{}
	CacheEntryMUS = cacheEntryMUS{
		vector: ord.NewSliceSer[float32](varint.Float32),
	}
)

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(v ID) int {
	return varint.Uint64.Size(uint64(v))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

type cacheEntryMUS struct {
	vector mus.Serializer[[]float32]
}

func (s cacheEntryMUS) Marshal(v CacheEntry, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.QueryText, bs[n:])
	n += s.vector.Marshal(v.Vector, bs[n:])
	n += ord.String.Marshal(v.Summary, bs[n:])
	n += varint.Int64.Marshal(v.CreatedAt.UnixMicro(), bs[n:])
	return n
}

func (s cacheEntryMUS) Unmarshal(bs []byte) (v CacheEntry, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	v.QueryText, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Vector, n1, err = s.vector.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Summary, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.CreatedAt = time.UnixMicro(micros).UTC()
	return v, n, nil
}

func (s cacheEntryMUS) Size(v CacheEntry) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.QueryText)
	size += s.vector.Size(v.Vector)
	size += ord.String.Size(v.Summary)
	size += varint.Int64.Size(v.CreatedAt.UnixMicro())
	return size
}
