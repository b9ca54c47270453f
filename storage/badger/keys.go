package badger

import (
	"encoding/binary"

	"github.com/ripplica/ripplica/core"
)

// Key prefixes for different data types
const (
	entryPrefix = "entry:"
	entryIDSeq  = "entryseq"
)

// makeEntryKey generates a key for a cache entry by ID.
// IDs are written in BigEndian order so lexicographic key iteration
// yields entries in ascending ID (insertion) order.
func makeEntryKey(id core.ID) []byte {
	prefixBytes := []byte(entryPrefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}
