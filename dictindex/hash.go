package dictindex

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// WordFoldHash reads as many machine words as fit from the front of key
// (8, then 4, then 2, then 1 byte) and takes the unsigned value modulo
// bucketCount. It is deliberately non-cryptographic, depends only on a
// fixed-length prefix, and is stable only within one process (platform
// byte order is baked in via a fixed little-endian read, matching a
// word-at-a-time read of memory).
func WordFoldHash(key []byte, bucketCount int) int {
	if len(key) == 0 {
		return 0
	}

	var v uint64
	switch {
	case len(key) >= 8:
		v = binary.LittleEndian.Uint64(key[:8])
	case len(key) >= 4:
		v = uint64(binary.LittleEndian.Uint32(key[:4]))
	case len(key) >= 2:
		v = uint64(binary.LittleEndian.Uint16(key[:2]))
	default:
		v = uint64(key[0])
	}

	return int(v % uint64(bucketCount))
}

// XXHashFold hashes the whole key with xxhash instead of only a fixed-width
// prefix. The decoder switches to this once a dictionary's pair count
// exceeds XXHashThreshold, where WordFoldHash's prefix-only view starts
// producing more collisions than a full-key hash would.
func XXHashFold(key []byte, bucketCount int) int {
	if len(key) == 0 {
		return 0
	}
	return int(xxhash.Sum64(key) % uint64(bucketCount))
}

// SelectHashFunc picks WordFoldHash or XXHashFold based on pairCount,
// matching the decoder's threshold policy.
func SelectHashFunc(pairCount int) HashFunc {
	if pairCount > XXHashThreshold {
		return XXHashFold
	}
	return WordFoldHash
}
