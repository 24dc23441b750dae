package rcache

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// StringKeyEncoder is the identity encoder for string keys.
type StringKeyEncoder struct{}

func (StringKeyEncoder) EncodeKey(key string) string { return key }

// HashKeyEncoder hashes an arbitrary key with xxhash, for key types that
// do not already have a natural wire string.
type HashKeyEncoder[K any] struct {
	// Prefix is prepended to the hashed key so distinct caches sharing one
	// keyspace do not collide.
	Prefix string
	Encode func(key K) []byte
}

func (h HashKeyEncoder[K]) EncodeKey(key K) string {
	sum := xxhash.Sum64(h.Encode(key))
	return h.Prefix + strconv.FormatUint(sum, 16)
}
