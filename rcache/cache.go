// Package rcache implements a typed cache on top of a *redis.Connection.
// Keys and values are both pluggable: a KeyEncoder turns a Go key into the
// string Redis stores under, a Codec turns a Go value into the bytes Redis
// stores.
package rcache

import (
	"time"

	goredis "github.com/cloudshard/goredis"
)

// KeyEncoder turns a typed key into the string used as the Redis key.
type KeyEncoder[K any] interface {
	EncodeKey(key K) string
}

// Codec turns a typed value into bytes for storage and back.
type Codec[V any] interface {
	Encode(v V) ([]byte, error)
	Decode(data []byte, v *V) error
}

// Cache stores values of type V under keys of type K in Redis, via a
// KeyEncoder and Codec pair.
type Cache[K comparable, V any] struct {
	conn   *goredis.Connection
	keys   KeyEncoder[K]
	codec  Codec[V]
	expire time.Duration
}

// New builds a Cache. expire of zero means entries never expire.
func New[K comparable, V any](conn *goredis.Connection, keys KeyEncoder[K], codec Codec[V], expire time.Duration) *Cache[K, V] {
	return &Cache[K, V]{conn: conn, keys: keys, codec: codec, expire: expire}
}

// Set encodes v and stores it under key, applying the cache's expiry in one
// round trip via PSETEX when configured, otherwise a plain SET.
func (c *Cache[K, V]) Set(key K, v V) error {
	data, err := c.codec.Encode(v)
	if err != nil {
		return err
	}
	wireKey := c.keys.EncodeKey(key)
	if c.expire > 0 {
		return c.conn.PSetEx(wireKey, data, c.expire.Milliseconds())
	}
	return c.conn.Set(wireKey, data)
}

// Get fetches and decodes the value stored under key. The bool return is
// false when the key does not exist.
func (c *Cache[K, V]) Get(key K) (V, bool, error) {
	var zero V
	wireKey := c.keys.EncodeKey(key)
	data, ok, err := c.conn.Get(wireKey)
	if err != nil || !ok {
		return zero, ok, err
	}
	var v V
	if err := c.codec.Decode([]byte(data), &v); err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// Delete removes key. It is fire-and-forget: the DEL reply's removed count
// is decoded to validate the round trip but discarded, never returned to
// the caller.
func (c *Cache[K, V]) Delete(key K) error {
	wireKey := c.keys.EncodeKey(key)
	_, err := c.conn.Del(wireKey)
	return err
}
