package rcache

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	goredis "github.com/cloudshard/goredis"
)

// HashCache stores values of type V as a Redis hash (HMSET/HGETALL) instead
// of a single encoded bulk string, via mapstructure struct<->map conversion.
// This is an enrichment beyond the plain Cache: it lets a caller HINCRBY or
// HGET a single field of a cached struct without decoding the whole value.
type HashCache[V any] struct {
	conn *goredis.Connection
}

// NewHashCache builds a HashCache bound to conn.
func NewHashCache[V any](conn *goredis.Connection) *HashCache[V] {
	return &HashCache[V]{conn: conn}
}

// Set decomposes v into a field map via mapstructure tags and stores it
// with HMSET.
func (hc *HashCache[V]) Set(key string, v V) error {
	fields, err := structToFields(v)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	return hc.conn.HMSet(key, fields)
}

// Get reads the whole hash at key with HGETALL and decodes it back into V
// via mapstructure. The bool return is false when the key does not exist
// (an empty hash), mirroring the optional-value contract of the plain
// Cache.
func (hc *HashCache[V]) Get(key string) (V, bool, error) {
	var zero V
	pairs, err := hc.conn.HGetAll(key)
	if err != nil {
		return zero, false, err
	}
	if len(pairs) == 0 {
		return zero, false, nil
	}
	raw := make(map[string]interface{}, len(pairs))
	for _, p := range pairs {
		raw[p.Field] = string(p.Value)
	}
	var v V
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &v,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return zero, false, err
	}
	if err := dec.Decode(raw); err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// Delete removes the hash at key.
func (hc *HashCache[V]) Delete(key string) error {
	_, err := hc.conn.Del(key)
	return err
}

func structToFields(v interface{}) (map[string][]byte, error) {
	var raw map[string]interface{}
	if err := mapstructure.Decode(v, &raw); err != nil {
		return nil, err
	}
	fields := make(map[string][]byte, len(raw))
	for k, val := range raw {
		fields[k] = []byte(toFieldString(val))
	}
	return fields, nil
}

func toFieldString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
