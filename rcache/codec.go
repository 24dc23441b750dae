package rcache

import (
	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson"
)

// JSONCodec encodes values with goccy/go-json, a drop-in encoding/json
// replacement.
type JSONCodec[V any] struct{}

func (JSONCodec[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }

func (JSONCodec[V]) Decode(data []byte, v *V) error { return json.Unmarshal(data, v) }

// BSONCodec encodes values with mongo-driver's bson package, for callers
// who already carry BSON-tagged structs (e.g. values mirrored from a Mongo
// collection into the cache).
type BSONCodec[V any] struct{}

func (BSONCodec[V]) Encode(v V) ([]byte, error) { return bson.Marshal(v) }

func (BSONCodec[V]) Decode(data []byte, v *V) error { return bson.Unmarshal(data, v) }
