package rcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	Name  string `json:"name" bson:"name"`
	Count int    `json:"count" bson:"count"`
}

func TestJSONCodecRoundTrip(t *testing.T) {
	var codec JSONCodec[widget]
	data, err := codec.Encode(widget{Name: "gear", Count: 3})
	require.NoError(t, err)

	var got widget
	require.NoError(t, codec.Decode(data, &got))
	assert.Equal(t, widget{Name: "gear", Count: 3}, got)
}

func TestBSONCodecRoundTrip(t *testing.T) {
	var codec BSONCodec[widget]
	data, err := codec.Encode(widget{Name: "bolt", Count: 7})
	require.NoError(t, err)

	var got widget
	require.NoError(t, codec.Decode(data, &got))
	assert.Equal(t, widget{Name: "bolt", Count: 7}, got)
}
