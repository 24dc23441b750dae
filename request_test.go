package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCommandEncoding(t *testing.T) {
	req := newCommand("SET", "key", []byte("val"))
	defer req.free()
	assert.Equal(t, "*3\r\n$3\r\nSET\r\n$3\r\nkey\r\n$3\r\nval\r\n", string(req.buf.B))
}

func TestNewCommandNumericArg(t *testing.T) {
	req := newCommand("EXPIRE", "key", int64(60))
	defer req.free()
	assert.Equal(t, "*3\r\n$6\r\nEXPIRE\r\n$3\r\nkey\r\n$2\r\n60\r\n", string(req.buf.B))
}

func TestArgBytesBitOp(t *testing.T) {
	assert.Equal(t, []byte("AND"), argBytes(BitOpAnd))
	assert.Equal(t, []byte("XOR"), argBytes(BitOpXor))
}

func TestArgBytesPassthrough(t *testing.T) {
	assert.Equal(t, []byte("hello"), argBytes("hello"))
	assert.Equal(t, []byte("hello"), argBytes([]byte("hello")))
}

func TestArgBytesCast(t *testing.T) {
	assert.Equal(t, []byte("42"), argBytes(42))
	assert.Equal(t, []byte("3.5"), argBytes(3.5))
	assert.Equal(t, []byte("true"), argBytes(true))
}
