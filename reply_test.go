package redis

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseAll(t *testing.T, wire string) Reply {
	t.Helper()
	r, err := ParseReply(bufio.NewReader(strings.NewReader(wire)))
	require.NoError(t, err)
	return r
}

func TestParseReplyStatus(t *testing.T) {
	r := parseAll(t, "+OK\r\n")
	assert.Equal(t, KindStatus, r.Kind)
	assert.Equal(t, "OK", r.Status)
}

func TestParseReplyError(t *testing.T) {
	r := parseAll(t, "-ERR wrong number of arguments\r\n")
	assert.Equal(t, KindError, r.Kind)
	assert.Equal(t, "ERR wrong number of arguments", string(r.Err))
	assert.Equal(t, "ERR", r.Err.Prefix())
}

func TestParseReplyInteger(t *testing.T) {
	r := parseAll(t, ":1000\r\n")
	assert.Equal(t, KindInt, r.Kind)
	assert.EqualValues(t, 1000, r.Int)
}

func TestParseReplyBulkNull(t *testing.T) {
	r := parseAll(t, "$-1\r\n")
	assert.Equal(t, KindBulk, r.Kind)
	assert.False(t, r.BulkSet)
}

func TestParseReplyBulkEmpty(t *testing.T) {
	r := parseAll(t, "$0\r\n\r\n")
	assert.True(t, r.BulkSet)
	assert.Equal(t, []byte{}, r.Bulk)
}

func TestParseReplyBulkBinarySafe(t *testing.T) {
	r := parseAll(t, "$3\r\nf\x00o\r\n")
	assert.True(t, r.BulkSet)
	assert.Equal(t, []byte("f\x00o"), r.Bulk)
}

func TestParseReplyArrayNull(t *testing.T) {
	r := parseAll(t, "*-1\r\n")
	assert.Equal(t, KindArray, r.Kind)
	assert.False(t, r.ArraySet)
}

func TestParseReplyArrayNested(t *testing.T) {
	r := parseAll(t, "*2\r\n$3\r\nfoo\r\n:42\r\n")
	require.True(t, r.ArraySet)
	require.Len(t, r.Array, 2)
	assert.Equal(t, "foo", string(r.Array[0].Bulk))
	assert.EqualValues(t, 42, r.Array[1].Int)
}

func TestParseReplyUnrecognizedTag(t *testing.T) {
	_, err := ParseReply(bufio.NewReader(strings.NewReader("?nope\r\n")))
	require.Error(t, err)
	var frameErr *UnrecognizedFrameError
	require.ErrorAs(t, err, &frameErr)
	assert.Equal(t, byte('?'), frameErr.Byte)
}

func TestDecodeOK(t *testing.T) {
	err := decodeOK(bufio.NewReader(strings.NewReader("+OK\r\n")))
	assert.NoError(t, err)
}

func TestDecodeOKUnexpected(t *testing.T) {
	err := decodeOK(bufio.NewReader(strings.NewReader(":1\r\n")))
	require.Error(t, err)
	var unexpected *UnexpectedReplyError
	require.ErrorAs(t, err, &unexpected)
}

func TestDecodeOKServerError(t *testing.T) {
	err := decodeOK(bufio.NewReader(strings.NewReader("-ERR bad\r\n")))
	var serr ServerError
	require.ErrorAs(t, err, &serr)
}

func TestDecodeBulkBytesNull(t *testing.T) {
	b, err := decodeBulkBytes(bufio.NewReader(strings.NewReader("$-1\r\n")))
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestDecodeBytesArrayWithNullElement(t *testing.T) {
	arr, err := decodeBytesArray(bufio.NewReader(strings.NewReader("*2\r\n$-1\r\n$1\r\na\r\n")))
	require.NoError(t, err)
	require.Len(t, arr, 2)
	assert.Nil(t, arr[0])
	assert.Equal(t, []byte("a"), arr[1])
}
