package rmutex

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenIsUnique(t *testing.T) {
	a := NewToken()
	b := NewToken()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestAcquireRejectsShortLeaseLocally(t *testing.T) {
	m := New(nil, "lock:test", "tok")
	err := m.Acquire(context.Background(), time.Second, 100*time.Millisecond)
	require.Error(t, err)
	var merr *MutexError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "acquire", merr.Op)
}

func TestMutexErrorUnwrap(t *testing.T) {
	inner := ErrTimeout
	wrapped := &MutexError{Op: "release", Err: inner}
	assert.ErrorIs(t, wrapped, ErrTimeout)
}

func TestReleaseScriptIsCompareAndDelete(t *testing.T) {
	assert.Contains(t, releaseScript, "KEYS[1]")
	assert.Contains(t, releaseScript, "ARGV[1]")
	assert.Contains(t, releaseScript, "DEL")
}
