package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptionsFromMap(t *testing.T) {
	opts, err := LoadOptions(map[string]interface{}{
		"password":        "hunter2",
		"db":              int64(3),
		"command_timeout": "500ms",
		"dial_timeout":    "2s",
	})
	require.NoError(t, err)
	require.Len(t, opts, 4)

	o := defaultOptions()
	for _, apply := range opts {
		apply(&o)
	}
	assert.Equal(t, "hunter2", o.password)
	assert.EqualValues(t, 3, o.db)
	assert.Equal(t, 500*time.Millisecond, o.commandTimeout)
	assert.Equal(t, 2*time.Second, o.dialTimeout)
}

func TestLoadOptionsEmptySourceYieldsNoOptions(t *testing.T) {
	opts, err := LoadOptions(map[string]interface{}{})
	require.NoError(t, err)
	assert.Empty(t, opts)
}

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	assert.Equal(t, DefaultDialTimeout, o.dialTimeout)
	assert.NotNil(t, o.logger)
}
