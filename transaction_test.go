package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionStateString(t *testing.T) {
	assert.Equal(t, "Idle", Idle.String())
	assert.Equal(t, "Queueing", Queueing.String())
	assert.Equal(t, "Aborted", Aborted.String())
}

func TestMultiRejectsWhenNotIdle(t *testing.T) {
	c := &Connection{txn: txnState{state: Queueing}}
	assert.Equal(t, ErrNotQueueing, c.Multi())
}

func TestQueueRejectsWhenIdle(t *testing.T) {
	c := &Connection{txn: txnState{state: Idle}}
	err := c.Queue(func() error { return nil })
	assert.Equal(t, ErrNotQueueing, err)
}

func TestQueueRejectsWhenAlreadyAborted(t *testing.T) {
	c := &Connection{txn: txnState{state: Aborted}}
	err := c.Queue(func() error { return nil })
	assert.Equal(t, ErrTransactionAlreadyAborted, err)
}

func TestQueueAbortsOnThunkError(t *testing.T) {
	c := &Connection{txn: txnState{state: Queueing}}
	sentinel := assert.AnError
	err := c.Queue(func() error { return sentinel })
	assert.Equal(t, sentinel, err)
	assert.Equal(t, Aborted, c.State())
}

func TestQueueStaysQueueingOnSuccess(t *testing.T) {
	c := &Connection{txn: txnState{state: Queueing}}
	err := c.Queue(func() error { return nil })
	assert.NoError(t, err)
	assert.Equal(t, Queueing, c.State())
}

func TestExecRejectsWhenIdle(t *testing.T) {
	c := &Connection{txn: txnState{state: Idle}}
	_, err := c.Exec()
	assert.Equal(t, ErrNotQueueing, err)
}

func TestExecOnAlreadyAbortedResetsToIdle(t *testing.T) {
	c := &Connection{txn: txnState{state: Aborted}}
	_, err := c.Exec()
	assert.Equal(t, ErrTransactionAlreadyAborted, err)
	assert.Equal(t, Idle, c.State())
}

func TestDiscardRejectsWhenNotQueueing(t *testing.T) {
	c := &Connection{txn: txnState{state: Idle}}
	assert.Equal(t, ErrNotQueueing, c.Discard())
}

func TestWatchRejectsWhenNotIdle(t *testing.T) {
	c := &Connection{txn: txnState{state: Queueing}}
	assert.Equal(t, ErrNotQueueing, c.Watch("key"))
}

func TestUnwatchRejectsWhenNotIdle(t *testing.T) {
	c := &Connection{txn: txnState{state: Aborted}}
	assert.Equal(t, ErrNotQueueing, c.Unwatch())
}
