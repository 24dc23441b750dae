package redis

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckCommandAllowedOutsideSubscriberMode(t *testing.T) {
	c := &Connection{}
	assert.NoError(t, c.checkCommandAllowed("GET"))
	assert.NoError(t, c.checkCommandAllowed("SUBSCRIBE"))
}

func TestCheckCommandAllowedInSubscriberMode(t *testing.T) {
	c := &Connection{}
	atomic.StoreInt32(&c.subscriberMode, 1)

	assert.NoError(t, c.checkCommandAllowed("SUBSCRIBE"))
	assert.NoError(t, c.checkCommandAllowed("PING"))
	assert.NoError(t, c.checkCommandAllowed("QUIT"))
	assert.Equal(t, ErrSubscriberMode, c.checkCommandAllowed("GET"))
	assert.Equal(t, ErrSubscriberMode, c.checkCommandAllowed("SET"))
}

func TestUnsubscribeWithoutSubscription(t *testing.T) {
	c := &Connection{}
	assert.ErrorIs(t, c.Unsubscribe("ch"), ErrNotSubscribed)
	assert.ErrorIs(t, c.PUnsubscribe("p.*"), ErrNotSubscribed)
}

func TestAckCount(t *testing.T) {
	ack := Reply{
		Kind:     KindArray,
		ArraySet: true,
		Array: []Reply{
			{Kind: KindBulk, BulkSet: true, Bulk: []byte("unsubscribe")},
			{Kind: KindBulk, BulkSet: true, Bulk: []byte("chan")},
			{Kind: KindInt, Int: 2},
		},
	}
	n, ok := ackCount(ack)
	assert.True(t, ok)
	assert.EqualValues(t, 2, n)

	message := Reply{
		Kind:     KindArray,
		ArraySet: true,
		Array: []Reply{
			{Kind: KindBulk, BulkSet: true, Bulk: []byte("message")},
			{Kind: KindBulk, BulkSet: true, Bulk: []byte("chan")},
			{Kind: KindBulk, BulkSet: true, Bulk: []byte("payload")},
		},
	}
	_, ok = ackCount(message)
	assert.False(t, ok)
}
