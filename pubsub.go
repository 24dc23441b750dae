package redis

import (
	"sync/atomic"
	"time"
)

// allowedInSubscriberMode is the command-name allowlist: a connection in
// subscriber mode accepts only these; anything else fails locally before a
// byte is written.
var allowedInSubscriberMode = map[string]bool{
	"SUBSCRIBE":    true,
	"UNSUBSCRIBE":  true,
	"PSUBSCRIBE":   true,
	"PUNSUBSCRIBE": true,
	"PING":         true,
	"QUIT":         true,
}

// checkCommandAllowed enforces the subscriber-mode invariant locally (no
// round trip) before a request is ever encoded.
func (c *Connection) checkCommandAllowed(name string) error {
	if c.inSubscriberMode() && !allowedInSubscriberMode[name] {
		return ErrSubscriberMode
	}
	return nil
}

// Stream exposes the lazy sequence of pub/sub Arrays for a subscribed
// Connection: ["message", channel, payload],
// ["pmessage", pattern, channel, payload], or an acknowledgement frame
// ["subscribe"|"unsubscribe"|..., channel, count]. There is exactly one
// legitimate consumer; the channel closes when the subscription count
// returns to zero or the connection is lost.
func (c *Connection) Stream() <-chan Reply {
	return c.stream
}

// Subscriptions reports the number of active channel and pattern
// subscriptions, as last acknowledged by the server.
func (c *Connection) Subscriptions() int {
	return int(atomic.LoadInt32(&c.subCount))
}

func (c *Connection) enterSubscriberMode() {
	if atomic.CompareAndSwapInt32(&c.subscriberMode, 0, 1) {
		c.stream = make(chan Reply, 64)
		c.streamDone = make(chan struct{})
		go c.pumpSubscriberFrames()
	}
}

// pumpSubscriberFrames is the subscriber-mode demultiplexer: once in
// subscriber mode, the Connection itself (not individual command callers)
// drains the socket and republishes every parsed Array onto Stream().
func (c *Connection) pumpSubscriberFrames() {
	defer close(c.stream)

	for {
		conn := <-c.connSem
		if conn.offline != nil {
			c.connSem <- conn
			return
		}
		reader := conn.idle
		if reader == nil {
			// A command is mid-flight; its finish step hands the
			// reader back through pass(), restoring conn.idle.
			c.connSem <- conn
			select {
			case <-c.streamDone:
				return
			case <-time.After(time.Millisecond):
			}
			continue
		}
		conn.idle = nil
		c.connSem <- conn

		reply, err := ParseReply(reader)
		c.pass(reader, err)
		if err != nil {
			return
		}

		select {
		case c.stream <- reply:
		case <-c.streamDone:
			return
		}

		// Acknowledgement frames carry the server's remaining
		// subscription count, which is authoritative (an argumentless
		// UNSUBSCRIBE drops every channel in one frame sequence).
		if n, ok := ackCount(reply); ok {
			atomic.StoreInt32(&c.subCount, int32(n))
			if n == 0 {
				c.exitSubscriberMode()
				return
			}
		}
	}
}

// ackCount extracts the trailing subscription count from a
// ["subscribe"|"unsubscribe"|"psubscribe"|"punsubscribe", channel, count]
// acknowledgement frame. The second return is false for message frames.
func ackCount(r Reply) (int64, bool) {
	if r.Kind != KindArray || !r.ArraySet || len(r.Array) != 3 {
		return 0, false
	}
	kind, count := r.Array[0], r.Array[2]
	if kind.Kind != KindBulk || !kind.BulkSet || count.Kind != KindInt {
		return 0, false
	}
	switch string(kind.Bulk) {
	case "subscribe", "unsubscribe", "psubscribe", "punsubscribe":
		return count.Int, true
	}
	return 0, false
}

func (c *Connection) exitSubscriberMode() {
	atomic.StoreInt32(&c.subscriberMode, 0)
	close(c.streamDone)
}

func (c *Connection) closeStream() {
	if c.inSubscriberMode() {
		atomic.StoreInt32(&c.subscriberMode, 0)
		close(c.streamDone)
	}
}

// subscribeFamily issues SUBSCRIBE/UNSUBSCRIBE/PSUBSCRIBE/PUNSUBSCRIBE. The
// server answers each argument with its own acknowledgement Array, which
// the subscriber pump delivers via Stream() rather than as a direct return
// value, so these wrappers only feed a command onto the wire; the pump
// maintains the subscription count from the acknowledgements.
func (c *Connection) subscribeFamily(name string, delta int32, channels ...string) error {
	if err := c.checkCommandAllowed(name); err != nil {
		return err
	}

	if delta > 0 {
		c.enterSubscriberMode()
	} else if !c.inSubscriberMode() {
		return ErrNotSubscribed
	}

	args := make([]interface{}, len(channels))
	for i, ch := range channels {
		args[i] = ch
	}
	req := newCommand(name, args...)

	// The first SUBSCRIBE on a fresh connection hands the reader to the
	// pump above via exchange()'s normal write path; we still need to
	// actually put bytes on the wire here.
	r, err := c.exchange(req)
	if err != nil {
		return err
	}
	// Ownership of r now belongs to the subscriber pump: release it back
	// through pass() so the pump (or the next waiting caller, if the
	// pump hasn't started yet) can continue draining acknowledgements.
	c.pass(r, nil)
	return nil
}

// Subscribe subscribes to one or more literal channels.
func (c *Connection) Subscribe(channels ...string) error {
	return c.subscribeFamily("SUBSCRIBE", 1, channels...)
}

// Unsubscribe unsubscribes from one or more literal channels. An empty
// channels list unsubscribes from all.
func (c *Connection) Unsubscribe(channels ...string) error {
	return c.subscribeFamily("UNSUBSCRIBE", -1, channels...)
}

// PSubscribe subscribes to one or more glob patterns.
func (c *Connection) PSubscribe(patterns ...string) error {
	return c.subscribeFamily("PSUBSCRIBE", 1, patterns...)
}

// PUnsubscribe unsubscribes from one or more glob patterns.
func (c *Connection) PUnsubscribe(patterns ...string) error {
	return c.subscribeFamily("PUNSUBSCRIBE", -1, patterns...)
}

// Publish publishes a message to channel and returns the number of
// subscribers that received it. Issuing it on a subscribed Connection is
// rejected locally like any other non-listed command; use a second
// Connection to publish while subscribed.
func (c *Connection) Publish(channel string, payload []byte) (int64, error) {
	if err := c.checkCommandAllowed("PUBLISH"); err != nil {
		return 0, err
	}
	req := newCommand("PUBLISH", channel, payload)
	r, err := c.exchange(req)
	if err != nil {
		return 0, err
	}
	return c.finishInteger(r)
}
