package redis

import "time"

// LPush issues LPUSH key value..., returning the new list length.
func (c *Connection) LPush(key string, values ...[]byte) (int64, error) {
	if err := c.checkCommandAllowed("LPUSH"); err != nil {
		return 0, err
	}
	args := make([]interface{}, 1+len(values))
	args[0] = key
	for i, v := range values {
		args[1+i] = v
	}
	req := newCommand("LPUSH", args...)
	r, err := c.exchange(req)
	if err != nil {
		return 0, err
	}
	return c.finishInteger(r)
}

// RPush issues RPUSH key value...
func (c *Connection) RPush(key string, values ...[]byte) (int64, error) {
	if err := c.checkCommandAllowed("RPUSH"); err != nil {
		return 0, err
	}
	args := make([]interface{}, 1+len(values))
	args[0] = key
	for i, v := range values {
		args[1+i] = v
	}
	req := newCommand("RPUSH", args...)
	r, err := c.exchange(req)
	if err != nil {
		return 0, err
	}
	return c.finishInteger(r)
}

// LPop issues LPOP key.
func (c *Connection) LPop(key string) ([]byte, error) {
	if err := c.checkCommandAllowed("LPOP"); err != nil {
		return nil, err
	}
	req := newCommand("LPOP", key)
	r, err := c.exchange(req)
	if err != nil {
		return nil, err
	}
	return c.finishBulkBytes(r)
}

// RPop issues RPOP key.
func (c *Connection) RPop(key string) ([]byte, error) {
	if err := c.checkCommandAllowed("RPOP"); err != nil {
		return nil, err
	}
	req := newCommand("RPOP", key)
	r, err := c.exchange(req)
	if err != nil {
		return nil, err
	}
	return c.finishBulkBytes(r)
}

// LRange issues LRANGE key start stop.
func (c *Connection) LRange(key string, start, stop int64) ([][]byte, error) {
	if err := c.checkCommandAllowed("LRANGE"); err != nil {
		return nil, err
	}
	req := newCommand("LRANGE", key, start, stop)
	r, err := c.exchange(req)
	if err != nil {
		return nil, err
	}
	return c.finishBytesArray(r)
}

// LLen issues LLEN key.
func (c *Connection) LLen(key string) (int64, error) {
	if err := c.checkCommandAllowed("LLEN"); err != nil {
		return 0, err
	}
	req := newCommand("LLEN", key)
	r, err := c.exchange(req)
	if err != nil {
		return 0, err
	}
	return c.finishInteger(r)
}

// LIndex issues LINDEX key index.
func (c *Connection) LIndex(key string, index int64) ([]byte, error) {
	if err := c.checkCommandAllowed("LINDEX"); err != nil {
		return nil, err
	}
	req := newCommand("LINDEX", key, index)
	r, err := c.exchange(req)
	if err != nil {
		return nil, err
	}
	return c.finishBulkBytes(r)
}

// LSet issues LSET key index value.
func (c *Connection) LSet(key string, index int64, value []byte) error {
	if err := c.checkCommandAllowed("LSET"); err != nil {
		return err
	}
	req := newCommand("LSET", key, index, value)
	r, err := c.exchange(req)
	if err != nil {
		return err
	}
	return c.finishOK(r)
}

// LTrim issues LTRIM key start stop.
func (c *Connection) LTrim(key string, start, stop int64) error {
	if err := c.checkCommandAllowed("LTRIM"); err != nil {
		return err
	}
	req := newCommand("LTRIM", key, start, stop)
	r, err := c.exchange(req)
	if err != nil {
		return err
	}
	return c.finishOK(r)
}

// blockingPop is shared by BLPop/BRPop: a blocking command occupies the
// connection for up to timeout, so the caller's timeout stretches the read
// deadline for this one call rather than triggering a client-side abandon
// (which would poison the pipeline once bytes are on the wire).
func (c *Connection) blockingPop(name string, keys []string, timeout time.Duration) (string, []byte, error) {
	if err := c.checkCommandAllowed(name); err != nil {
		return "", nil, err
	}
	args := make([]interface{}, len(keys)+1)
	for i, k := range keys {
		args[i] = k
	}
	secs := int64(timeout / time.Second)
	args[len(keys)] = secs

	req := newCommand(name, args...)
	r, err := c.exchangeExtend(req, timeout)
	if err != nil {
		return "", nil, err
	}

	reply, perr := ParseReply(r)
	c.pass(r, perr)
	if perr != nil {
		return "", nil, perr
	}
	if reply.Kind == KindError {
		return "", nil, reply.Err
	}
	if reply.Kind != KindArray {
		return "", nil, &UnexpectedReplyError{Command: name, Reply: reply}
	}
	if !reply.ArraySet {
		return "", nil, nil // timed out: null array reply
	}
	if len(reply.Array) != 2 {
		return "", nil, &UnexpectedReplyError{Command: name, Reply: reply}
	}
	return string(reply.Array[0].Bulk), reply.Array[1].Bulk, nil
}

// BLPop issues BLPOP key... timeout, blocking the connection for up to
// timeout. Returns ("", nil, nil) on timeout.
func (c *Connection) BLPop(timeout time.Duration, keys ...string) (string, []byte, error) {
	return c.blockingPop("BLPOP", keys, timeout)
}

// BRPop issues BRPOP key... timeout.
func (c *Connection) BRPop(timeout time.Duration, keys ...string) (string, []byte, error) {
	return c.blockingPop("BRPOP", keys, timeout)
}

// BRPopLPush issues BRPOPLPUSH src dst timeout.
func (c *Connection) BRPopLPush(src, dst string, timeout time.Duration) ([]byte, error) {
	if err := c.checkCommandAllowed("BRPOPLPUSH"); err != nil {
		return nil, err
	}
	secs := int64(timeout / time.Second)
	req := newCommand("BRPOPLPUSH", src, dst, secs)
	r, err := c.exchangeExtend(req, timeout)
	if err != nil {
		return nil, err
	}
	return c.finishBulkBytes(r)
}
