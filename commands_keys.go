package redis

// Del issues DEL key..., returning the number of keys removed.
func (c *Connection) Del(keys ...string) (int64, error) {
	if err := c.checkCommandAllowed("DEL"); err != nil {
		return 0, err
	}
	args := make([]interface{}, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	req := newCommand("DEL", args...)
	r, err := c.exchange(req)
	if err != nil {
		return 0, err
	}
	return c.finishInteger(r)
}

// Exists issues EXISTS key.
func (c *Connection) Exists(key string) (bool, error) {
	if err := c.checkCommandAllowed("EXISTS"); err != nil {
		return false, err
	}
	req := newCommand("EXISTS", key)
	r, err := c.exchange(req)
	if err != nil {
		return false, err
	}
	return c.finishBool(r)
}

// Expire issues EXPIRE key seconds.
func (c *Connection) Expire(key string, seconds int64) (bool, error) {
	if err := c.checkCommandAllowed("EXPIRE"); err != nil {
		return false, err
	}
	req := newCommand("EXPIRE", key, seconds)
	r, err := c.exchange(req)
	if err != nil {
		return false, err
	}
	return c.finishBool(r)
}

// PExpire issues PEXPIRE key millis.
func (c *Connection) PExpire(key string, millis int64) (bool, error) {
	if err := c.checkCommandAllowed("PEXPIRE"); err != nil {
		return false, err
	}
	req := newCommand("PEXPIRE", key, millis)
	r, err := c.exchange(req)
	if err != nil {
		return false, err
	}
	return c.finishBool(r)
}

// TTL issues TTL key, returning seconds remaining (-1 no expiry, -2 missing
// key).
func (c *Connection) TTL(key string) (int64, error) {
	if err := c.checkCommandAllowed("TTL"); err != nil {
		return 0, err
	}
	req := newCommand("TTL", key)
	r, err := c.exchange(req)
	if err != nil {
		return 0, err
	}
	return c.finishInteger(r)
}

// Persist issues PERSIST key.
func (c *Connection) Persist(key string) (bool, error) {
	if err := c.checkCommandAllowed("PERSIST"); err != nil {
		return false, err
	}
	req := newCommand("PERSIST", key)
	r, err := c.exchange(req)
	if err != nil {
		return false, err
	}
	return c.finishBool(r)
}
