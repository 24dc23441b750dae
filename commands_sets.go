package redis

// SAdd issues SADD key member..., returning the number of new members added.
func (c *Connection) SAdd(key string, members ...[]byte) (int64, error) {
	if err := c.checkCommandAllowed("SADD"); err != nil {
		return 0, err
	}
	args := make([]interface{}, 1+len(members))
	args[0] = key
	for i, m := range members {
		args[1+i] = m
	}
	req := newCommand("SADD", args...)
	r, err := c.exchange(req)
	if err != nil {
		return 0, err
	}
	return c.finishInteger(r)
}

// SRem issues SREM key member..., returning the number of members removed.
func (c *Connection) SRem(key string, members ...[]byte) (int64, error) {
	if err := c.checkCommandAllowed("SREM"); err != nil {
		return 0, err
	}
	args := make([]interface{}, 1+len(members))
	args[0] = key
	for i, m := range members {
		args[1+i] = m
	}
	req := newCommand("SREM", args...)
	r, err := c.exchange(req)
	if err != nil {
		return 0, err
	}
	return c.finishInteger(r)
}

// SMembers issues SMEMBERS key.
func (c *Connection) SMembers(key string) ([][]byte, error) {
	if err := c.checkCommandAllowed("SMEMBERS"); err != nil {
		return nil, err
	}
	req := newCommand("SMEMBERS", key)
	r, err := c.exchange(req)
	if err != nil {
		return nil, err
	}
	return c.finishBytesArray(r)
}

// SIsMember issues SISMEMBER key member.
func (c *Connection) SIsMember(key string, member []byte) (bool, error) {
	if err := c.checkCommandAllowed("SISMEMBER"); err != nil {
		return false, err
	}
	req := newCommand("SISMEMBER", key, member)
	r, err := c.exchange(req)
	if err != nil {
		return false, err
	}
	return c.finishBool(r)
}

// SCard issues SCARD key.
func (c *Connection) SCard(key string) (int64, error) {
	if err := c.checkCommandAllowed("SCARD"); err != nil {
		return 0, err
	}
	req := newCommand("SCARD", key)
	r, err := c.exchange(req)
	if err != nil {
		return 0, err
	}
	return c.finishInteger(r)
}

// SInter issues SINTER key...
func (c *Connection) SInter(keys ...string) ([][]byte, error) {
	return c.setOp("SINTER", keys...)
}

// SUnion issues SUNION key...
func (c *Connection) SUnion(keys ...string) ([][]byte, error) {
	return c.setOp("SUNION", keys...)
}

// SDiff issues SDIFF key...
func (c *Connection) SDiff(keys ...string) ([][]byte, error) {
	return c.setOp("SDIFF", keys...)
}

func (c *Connection) setOp(name string, keys ...string) ([][]byte, error) {
	if err := c.checkCommandAllowed(name); err != nil {
		return nil, err
	}
	args := make([]interface{}, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	req := newCommand(name, args...)
	r, err := c.exchange(req)
	if err != nil {
		return nil, err
	}
	return c.finishBytesArray(r)
}
