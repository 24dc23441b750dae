package redis

import "strconv"

// ZAdd issues ZADD key score member.
func (c *Connection) ZAdd(key string, score float64, member []byte) (int64, error) {
	if err := c.checkCommandAllowed("ZADD"); err != nil {
		return 0, err
	}
	req := newCommand("ZADD", key, formatFloat(score), member)
	r, err := c.exchange(req)
	if err != nil {
		return 0, err
	}
	return c.finishInteger(r)
}

// ZScore issues ZSCORE key member.
func (c *Connection) ZScore(key string, member []byte) (string, bool, error) {
	if err := c.checkCommandAllowed("ZSCORE"); err != nil {
		return "", false, err
	}
	req := newCommand("ZSCORE", key, member)
	r, err := c.exchange(req)
	if err != nil {
		return "", false, err
	}
	return c.finishBulkString(r)
}

// ZRange issues ZRANGE key start stop.
func (c *Connection) ZRange(key string, start, stop int64) ([][]byte, error) {
	if err := c.checkCommandAllowed("ZRANGE"); err != nil {
		return nil, err
	}
	req := newCommand("ZRANGE", key, start, stop)
	r, err := c.exchange(req)
	if err != nil {
		return nil, err
	}
	return c.finishBytesArray(r)
}

// ZRangeByScore issues ZRANGEBYSCORE key min max.
func (c *Connection) ZRangeByScore(key string, min, max float64) ([][]byte, error) {
	if err := c.checkCommandAllowed("ZRANGEBYSCORE"); err != nil {
		return nil, err
	}
	req := newCommand("ZRANGEBYSCORE", key, formatFloat(min), formatFloat(max))
	r, err := c.exchange(req)
	if err != nil {
		return nil, err
	}
	return c.finishBytesArray(r)
}

// ZRem issues ZREM key member..., returning the number of members removed.
func (c *Connection) ZRem(key string, members ...[]byte) (int64, error) {
	if err := c.checkCommandAllowed("ZREM"); err != nil {
		return 0, err
	}
	args := make([]interface{}, 1+len(members))
	args[0] = key
	for i, m := range members {
		args[1+i] = m
	}
	req := newCommand("ZREM", args...)
	r, err := c.exchange(req)
	if err != nil {
		return 0, err
	}
	return c.finishInteger(r)
}

// ZCard issues ZCARD key.
func (c *Connection) ZCard(key string) (int64, error) {
	if err := c.checkCommandAllowed("ZCARD"); err != nil {
		return 0, err
	}
	req := newCommand("ZCARD", key)
	r, err := c.exchange(req)
	if err != nil {
		return 0, err
	}
	return c.finishInteger(r)
}

// ZIncrBy issues ZINCRBY key increment member.
func (c *Connection) ZIncrBy(key string, increment float64, member []byte) (string, error) {
	if err := c.checkCommandAllowed("ZINCRBY"); err != nil {
		return "", err
	}
	req := newCommand("ZINCRBY", key, formatFloat(increment), member)
	r, err := c.exchange(req)
	if err != nil {
		return "", err
	}
	s, _, err := c.finishBulkString(r)
	return s, err
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
