package redis

// HSet issues HSET key field value: true when field is new, false when it
// already existed.
func (c *Connection) HSet(key, field string, value []byte) (bool, error) {
	if err := c.checkCommandAllowed("HSET"); err != nil {
		return false, err
	}
	req := newCommand("HSET", key, field, value)
	r, err := c.exchange(req)
	if err != nil {
		return false, err
	}
	return c.finishBool(r)
}

// HGet issues HGET key field.
func (c *Connection) HGet(key, field string) (string, bool, error) {
	if err := c.checkCommandAllowed("HGET"); err != nil {
		return "", false, err
	}
	req := newCommand("HGET", key, field)
	r, err := c.exchange(req)
	if err != nil {
		return "", false, err
	}
	return c.finishBulkString(r)
}

// HMSet issues HMSET key field value ... Expects Status "OK".
func (c *Connection) HMSet(key string, fields map[string][]byte) error {
	if err := c.checkCommandAllowed("HMSET"); err != nil {
		return err
	}
	args := make([]interface{}, 1, 1+len(fields)*2)
	args[0] = key
	for f, v := range fields {
		args = append(args, f, v)
	}
	req := newCommand("HMSET", args...)
	r, err := c.exchange(req)
	if err != nil {
		return err
	}
	return c.finishOK(r)
}

// HMGet issues HMGET key field ...
func (c *Connection) HMGet(key string, fields ...string) ([][]byte, error) {
	if err := c.checkCommandAllowed("HMGET"); err != nil {
		return nil, err
	}
	args := make([]interface{}, 1+len(fields))
	args[0] = key
	for i, f := range fields {
		args[1+i] = f
	}
	req := newCommand("HMGET", args...)
	r, err := c.exchange(req)
	if err != nil {
		return nil, err
	}
	return c.finishBytesArray(r)
}

// HashField is one field/value pair of a hash, as returned by HGetAll.
type HashField struct {
	Field string
	Value []byte
}

// HGetAll issues HGETALL key. Consecutive bulks are flattened into a
// field/value pair list in the server-returned order.
func (c *Connection) HGetAll(key string) ([]HashField, error) {
	if err := c.checkCommandAllowed("HGETALL"); err != nil {
		return nil, err
	}
	req := newCommand("HGETALL", key)
	r, err := c.exchange(req)
	if err != nil {
		return nil, err
	}
	flat, err := c.finishBytesArray(r)
	if err != nil || flat == nil {
		return nil, err
	}
	pairs := make([]HashField, 0, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		pairs = append(pairs, HashField{Field: string(flat[i]), Value: flat[i+1]})
	}
	return pairs, nil
}

// HDel issues HDEL key field... and returns the number of fields removed.
func (c *Connection) HDel(key string, fields ...string) (int64, error) {
	if err := c.checkCommandAllowed("HDEL"); err != nil {
		return 0, err
	}
	args := make([]interface{}, 1+len(fields))
	args[0] = key
	for i, f := range fields {
		args[1+i] = f
	}
	req := newCommand("HDEL", args...)
	r, err := c.exchange(req)
	if err != nil {
		return 0, err
	}
	return c.finishInteger(r)
}

// HExists issues HEXISTS key field.
func (c *Connection) HExists(key, field string) (bool, error) {
	if err := c.checkCommandAllowed("HEXISTS"); err != nil {
		return false, err
	}
	req := newCommand("HEXISTS", key, field)
	r, err := c.exchange(req)
	if err != nil {
		return false, err
	}
	return c.finishBool(r)
}

// HIncrBy issues HINCRBY key field n.
func (c *Connection) HIncrBy(key, field string, n int64) (int64, error) {
	if err := c.checkCommandAllowed("HINCRBY"); err != nil {
		return 0, err
	}
	req := newCommand("HINCRBY", key, field, n)
	r, err := c.exchange(req)
	if err != nil {
		return 0, err
	}
	return c.finishInteger(r)
}

// HKeys issues HKEYS key.
func (c *Connection) HKeys(key string) ([]string, error) {
	if err := c.checkCommandAllowed("HKEYS"); err != nil {
		return nil, err
	}
	req := newCommand("HKEYS", key)
	r, err := c.exchange(req)
	if err != nil {
		return nil, err
	}
	return c.finishStringArray(r)
}

// HVals issues HVALS key.
func (c *Connection) HVals(key string) ([][]byte, error) {
	if err := c.checkCommandAllowed("HVALS"); err != nil {
		return nil, err
	}
	req := newCommand("HVALS", key)
	r, err := c.exchange(req)
	if err != nil {
		return nil, err
	}
	return c.finishBytesArray(r)
}

// HLen issues HLEN key.
func (c *Connection) HLen(key string) (int64, error) {
	if err := c.checkCommandAllowed("HLEN"); err != nil {
		return 0, err
	}
	req := newCommand("HLEN", key)
	r, err := c.exchange(req)
	if err != nil {
		return 0, err
	}
	return c.finishInteger(r)
}
