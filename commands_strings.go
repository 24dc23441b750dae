package redis

// Set issues SET key value. Expects Status "OK".
func (c *Connection) Set(key string, value []byte) error {
	if err := c.checkCommandAllowed("SET"); err != nil {
		return err
	}
	req := newCommand("SET", key, value)
	r, err := c.exchange(req)
	if err != nil {
		return err
	}
	return c.finishOK(r)
}

// SetEx issues SET key value with a second-resolution expiry in one round
// trip (SETEX).
func (c *Connection) SetEx(key string, value []byte, seconds int64) error {
	if err := c.checkCommandAllowed("SETEX"); err != nil {
		return err
	}
	req := newCommand("SETEX", key, seconds, value)
	r, err := c.exchange(req)
	if err != nil {
		return err
	}
	return c.finishOK(r)
}

// PSetEx is SetEx with a millisecond-resolution expiry.
func (c *Connection) PSetEx(key string, value []byte, millis int64) error {
	if err := c.checkCommandAllowed("PSETEX"); err != nil {
		return err
	}
	req := newCommand("PSETEX", key, millis, value)
	r, err := c.exchange(req)
	if err != nil {
		return err
	}
	return c.finishOK(r)
}

// SetNX issues SETNX key value: true when the key was set (it did not
// exist), false otherwise.
func (c *Connection) SetNX(key string, value []byte) (bool, error) {
	if err := c.checkCommandAllowed("SETNX"); err != nil {
		return false, err
	}
	req := newCommand("SETNX", key, value)
	r, err := c.exchange(req)
	if err != nil {
		return false, err
	}
	return c.finishBool(r)
}

// Get issues GET key. A missing key returns ("", false, nil), distinct from
// a present empty value ("", true, nil).
func (c *Connection) Get(key string) (string, bool, error) {
	if err := c.checkCommandAllowed("GET"); err != nil {
		return "", false, err
	}
	req := newCommand("GET", key)
	r, err := c.exchange(req)
	if err != nil {
		return "", false, err
	}
	return c.finishBulkString(r)
}

// GetSet issues GETSET key value, returning the previous value.
func (c *Connection) GetSet(key string, value []byte) (string, bool, error) {
	if err := c.checkCommandAllowed("GETSET"); err != nil {
		return "", false, err
	}
	req := newCommand("GETSET", key, value)
	r, err := c.exchange(req)
	if err != nil {
		return "", false, err
	}
	return c.finishBulkString(r)
}

// MGet issues MGET key... Each result element is nil for a missing key,
// distinct from a present empty value.
func (c *Connection) MGet(keys ...string) ([][]byte, error) {
	if err := c.checkCommandAllowed("MGET"); err != nil {
		return nil, err
	}
	args := make([]interface{}, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	req := newCommand("MGET", args...)
	r, err := c.exchange(req)
	if err != nil {
		return nil, err
	}
	return c.finishBytesArray(r)
}

// MSet issues MSET key value key value ... Expects Status "OK".
func (c *Connection) MSet(pairs map[string][]byte) error {
	if err := c.checkCommandAllowed("MSET"); err != nil {
		return err
	}
	args := make([]interface{}, 0, len(pairs)*2)
	for k, v := range pairs {
		args = append(args, k, v)
	}
	req := newCommand("MSET", args...)
	r, err := c.exchange(req)
	if err != nil {
		return err
	}
	return c.finishOK(r)
}

// Incr issues INCR key.
func (c *Connection) Incr(key string) (int64, error) {
	if err := c.checkCommandAllowed("INCR"); err != nil {
		return 0, err
	}
	req := newCommand("INCR", key)
	r, err := c.exchange(req)
	if err != nil {
		return 0, err
	}
	return c.finishInteger(r)
}

// IncrBy issues INCRBY key n. Signed 64-bit; the counter can exceed 32
// bits.
func (c *Connection) IncrBy(key string, n int64) (int64, error) {
	if err := c.checkCommandAllowed("INCRBY"); err != nil {
		return 0, err
	}
	req := newCommand("INCRBY", key, n)
	r, err := c.exchange(req)
	if err != nil {
		return 0, err
	}
	return c.finishInteger(r)
}

// IncrByFloat issues INCRBYFLOAT key n. The reply arrives as a bulk string;
// the caller parses it as a decimal float (strconv.ParseFloat).
func (c *Connection) IncrByFloat(key string, n float64) (string, error) {
	if err := c.checkCommandAllowed("INCRBYFLOAT"); err != nil {
		return "", err
	}
	req := newCommand("INCRBYFLOAT", key, n)
	r, err := c.exchange(req)
	if err != nil {
		return "", err
	}
	s, _, err := c.finishBulkString(r)
	return s, err
}

// Append issues APPEND key value, returning the new string length.
func (c *Connection) Append(key string, value []byte) (int64, error) {
	if err := c.checkCommandAllowed("APPEND"); err != nil {
		return 0, err
	}
	req := newCommand("APPEND", key, value)
	r, err := c.exchange(req)
	if err != nil {
		return 0, err
	}
	return c.finishInteger(r)
}

// StrLen issues STRLEN key.
func (c *Connection) StrLen(key string) (int64, error) {
	if err := c.checkCommandAllowed("STRLEN"); err != nil {
		return 0, err
	}
	req := newCommand("STRLEN", key)
	r, err := c.exchange(req)
	if err != nil {
		return 0, err
	}
	return c.finishInteger(r)
}

// GetBit issues GETBIT key offset.
func (c *Connection) GetBit(key string, offset int64) (int64, error) {
	if err := c.checkCommandAllowed("GETBIT"); err != nil {
		return 0, err
	}
	req := newCommand("GETBIT", key, offset)
	r, err := c.exchange(req)
	if err != nil {
		return 0, err
	}
	return c.finishInteger(r)
}

// SetBit issues SETBIT key offset value, returning the previous bit.
func (c *Connection) SetBit(key string, offset int64, value int) (int64, error) {
	if err := c.checkCommandAllowed("SETBIT"); err != nil {
		return 0, err
	}
	req := newCommand("SETBIT", key, offset, value)
	r, err := c.exchange(req)
	if err != nil {
		return 0, err
	}
	return c.finishInteger(r)
}

// BitCount issues BITCOUNT key.
func (c *Connection) BitCount(key string) (int64, error) {
	if err := c.checkCommandAllowed("BITCOUNT"); err != nil {
		return 0, err
	}
	req := newCommand("BITCOUNT", key)
	r, err := c.exchange(req)
	if err != nil {
		return 0, err
	}
	return c.finishInteger(r)
}

// BitOpDo issues BITOP op destKey srcKey...
func (c *Connection) BitOpDo(op BitOp, destKey string, srcKeys ...string) (int64, error) {
	if err := c.checkCommandAllowed("BITOP"); err != nil {
		return 0, err
	}
	args := make([]interface{}, 0, 2+len(srcKeys))
	args = append(args, op, destKey)
	for _, k := range srcKeys {
		args = append(args, k)
	}
	req := newCommand("BITOP", args...)
	r, err := c.exchange(req)
	if err != nil {
		return 0, err
	}
	return c.finishInteger(r)
}
