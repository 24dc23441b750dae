package redis

// finish.go centralizes the "decode expected shape, then hand the read
// lock to the next caller" step shared by every command wrapper in
// commands_*.go. Routing every wrapper through these helpers is what lets
// Queue (transaction.go) make the MULTI-block substitution (consume
// "QUEUED" instead of the command's real reply shape) in one place instead
// of duplicating the check in every wrapper.

func (c *Connection) finishOK(r *bufReader) error {
	if c.txn.state == Queueing {
		return c.expectQueued(r)
	}
	err := decodeOK(r)
	c.pass(r, err)
	return err
}

func (c *Connection) finishInteger(r *bufReader) (int64, error) {
	if c.txn.state == Queueing {
		return 0, c.expectQueued(r)
	}
	n, err := decodeInteger(r)
	c.pass(r, err)
	return n, err
}

func (c *Connection) finishBool(r *bufReader) (bool, error) {
	n, err := c.finishInteger(r)
	return n != 0, err
}

func (c *Connection) finishBulkBytes(r *bufReader) ([]byte, error) {
	if c.txn.state == Queueing {
		return nil, c.expectQueued(r)
	}
	b, err := decodeBulkBytes(r)
	c.pass(r, err)
	return b, err
}

func (c *Connection) finishBulkString(r *bufReader) (string, bool, error) {
	if c.txn.state == Queueing {
		return "", false, c.expectQueued(r)
	}
	s, ok, err := decodeBulkString(r)
	c.pass(r, err)
	return s, ok, err
}

func (c *Connection) finishBytesArray(r *bufReader) ([][]byte, error) {
	if c.txn.state == Queueing {
		return nil, c.expectQueued(r)
	}
	a, err := decodeBytesArray(r)
	c.pass(r, err)
	return a, err
}

func (c *Connection) finishStringArray(r *bufReader) ([]string, error) {
	if c.txn.state == Queueing {
		return nil, c.expectQueued(r)
	}
	a, err := decodeStringArray(r)
	c.pass(r, err)
	return a, err
}

// finishReply is used by EVAL/EVALSHA: the expected reply shape is whatever
// the script returns, so the generic recursive decoder is the only option.
// A top-level error reply is also returned as its ServerError.
func (c *Connection) finishReply(r *bufReader) (Reply, error) {
	if c.txn.state == Queueing {
		err := c.expectQueued(r)
		return Reply{}, err
	}
	reply, err := ParseReply(r)
	c.pass(r, err)
	if err == nil && reply.Kind == KindError {
		return reply, reply.Err
	}
	return reply, err
}
