package redis

// Auth issues AUTH password. Normally applied automatically at (re)connect
// time via WithAuth (see config.go/negotiate in redis.go); exposed directly
// for callers who want to rotate credentials on a live connection.
func (c *Connection) Auth(password string) error {
	if err := c.checkCommandAllowed("AUTH"); err != nil {
		return err
	}
	req := newCommand("AUTH", password)
	r, err := c.exchange(req)
	if err != nil {
		return err
	}
	return c.finishOK(r)
}

// Select issues SELECT db.
func (c *Connection) Select(db int64) error {
	if err := c.checkCommandAllowed("SELECT"); err != nil {
		return err
	}
	req := newCommand("SELECT", db)
	r, err := c.exchange(req)
	if err != nil {
		return err
	}
	return c.finishOK(r)
}

// Ping issues PING, or PING message when message is non-empty. Allowed in
// subscriber mode.
func (c *Connection) Ping(message string) (string, error) {
	var req *request
	if message == "" {
		req = newCommand("PING")
	} else {
		req = newCommand("PING", message)
	}
	r, err := c.exchange(req)
	if err != nil {
		return "", err
	}
	if c.txn.state == Queueing {
		return "", c.expectQueued(r)
	}
	reply, err := ParseReply(r)
	c.pass(r, err)
	if err != nil {
		return "", err
	}
	switch reply.Kind {
	case KindStatus:
		return reply.Status, nil
	case KindBulk:
		return string(reply.Bulk), nil
	case KindError:
		return "", reply.Err
	default:
		return "", &UnexpectedReplyError{Command: "PING", Reply: reply}
	}
}

// Quit issues QUIT and disconnects. Allowed in subscriber mode.
func (c *Connection) Quit() error {
	req := newCommand("QUIT")
	r, err := c.exchange(req)
	if err != nil {
		return c.Disconnect()
	}
	err = c.finishOK(r)
	_ = c.Disconnect()
	return err
}
