package redis

// Eval issues EVAL script numkeys key... arg... The reply shape is
// whatever the script returns, so it passes through as a Reply; a top-level
// error reply is also returned as a ServerError.
func (c *Connection) Eval(script string, keys []string, args ...[]byte) (Reply, error) {
	if err := c.checkCommandAllowed("EVAL"); err != nil {
		return Reply{}, err
	}
	req := scriptRequest("EVAL", script, keys, args)
	r, err := c.exchange(req)
	if err != nil {
		return Reply{}, err
	}
	return c.finishReply(r)
}

// EvalSha issues EVALSHA sha1 numkeys key... arg...
func (c *Connection) EvalSha(sha1 string, keys []string, args ...[]byte) (Reply, error) {
	if err := c.checkCommandAllowed("EVALSHA"); err != nil {
		return Reply{}, err
	}
	req := scriptRequest("EVALSHA", sha1, keys, args)
	r, err := c.exchange(req)
	if err != nil {
		return Reply{}, err
	}
	return c.finishReply(r)
}

// ScriptLoad issues SCRIPT LOAD script, returning its SHA1 for later
// EVALSHA calls.
func (c *Connection) ScriptLoad(script string) (string, error) {
	if err := c.checkCommandAllowed("SCRIPT"); err != nil {
		return "", err
	}
	req := newCommand("SCRIPT", "LOAD", script)
	r, err := c.exchange(req)
	if err != nil {
		return "", err
	}
	s, _, err := c.finishBulkString(r)
	return s, err
}

func scriptRequest(cmd, script string, keys []string, args [][]byte) *request {
	req := newRequest(3 + len(keys) + len(args))
	req.addString(cmd)
	req.addString(script)
	req.addDecimal(int64(len(keys)))
	for _, k := range keys {
		req.addString(k)
	}
	for _, a := range args {
		req.addBytes(a)
	}
	return req
}
