package redis

import "errors"

// TransactionState is the per-connection MULTI state machine.
type TransactionState int

const (
	Idle TransactionState = iota
	Queueing
	Aborted
)

func (s TransactionState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Queueing:
		return "Queueing"
	case Aborted:
		return "Aborted"
	default:
		return "Invalid"
	}
}

// ErrTransactionAborted is surfaced from Exec when the server's EXEC reply
// is the null array, meaning a WATCHed key changed before EXEC.
var ErrTransactionAborted = errors.New("redis: transaction aborted (watched key modified)")

// ErrNotQueueing rejects WATCH/UNWATCH issued outside Idle, and MULTI issued
// while already Queueing.
var ErrNotQueueing = errors.New("redis: MULTI/WATCH used from the wrong transaction state")

// ErrTransactionAlreadyAborted rejects EXEC/Queue once the engine has
// locally recorded an EXECABORT-causing failure; no round trip is made.
// DISCARD in that state is rejected with ErrNotQueueing.
var ErrTransactionAlreadyAborted = errors.New("redis: transaction already aborted")

type txnState struct {
	state TransactionState
}

// State reports the connection's current TransactionState.
func (c *Connection) State() TransactionState { return c.txn.state }

// Multi starts a MULTI block (Idle -> Queueing).
func (c *Connection) Multi() error {
	if err := c.checkCommandAllowed("MULTI"); err != nil {
		return err
	}
	if c.txn.state != Idle {
		return ErrNotQueueing
	}
	req := newCommand("MULTI")
	r, err := c.exchange(req)
	if err != nil {
		return err
	}
	if err := decodeOK(r); err != nil {
		c.pass(r, err)
		return err
	}
	c.pass(r, nil)
	c.txn.state = Queueing
	return nil
}

// Queue runs the one-command thunk (expected to call exactly one command
// wrapper) while Queueing. Every command wrapper funnels its reply through
// finish (see finish.go), which substitutes the "QUEUED" status expectation
// for the wrapper's normal reply-shape decode while c.txn.state is
// Queueing; the real result only arrives inside Exec's reply array. A thunk
// failure (including a QUEUED mismatch) aborts the transaction locally; the
// next Exec is then rejected without a round trip.
func (c *Connection) Queue(thunk func() error) error {
	if c.txn.state == Aborted {
		return ErrTransactionAlreadyAborted
	}
	if c.txn.state != Queueing {
		return ErrNotQueueing
	}

	if err := thunk(); err != nil {
		c.txn.state = Aborted
		return err
	}
	return nil
}

// expectQueued is finish's path whenever the connection is Queueing: it
// consumes the server's "+QUEUED" status reply in place of the wrapper's
// usual decode, and aborts the transaction on any mismatch.
func (c *Connection) expectQueued(r *bufReader) error {
	tag, line, err := readCRLF(r)
	if err != nil {
		c.pass(r, err)
		c.txn.state = Aborted
		return err
	}

	switch {
	case tag == '+' && string(line) == "QUEUED":
		c.pass(r, nil)
		return nil

	case tag == '-':
		se := ServerError(line)
		c.pass(r, se)
		c.txn.state = Aborted
		return se

	default:
		reply, perr := replyFromLine(r, tag, line)
		c.pass(r, perr)
		c.txn.state = Aborted
		if perr != nil {
			return perr
		}
		return &UnexpectedReplyError{Command: "<queued>", Reply: reply}
	}
}

// Exec runs EXEC: Queueing -> Idle. The server reply is an Array of the N
// queued results in order, or the null array on a WATCH conflict (surfaced
// as ErrTransactionAborted), or a ServerError (e.g. EXECABORT) which moves
// the engine to Aborted and rejects the next Exec locally.
func (c *Connection) Exec() ([]Reply, error) {
	if c.txn.state == Aborted {
		c.txn.state = Idle
		return nil, ErrTransactionAlreadyAborted
	}
	if c.txn.state != Queueing {
		return nil, ErrNotQueueing
	}

	req := newCommand("EXEC")
	r, err := c.exchange(req)
	if err != nil {
		c.txn.state = Idle
		return nil, err
	}

	reply, perr := ParseReply(r)
	c.pass(r, perr)
	if perr != nil {
		c.txn.state = Idle
		return nil, perr
	}
	if reply.Kind == KindError {
		c.txn.state = Aborted
		return nil, reply.Err
	}
	c.txn.state = Idle
	if reply.Kind != KindArray {
		return nil, &UnexpectedReplyError{Command: "EXEC", Reply: reply}
	}
	if !reply.ArraySet {
		return nil, ErrTransactionAborted
	}
	return reply.Array, nil
}

// Discard runs DISCARD: Queueing -> Idle.
func (c *Connection) Discard() error {
	if c.txn.state != Queueing {
		return ErrNotQueueing
	}
	req := newCommand("DISCARD")
	r, err := c.exchange(req)
	if err != nil {
		return err
	}
	err = decodeOK(r)
	c.pass(r, err)
	c.txn.state = Idle
	return err
}

// Watch marks keys for optimistic-concurrency tracking. Only valid from
// Idle.
func (c *Connection) Watch(keys ...string) error {
	if err := c.checkCommandAllowed("WATCH"); err != nil {
		return err
	}
	if c.txn.state != Idle {
		return ErrNotQueueing
	}
	args := make([]interface{}, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	req := newCommand("WATCH", args...)
	r, err := c.exchange(req)
	if err != nil {
		return err
	}
	err = decodeOK(r)
	c.pass(r, err)
	return err
}

// Unwatch clears all watched keys. Only valid from Idle.
func (c *Connection) Unwatch() error {
	if err := c.checkCommandAllowed("UNWATCH"); err != nil {
		return err
	}
	if c.txn.state != Idle {
		return ErrNotQueueing
	}
	req := newCommand("UNWATCH")
	r, err := c.exchange(req)
	if err != nil {
		return err
	}
	err = decodeOK(r)
	c.pass(r, err)
	return err
}
