package redis

import (
	"errors"
	"fmt"
)

// ErrClosed rejects command execution after Connection.Disconnect.
var ErrClosed = errors.New("redis: client closed")

// errConnLost signals connection loss to a pending response.
var errConnLost = errors.New("redis: connection lost while awaiting response")

// errProtocol signals invalid RESP reception.
var errProtocol = errors.New("redis: protocol violation")

// errNull represents the null bulk/array reply at the decode layer.
var errNull = errors.New("redis: null")

// ErrConnectTimeout is returned when TCP establishment did not finish in time.
var ErrConnectTimeout = errors.New("redis: connect timeout")

// ErrSubscriberMode is returned when a non pub/sub command is issued on a
// connection that has an active subscription.
var ErrSubscriberMode = errors.New("redis: command not allowed in subscriber mode")

// ErrNotSubscribed rejects UNSUBSCRIBE/PUNSUBSCRIBE on a connection with no
// active subscription; the acknowledgement frames would otherwise land in
// the request/reply pipeline with no consumer.
var ErrNotSubscribed = errors.New("redis: connection has no active subscription")

// ServerError is a "-ERR ..."-shaped reply sent by the server. It is not
// fatal to the connection: the connection remains usable for the next call.
type ServerError string

// Error honors the error interface.
func (e ServerError) Error() string {
	return fmt.Sprintf("redis: server error %q", string(e))
}

// Prefix returns the first word, which represents the error kind, e.g.
// "NOSCRIPT" or "EXECABORT".
func (e ServerError) Prefix() string {
	s := string(e)
	for i, r := range s {
		if r == ' ' {
			return s[:i]
		}
	}
	return s
}

// UnexpectedReplyError signals a reply shape mismatch against a command's
// contract. It carries the raw reply for diagnostics; such errors indicate
// library/server version skew rather than connection failure.
type UnexpectedReplyError struct {
	Command string
	Reply   Reply
}

func (e *UnexpectedReplyError) Error() string {
	return fmt.Sprintf("redis: unexpected reply to %s: %#v", e.Command, e.Reply)
}

// UnrecognizedFrameError signals that the codec could not parse a byte
// sequence as a RESP frame. Fatal to the connection.
type UnrecognizedFrameError struct {
	Context string
	Byte    byte
}

func (e *UnrecognizedFrameError) Error() string {
	return fmt.Sprintf("%s: unrecognized RESP tag %q", e.Context, e.Byte)
}

func (e *UnrecognizedFrameError) Unwrap() error { return errProtocol }

// IOError wraps a transport-level failure (EOF mid-reply, write failure).
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string { return fmt.Sprintf("redis: %s: %v", e.Op, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }
