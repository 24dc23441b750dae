// Package rmutex implements a distributed mutex on top of a single Redis
// connection, following the classic SETNX-acquire / Lua compare-and-delete
// release pattern.
package rmutex

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	goredis "github.com/cloudshard/goredis"
)

// ErrTimeout is returned by Acquire when the lock could not be obtained
// within atime.
var ErrTimeout = errors.New("rmutex: acquire timeout")

// MutexError wraps an unexpected server-side condition encountered while
// operating the lock (anything other than a plain "not held" outcome).
type MutexError struct {
	Op  string
	Err error
}

func (e *MutexError) Error() string { return "rmutex: " + e.Op + ": " + e.Err.Error() }
func (e *MutexError) Unwrap() error { return e.Err }

// releaseScript performs a compare-and-delete: it only removes the key if
// its value still matches the caller's token, so a holder can never release
// a lock it no longer owns (e.g. after its lease expired and someone else
// acquired it).
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then return redis.call("DEL", KEYS[1]) else return 0 end`

const acquirePollInterval = 100 * time.Millisecond

// Mutex is a named distributed lock bound to one *goredis.Connection. The
// zero value is not usable; construct with New.
type Mutex struct {
	conn *goredis.Connection
	name string
	// token identifies this holder's acquisition so Release never removes
	// a lock acquired by someone else after ours expired.
	token string
	// sha1 memoizes the release script's SHA1 once SCRIPT LOAD succeeds, so
	// repeated Release calls use EVALSHA instead of resending the script
	// body every time.
	sha1 string
}

// New binds a Mutex to name on conn, using token as this holder's identity.
// Pass NewToken() for a fresh random token, or a caller-chosen one to let
// a different process release the lock.
func New(conn *goredis.Connection, name, token string) *Mutex {
	return &Mutex{conn: conn, name: name, token: token}
}

// NewToken mints a fresh opaque lock-holder token.
func NewToken() string {
	return uuid.New().String()
}

// Acquire retries SETNX name token at acquirePollInterval until it
// succeeds or atime elapses (ErrTimeout), then EXPIREs the key for ltime.
// ltime must be at least one second.
func (m *Mutex) Acquire(ctx context.Context, atime, ltime time.Duration) error {
	if ltime < time.Second {
		return &MutexError{Op: "acquire", Err: errors.New("ltime must be at least 1s")}
	}

	deadline := time.Now().Add(atime)
	for {
		ok, err := m.conn.SetNX(m.name, []byte(m.token))
		if err != nil {
			return &MutexError{Op: "acquire", Err: err}
		}
		if ok {
			if _, err := m.conn.Expire(m.name, int64(ltime/time.Second)); err != nil {
				return &MutexError{Op: "acquire", Err: err}
			}
			return nil
		}

		if time.Now().After(deadline) {
			return ErrTimeout
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(acquirePollInterval):
		}
	}
}

// Release runs the compare-and-delete script, loading it once (memoized on
// m) and falling back from EVALSHA to EVAL on a NOSCRIPT server error (the
// script cache was flushed, e.g. by a SCRIPT FLUSH or server restart).
// Releasing a lock this Mutex does not currently hold is a silent success.
func (m *Mutex) Release(ctx context.Context) error {
	if m.sha1 == "" {
		sha1, err := m.conn.ScriptLoad(releaseScript)
		if err != nil {
			return &MutexError{Op: "release", Err: err}
		}
		m.sha1 = sha1
	}

	_, err := m.conn.EvalSha(m.sha1, []string{m.name}, []byte(m.token))
	if err == nil {
		return nil
	}

	var serr goredis.ServerError
	if errors.As(err, &serr) && strings.HasPrefix(serr.Prefix(), "NOSCRIPT") {
		_, err = m.conn.Eval(releaseScript, []string{m.name}, []byte(m.token))
	}
	if err != nil {
		return &MutexError{Op: "release", Err: err}
	}
	return nil
}

// WithMutex acquires name for the duration of body, always releasing on
// exit (including a panic) and combining a body error with a release error
// via go-multierror, mirroring goredis.WithConnection's scoped-acquisition
// pattern.
func WithMutex(conn *goredis.Connection, name string, atime, ltime time.Duration, body func() error) error {
	m := New(conn, name, NewToken())
	if err := m.Acquire(context.Background(), atime, ltime); err != nil {
		return err
	}
	return withReleaseCombined(body, func() error {
		return m.Release(context.Background())
	})
}
