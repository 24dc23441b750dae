// Package redis implements the RESP wire codec, the request/response
// pipeline over a single TCP (or Unix domain socket) connection, and the
// command/pub-sub/transaction/scripting facades of a Redis client.
//
// Package redis provides Redis service access.
// See <https://redis.io/topics/introduction> for the concept.
package redis

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Fixed Settings
const (
	// IPv6 minimum MTU of 1280 bytes, minus a 40 byte IP header,
	// minus a 32 byte TCP header (with timestamps).
	conservativeMSS = 1208

	// Number of pending requests limit per network protocol.
	queueSizeTCP  = 128
	queueSizeUnix = 512

	// Idle period after a failed network connect attempt.
	reconnectDelay = 100 * time.Millisecond

	// DefaultDialTimeout is applied when no dial timeout, or a zero one, is
	// configured.
	DefaultDialTimeout = time.Second
)

func isUnixAddr(s string) bool {
	return len(s) != 0 && s[0] == '/'
}

func normalizeAddr(s string) string {
	if isUnixAddr(s) {
		return filepath.Clean(s)
	}

	host, port, err := net.SplitHostPort(s)
	if err != nil {
		host = s
	}
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "6379"
	}
	return net.JoinHostPort(host, port)
}

// bufReader is the buffered reader handed off between pipelined callers. A
// nil bufReader receive signals connection loss to the waiting caller.
type bufReader = bufio.Reader

// Connection owns a TCP (or Unix) socket, a buffered reader/writer pair,
// and the reply pipeline. It mediates request/response correlation in
// request/reply mode, and acts as a demultiplexer once a subscription flips
// it into subscriber mode (see pubsub.go).
//
// Multiple goroutines may invoke methods on a Connection simultaneously
// (method calls pipeline per <https://redis.io/topics/pipelining>), but the
// reply sequence itself is drained by exactly one caller at a time.
type Connection struct {
	// Spec is the address this Connection was created with. Read-only.
	Spec ConnectionSpec

	opts options

	// The connection semaphore is used as a write lock.
	connSem chan *redisConn

	// The buffering reader from redisConn is used as a read lock.
	// Command submission holds the write lock [connSem] when sending
	// to readQueue.
	readQueue chan chan<- *bufReader

	// The read routine stops on receive: no more readQueue receives
	// nor network use. The idle state is not set/restored.
	readInterrupt chan struct{}

	// subscriberMode is 1 once a subscription is active; see pubsub.go.
	subscriberMode int32
	subCount       int32
	stream         chan Reply
	streamDone     chan struct{}

	txn txnState // transaction.go
}

type redisConn struct {
	net.Conn       // nil when offline
	offline  error // reason for connection absence

	// The token is nil when a read routine is using it.
	idle *bufReader
}

// Connect opens a TCP (or, for a spec.Host beginning with "/", a Unix
// domain socket) connection to spec and returns the managed Connection.
// The first dial attempt is synchronous: a failure is returned immediately,
// wrapped as ErrConnectTimeout when it was a timeout. Subsequent transient
// failures (e.g. a server restart) are retried automatically in the
// background for the lifetime of the Connection.
func Connect(spec ConnectionSpec, opts ...Option) (*Connection, error) {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	addr := spec.Addr()
	queueSize := queueSizeTCP
	if isUnixAddr(addr) {
		queueSize = queueSizeUnix
	}

	c := &Connection{
		Spec:          spec,
		opts:          o,
		connSem:       make(chan *redisConn, 1),
		readQueue:     make(chan chan<- *bufReader, queueSize),
		readInterrupt: make(chan struct{}),
	}

	conn, reader, err := c.dial(addr)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", ErrConnectTimeout, err)
		}
		return nil, &IOError{Op: "connect", Err: err}
	}
	c.connSem <- &redisConn{Conn: conn, idle: reader}

	c.opts.logger.Info("redis: connected", zap.String("addr", addr))
	if c.opts.recorder != nil {
		c.opts.recorder.ConnectSucceeded()
	}

	return c, nil
}

func isTimeout(err error) bool {
	ne, ok := err.(net.Error)
	return ok && ne.Timeout()
}

func (c *Connection) dial(addr string) (net.Conn, *bufReader, error) {
	network := "tcp"
	if isUnixAddr(addr) {
		network = "unix"
	}
	conn, err := net.DialTimeout(network, addr, c.opts.dialTimeout)
	if err != nil {
		return nil, nil, err
	}
	if tcp, ok := conn.(*net.TCPConn); ok {
		tcp.SetNoDelay(false)
		tcp.SetLinger(0)
	}
	reader := bufio.NewReaderSize(conn, conservativeMSS)

	if err := c.negotiate(conn, reader); err != nil {
		conn.Close()
		return nil, nil, err
	}
	return conn, reader, nil
}

// negotiate runs the connection negotiation: AUTH before any other command
// when a password is configured, then SELECT when a non-zero database is
// configured. No automatic HELLO handshake.
func (c *Connection) negotiate(conn net.Conn, reader *bufReader) error {
	if c.opts.password != "" {
		req := newCommand("AUTH", c.opts.password)
		defer req.free()
		if c.opts.commandTimeout != 0 {
			conn.SetDeadline(time.Now().Add(c.opts.commandTimeout))
			defer conn.SetDeadline(time.Time{})
		}
		if _, err := conn.Write(req.buf.B); err != nil {
			return err
		}
		if err := decodeOK(reader); err != nil {
			return fmt.Errorf("redis: AUTH on new connection: %w", err)
		}
	}

	if c.opts.db != 0 {
		req := newCommand("SELECT", c.opts.db)
		defer req.free()
		if c.opts.commandTimeout != 0 {
			conn.SetDeadline(time.Now().Add(c.opts.commandTimeout))
			defer conn.SetDeadline(time.Time{})
		}
		if _, err := conn.Write(req.buf.B); err != nil {
			return err
		}
		if err := decodeOK(reader); err != nil {
			return fmt.Errorf("redis: SELECT on new connection: %w", err)
		}
	}
	return nil
}

// reconnect redials addr with a short backoff and installs the result into
// connSem, unless the connection has meanwhile been closed. It runs in its
// own goroutine whenever a write or read failure drops the connection.
func (c *Connection) reconnect(addr string) {
	for firstAttempt := true; ; firstAttempt = false {
		if !firstAttempt {
			time.Sleep(reconnectDelay)
		}
		newConn, reader, err := c.dial(addr)

		current := <-c.connSem
		if current.offline == ErrClosed {
			c.connSem <- current
			if newConn != nil {
				newConn.Close()
			}
			return
		}

		if err != nil {
			c.connSem <- &redisConn{offline: fmt.Errorf("redis: offline due %w", err)}
			c.opts.logger.Warn("redis: reconnect failed", zap.Error(err))
			if c.opts.recorder != nil {
				c.opts.recorder.ReconnectFailed()
			}
			continue
		}

		c.connSem <- &redisConn{Conn: newConn, idle: reader}
		c.opts.logger.Info("redis: reconnected", zap.String("addr", addr))
		if c.opts.recorder != nil {
			c.opts.recorder.ReconnectSucceeded()
		}
		return
	}
}

// Disconnect closes the socket. Idempotent; in-flight awaits fail with
// errConnLost.
func (c *Connection) Disconnect() error {
	conn := <-c.connSem // lock write
	if conn.offline == ErrClosed {
		c.connSem <- conn // redundant invocation
		return nil
	}

	c.connSem <- &redisConn{offline: ErrClosed} // stop command submission

	c.haltReceive(conn)
	c.cancelQueue()
	c.closeStream()

	c.opts.logger.Info("redis: disconnected", zap.String("addr", c.Spec.Addr()))

	if conn.Conn != nil {
		return conn.Close()
	}
	return nil
}

// WithConnection connects, runs body, and guarantees Disconnect on every
// exit path, including a panic inside body. The body's error and a
// Disconnect failure are combined with go-multierror rather than one
// silently shadowing the other.
func WithConnection(spec ConnectionSpec, body func(*Connection) error, opts ...Option) error {
	conn, err := Connect(spec, opts...)
	if err != nil {
		return err
	}
	return withReleaseCombined(func() error { return body(conn) }, conn.Disconnect)
}

func (c *Connection) cancelQueue() {
	for n := len(c.readQueue); n > 0; n-- {
		(<-c.readQueue) <- (*bufReader)(nil)
	}
}

// exchange sends a request, and then awaits its turn in the pipeline for
// response reception. It is the single private entry point every command
// wrapper in commands_*.go funnels through.
func (c *Connection) exchange(req *request) (*bufReader, error) {
	return c.exchangeExtend(req, 0)
}

// exchangeExtend is exchange with the read deadline stretched by extra, for
// BLPOP-family commands whose reply legitimately takes up to the
// caller-supplied server-side timeout to arrive.
func (c *Connection) exchangeExtend(req *request, extra time.Duration) (*bufReader, error) {
	conn := <-c.connSem // lock write

	if err := conn.offline; err != nil {
		c.connSem <- conn // unlock write
		return nil, err
	}

	var deadline time.Time
	if c.opts.commandTimeout != 0 {
		deadline = time.Now().Add(c.opts.commandTimeout + extra)
		conn.SetWriteDeadline(deadline)
	}

	if _, err := conn.Write(req.buf.B); err != nil {
		go func() {
			c.haltReceive(conn)
			c.cancelQueue()
			conn.Close()
			c.reconnect(c.Spec.Addr())
		}()
		if c.opts.recorder != nil {
			c.opts.recorder.CommandErrored()
		}
		return nil, &IOError{Op: "write", Err: err}
	}

	reader := conn.idle
	if reader != nil {
		conn.idle = nil // we're the read routine now
		req.free()      // receive channel goes unused
	} else {
		c.readQueue <- req.receive
	}

	c.connSem <- conn // unlock write

	if reader == nil {
		reader = <-req.receive
		req.free()
		if reader == nil {
			return nil, errConnLost
		}
	}

	if !deadline.IsZero() {
		conn.SetReadDeadline(deadline)
	}

	if c.opts.recorder != nil {
		c.opts.recorder.CommandIssued()
	}
	return reader, nil
}

// pass hands the buffered reader over to the following command in line. It
// goes idle on the redisConn from connSem when no request is waiting.
func (c *Connection) pass(r *bufReader, err error) {
	switch err {
	case nil, errNull:
		break
	default:
		if _, ok := err.(ServerError); !ok {
			c.dropConnFromRead()
			return
		}
	}

	select {
	case next := <-c.readQueue:
		next <- r
		return
	default:
		break
	}

	select {
	case next := <-c.readQueue:
		next <- r

	case conn := <-c.connSem:
		select {
		case next := <-c.readQueue:
			next <- r // lost race recovery
		default:
			conn.idle = r
		}
		c.connSem <- conn

	case <-c.readInterrupt:
		break // halt accepted; discard r
	}
}

func (c *Connection) dropConnFromRead() {
	for {
		select {
		case <-c.readInterrupt:
			return

		case next := <-c.readQueue:
			next <- (*bufReader)(nil)

		case conn := <-c.connSem:
			if conn.offline != nil {
				if conn.offline == ErrClosed {
					<-c.readInterrupt
				}
				c.connSem <- conn
			} else {
				go func() {
					conn.Close()
					c.cancelQueue()
					c.reconnect(c.Spec.Addr())
				}()
			}
			return
		}
	}
}

func (c *Connection) haltReceive(writeLock *redisConn) {
	if writeLock.offline != nil || writeLock.idle != nil {
		return
	}

	readHandover := make(chan *bufReader)
	select {
	case c.readInterrupt <- struct{}{}:
		break

	case c.readQueue <- readHandover:
		select {
		case c.readInterrupt <- struct{}{}:
			break
		case <-readHandover:
			break
		}
	}
}

func (c *Connection) inSubscriberMode() bool {
	return atomic.LoadInt32(&c.subscriberMode) != 0
}
