package rmutex

import (
	"bufio"
	"context"
	"io"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goredis "github.com/cloudshard/goredis"
)

// lockServer speaks just enough RESP to exercise the SETNX/EXPIRE acquire
// path and the SCRIPT LOAD / EVALSHA release path against a single in-memory
// lock slot.
func lockServer(t *testing.T) goredis.ConnectionSpec {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	const sha = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		r := bufio.NewReader(conn)
		var holder string
		for {
			args, err := readLockCommand(r)
			if err != nil {
				return
			}
			var reply string
			switch args[0] {
			case "SETNX":
				if holder == "" {
					holder = args[2]
					reply = ":1\r\n"
				} else {
					reply = ":0\r\n"
				}
			case "EXPIRE":
				reply = ":1\r\n"
			case "SCRIPT":
				reply = "$40\r\n" + sha + "\r\n"
			case "EVALSHA", "EVAL":
				if holder == args[len(args)-1] {
					holder = ""
					reply = ":1\r\n"
				} else {
					reply = ":0\r\n"
				}
			default:
				reply = "-ERR unknown command\r\n"
			}
			if _, err := conn.Write([]byte(reply)); err != nil {
				return
			}
		}
	}()

	port := ln.Addr().(*net.TCPAddr).Port
	return goredis.ConnectionSpec{Host: "127.0.0.1", Port: uint16(port)}
}

func readLockCommand(r *bufio.Reader) ([]string, error) {
	header, err := r.ReadString('\n')
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(header[1:]))
	if err != nil {
		return nil, err
	}
	args := make([]string, n)
	for i := range args {
		sizeLine, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		size, err := strconv.Atoi(strings.TrimSpace(sizeLine[1:]))
		if err != nil {
			return nil, err
		}
		buf := make([]byte, size+2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		args[i] = string(buf[:size])
	}
	return args, nil
}

func TestMutexExclusion(t *testing.T) {
	spec := lockServer(t)
	conn, err := goredis.Connect(spec)
	require.NoError(t, err)
	defer conn.Disconnect()

	ctx := context.Background()
	a := New(conn, "L", "T1")
	b := New(conn, "L", "T2")

	require.NoError(t, a.Acquire(ctx, 2*time.Second, 10*time.Second))

	// B cannot get in while A holds the lock.
	err = b.Acquire(ctx, 200*time.Millisecond, 10*time.Second)
	assert.ErrorIs(t, err, ErrTimeout)

	require.NoError(t, a.Release(ctx))

	// Releasing a lock A no longer holds stays silent.
	require.NoError(t, a.Release(ctx))

	require.NoError(t, b.Acquire(ctx, time.Second, 10*time.Second))
	require.NoError(t, b.Release(ctx))
}

func TestWithMutexReleasesOnBodyError(t *testing.T) {
	spec := lockServer(t)
	conn, err := goredis.Connect(spec)
	require.NoError(t, err)
	defer conn.Disconnect()

	sentinel := assert.AnError
	err = WithMutex(conn, "L", time.Second, 10*time.Second, func() error {
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	// The lock was released despite the body failure.
	m := New(conn, "L", NewToken())
	require.NoError(t, m.Acquire(context.Background(), time.Second, 10*time.Second))
}
