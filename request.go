package redis

import (
	"strconv"

	"github.com/valyala/bytebufferpool"
)

// request holds an encoded RESP array-of-bulk-strings and the channel its
// caller waits on for the read-lock handover.
type request struct {
	buf     *bytebufferpool.ByteBuffer
	receive chan *bufReader
}

var requestPool bytebufferpool.Pool

// newRequest starts encoding a command: argc is the number of bulk-string
// arguments that follow via addString/addBytes/addDecimal.
func newRequest(argc int) *request {
	buf := requestPool.Get()
	buf.B = append(buf.B, '*')
	buf.B = strconv.AppendInt(buf.B, int64(argc), 10)
	buf.B = append(buf.B, '\r', '\n')
	return &request{buf: buf, receive: make(chan *bufReader, 1)}
}

func (req *request) addBytes(b []byte) {
	req.buf.B = append(req.buf.B, '$')
	req.buf.B = strconv.AppendInt(req.buf.B, int64(len(b)), 10)
	req.buf.B = append(req.buf.B, '\r', '\n')
	req.buf.B = append(req.buf.B, b...)
	req.buf.B = append(req.buf.B, '\r', '\n')
}

func (req *request) addString(s string) {
	req.buf.B = append(req.buf.B, '$')
	req.buf.B = strconv.AppendInt(req.buf.B, int64(len(s)), 10)
	req.buf.B = append(req.buf.B, '\r', '\n')
	req.buf.B = append(req.buf.B, s...)
	req.buf.B = append(req.buf.B, '\r', '\n')
}

func (req *request) addDecimal(n int64) {
	req.addString(strconv.FormatInt(n, 10))
}

// free returns the request's buffer to the pool. Callers must not touch req
// afterwards.
func (req *request) free() {
	requestPool.Put(req.buf)
}

// newCommand builds a full request for a command name plus a variadic list
// of heterogeneous arguments, coerced to bulk strings via arg.go.
func newCommand(name string, args ...interface{}) *request {
	req := newRequest(1 + len(args))
	req.addString(name)
	for _, a := range args {
		req.addBytes(argBytes(a))
	}
	return req
}
