package pollio

import "github.com/wippyai/pollio/errors"

// Reader is a readable byte source.
//
// PollRead attempts to read into p. On success n bytes are in p[:n] and
// n <= len(p); n == 0 with a non-empty p means end of stream. Pending means
// the waker in cx will be called once data may be available.
type Reader interface {
	PollRead(cx *Context, p []byte) Poll[int]
}

// Writer is a writable byte sink.
//
// PollWrite accepts at most len(p) bytes. PollFlush drains internal
// buffering. PollClose performs an orderly shutdown and is idempotent.
type Writer interface {
	PollWrite(cx *Context, p []byte) Poll[int]
	PollFlush(cx *Context) Poll[struct{}]
	PollClose(cx *Context) Poll[struct{}]
}

// ReadWriter groups the two contracts.
type ReadWriter interface {
	Reader
	Writer
}

// Preparer is implemented by readers that need a say in how fresh capacity
// is prepared before they read into it.
//
// PrepareBuffer readies p and reports whether it zeroed it. A reader that
// always fully overwrites the bytes it reports read may skip the zeroing and
// return false.
type Preparer interface {
	PrepareBuffer(p []byte) bool
}

// Prepare readies capacity that may hold stale bytes for a read from r.
// Unless r opts out through Preparer, p is zeroed.
func Prepare(r Reader, p []byte) bool {
	if pr, ok := r.(Preparer); ok {
		return pr.PrepareBuffer(p)
	}
	clear(p)
	return true
}

// CheckCount panics if a stream reported more bytes than the buffer it was
// given. It returns n for convenience.
func CheckCount(op errors.Op, n, size int) int {
	if n < 0 || n > size {
		panic(errors.BadCount(op, n, size))
	}
	return n
}

// ReadBuffer is a destination with a writable window.
type ReadBuffer interface {
	// Spare returns the unfilled window. It may contain stale bytes.
	Spare() []byte
	// Advance commits n bytes written at the start of Spare.
	Advance(n int)
}

// WriteBuffer is a source of bytes that are consumed as they are written.
type WriteBuffer interface {
	// Remaining returns the bytes not yet consumed.
	Remaining() []byte
	// Consume drops n bytes from the front of Remaining.
	Consume(n int)
}

// PollReadBuf reads from r into the spare room of b.
// A buffer with no spare room completes with 0 without polling r. The count
// is committed to b only after the read succeeds.
func PollReadBuf(cx *Context, r Reader, b ReadBuffer) Poll[int] {
	spare := b.Spare()
	if len(spare) == 0 {
		return Ready(0)
	}
	Prepare(r, spare)

	p := r.PollRead(cx, spare)
	if p.IsPending() || p.Err() != nil {
		return p
	}
	n := CheckCount(errors.OpRead, p.Value(), len(spare))
	b.Advance(n)
	return Ready(n)
}

// PollWriteBuf writes the remaining bytes of b to w.
// An exhausted buffer completes with 0 without polling w. The count is
// consumed from b only after the write succeeds.
func PollWriteBuf(cx *Context, w Writer, b WriteBuffer) Poll[int] {
	rem := b.Remaining()
	if len(rem) == 0 {
		return Ready(0)
	}

	p := w.PollWrite(cx, rem)
	if p.IsPending() || p.Err() != nil {
		return p
	}
	n := CheckCount(errors.OpWrite, p.Value(), len(rem))
	b.Consume(n)
	return Ready(n)
}
