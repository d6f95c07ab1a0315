package streams

import (
	"context"
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/wippyai/pollio"
	"github.com/wippyai/pollio/errors"
)

// DefaultWritePermit is how many bytes check-write allows at once.
const DefaultWritePermit = 65536

// MaxReadLength caps the buffer allocated for a single read.
const MaxReadLength = 65536

// StreamError is the stream-error variant returned to the guest.
type StreamError struct {
	// Err is the failure behind LastOpFailed.
	Err error
	// ErrorHandle is the wasi:io/error resource carrying Err.
	ErrorHandle  uint32
	Closed       bool
	LastOpFailed bool
}

func (e *StreamError) Error() string {
	if e.Closed {
		return "stream closed"
	}
	if e.Err != nil {
		return "stream error: " + e.Err.Error()
	}
	return "stream error"
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// ErrorResource is the payload of last-operation-failed.
type ErrorResource struct {
	err error
}

func NewErrorResource(err error) *ErrorResource {
	return &ErrorResource{err: err}
}

func (e *ErrorResource) ToDebugString() string {
	if e.err == nil {
		return "unknown error"
	}
	return e.err.Error()
}

func (e *ErrorResource) Err() error { return e.err }

// InputStream serves a pollio.Reader as a wasi input-stream.
type InputStream struct {
	r        pollio.Reader
	pollable *Pollable
	cx       *pollio.Context
	eof      bool
}

func NewInputStream(r pollio.Reader) *InputStream {
	p := NewPollable()
	return &InputStream{r: r, pollable: p, cx: pollio.NewContext(p)}
}

func (in *InputStream) Pollable() *Pollable { return in.pollable }

// read polls the reader once. ready is false when the reader is pending.
func (in *InputStream) read(length uint64) (data []byte, ready bool, err error) {
	if in.eof {
		return nil, true, errors.Closed(errors.OpHost, "input stream")
	}
	if length == 0 {
		return []byte{}, true, nil
	}

	buf := make([]byte, min(length, MaxReadLength))
	in.pollable.arm()
	p := in.r.PollRead(in.cx, buf)
	if p.IsPending() {
		return []byte{}, false, nil
	}
	in.pollable.Wake()
	if err := p.Err(); err != nil {
		in.eof = true
		return nil, true, err
	}
	n := pollio.CheckCount(errors.OpHost, p.Value(), len(buf))
	if n == 0 {
		in.eof = true
		return nil, true, errors.Closed(errors.OpHost, "input stream")
	}
	return buf[:n], true, nil
}

func (in *InputStream) blockingRead(ctx context.Context, length uint64) ([]byte, error) {
	for {
		data, ready, err := in.read(length)
		if ready {
			return data, err
		}
		if err := in.pollable.Block(ctx); err != nil {
			return nil, err
		}
	}
}

// OutputStream serves a pollio.Writer as a wasi output-stream.
//
// Bytes handed over by write are copied into a pending buffer and pushed to
// the writer as it accepts them; check-write reports 0 until the buffer and
// any requested flush have drained.
type OutputStream struct {
	w        pollio.Writer
	pollable *Pollable
	cx       *pollio.Context
	pending  []byte
	permit   uint64
	flushing bool
	closed   bool
}

func NewOutputStream(w pollio.Writer, permit uint64) *OutputStream {
	if permit == 0 {
		permit = DefaultWritePermit
	}
	p := NewPollable()
	return &OutputStream{w: w, pollable: p, cx: pollio.NewContext(p), permit: permit}
}

func (out *OutputStream) Pollable() *Pollable { return out.pollable }

// progress pushes pending bytes and any requested flush. done is true once
// both have drained. A failure closes the stream.
func (out *OutputStream) progress() (done bool, err error) {
	out.pollable.arm()
	defer func() {
		if err != nil {
			out.closed = true
			out.pending = nil
			out.pollable.Wake()
		}
	}()

	for len(out.pending) > 0 {
		p := out.w.PollWrite(out.cx, out.pending)
		if p.IsPending() {
			return false, nil
		}
		if err := p.Err(); err != nil {
			return false, err
		}
		n := pollio.CheckCount(errors.OpHost, p.Value(), len(out.pending))
		if n == 0 {
			return false, errors.WriteZero(errors.OpHost, 0, len(out.pending))
		}
		out.pending = out.pending[n:]
	}

	if out.flushing {
		p := out.w.PollFlush(out.cx)
		if p.IsPending() {
			return false, nil
		}
		if err := p.Err(); err != nil {
			return false, err
		}
		out.flushing = false
	}

	out.pollable.Wake()
	return true, nil
}

func (out *OutputStream) checkWrite() (uint64, error) {
	if out.closed {
		return 0, errors.Closed(errors.OpHost, "output stream")
	}
	done, err := out.progress()
	if err != nil || !done {
		return 0, err
	}
	return out.permit, nil
}

func (out *OutputStream) write(contents []byte) error {
	if out.closed {
		return errors.Closed(errors.OpHost, "output stream")
	}
	if uint64(len(out.pending)+len(contents)) > out.permit {
		return permitError(uint64(len(contents)), out.permit-uint64(len(out.pending)))
	}
	out.pending = append(out.pending, contents...)
	_, err := out.progress()
	return err
}

func (out *OutputStream) flush() error {
	if out.closed {
		return errors.Closed(errors.OpHost, "output stream")
	}
	out.flushing = true
	_, err := out.progress()
	return err
}

// settle waits until pending bytes and flushes have drained.
func (out *OutputStream) settle(ctx context.Context) error {
	for {
		done, err := out.progress()
		if err != nil || done {
			return err
		}
		if err := out.pollable.Block(ctx); err != nil {
			return err
		}
	}
}

// waitWritable waits until check-write would allow a write.
func (out *OutputStream) waitWritable(ctx context.Context) error {
	if out.closed {
		return errors.Closed(errors.OpHost, "output stream")
	}
	return out.settle(ctx)
}

// Drop makes a single attempt to close the writer.
func (out *OutputStream) Drop() {
	if out.closed {
		return
	}
	out.closed = true
	if p := out.w.PollClose(pollio.NoopContext()); p.Err() != nil {
		pollio.Logger().Debug("output stream close failed on drop", zap.Error(p.Err()))
	}
}

func isClosed(err error) bool {
	return stderrors.Is(err, errors.ErrClosed)
}
