package streams

import (
	"context"
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/wippyai/pollio"
	"github.com/wippyai/pollio/errors"
	"github.com/wippyai/pollio/resource"
)

type StreamsHost struct {
	table  *resource.Table
	permit uint64
}

func NewStreamsHost(table *resource.Table) *StreamsHost {
	return &StreamsHost{table: table, permit: DefaultWritePermit}
}

// WithWritePermit sets the check-write budget for output streams created
// afterwards.
func (h *StreamsHost) WithWritePermit(n uint64) *StreamsHost {
	if n > 0 {
		h.permit = n
	}
	return h
}

func (h *StreamsHost) Namespace() string {
	return "wasi:io/streams@0.2.8"
}

// AddInputStream registers r and returns its input-stream handle.
func (h *StreamsHost) AddInputStream(r pollio.Reader) (uint32, error) {
	handle, err := h.table.Insert(resource.KindInputStream, NewInputStream(r))
	return uint32(handle), err
}

// AddOutputStream registers w and returns its output-stream handle.
func (h *StreamsHost) AddOutputStream(w pollio.Writer) (uint32, error) {
	handle, err := h.table.Insert(resource.KindOutputStream, NewOutputStream(w, h.permit))
	return uint32(handle), err
}

func (h *StreamsHost) MethodInputStreamRead(_ context.Context, self uint32, length uint64) ([]byte, *StreamError) {
	in, serr := h.input(self)
	if serr != nil {
		return nil, serr
	}
	defer h.release(self)

	data, _, err := in.read(length)
	if err != nil {
		return nil, h.streamError(err)
	}
	return data, nil
}

func (h *StreamsHost) MethodInputStreamBlockingRead(ctx context.Context, self uint32, length uint64) ([]byte, *StreamError) {
	in, serr := h.input(self)
	if serr != nil {
		return nil, serr
	}
	defer h.release(self)

	data, err := in.blockingRead(ctx, length)
	if err != nil {
		return nil, h.streamError(err)
	}
	return data, nil
}

func (h *StreamsHost) MethodInputStreamSkip(ctx context.Context, self uint32, length uint64) (uint64, *StreamError) {
	data, serr := h.MethodInputStreamRead(ctx, self, length)
	return uint64(len(data)), serr
}

func (h *StreamsHost) MethodInputStreamBlockingSkip(ctx context.Context, self uint32, length uint64) (uint64, *StreamError) {
	data, serr := h.MethodInputStreamBlockingRead(ctx, self, length)
	return uint64(len(data)), serr
}

func (h *StreamsHost) MethodInputStreamSubscribe(_ context.Context, self uint32) uint32 {
	in, ok := resource.Lookup[*InputStream](h.table, resource.Handle(self), resource.KindInputStream)
	if !ok {
		return h.readyPollable()
	}
	return h.subscribe(in.pollable)
}

func (h *StreamsHost) MethodOutputStreamCheckWrite(_ context.Context, self uint32) (uint64, *StreamError) {
	out, serr := h.output(self)
	if serr != nil {
		return 0, serr
	}
	defer h.release(self)

	n, err := out.checkWrite()
	if err != nil {
		return 0, h.streamError(err)
	}
	return n, nil
}

func (h *StreamsHost) MethodOutputStreamWrite(_ context.Context, self uint32, contents []byte) *StreamError {
	out, serr := h.output(self)
	if serr != nil {
		return serr
	}
	defer h.release(self)

	return h.streamError(out.write(contents))
}

func (h *StreamsHost) MethodOutputStreamBlockingWriteAndFlush(ctx context.Context, self uint32, contents []byte) *StreamError {
	out, serr := h.output(self)
	if serr != nil {
		return serr
	}
	defer h.release(self)

	if err := out.waitWritable(ctx); err != nil {
		return h.streamError(err)
	}
	if err := out.write(contents); err != nil {
		return h.streamError(err)
	}
	if err := out.flush(); err != nil {
		return h.streamError(err)
	}
	return h.streamError(out.settle(ctx))
}

func (h *StreamsHost) MethodOutputStreamFlush(_ context.Context, self uint32) *StreamError {
	out, serr := h.output(self)
	if serr != nil {
		return serr
	}
	defer h.release(self)

	return h.streamError(out.flush())
}

func (h *StreamsHost) MethodOutputStreamBlockingFlush(ctx context.Context, self uint32) *StreamError {
	out, serr := h.output(self)
	if serr != nil {
		return serr
	}
	defer h.release(self)

	if err := out.flush(); err != nil {
		return h.streamError(err)
	}
	return h.streamError(out.settle(ctx))
}

func (h *StreamsHost) MethodOutputStreamSubscribe(_ context.Context, self uint32) uint32 {
	out, ok := resource.Lookup[*OutputStream](h.table, resource.Handle(self), resource.KindOutputStream)
	if !ok {
		return h.readyPollable()
	}
	return h.subscribe(out.pollable)
}

func (h *StreamsHost) MethodOutputStreamWriteZeroes(_ context.Context, self uint32, length uint64) *StreamError {
	out, serr := h.output(self)
	if serr != nil {
		return serr
	}
	defer h.release(self)

	if length > out.permit {
		return h.streamError(permitError(length, out.permit))
	}
	return h.streamError(out.write(make([]byte, length)))
}

func (h *StreamsHost) MethodOutputStreamBlockingWriteZeroesAndFlush(ctx context.Context, self uint32, length uint64) *StreamError {
	out, serr := h.output(self)
	if serr != nil {
		return serr
	}
	defer h.release(self)

	if length > out.permit {
		return h.streamError(permitError(length, out.permit))
	}
	if err := out.waitWritable(ctx); err != nil {
		return h.streamError(err)
	}
	if err := out.write(make([]byte, length)); err != nil {
		return h.streamError(err)
	}
	if err := out.flush(); err != nil {
		return h.streamError(err)
	}
	return h.streamError(out.settle(ctx))
}

// MethodOutputStreamSplice moves what src has available right now, bounded
// by length and by what the output stream can take.
func (h *StreamsHost) MethodOutputStreamSplice(_ context.Context, self uint32, src uint32, length uint64) (uint64, *StreamError) {
	out, in, serr := h.pair(self, src)
	if serr != nil {
		return 0, serr
	}
	defer h.release(self)
	defer h.release(src)

	budget, err := out.checkWrite()
	if err != nil {
		return 0, h.streamError(err)
	}
	if budget == 0 {
		return 0, nil
	}
	data, _, err := in.read(min(length, budget))
	if err != nil {
		return 0, h.streamError(err)
	}
	if len(data) == 0 {
		return 0, nil
	}
	if err := out.write(data); err != nil {
		return 0, h.streamError(err)
	}
	return uint64(len(data)), nil
}

func (h *StreamsHost) MethodOutputStreamBlockingSplice(ctx context.Context, self uint32, src uint32, length uint64) (uint64, *StreamError) {
	out, in, serr := h.pair(self, src)
	if serr != nil {
		return 0, serr
	}
	defer h.release(self)
	defer h.release(src)

	if err := out.waitWritable(ctx); err != nil {
		return 0, h.streamError(err)
	}
	data, err := in.blockingRead(ctx, min(length, out.permit))
	if err != nil {
		return 0, h.streamError(err)
	}
	if err := out.write(data); err != nil {
		return 0, h.streamError(err)
	}
	if err := out.settle(ctx); err != nil {
		return 0, h.streamError(err)
	}
	return uint64(len(data)), nil
}

func (h *StreamsHost) ResourceDropInputStream(_ context.Context, self uint32) {
	h.drop(self)
}

func (h *StreamsHost) ResourceDropOutputStream(_ context.Context, self uint32) {
	h.drop(self)
}

func (h *StreamsHost) Register() map[string]any {
	return map[string]any{
		"[method]input-stream.read":          h.MethodInputStreamRead,
		"[method]input-stream.blocking-read": h.MethodInputStreamBlockingRead,
		"[method]input-stream.skip":          h.MethodInputStreamSkip,
		"[method]input-stream.blocking-skip": h.MethodInputStreamBlockingSkip,
		"[method]input-stream.subscribe":     h.MethodInputStreamSubscribe,
		// Output stream methods
		"[method]output-stream.check-write":                     h.MethodOutputStreamCheckWrite,
		"[method]output-stream.write":                           h.MethodOutputStreamWrite,
		"[method]output-stream.blocking-write-and-flush":        h.MethodOutputStreamBlockingWriteAndFlush,
		"[method]output-stream.flush":                           h.MethodOutputStreamFlush,
		"[method]output-stream.blocking-flush":                  h.MethodOutputStreamBlockingFlush,
		"[method]output-stream.subscribe":                       h.MethodOutputStreamSubscribe,
		"[method]output-stream.write-zeroes":                    h.MethodOutputStreamWriteZeroes,
		"[method]output-stream.blocking-write-zeroes-and-flush": h.MethodOutputStreamBlockingWriteZeroesAndFlush,
		"[method]output-stream.splice":                          h.MethodOutputStreamSplice,
		"[method]output-stream.blocking-splice":                 h.MethodOutputStreamBlockingSplice,
		// Resource destructors
		"[resource-drop]input-stream":  h.ResourceDropInputStream,
		"[resource-drop]output-stream": h.ResourceDropOutputStream,
	}
}

func (h *StreamsHost) input(self uint32) (*InputStream, *StreamError) {
	v, err := h.table.Borrow(resource.Handle(self), resource.KindInputStream)
	if err != nil {
		return nil, h.borrowError(err)
	}
	return v.(*InputStream), nil
}

func (h *StreamsHost) output(self uint32) (*OutputStream, *StreamError) {
	v, err := h.table.Borrow(resource.Handle(self), resource.KindOutputStream)
	if err != nil {
		return nil, h.borrowError(err)
	}
	return v.(*OutputStream), nil
}

func (h *StreamsHost) pair(dst, src uint32) (*OutputStream, *InputStream, *StreamError) {
	out, serr := h.output(dst)
	if serr != nil {
		return nil, nil, serr
	}
	in, serr := h.input(src)
	if serr != nil {
		h.release(dst)
		return nil, nil, serr
	}
	return out, in, nil
}

func (h *StreamsHost) release(self uint32) {
	h.table.Release(resource.Handle(self))
}

func (h *StreamsHost) drop(self uint32) {
	if _, err := h.table.Remove(resource.Handle(self)); err != nil {
		pollio.Logger().Debug("stream drop failed", zap.Uint32("handle", self), zap.Error(err))
	}
}

func (h *StreamsHost) subscribe(p *Pollable) uint32 {
	handle, err := h.table.Insert(resource.KindPollable, p)
	if err != nil {
		return 0
	}
	return uint32(handle)
}

func (h *StreamsHost) readyPollable() uint32 {
	return h.subscribe(NewPollable())
}

// borrowError maps a failed borrow. Unknown handles read as closed streams;
// a handle already in use is a failed operation.
func (h *StreamsHost) borrowError(err error) *StreamError {
	if stderrors.Is(err, errors.ErrBorrowed) {
		return h.fail(err)
	}
	return &StreamError{Closed: true}
}

// streamError converts a stream failure into the guest-facing variant.
func (h *StreamsHost) streamError(err error) *StreamError {
	switch {
	case err == nil:
		return nil
	case isClosed(err):
		return &StreamError{Closed: true}
	default:
		return h.fail(err)
	}
}

func (h *StreamsHost) fail(err error) *StreamError {
	handle, _ := h.table.Insert(resource.KindError, NewErrorResource(err))
	return &StreamError{LastOpFailed: true, Err: err, ErrorHandle: uint32(handle)}
}

func permitError(length, permit uint64) error {
	return errors.New(errors.OpHost, errors.KindBadCount).
		Detail("write of %d bytes exceeds permit of %d", length, permit).
		Build()
}
