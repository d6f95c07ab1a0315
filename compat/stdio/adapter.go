package stdio

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/wippyai/pollio"
	"github.com/wippyai/pollio/errors"
)

// Reader presents a pollio.Reader as a blocking io.Reader. Each Read parks
// the calling goroutine until the stream makes progress or ctx is done.
type Reader struct {
	ctx    context.Context
	r      pollio.Reader
	parker *pollio.Parker
	cx     *pollio.Context
}

func NewReader(ctx context.Context, r pollio.Reader) *Reader {
	p := pollio.NewParker()
	return &Reader{ctx: ctx, r: r, parker: p, cx: pollio.NewContext(p)}
}

func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for {
		res := r.r.PollRead(r.cx, p)
		if res.IsReady() {
			if err := res.Err(); err != nil {
				return 0, box(err)
			}
			n := pollio.CheckCount(errors.OpCompat, res.Value(), len(p))
			if n == 0 {
				return 0, io.EOF
			}
			return n, nil
		}
		if err := r.parker.Park(r.ctx); err != nil {
			return 0, err
		}
	}
}

// Writer presents a pollio.Writer as a blocking io.WriteCloser with Flush.
type Writer struct {
	ctx    context.Context
	w      pollio.Writer
	parker *pollio.Parker
	cx     *pollio.Context
}

func NewWriter(ctx context.Context, w pollio.Writer) *Writer {
	p := pollio.NewParker()
	return &Writer{ctx: ctx, w: w, parker: p, cx: pollio.NewContext(p)}
}

// Write writes all of p. A stream that accepts nothing fails with an error
// matching io.ErrShortWrite.
func (w *Writer) Write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		res := w.w.PollWrite(w.cx, p[written:])
		if res.IsPending() {
			if err := w.parker.Park(w.ctx); err != nil {
				return written, err
			}
			continue
		}
		if err := res.Err(); err != nil {
			return written, box(err)
		}
		n := pollio.CheckCount(errors.OpCompat, res.Value(), len(p)-written)
		if n == 0 {
			return written, errors.WriteZero(errors.OpCompat, int64(written), len(p)-written)
		}
		written += n
	}
	return written, nil
}

func (w *Writer) Flush() error {
	return w.wait(w.w.PollFlush)
}

func (w *Writer) Close() error {
	return w.wait(w.w.PollClose)
}

func (w *Writer) wait(poll func(*pollio.Context) pollio.Poll[struct{}]) error {
	for {
		res := poll(w.cx)
		if res.IsReady() {
			return box(res.Err())
		}
		if err := w.parker.Park(w.ctx); err != nil {
			return err
		}
	}
}

func box(err error) error {
	if err == nil {
		return nil
	}
	pollio.Logger().Debug("boxing stream error", zap.Error(err))
	return errors.Box(err)
}
