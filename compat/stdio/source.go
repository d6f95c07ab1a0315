package stdio

import (
	stderrors "errors"
	"io"
	"syscall"

	"github.com/wippyai/pollio"
	"github.com/wippyai/pollio/errors"
)

// Source presents an io.Reader as a pollio.Reader.
//
// Data returned together with an error is delivered first and the error is
// reported by the next poll. End of stream is sticky. A reader that returns
// (0, nil) or EAGAIN has nothing to give yet, so the poll is Pending and the
// waker is fired at once.
type Source struct {
	r   io.Reader
	err error
	eof bool
}

func NewSource(r io.Reader) *Source {
	return &Source{r: r}
}

func (s *Source) PollRead(cx *pollio.Context, p []byte) pollio.Poll[int] {
	if s.eof || len(p) == 0 {
		return pollio.Ready(0)
	}
	if s.err != nil {
		err := s.err
		s.err = nil
		return pollio.Fail[int](err)
	}

	n, err := s.r.Read(p)
	if n > 0 {
		n = pollio.CheckCount(errors.OpCompat, n, len(p))
		switch {
		case err == nil, wouldBlock(err):
		case stderrors.Is(err, io.EOF):
			s.eof = true
		default:
			s.err = err
		}
		return pollio.Ready(n)
	}

	switch {
	case err == nil, wouldBlock(err):
		cx.Wake()
		return pollio.Pending[int]()
	case stderrors.Is(err, io.EOF):
		s.eof = true
		return pollio.Ready(0)
	default:
		return pollio.Fail[int](err)
	}
}

// Sink presents an io.Writer as a pollio.Writer.
//
// Flush calls the writer's Flush method when it has one. Close flushes and
// then closes the writer if it is an io.Closer; later closes do nothing.
type Sink struct {
	w      io.Writer
	err    error
	closed bool
}

func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

func (s *Sink) PollWrite(cx *pollio.Context, p []byte) pollio.Poll[int] {
	if s.closed {
		return pollio.Fail[int](errors.Closed(errors.OpWrite, "sink"))
	}
	if s.err != nil {
		err := s.err
		s.err = nil
		return pollio.Fail[int](err)
	}
	if len(p) == 0 {
		return pollio.Ready(0)
	}

	n, err := s.w.Write(p)
	if n > 0 {
		n = pollio.CheckCount(errors.OpCompat, n, len(p))
		if err != nil && !wouldBlock(err) {
			s.err = err
		}
		return pollio.Ready(n)
	}
	if err == nil || wouldBlock(err) {
		cx.Wake()
		return pollio.Pending[int]()
	}
	return pollio.Fail[int](err)
}

func (s *Sink) PollFlush(cx *pollio.Context) pollio.Poll[struct{}] {
	if s.closed {
		return pollio.Done()
	}
	if f, ok := s.w.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			if wouldBlock(err) {
				cx.Wake()
				return pollio.Pending[struct{}]()
			}
			return pollio.Fail[struct{}](err)
		}
	}
	return pollio.Done()
}

func (s *Sink) PollClose(cx *pollio.Context) pollio.Poll[struct{}] {
	if s.closed {
		return pollio.Done()
	}
	if p := s.PollFlush(cx); p.IsPending() || p.Err() != nil {
		return p
	}
	s.closed = true
	if c, ok := s.w.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return pollio.Fail[struct{}](err)
		}
	}
	return pollio.Done()
}

func wouldBlock(err error) bool {
	return stderrors.Is(err, syscall.EAGAIN)
}
