package wasifile

import (
	experimentalsys "github.com/tetratelabs/wazero/experimental/sys"

	"github.com/wippyai/pollio"
	"github.com/wippyai/pollio/errors"
)

// Stream presents a sys.File as a pollio.Reader and pollio.Writer.
// Errors are the file's Errno values, unwrapped.
type Stream struct {
	f      experimentalsys.File
	closed bool
}

func NewStream(f experimentalsys.File) *Stream {
	return &Stream{f: f}
}

func (s *Stream) PollRead(cx *pollio.Context, p []byte) pollio.Poll[int] {
	if s.closed {
		return pollio.Fail[int](errors.Closed(errors.OpRead, "file"))
	}
	if len(p) == 0 {
		return pollio.Ready(0)
	}
	n, errno := s.f.Read(p)
	return complete(cx, errors.OpRead, n, len(p), errno)
}

func (s *Stream) PollWrite(cx *pollio.Context, p []byte) pollio.Poll[int] {
	if s.closed {
		return pollio.Fail[int](errors.Closed(errors.OpWrite, "file"))
	}
	if len(p) == 0 {
		return pollio.Ready(0)
	}
	n, errno := s.f.Write(p)
	return complete(cx, errors.OpWrite, n, len(p), errno)
}

// PollFlush syncs the file. Files that cannot be synced, such as pipes and
// sockets, have nothing to flush.
func (s *Stream) PollFlush(cx *pollio.Context) pollio.Poll[struct{}] {
	if s.closed {
		return pollio.Done()
	}
	switch errno := s.f.Sync(); errno {
	case 0, experimentalsys.ENOSYS, experimentalsys.EINVAL, experimentalsys.EBADF:
		return pollio.Done()
	case experimentalsys.EAGAIN, experimentalsys.EINTR:
		cx.Wake()
		return pollio.Pending[struct{}]()
	default:
		return pollio.Fail[struct{}](errno)
	}
}

func (s *Stream) PollClose(*pollio.Context) pollio.Poll[struct{}] {
	if s.closed {
		return pollio.Done()
	}
	s.closed = true
	if errno := s.f.Close(); errno != 0 {
		return pollio.Fail[struct{}](errno)
	}
	return pollio.Done()
}

// File returns the wrapped file.
func (s *Stream) File() experimentalsys.File {
	return s.f
}

func complete(cx *pollio.Context, op errors.Op, n, size int, errno experimentalsys.Errno) pollio.Poll[int] {
	switch errno {
	case 0:
		return pollio.Ready(pollio.CheckCount(op, n, size))
	case experimentalsys.EAGAIN, experimentalsys.EINTR:
		if n > 0 {
			return pollio.Ready(pollio.CheckCount(op, n, size))
		}
		cx.Wake()
		return pollio.Pending[int]()
	default:
		return pollio.Fail[int](errno)
	}
}
