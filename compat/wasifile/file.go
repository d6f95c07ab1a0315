package wasifile

import (
	stderrors "errors"
	"io/fs"

	experimentalsys "github.com/tetratelabs/wazero/experimental/sys"
	"go.uber.org/zap"

	"github.com/wippyai/pollio"
	"github.com/wippyai/pollio/errors"
)

// File presents pollio streams to a guest as a non-blocking sys.File.
//
// Either side may be nil; the missing direction fails with EBADF. Pending
// streams answer EAGAIN, and the waker given to WithWaker is notified once
// they can make progress. Every other sys.File method reports ENOSYS.
type File struct {
	experimentalsys.UnimplementedFile

	r      pollio.Reader
	w      pollio.Writer
	cx     *pollio.Context
	closed bool
}

func NewFile(r pollio.Reader, w pollio.Writer) *File {
	return &File{r: r, w: w, cx: pollio.NoopContext()}
}

// WithWaker routes wake-ups from pending streams to w.
func (f *File) WithWaker(w pollio.Waker) *File {
	f.cx = pollio.NewContext(w)
	return f
}

func (f *File) IsDir() (bool, experimentalsys.Errno) {
	return false, 0
}

func (f *File) Read(buf []byte) (int, experimentalsys.Errno) {
	if f.closed || f.r == nil {
		return 0, experimentalsys.EBADF
	}
	if len(buf) == 0 {
		return 0, 0
	}
	res := f.r.PollRead(f.cx, buf)
	if res.IsPending() {
		return 0, experimentalsys.EAGAIN
	}
	if err := res.Err(); err != nil {
		return 0, toErrno(err)
	}
	return pollio.CheckCount(errors.OpCompat, res.Value(), len(buf)), 0
}

func (f *File) Write(buf []byte) (int, experimentalsys.Errno) {
	if f.closed || f.w == nil {
		return 0, experimentalsys.EBADF
	}
	if len(buf) == 0 {
		return 0, 0
	}
	res := f.w.PollWrite(f.cx, buf)
	if res.IsPending() {
		return 0, experimentalsys.EAGAIN
	}
	if err := res.Err(); err != nil {
		return 0, toErrno(err)
	}
	return pollio.CheckCount(errors.OpCompat, res.Value(), len(buf)), 0
}

func (f *File) Sync() experimentalsys.Errno {
	if f.closed {
		return experimentalsys.EBADF
	}
	if f.w == nil {
		return 0
	}
	return settle(f.w.PollFlush(f.cx))
}

func (f *File) Datasync() experimentalsys.Errno {
	return f.Sync()
}

// Close closes the write side. A second Close is a no-op.
func (f *File) Close() experimentalsys.Errno {
	if f.closed {
		return 0
	}
	if f.w != nil {
		if errno := settle(f.w.PollClose(f.cx)); errno != 0 {
			return errno
		}
	}
	f.closed = true
	return 0
}

func settle(res pollio.Poll[struct{}]) experimentalsys.Errno {
	if res.IsPending() {
		return experimentalsys.EAGAIN
	}
	if err := res.Err(); err != nil {
		return toErrno(err)
	}
	return 0
}

// toErrno converts a stream error to the closest Errno, falling back to EIO.
func toErrno(err error) experimentalsys.Errno {
	var errno experimentalsys.Errno
	if stderrors.As(err, &errno) {
		return errno
	}
	if stderrors.Is(err, fs.ErrClosed) {
		return experimentalsys.EBADF
	}
	if stderrors.Is(err, &errors.Error{Kind: errors.KindUnsupported}) {
		return experimentalsys.ENOSYS
	}
	if errno = experimentalsys.UnwrapOSError(err); errno == 0 {
		errno = experimentalsys.EIO
	}
	pollio.Logger().Debug("stream error mapped to errno", zap.Error(err), zap.String("errno", errno.Error()))
	return errno
}
