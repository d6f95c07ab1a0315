package wasifile

import (
	stderrors "errors"
	"testing"

	experimentalsys "github.com/tetratelabs/wazero/experimental/sys"

	"github.com/wippyai/pollio"
	"github.com/wippyai/pollio/errors"
	"github.com/wippyai/pollio/internal/testio"
)

var _ experimentalsys.File = (*File)(nil)

func TestFile_Read(t *testing.T) {
	woken := 0
	r := testio.NewReader(testio.Pend(), testio.Chunk("hi"))
	f := NewFile(r, nil).WithWaker(pollio.WakerFunc(func() { woken++ }))
	buf := make([]byte, 4)

	if _, errno := f.Read(buf); errno != experimentalsys.EAGAIN {
		t.Fatalf("expected EAGAIN while pending, got %v", errno)
	}
	if woken != 1 {
		t.Errorf("expected the waker to be handed to the stream, got %d wake-ups", woken)
	}
	n, errno := f.Read(buf)
	if errno != 0 || string(buf[:n]) != "hi" {
		t.Fatalf("unexpected read %d %v", n, errno)
	}
	if n, errno = f.Read(buf); n != 0 || errno != 0 {
		t.Errorf("expected end of stream as (0, 0), got %d %v", n, errno)
	}
	if _, errno := f.Write(buf); errno != experimentalsys.EBADF {
		t.Errorf("expected EBADF for missing write side, got %v", errno)
	}
}

func TestFile_WriteSyncClose(t *testing.T) {
	w := testio.NewWriter(3)
	w.FlushPending = 1
	f := NewFile(nil, w)

	n, errno := f.Write([]byte("hello"))
	if errno != 0 || n != 3 {
		t.Fatalf("expected partial write of 3, got %d %v", n, errno)
	}
	if errno := f.Sync(); errno != experimentalsys.EAGAIN {
		t.Errorf("expected EAGAIN while flush pending, got %v", errno)
	}
	if errno := f.Sync(); errno != 0 {
		t.Errorf("sync: %v", errno)
	}
	if errno := f.Close(); errno != 0 || w.Closes != 1 {
		t.Errorf("close: %v (closes=%d)", errno, w.Closes)
	}
	if errno := f.Close(); errno != 0 || w.Closes != 1 {
		t.Error("second close reached the stream")
	}
	if _, errno := f.Write([]byte("x")); errno != experimentalsys.EBADF {
		t.Errorf("expected EBADF after close, got %v", errno)
	}
}

func TestFile_Unimplemented(t *testing.T) {
	f := NewFile(nil, nil)
	if _, errno := f.Seek(0, 0); errno != experimentalsys.ENOSYS {
		t.Errorf("expected ENOSYS, got %v", errno)
	}
	if dir, errno := f.IsDir(); dir || errno != 0 {
		t.Errorf("expected a non-directory, got %v %v", dir, errno)
	}
}

func TestToErrno(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want experimentalsys.Errno
	}{
		{"errno passes through", experimentalsys.EPERM, experimentalsys.EPERM},
		{"wrapped errno", errors.Transport(errors.OpRead, experimentalsys.ENOENT, 0), experimentalsys.ENOENT},
		{"closed stream", errors.Closed(errors.OpWrite, "sink"), experimentalsys.EBADF},
		{"unsupported", errors.Unsupported(errors.OpHost, "resource kind 0"), experimentalsys.ENOSYS},
		{"unknown", stderrors.New("boom"), experimentalsys.EIO},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toErrno(tt.err); got != tt.want {
				t.Errorf("toErrno(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

// liar reports one byte more than it was handed.
type liar struct{}

func (liar) PollRead(_ *pollio.Context, p []byte) pollio.Poll[int] {
	return pollio.Ready(len(p) + 1)
}

func (liar) PollWrite(_ *pollio.Context, p []byte) pollio.Poll[int] {
	return pollio.Ready(len(p) + 1)
}

func (liar) PollFlush(*pollio.Context) pollio.Poll[struct{}] { return pollio.Done() }
func (liar) PollClose(*pollio.Context) pollio.Poll[struct{}] { return pollio.Done() }

func TestFile_OverReportPanics(t *testing.T) {
	f := NewFile(liar{}, liar{})

	tests := []struct {
		name string
		call func()
	}{
		{"read", func() { f.Read(make([]byte, 4)) }},
		{"write", func() { f.Write([]byte("abcd")) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				e, ok := recover().(*errors.Error)
				if !ok || e.Kind != errors.KindBadCount || e.Op != errors.OpCompat {
					t.Errorf("expected bad_count panic, got %v", e)
				}
			}()
			tt.call()
		})
	}
}
