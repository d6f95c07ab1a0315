package wasifile

import (
	stderrors "errors"
	"testing"

	experimentalsys "github.com/tetratelabs/wazero/experimental/sys"

	"github.com/wippyai/pollio"
	"github.com/wippyai/pollio/errors"
	"github.com/wippyai/pollio/internal/testio"
	"github.com/wippyai/pollio/op"
)

type result struct {
	data  string
	errno experimentalsys.Errno
}

// fakeFile replays canned read results and records writes.
type fakeFile struct {
	experimentalsys.UnimplementedFile
	reads     []result
	written   []byte
	writeErr  []experimentalsys.Errno
	syncErrno experimentalsys.Errno
	closes    int
}

func (f *fakeFile) Read(buf []byte) (int, experimentalsys.Errno) {
	if len(f.reads) == 0 {
		return 0, 0
	}
	r := f.reads[0]
	f.reads = f.reads[1:]
	return copy(buf, r.data), r.errno
}

func (f *fakeFile) Write(buf []byte) (int, experimentalsys.Errno) {
	if len(f.writeErr) > 0 {
		errno := f.writeErr[0]
		f.writeErr = f.writeErr[1:]
		if errno != 0 {
			return 0, errno
		}
	}
	f.written = append(f.written, buf...)
	return len(buf), 0
}

func (f *fakeFile) Sync() experimentalsys.Errno { return f.syncErrno }

func (f *fakeFile) Close() experimentalsys.Errno {
	f.closes++
	return 0
}

func TestStream_ReadAgainIsPending(t *testing.T) {
	f := &fakeFile{reads: []result{
		{data: "ab"},
		{errno: experimentalsys.EAGAIN},
		{errno: experimentalsys.EINTR},
		{data: "cd"},
	}}
	var buf []byte

	out := testio.Drive[int](op.NewReadToEnd(NewStream(f), &buf), 10)
	if !out.Done || out.Err != nil || string(buf) != "abcd" {
		t.Fatalf("unexpected outcome %+v %q", out, buf)
	}
	if out.Polls != 3 {
		t.Errorf("expected 3 polls, got %d", out.Polls)
	}
}

func TestStream_ErrnoIsError(t *testing.T) {
	f := &fakeFile{reads: []result{{errno: experimentalsys.EIO}}}

	res := NewStream(f).PollRead(pollio.NoopContext(), make([]byte, 4))
	var errno experimentalsys.Errno
	if !stderrors.As(res.Err(), &errno) || errno != experimentalsys.EIO {
		t.Errorf("expected EIO, got %v", res.Err())
	}
}

func TestStream_WriteAndFlush(t *testing.T) {
	f := &fakeFile{
		writeErr:  []experimentalsys.Errno{experimentalsys.EAGAIN},
		syncErrno: experimentalsys.ENOSYS,
	}
	s := NewStream(f)

	out := testio.Drive[int](op.NewWriteAll(s, []byte("hello")), 10)
	if out.Err != nil || string(f.written) != "hello" || out.Polls != 2 {
		t.Fatalf("unexpected write outcome %+v %q", out, f.written)
	}
	if res := testio.Drive[struct{}](op.NewFlush(s), 10); res.Err != nil {
		t.Errorf("ENOSYS sync should count as flushed: %v", res.Err)
	}

	f.syncErrno = experimentalsys.EIO
	if res := testio.Drive[struct{}](op.NewFlush(s), 10); res.Err != experimentalsys.EIO {
		t.Errorf("expected EIO, got %v", res.Err)
	}
}

func TestStream_CloseOnce(t *testing.T) {
	f := &fakeFile{}
	s := NewStream(f)
	testio.Drive[struct{}](op.NewClose(s), 10)
	testio.Drive[struct{}](op.NewClose(s), 10)
	if f.closes != 1 {
		t.Errorf("expected one close, got %d", f.closes)
	}

	res := s.PollRead(pollio.NoopContext(), make([]byte, 1))
	if !stderrors.Is(res.Err(), errors.ErrClosed) {
		t.Errorf("expected closed error, got %v", res.Err())
	}
	if s.File() != f {
		t.Error("File returned the wrong file")
	}
}
