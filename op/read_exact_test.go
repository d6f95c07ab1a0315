package op

import (
	stderrors "errors"
	"io"
	"testing"

	"github.com/wippyai/pollio/errors"
	"github.com/wippyai/pollio/internal/testio"
)

func TestReadExact_Fills(t *testing.T) {
	r := testio.NewReader(testio.Pend(), testio.Chunk("ab"), testio.Chunk("cdefg"))
	buf := make([]byte, 5)

	out := testio.Drive[int](NewReadExact(r, buf), 10)
	if !out.Done || out.Err != nil {
		t.Fatalf("read_exact did not complete: %+v", out)
	}
	if out.Value != 5 || string(buf) != "abcde" {
		t.Errorf("expected 5 bytes 'abcde', got %d %q", out.Value, buf)
	}
	if out.Polls != 2 {
		t.Errorf("expected 2 polls, got %d", out.Polls)
	}
}

func TestReadExact_ShortStream(t *testing.T) {
	r := testio.NewReader(testio.Chunk("abc"), testio.EOF())
	buf := make([]byte, 5)
	op := NewReadExact(r, buf)

	out := testio.Drive[int](op, 10)
	if !stderrors.Is(out.Err, errors.ErrUnexpectedEOF) {
		t.Fatalf("expected unexpected_eof, got %v", out.Err)
	}
	if !stderrors.Is(out.Err, io.ErrUnexpectedEOF) {
		t.Error("expected match against io.ErrUnexpectedEOF")
	}
	if stderrors.Is(out.Err, errors.ErrTransport) {
		t.Error("short read must not look like a transport error")
	}

	var e *errors.Error
	if !stderrors.As(out.Err, &e) || e.N != 3 {
		t.Errorf("expected N=3, got %+v", e)
	}
	if string(buf[:3]) != "abc" || op.Filled() != 3 {
		t.Errorf("expected consumed bytes kept, got %q filled=%d", buf[:3], op.Filled())
	}
}

func TestReadExact_TransportError(t *testing.T) {
	boom := stderrors.New("reset")
	r := testio.NewReader(testio.Chunk("a"), testio.Fail(boom))

	out := testio.Drive[int](NewReadExact(r, make([]byte, 4)), 10)
	if !stderrors.Is(out.Err, boom) {
		t.Fatalf("expected wrapped stream error, got %v", out.Err)
	}
	if !stderrors.Is(out.Err, &errors.Error{Op: errors.OpReadExact, Kind: errors.KindTransport}) {
		t.Errorf("expected read_exact transport error, got %v", out.Err)
	}
}

func TestReadExact_EmptyBuffer(t *testing.T) {
	r := testio.NewReader(testio.Chunk("x"))

	out := testio.Drive[int](NewReadExact(r, nil), 10)
	if !out.Done || out.Value != 0 {
		t.Fatalf("expected immediate 0, got %+v", out)
	}
	if r.Calls != 0 {
		t.Errorf("expected no reads, got %d", r.Calls)
	}
}

func TestWriteAll_SmallWrites(t *testing.T) {
	w := testio.NewWriter(2)

	out := testio.Drive[int](NewWriteAll(w, []byte("hello")), 10)
	if !out.Done || out.Err != nil {
		t.Fatalf("write_all did not complete: %+v", out)
	}
	if out.Value != 5 || string(w.Data) != "hello" {
		t.Errorf("expected 'hello', got %d %q", out.Value, w.Data)
	}
	if w.Writes != 3 {
		t.Errorf("expected 3 writes, got %d", w.Writes)
	}
}

func TestWriteAll_WriteZero(t *testing.T) {
	w := testio.NewWriter(0)
	w.Steps = []testio.Step{testio.Accept(2), testio.Pend(), testio.Accept(0)}
	op := NewWriteAll(w, []byte("hello"))

	out := testio.Drive[int](op, 10)
	if !stderrors.Is(out.Err, errors.ErrWriteZero) {
		t.Fatalf("expected write_zero, got %v", out.Err)
	}
	if !stderrors.Is(out.Err, io.ErrShortWrite) {
		t.Error("expected match against io.ErrShortWrite")
	}
	var e *errors.Error
	if !stderrors.As(out.Err, &e) || e.N != 2 {
		t.Errorf("expected N=2, got %+v", e)
	}
	if op.Written() != 2 {
		t.Errorf("expected 2 written, got %d", op.Written())
	}
}

func TestWriteAll_TransportError(t *testing.T) {
	boom := stderrors.New("broken pipe")
	w := testio.NewWriter(0)
	w.Steps = []testio.Step{testio.Fail(boom)}

	out := testio.Drive[int](NewWriteAll(w, []byte("x")), 10)
	if !stderrors.Is(out.Err, boom) {
		t.Errorf("expected wrapped error, got %v", out.Err)
	}
}
