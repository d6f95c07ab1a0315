package stream

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/pollio"
	"github.com/wippyai/pollio/errors"
	"github.com/wippyai/pollio/internal/testio"
	"github.com/wippyai/pollio/op"
)

func TestChain_Order(t *testing.T) {
	first := testio.NewReader(testio.Chunk("ab"), testio.Pend(), testio.Chunk("cd"), testio.EOF())
	second := testio.NewReader(testio.Chunk("ef"), testio.EOF())
	var buf []byte

	out := testio.Drive[int](op.NewReadToEnd(NewChain(first, second), &buf), 20)
	if !out.Done || out.Err != nil {
		t.Fatalf("read_to_end did not complete: %+v", out)
	}
	if string(buf) != "abcdef" {
		t.Errorf("expected 'abcdef', got %q", buf)
	}
}

func TestChain_SwitchesInSamePoll(t *testing.T) {
	first := testio.NewReader(testio.EOF())
	second := testio.NewReader(testio.Chunk("x"))
	c := NewChain(first, second)

	res := c.PollRead(pollio.NoopContext(), make([]byte, 4))
	if !res.IsReady() || res.Value() != 1 {
		t.Fatalf("expected 1 byte from second in the same poll, got %+v", res)
	}

	for i := 0; i < 3; i++ {
		c.PollRead(pollio.NoopContext(), make([]byte, 4))
	}
	if first.Calls != 1 {
		t.Errorf("first polled %d times after it ended", first.Calls)
	}
	if second.Calls != 4 {
		t.Errorf("expected 4 polls of second, got %d", second.Calls)
	}
}

func TestChain_EmptyBufferDoesNotSwitch(t *testing.T) {
	first := testio.NewReader(testio.Chunk("a"))
	second := testio.NewReader(testio.Chunk("b"))
	c := NewChain(first, second)

	c.PollRead(pollio.NoopContext(), nil)
	res := c.PollRead(pollio.NoopContext(), make([]byte, 1))
	if res.Value() != 1 || second.Calls != 0 {
		t.Errorf("empty read switched readers: n=%d second calls=%d", res.Value(), second.Calls)
	}
}

func TestChain_ErrorSide(t *testing.T) {
	boom := stderrors.New("boom")

	c := NewChain(testio.NewReader(testio.Fail(boom)), testio.NewReader())
	res := c.PollRead(pollio.NoopContext(), make([]byte, 1))
	if !stderrors.Is(res.Err(), &errors.Error{Op: errors.OpChain, Side: errors.SideFirst}) {
		t.Errorf("expected first-side error, got %v", res.Err())
	}

	c = NewChain(testio.NewReader(), testio.NewReader(testio.Fail(boom)))
	res = c.PollRead(pollio.NoopContext(), make([]byte, 1))
	if !stderrors.Is(res.Err(), &errors.Error{Op: errors.OpChain, Side: errors.SideSecond}) {
		t.Errorf("expected second-side error, got %v", res.Err())
	}
	if !stderrors.Is(res.Err(), boom) {
		t.Error("expected original error reachable")
	}
}

func TestChain_PrepareBuffer(t *testing.T) {
	mem := func() pollio.Reader { return pollio.NewBytesReader(nil) }

	if NewChain(mem(), mem()).PrepareBuffer(make([]byte, 1)) {
		t.Error("expected no zeroing when both readers opt out")
	}
	if !NewChain(mem(), testio.NewReader()).PrepareBuffer(make([]byte, 1)) {
		t.Error("expected zeroing when second reader needs it")
	}
	if !NewChain(testio.NewReader(), mem()).PrepareBuffer(make([]byte, 1)) {
		t.Error("expected zeroing when first reader needs it")
	}
}

func TestChain_Accessors(t *testing.T) {
	a, b := testio.NewReader(), testio.NewReader()
	c := NewChain(a, b)
	if c.First() != a || c.Second() != b {
		t.Error("accessors returned the wrong readers")
	}
}
