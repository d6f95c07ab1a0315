package op

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/wippyai/pollio/errors"
	"github.com/wippyai/pollio/internal/testio"
)

func TestReadToString_Appends(t *testing.T) {
	r := testio.NewReader(testio.Chunk("h\xc3"), testio.Pend(), testio.Chunk("\xa9llo"))
	dst := "pre:"

	out := testio.Drive[int](NewReadToString(r, &dst), 10)
	if !out.Done || out.Err != nil {
		t.Fatalf("read_to_string did not complete: %+v", out)
	}
	if dst != "pre:héllo" || out.Value != 6 {
		t.Errorf("unexpected result %d %q", out.Value, dst)
	}
}

func TestReadToString_InvalidUTF8(t *testing.T) {
	r := testio.NewReader(testio.Chunk("ok\xffno"))
	dst := "pre:"
	op := NewReadToString(r, &dst)

	out := testio.Drive[int](op, 10)
	if !stderrors.Is(out.Err, errors.ErrInvalidUTF8) {
		t.Fatalf("expected invalid_utf8, got %v", out.Err)
	}
	if dst != "pre:" {
		t.Errorf("expected destination untouched, got %q", dst)
	}
	if !strings.Contains(out.Err.Error(), "at byte 6") {
		t.Errorf("expected offset in message, got %q", out.Err.Error())
	}
	if string(op.Bytes()) != "pre:ok\xffno" {
		t.Errorf("expected raw bytes available, got %q", op.Bytes())
	}
}

func TestReadToString_ReadErrorKeepsValidText(t *testing.T) {
	boom := stderrors.New("gone")
	r := testio.NewReader(testio.Chunk("partial"), testio.Fail(boom))
	dst := "keep"

	out := testio.Drive[int](NewReadToString(r, &dst), 10)
	if !stderrors.Is(out.Err, boom) {
		t.Fatalf("expected wrapped error, got %v", out.Err)
	}
	if !stderrors.Is(out.Err, &errors.Error{Op: errors.OpReadToString, Kind: errors.KindTransport}) {
		t.Errorf("expected read_to_string transport error, got %v", out.Err)
	}
	if dst != "keeppartial" {
		t.Errorf("expected confirmed text committed, got %q", dst)
	}
}

func TestReadToString_ReadErrorAfterInvalidText(t *testing.T) {
	boom := stderrors.New("gone")
	tests := []struct {
		name   string
		chunks []testio.Step
	}{
		{"invalid byte", []testio.Step{testio.Chunk("ab\xffcd")}},
		{"truncated sequence", []testio.Step{testio.Chunk("h\xc3")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testio.NewReader(append(tt.chunks, testio.Fail(boom))...)
			dst := "keep"

			out := testio.Drive[int](NewReadToString(r, &dst), 10)
			if !stderrors.Is(out.Err, boom) || stderrors.Is(out.Err, errors.ErrInvalidUTF8) {
				t.Fatalf("expected the read error, got %v", out.Err)
			}
			if dst != "keep" {
				t.Errorf("expected destination untouched, got %q", dst)
			}
		})
	}
}

func TestInvalidUTF8At(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", -1},
		{"plain", -1},
		{"héllo", -1},
		{"\xff", 0},
		{"ab\xc3", 2},
		{"\xef\xbf\xbd", -1},
	}
	for _, tt := range tests {
		if got := invalidUTF8At([]byte(tt.in)); got != tt.want {
			t.Errorf("invalidUTF8At(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
