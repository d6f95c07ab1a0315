package op

import (
	"unicode/utf8"

	"github.com/wippyai/pollio"
	"github.com/wippyai/pollio/errors"
)

// ReadToString appends the rest of the stream to *dst as text.
//
// Bytes are accumulated privately and validated as UTF-8 in one pass once the
// stream ends or fails. *dst is only assigned valid text: after a read error
// the bytes confirmed so far are still committed if they decode, and a
// decode failure leaves *dst as it was.
type ReadToString struct {
	r        pollio.Reader
	dst      *string
	bytes    []byte
	startLen int
	growth   int
}

func NewReadToString(r pollio.Reader, dst *string) *ReadToString {
	return &ReadToString{
		r:        r,
		dst:      dst,
		bytes:    []byte(*dst),
		startLen: len(*dst),
		growth:   DefaultGrowth,
	}
}

// WithGrowth sets the minimum capacity added each time the buffer fills up.
func (o *ReadToString) WithGrowth(n int) *ReadToString {
	if n > 0 {
		o.growth = n
	}
	return o
}

func (o *ReadToString) Poll(cx *pollio.Context) pollio.Poll[int] {
	p := readToEnd(cx, o.r, &o.bytes, o.startLen, o.growth, errors.OpReadToString)
	if p.IsPending() {
		return p
	}

	off := invalidUTF8At(o.bytes[o.startLen:])
	if off < 0 {
		*o.dst = string(o.bytes)
	}
	if p.Err() != nil {
		return p
	}
	if off >= 0 {
		return pollio.Fail[int](errors.InvalidUTF8(errors.OpReadToString, o.bytes, o.startLen+off))
	}
	return p
}

// Bytes returns the raw bytes accumulated so far, including the original
// contents of dst. Useful after a decode failure.
func (o *ReadToString) Bytes() []byte {
	return o.bytes
}

func invalidUTF8At(b []byte) int {
	if utf8.Valid(b) {
		return -1
	}
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
