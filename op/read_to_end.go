package op

import (
	"slices"

	"github.com/wippyai/pollio"
	"github.com/wippyai/pollio/errors"
)

// DefaultGrowth is how much capacity ReadToEnd adds when the buffer is full.
const DefaultGrowth = 32

// ReadToEnd appends everything the stream produces to *buf and completes
// with the number of bytes appended once the stream ends.
//
// While reading, *buf is temporarily extended to its capacity. Whenever Poll
// returns, on success, error, Pending or panic, len(*buf) is reset to the
// bytes actually confirmed by the reader, so unconfirmed capacity is never
// visible to the caller.
type ReadToEnd struct {
	r        pollio.Reader
	buf      *[]byte
	startLen int
	growth   int
}

func NewReadToEnd(r pollio.Reader, buf *[]byte) *ReadToEnd {
	return &ReadToEnd{
		r:        r,
		buf:      buf,
		startLen: len(*buf),
		growth:   DefaultGrowth,
	}
}

// WithGrowth sets the minimum capacity added each time the buffer fills up.
func (o *ReadToEnd) WithGrowth(n int) *ReadToEnd {
	if n > 0 {
		o.growth = n
	}
	return o
}

func (o *ReadToEnd) Poll(cx *pollio.Context) pollio.Poll[int] {
	return readToEnd(cx, o.r, o.buf, o.startLen, o.growth, errors.OpReadToEnd)
}

// lengthGuard pins the visible length of buf to the confirmed byte count.
type lengthGuard struct {
	buf *[]byte
	n   int
}

func (g *lengthGuard) restore() {
	*g.buf = (*g.buf)[:g.n]
}

func readToEnd(cx *pollio.Context, r pollio.Reader, buf *[]byte, startLen, growth int, op errors.Op) pollio.Poll[int] {
	g := lengthGuard{buf: buf, n: len(*buf)}
	defer g.restore()

	for {
		if g.n == len(*buf) {
			*buf = slices.Grow(*buf, growth)
			*buf = (*buf)[:cap(*buf)]
			pollio.Prepare(r, (*buf)[g.n:])
		}

		dst := (*buf)[g.n:]
		p := r.PollRead(cx, dst)
		if p.IsPending() {
			return pollio.Pending[int]()
		}
		if err := p.Err(); err != nil {
			return pollio.Fail[int](errors.Transport(op, err, int64(g.n-startLen)))
		}
		n := pollio.CheckCount(op, p.Value(), len(dst))
		if n == 0 {
			return pollio.Ready(g.n - startLen)
		}
		g.n += n
	}
}
