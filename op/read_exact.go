package op

import (
	"github.com/wippyai/pollio"
	"github.com/wippyai/pollio/errors"
)

// ReadExact fills buf completely.
//
// If the stream ends first the operation fails with KindUnexpectedEOF; the
// bytes read so far stay in buf and their count is in the error's N.
type ReadExact struct {
	r   pollio.Reader
	buf []byte
	pos int
}

func NewReadExact(r pollio.Reader, buf []byte) *ReadExact {
	return &ReadExact{r: r, buf: buf}
}

func (o *ReadExact) Poll(cx *pollio.Context) pollio.Poll[int] {
	for o.pos < len(o.buf) {
		dst := o.buf[o.pos:]
		p := o.r.PollRead(cx, dst)
		if p.IsPending() {
			return pollio.Pending[int]()
		}
		if err := p.Err(); err != nil {
			return pollio.Fail[int](errors.Transport(errors.OpReadExact, err, int64(o.pos)))
		}
		n := pollio.CheckCount(errors.OpReadExact, p.Value(), len(dst))
		if n == 0 {
			return pollio.Fail[int](errors.UnexpectedEOF(errors.OpReadExact, o.pos, len(o.buf)))
		}
		o.pos += n
	}
	return pollio.Ready(o.pos)
}

// Filled returns how many bytes of buf have been read so far.
func (o *ReadExact) Filled() int {
	return o.pos
}
