package op

import (
	"github.com/wippyai/pollio"
	"github.com/wippyai/pollio/errors"
)

// WriteAll writes every byte of buf.
//
// A sink that accepts zero bytes while data remains is misbehaving, not
// busy; the operation fails with KindWriteZero instead of retrying.
type WriteAll struct {
	w       pollio.Writer
	buf     []byte
	written int
}

func NewWriteAll(w pollio.Writer, buf []byte) *WriteAll {
	return &WriteAll{w: w, buf: buf}
}

func (o *WriteAll) Poll(cx *pollio.Context) pollio.Poll[int] {
	for len(o.buf) > 0 {
		p := o.w.PollWrite(cx, o.buf)
		if p.IsPending() {
			return pollio.Pending[int]()
		}
		if err := p.Err(); err != nil {
			return pollio.Fail[int](errors.Transport(errors.OpWriteAll, err, int64(o.written)))
		}
		n := pollio.CheckCount(errors.OpWriteAll, p.Value(), len(o.buf))
		if n == 0 {
			return pollio.Fail[int](errors.WriteZero(errors.OpWriteAll, int64(o.written), len(o.buf)))
		}
		o.buf = o.buf[n:]
		o.written += n
	}
	return pollio.Ready(o.written)
}

// Written returns how many bytes the sink has accepted so far.
func (o *WriteAll) Written() int {
	return o.written
}
