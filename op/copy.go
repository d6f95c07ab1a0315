package op

import (
	"github.com/valyala/bytebufferpool"
	"go.uber.org/zap"

	"github.com/wippyai/pollio"
	"github.com/wippyai/pollio/errors"
)

// DefaultCopyBufferSize is the relay buffer size used by Copy.
const DefaultCopyBufferSize = 8192

var relayPool bytebufferpool.Pool

// Copy moves every byte from a reader to a writer and flushes the writer
// once the reader is exhausted. It completes with the number of bytes the
// writer accepted.
//
// The reader is only polled when the relay buffer has been fully written, so
// a slow writer throttles the reader. Once Copy has completed, further polls
// return the same result.
type Copy struct {
	r     pollio.Reader
	w     pollio.Writer
	relay *bytebufferpool.ByteBuffer
	size  int
	pos   int
	end   int
	total int64
	eof   bool

	done   bool
	result pollio.Poll[int64]
}

func NewCopy(r pollio.Reader, w pollio.Writer) *Copy {
	return &Copy{r: r, w: w, size: DefaultCopyBufferSize}
}

// WithBufferSize sets the relay buffer size. It has no effect once polling
// has started.
func (o *Copy) WithBufferSize(n int) *Copy {
	if n > 0 && o.relay == nil {
		o.size = n
	}
	return o
}

// Transferred returns how many bytes the writer has accepted so far.
func (o *Copy) Transferred() int64 {
	return o.total
}

func (o *Copy) Poll(cx *pollio.Context) pollio.Poll[int64] {
	if o.done {
		return o.result
	}
	if o.relay == nil {
		o.acquire()
	}

	for {
		if o.pos == o.end && !o.eof {
			p := o.r.PollRead(cx, o.relay.B)
			if p.IsPending() {
				return pollio.Pending[int64]()
			}
			if err := p.Err(); err != nil {
				return o.finish(pollio.Fail[int64](errors.FromSide(errors.OpCopy, errors.SideSource, err, o.total)))
			}
			n := pollio.CheckCount(errors.OpCopy, p.Value(), len(o.relay.B))
			if n == 0 {
				o.eof = true
			} else {
				o.pos, o.end = 0, n
			}
		}

		for o.pos < o.end {
			chunk := o.relay.B[o.pos:o.end]
			p := o.w.PollWrite(cx, chunk)
			if p.IsPending() {
				return pollio.Pending[int64]()
			}
			if err := p.Err(); err != nil {
				return o.finish(pollio.Fail[int64](errors.FromSide(errors.OpCopy, errors.SideSink, err, o.total)))
			}
			n := pollio.CheckCount(errors.OpCopy, p.Value(), len(chunk))
			if n == 0 {
				return o.finish(pollio.Fail[int64](errors.WriteZero(errors.OpCopy, o.total, len(chunk))))
			}
			o.pos += n
			o.total += int64(n)
		}

		if o.eof {
			p := o.w.PollFlush(cx)
			if p.IsPending() {
				return pollio.Pending[int64]()
			}
			if err := p.Err(); err != nil {
				return o.finish(pollio.Fail[int64](errors.FromSide(errors.OpCopy, errors.SideSink, err, o.total)))
			}
			return o.finish(pollio.Ready(o.total))
		}
	}
}

func (o *Copy) acquire() {
	bb := relayPool.Get()
	if cap(bb.B) < o.size {
		bb.B = make([]byte, o.size)
	}
	bb.B = bb.B[:o.size]
	// pooled buffers carry bytes from earlier copies
	pollio.Prepare(o.r, bb.B)
	o.relay = bb
}

func (o *Copy) finish(res pollio.Poll[int64]) pollio.Poll[int64] {
	o.done = true
	o.result = res
	relayPool.Put(o.relay)
	o.relay = nil

	if err := res.Err(); err != nil {
		pollio.Logger().Debug("copy failed", zap.Int64("bytes", o.total), zap.Error(err))
	} else {
		pollio.Logger().Debug("copy complete", zap.Int64("bytes", o.total))
	}
	return res
}
