package stream

import (
	"github.com/wippyai/pollio"
	"github.com/wippyai/pollio/errors"
)

// Take yields at most limit bytes from the inner reader, then reports end of
// stream. The inner reader is never asked for more than the remaining budget.
type Take struct {
	inner pollio.Reader
	limit uint64
}

func NewTake(r pollio.Reader, limit uint64) *Take {
	return &Take{inner: r, limit: limit}
}

func (t *Take) PollRead(cx *pollio.Context, p []byte) pollio.Poll[int] {
	if t.limit == 0 {
		return pollio.Ready(0)
	}
	if uint64(len(p)) > t.limit {
		p = p[:t.limit]
	}

	res := t.inner.PollRead(cx, p)
	if res.IsPending() || res.Err() != nil {
		return res
	}
	n := pollio.CheckCount(errors.OpTake, res.Value(), len(p))
	t.limit -= uint64(n)
	return res
}

// PrepareBuffer defers to the inner reader.
func (t *Take) PrepareBuffer(p []byte) bool {
	return pollio.Prepare(t.inner, p)
}

// Limit returns the remaining budget.
func (t *Take) Limit() uint64 { return t.limit }

// SetLimit replaces the remaining budget. It takes effect on the next poll.
func (t *Take) SetLimit(n uint64) { t.limit = n }

// Inner returns the wrapped reader.
func (t *Take) Inner() pollio.Reader { return t.inner }
