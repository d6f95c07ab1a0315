package stream

import (
	"go.uber.org/zap"

	"github.com/wippyai/pollio"
	"github.com/wippyai/pollio/errors"
)

// Chain reads first until it ends, then second.
//
// The switch happens inside the poll that observed the end of first, so no
// extra wake-up is spent on it. first is never polled again after that.
type Chain struct {
	first     pollio.Reader
	second    pollio.Reader
	n         int64
	doneFirst bool
}

func NewChain(first, second pollio.Reader) *Chain {
	return &Chain{first: first, second: second}
}

func (c *Chain) PollRead(cx *pollio.Context, p []byte) pollio.Poll[int] {
	if !c.doneFirst {
		res := c.first.PollRead(cx, p)
		if res.IsPending() {
			return res
		}
		if err := res.Err(); err != nil {
			return pollio.Fail[int](errors.FromSide(errors.OpChain, errors.SideFirst, err, c.n))
		}
		n := pollio.CheckCount(errors.OpChain, res.Value(), len(p))
		if n > 0 || len(p) == 0 {
			c.n += int64(n)
			return res
		}
		c.doneFirst = true
		pollio.Logger().Debug("chain switching to second reader", zap.Int64("bytes", c.n))
	}

	res := c.second.PollRead(cx, p)
	if res.IsPending() {
		return res
	}
	if err := res.Err(); err != nil {
		return pollio.Fail[int](errors.FromSide(errors.OpChain, errors.SideSecond, err, c.n))
	}
	c.n += int64(pollio.CheckCount(errors.OpChain, res.Value(), len(p)))
	return res
}

// PrepareBuffer zeroes p unless both readers opt out.
func (c *Chain) PrepareBuffer(p []byte) bool {
	if !c.doneFirst && pollio.Prepare(c.first, p) {
		return true
	}
	return pollio.Prepare(c.second, p)
}

// First returns the first reader.
func (c *Chain) First() pollio.Reader { return c.first }

// Second returns the second reader.
func (c *Chain) Second() pollio.Reader { return c.second }
