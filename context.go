package pollio

import "context"

// Waker is notified when a pending operation may make progress.
// Wake may be called from any goroutine and more than once.
type Waker interface {
	Wake()
}

// WakerFunc adapts a function to the Waker interface.
type WakerFunc func()

func (f WakerFunc) Wake() { f() }

type noopWaker struct{}

func (noopWaker) Wake() {}

// NoopWaker discards wake-ups.
var NoopWaker Waker = noopWaker{}

// Context is the suspension context handed to every poll. It is opaque to the
// streams beyond the waker it carries.
type Context struct {
	waker Waker
}

// NewContext creates a context that routes wake-ups to w.
func NewContext(w Waker) *Context {
	if w == nil {
		w = NoopWaker
	}
	return &Context{waker: w}
}

// NoopContext creates a context whose wake-ups go nowhere. Useful for a
// single speculative poll.
func NoopContext() *Context {
	return &Context{waker: NoopWaker}
}

// Waker returns the waker to store for a later notification.
func (cx *Context) Waker() Waker {
	return cx.waker
}

// Wake asks to be polled again as soon as possible. Streams that cannot
// register for readiness use it before returning Pending.
func (cx *Context) Wake() {
	cx.waker.Wake()
}

// Parker is a Waker that a goroutine can block on.
type Parker struct {
	ch chan struct{}
}

// NewParker creates a parker with no pending wake-up.
func NewParker() *Parker {
	return &Parker{ch: make(chan struct{}, 1)}
}

// Wake records a wake-up. Wake-ups that arrive while one is already pending
// coalesce.
func (p *Parker) Wake() {
	select {
	case p.ch <- struct{}{}:
	default:
	}
}

// C exposes the wake-up channel for use in a select.
func (p *Parker) C() <-chan struct{} {
	return p.ch
}

// Park blocks until Wake is called or ctx is done.
func (p *Parker) Park(ctx context.Context) error {
	select {
	case <-p.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
