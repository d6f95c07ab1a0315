package streams

import (
	"context"
	"sync"
)

// Pollable is the readiness signal of a stream. It is the pollio.Waker the
// stream's reader or writer is polled with.
type Pollable struct {
	ch    chan struct{}
	mu    sync.Mutex
	ready bool
}

// NewPollable returns a pollable that starts ready: nothing is known about
// the stream yet, so the guest should try it.
func NewPollable() *Pollable {
	ch := make(chan struct{})
	close(ch)
	return &Pollable{ch: ch, ready: true}
}

// Wake marks the pollable ready. Safe from any goroutine.
func (p *Pollable) Wake() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		p.ready = true
		close(p.ch)
	}
}

func (p *Pollable) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready
}

// Done returns a channel that is closed once the pollable is ready.
func (p *Pollable) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch
}

// Block waits until the pollable is ready or ctx is done.
func (p *Pollable) Block(ctx context.Context) error {
	select {
	case <-p.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// arm clears readiness before a poll that may register a wake-up.
func (p *Pollable) arm() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ready {
		p.ready = false
		p.ch = make(chan struct{})
	}
}
