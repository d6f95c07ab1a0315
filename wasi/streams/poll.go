package streams

import (
	"context"
	stderrors "errors"

	"golang.org/x/sync/errgroup"

	"github.com/wippyai/pollio/resource"
)

var errWoken = stderrors.New("pollable woken")

type PollHost struct {
	table *resource.Table
}

func NewPollHost(table *resource.Table) *PollHost {
	return &PollHost{table: table}
}

func (h *PollHost) Namespace() string {
	return "wasi:io/poll@0.2.8"
}

// Poll waits until at least one of the pollables is ready and returns the
// indices of all that are. Unknown handles are ignored. It returns an empty
// list if ctx ends first.
func (h *PollHost) Poll(ctx context.Context, pollables []uint32) []uint32 {
	for {
		ready := make([]uint32, 0, len(pollables))
		var waiting []<-chan struct{}

		for i, handle := range pollables {
			p, ok := resource.Lookup[*Pollable](h.table, resource.Handle(handle), resource.KindPollable)
			if !ok {
				continue
			}
			if p.Ready() {
				ready = append(ready, uint32(i))
			} else {
				waiting = append(waiting, p.Done())
			}
		}

		if len(ready) > 0 || len(waiting) == 0 {
			return ready
		}
		if !waitAny(ctx, waiting) {
			return ready
		}
	}
}

func (h *PollHost) MethodPollableReady(_ context.Context, self uint32) bool {
	p, ok := resource.Lookup[*Pollable](h.table, resource.Handle(self), resource.KindPollable)
	return ok && p.Ready()
}

func (h *PollHost) MethodPollableBlock(ctx context.Context, self uint32) {
	if p, ok := resource.Lookup[*Pollable](h.table, resource.Handle(self), resource.KindPollable); ok {
		_ = p.Block(ctx)
	}
}

func (h *PollHost) ResourceDropPollable(_ context.Context, self uint32) {
	_, _ = h.table.Remove(resource.Handle(self))
}

func (h *PollHost) Register() map[string]any {
	return map[string]any{
		"poll":                    h.Poll,
		"[method]pollable.ready":  h.MethodPollableReady,
		"[method]pollable.block":  h.MethodPollableBlock,
		"[resource-drop]pollable": h.ResourceDropPollable,
	}
}

// waitAny blocks until one channel closes or ctx is done. It reports whether
// a channel closed.
func waitAny(ctx context.Context, chans []<-chan struct{}) bool {
	g, gctx := errgroup.WithContext(ctx)
	for _, ch := range chans {
		g.Go(func() error {
			select {
			case <-ch:
				return errWoken
			case <-gctx.Done():
				return nil
			}
		})
	}
	return stderrors.Is(g.Wait(), errWoken)
}
