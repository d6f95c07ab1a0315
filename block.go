package pollio

import "context"

// Block drives f to completion on the calling goroutine, parking between
// polls until f's waker fires. It returns ctx.Err() if ctx is done first; f is
// then abandoned mid-flight.
func Block[T any](ctx context.Context, f Future[T]) (T, error) {
	p := NewParker()
	cx := NewContext(p)
	for {
		if r := f.Poll(cx); r.IsReady() {
			return r.Result()
		}
		if err := p.Park(ctx); err != nil {
			var zero T
			return zero, err
		}
	}
}
