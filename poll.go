package pollio

// Poll is the outcome of one non-blocking attempt to make progress.
// The zero value is pending.
type Poll[T any] struct {
	value T
	err   error
	ready bool
}

// Pending reports that no progress was possible. The callee has arranged for
// the context's waker to be called when it is worth polling again.
func Pending[T any]() Poll[T] {
	return Poll[T]{}
}

// Ready completes with a value.
func Ready[T any](v T) Poll[T] {
	return Poll[T]{value: v, ready: true}
}

// Fail completes with an error.
func Fail[T any](err error) Poll[T] {
	return Poll[T]{err: err, ready: true}
}

// Done completes an operation that carries no value.
func Done() Poll[struct{}] {
	return Poll[struct{}]{ready: true}
}

func (p Poll[T]) IsPending() bool { return !p.ready }
func (p Poll[T]) IsReady() bool   { return p.ready }

// Value returns the completed value, or the zero value if pending or failed.
func (p Poll[T]) Value() T { return p.value }

// Err returns the completion error. Pending polls have no error.
func (p Poll[T]) Err() error { return p.err }

// Result unpacks a ready poll.
func (p Poll[T]) Result() (T, error) {
	return p.value, p.err
}

// Future is an operation driven to completion by repeated polling.
type Future[T any] interface {
	Poll(cx *Context) Poll[T]
}

// FutureFunc adapts a function to the Future interface.
type FutureFunc[T any] func(cx *Context) Poll[T]

func (f FutureFunc[T]) Poll(cx *Context) Poll[T] {
	return f(cx)
}
