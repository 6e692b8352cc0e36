package formbridge

import "context"

// Call is a handle to an in-flight asynchronous API operation. A Call is
// backed by a single goroutine that always terminates, whether or not the
// result is ever collected. Wait may be invoked from any goroutine,
// including from inside other concurrent code, and every waiter observes
// the same result and the operation's exact error.
type Call[T any] struct {
	done   chan struct{}
	result T
	err    error
}

func newCall[T any]() *Call[T] {
	return &Call[T]{done: make(chan struct{})}
}

// startCall runs fn on its own goroutine and returns a handle to the result.
func startCall[T any](fn func() (T, error)) *Call[T] {
	c := newCall[T]()
	go func() {
		c.result, c.err = fn()
		close(c.done)
	}()
	return c
}

// Done returns a channel that is closed when the operation completes.
func (c *Call[T]) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until the operation completes and returns its result, or
// returns early with ctx's error if the context is cancelled first. The
// operation itself keeps running under the context it was started with;
// cancelling the Wait context only abandons this waiter.
func (c *Call[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-c.done:
		return c.result, c.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
