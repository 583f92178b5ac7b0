package future

import (
	"context"
	"sync"
)

// Future represents the eventual result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	once   sync.Once
	done   chan struct{}
}

// Await blocks until the computation completes and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// IsComplete checks whether the computation has finished without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Go runs fn in a new goroutine and returns a Future for its outcome.
func Go[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		// Early exit prevents goroutine leak when context is pre-canceled
		select {
		case <-ctx.Done():
			f.once.Do(func() {
				f.err = ctx.Err()
			})
			return
		default:
		}

		res, err := fn(ctx, param)
		f.once.Do(func() {
			f.result = res
			f.err = err
		})
	}()

	return f
}

// Resolved returns an already-completed Future carrying the given outcome.
// Await never blocks on a resolved future.
func Resolved[U any](result U, err error) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}
	f.result = result
	f.err = err
	close(f.done)
	return f
}

// WaitAll waits for every future to complete and returns their results in
// order, along with the first error encountered.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))

	for i, f := range futures {
		result, err := f.Await()
		results[i] = result
		if err != nil {
			return results, err
		}
	}

	return results, nil
}
