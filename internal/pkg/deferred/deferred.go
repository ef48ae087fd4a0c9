// internal/pkg/deferred/deferred.go
package deferred

import (
	"context"
	"sync"
)

// Value is a single-assignment future. A producer resolves it once from a
// background goroutine; consumers either poll it when assembling a response
// or wait on it with a context.
type Value[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
}

// New creates an unresolved Value.
func New[T any]() *Value[T] {
	return &Value[T]{done: make(chan struct{})}
}

// Resolved creates a Value that already holds v.
func Resolved[T any](v T) *Value[T] {
	d := New[T]()
	d.Resolve(v)
	return d
}

// Resolve stores v and wakes all waiters. Calls after the first are ignored.
func (d *Value[T]) Resolve(v T) {
	d.once.Do(func() {
		d.value = v
		close(d.done)
	})
}

// Poll returns the value if it has been resolved. It never blocks.
func (d *Value[T]) Poll() (T, bool) {
	select {
	case <-d.done:
		return d.value, true
	default:
		var zero T
		return zero, false
	}
}

// Wait blocks until the value is resolved or the context ends.
func (d *Value[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-d.done:
		return d.value, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
