// Package observable holds a single value that readers can poll or watch.
package observable

import (
	"context"
	"sync"
)

// ReadOnly is the view handed to code that may observe but never write a value.
type ReadOnly[T any] interface {
	Get() T
	// Subscribe returns a channel that immediately yields the current value and
	// then every later one. A slow reader only ever sees the latest value.
	// The channel is closed when ctx is done.
	Subscribe(ctx context.Context) <-chan T
}

// Value is a concurrency-safe observable value. The owner keeps the *Value and
// hands out ReadOnly to everyone else.
type Value[T any] struct {
	mu   sync.RWMutex
	v    T
	subs map[chan T]struct{}
}

var _ ReadOnly[int] = (*Value[int])(nil)

// New creates a Value holding initial.
func New[T any](initial T) *Value[T] {
	return &Value[T]{
		v:    initial,
		subs: make(map[chan T]struct{}),
	}
}

func (o *Value[T]) Get() T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.v
}

// Set stores v and notifies subscribers.
func (o *Value[T]) Set(v T) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.v = v
	for ch := range o.subs {
		offer(ch, v)
	}
}

func (o *Value[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	o.mu.Lock()
	ch <- o.v
	o.subs[ch] = struct{}{}
	o.mu.Unlock()

	go func() {
		<-ctx.Done()
		o.mu.Lock()
		delete(o.subs, ch)
		close(ch)
		o.mu.Unlock()
	}()
	return ch
}

// offer replaces any undelivered value with v. Callers hold o.mu, which is the
// only path that sends on ch, so the second send cannot block.
func offer[T any](ch chan T, v T) {
	select {
	case <-ch:
	default:
	}
	ch <- v
}
