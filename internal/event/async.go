package event

import (
	"context"
	"sync"

	"github.com/dikidjatar/acode-plugin-version-control-gitpro-sub001/internal/lifecycle"
)

// Wait blocks until e fires for the first time and returns that payload.
// If ctx is cancelled first, the subscription is released and ctx.Err() is
// returned.
func Wait[T any](ctx context.Context, e Event[T]) (T, error) {
	ch := make(chan T, 1)
	sub := Once(e)(func(v T) {
		ch <- v
	})
	defer sub.Dispose()

	select {
	case v := <-ch:
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// ToChannel converts a one-shot event into a channel that receives the first
// payload and is then closed. The returned Disposable releases the
// subscription; after disposal the channel may never receive a value.
func ToChannel[T any](e Event[T]) (<-chan T, lifecycle.Disposable) {
	ch := make(chan T, 1)
	sub := Once(e)(func(v T) {
		ch <- v
		close(ch)
	})
	return ch, sub
}

// FromFunc wraps a deferred computation as an event. run is started in its
// own goroutine on the first subscription; on success the returned event
// fires exactly once with the result, on failure the error is logged and the
// channel is disposed without firing.
func FromFunc[T any](run func() (T, error)) Event[T] {
	em := NewEmitter[T](WithName("from-func"))
	var once sync.Once

	return func(fn func(T), opts ...SubscribeOption) lifecycle.Disposable {
		sub := em.Event()(fn, opts...)
		once.Do(func() {
			go func() {
				v, err := run()
				if err != nil {
					log.Error("deferred value failed", "error", err)
					em.Dispose()
					return
				}
				em.Fire(v)
				em.Dispose()
			}()
		})
		return sub
	}
}
