package event

import (
	"sync"

	"github.com/dikidjatar/acode-plugin-version-control-gitpro-sub001/internal/lifecycle"
)

// ForEach invokes each for every payload before forwarding it unchanged to
// the downstream listener.
func ForEach[T any](e Event[T], each func(T)) Event[T] {
	return func(fn func(T), opts ...SubscribeOption) lifecycle.Disposable {
		cfg := newSubscribeConfig(opts)
		return cfg.register(e(func(v T) {
			each(v)
			fn(v)
		}))
	}
}

// Map applies fn to each payload before forwarding.
func Map[T, U any](e Event[T], fn func(T) U) Event[U] {
	return func(listener func(U), opts ...SubscribeOption) lifecycle.Disposable {
		cfg := newSubscribeConfig(opts)
		return cfg.register(e(func(v T) {
			listener(fn(v))
		}))
	}
}

// Filter forwards a payload only when pred returns true for it. Filtered
// payloads never reach the downstream listener.
func Filter[T any](e Event[T], pred func(T) bool) Event[T] {
	return func(fn func(T), opts ...SubscribeOption) lifecycle.Disposable {
		cfg := newSubscribeConfig(opts)
		return cfg.register(e(func(v T) {
			if pred(v) {
				fn(v)
			}
		}))
	}
}

// Once delivers at most one payload to the downstream listener. The upstream
// subscription is released before the listener is invoked, so no second
// delivery can happen even when the source fires several payloads
// synchronously during the same delivery pass.
func Once[T any](e Event[T]) Event[T] {
	return func(fn func(T), opts ...SubscribeOption) lifecycle.Disposable {
		cfg := newSubscribeConfig(opts)

		var (
			mu       sync.Mutex
			fired    bool
			upstream lifecycle.Disposable
		)

		d := e(func(v T) {
			mu.Lock()
			if fired {
				mu.Unlock()
				return
			}
			fired = true
			up := upstream
			mu.Unlock()

			if up != nil {
				up.Dispose()
			}
			fn(v)
		})

		mu.Lock()
		upstream = d
		alreadyFired := fired
		mu.Unlock()
		if alreadyFired {
			d.Dispose()
		}

		return cfg.register(d)
	}
}

// Any combines the given events into one: a payload from any upstream is
// forwarded downstream. Disposing the combined subscription disposes every
// upstream subscription.
func Any[T any](events ...Event[T]) Event[T] {
	return func(fn func(T), opts ...SubscribeOption) lifecycle.Disposable {
		cfg := newSubscribeConfig(opts)
		subs := make([]lifecycle.Disposable, 0, len(events))
		for _, ev := range events {
			subs = append(subs, ev(fn))
		}
		return cfg.register(lifecycle.Combine(subs...))
	}
}

// RunAndSubscribe immediately invokes handler once with nil (the "no payload
// yet" sentinel), then subscribes it normally. It unifies "initialize with
// current state" and "react to future changes" into one code path.
func RunAndSubscribe[T any](e Event[T], handler func(*T), opts ...SubscribeOption) lifecycle.Disposable {
	handler(nil)
	return e(func(v T) {
		handler(&v)
	}, opts...)
}
