package event

import (
	"sync"

	"github.com/dikidjatar/acode-plugin-version-control-gitpro-sub001/internal/lifecycle"
)

// Bufferer defers delivery on wrapped events for the duration of a
// synchronous operation.
//
// While no buffering scope is active, wrapped events deliver straight
// through. Inside BufferWhile, payloads flowing through wrapped events are
// queued in arrival order and delivered only after the operation returns.
// Scopes nest: a payload is captured by the innermost active scope.
//
// Buffering coalesces delivery, not firing: every payload is still delivered
// exactly once, as one ordered batch.
type Bufferer struct {
	mu    sync.Mutex
	stack []*[]func()
}

// NewBufferer creates a Bufferer. The zero value is also ready to use.
func NewBufferer() *Bufferer {
	return &Bufferer{}
}

// BufferWhile establishes a buffering scope for the duration of fn. Payloads
// queued during fn are delivered, in order, before BufferWhile returns.
func (b *Bufferer) BufferWhile(fn func()) {
	buf := &[]func(){}
	b.mu.Lock()
	b.stack = append(b.stack, buf)
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.stack = b.stack[:len(b.stack)-1]
		b.mu.Unlock()

		// Queued deliveries invoke their listener directly, so an enclosing
		// scope does not capture them again.
		for _, deliver := range *buf {
			deliver()
		}
	}()

	fn()
}

// BufferEvent wraps e so its deliveries participate in b's buffering scopes.
func BufferEvent[T any](b *Bufferer, e Event[T]) Event[T] {
	return func(fn func(T), opts ...SubscribeOption) lifecycle.Disposable {
		cfg := newSubscribeConfig(opts)
		return cfg.register(e(func(v T) {
			b.mu.Lock()
			if n := len(b.stack); n > 0 {
				buf := b.stack[n-1]
				*buf = append(*buf, func() { fn(v) })
				b.mu.Unlock()
				return
			}
			b.mu.Unlock()
			fn(v)
		}))
	}
}
