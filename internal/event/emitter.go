package event

import (
	"sync"

	"github.com/dikidjatar/acode-plugin-version-control-gitpro-sub001/internal/lifecycle"
)

// Emitter is the publish side of a single event channel.
//
// Fire delivers synchronously to every listener registered at the start of
// the call, in registration order. Reentrant Fire calls queue their payload
// and return immediately; the queue is drained, FIFO, before the outer Fire
// returns. Once disposed, Fire and the Event become permanent no-ops.
type Emitter[T any] struct {
	mu        sync.Mutex
	name      string
	listeners []*listener[T]
	firing    bool
	pending   []T
	disposed  bool
}

// listener wraps the callback so removal compares entry identity, not
// function value: the same function registered twice yields two entries.
type listener[T any] struct {
	fn func(T)
}

// EmitterOption configures an Emitter.
type EmitterOption func(*emitterConfig)

type emitterConfig struct {
	name string
}

// WithName sets a diagnostic name included in log records for this channel.
func WithName(name string) EmitterOption {
	return func(c *emitterConfig) {
		c.name = name
	}
}

// NewEmitter creates a new event channel.
func NewEmitter[T any](opts ...EmitterOption) *Emitter[T] {
	var c emitterConfig
	for _, opt := range opts {
		opt(&c)
	}
	return &Emitter[T]{name: c.name}
}

// Event returns the subscribe function for this channel. Consumers receive
// only this; the fire capability stays with the producer.
func (e *Emitter[T]) Event() Event[T] {
	return func(fn func(T), opts ...SubscribeOption) lifecycle.Disposable {
		cfg := newSubscribeConfig(opts)
		if fn == nil {
			return cfg.register(lifecycle.None)
		}

		e.mu.Lock()
		if e.disposed {
			e.mu.Unlock()
			log.Warn("subscribe on disposed event channel", "emitter", e.name)
			return cfg.register(lifecycle.None)
		}
		l := &listener[T]{fn: fn}
		e.listeners = append(e.listeners, l)
		e.mu.Unlock()

		return cfg.register(lifecycle.ToDisposable(func() {
			e.remove(l)
		}))
	}
}

// Fire delivers value to all currently registered listeners.
//
// If a delivery is already in progress on this channel, the payload is
// queued and the call returns immediately. Listener panics are logged and
// never propagate to the firer.
func (e *Emitter[T]) Fire(value T) {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return
	}
	if e.firing {
		e.pending = append(e.pending, value)
		e.mu.Unlock()
		return
	}
	e.firing = true
	e.mu.Unlock()

	e.deliver(value)

	// Drain payloads fired reentrantly during delivery. Each drained payload
	// gets its own listener snapshot.
	for {
		e.mu.Lock()
		if e.disposed || len(e.pending) == 0 {
			e.pending = nil
			e.firing = false
			e.mu.Unlock()
			return
		}
		next := e.pending[0]
		e.pending = e.pending[1:]
		e.mu.Unlock()

		e.deliver(next)
	}
}

// deliver runs one delivery pass over a snapshot of the listener set.
func (e *Emitter[T]) deliver(value T) {
	e.mu.Lock()
	snapshot := make([]*listener[T], len(e.listeners))
	copy(snapshot, e.listeners)
	e.mu.Unlock()

	for _, l := range snapshot {
		e.invoke(l, value)
	}
}

func (e *Emitter[T]) invoke(l *listener[T], value T) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("listener panicked during fire", "emitter", e.name, "panic", r)
		}
	}()
	l.fn(value)
}

func (e *Emitter[T]) remove(l *listener[T]) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return
	}
	for i, held := range e.listeners {
		if held == l {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return
		}
	}
}

// HasListeners reports whether any listener is currently registered.
func (e *Emitter[T]) HasListeners() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners) > 0
}

// Dispose clears the listener set and the pending queue and marks the
// channel dead. Subscribe and Fire become permanent no-ops. Idempotent.
func (e *Emitter[T]) Dispose() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return
	}
	e.disposed = true
	e.listeners = nil
	e.pending = nil
}

// IsDisposed reports whether the channel has been disposed.
func (e *Emitter[T]) IsDisposed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.disposed
}
