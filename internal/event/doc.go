// Package event provides the reactive event-dispatch core for the plugin.
//
// The package is built around two types: Emitter, the publish side of a
// single event channel, and Event, the subscribe function exposed to
// consumers. Producers keep the Emitter private and expose only its Event,
// so consumers can never fire the channel.
//
// # Basic usage
//
//	type repo struct {
//	    didChange *event.Emitter[StatusChange]
//	}
//
//	// Consumers see only the subscribe function.
//	func (r *repo) OnDidChange() event.Event[StatusChange] {
//	    return r.didChange.Event()
//	}
//
//	func (r *repo) refresh() {
//	    // ... recompute status ...
//	    r.didChange.Fire(change)
//	}
//
// Subscribing returns a lifecycle.Disposable that removes the listener:
//
//	sub := repo.OnDidChange()(func(c StatusChange) { render(c) })
//	defer sub.Dispose()
//
// A subscription's lifetime can be tied to a broader scope by passing a
// registration target:
//
//	repo.OnDidChange()(render, event.AddTo(&view.store))
//
// # Fire semantics
//
// Dispatch is synchronous and reentrancy-safe. Each Fire call snapshots the
// listener set, so listeners added or removed during a delivery pass do not
// affect that pass. Firing the channel from inside a listener queues the
// payload; queued payloads are drained in FIFO order after the current pass
// completes, each with a fresh snapshot. A panicking listener is logged and
// never blocks delivery to the remaining listeners.
//
// # Combinators
//
// Map, Filter, ForEach, Once, Any, Debounce and RunAndSubscribe build derived
// Events from existing ones. They hold no state outside a per-subscription
// closure; disposing a derived subscription transitively disposes its
// upstream subscriptions and cancels any pending debounce timer.
//
// # Buffering
//
// Bufferer defers delivery on wrapped Events for the duration of a
// synchronous operation, so a batch of mutations is observed as one ordered
// group rather than interleaved partial states. See Bufferer.BufferWhile.
package event
