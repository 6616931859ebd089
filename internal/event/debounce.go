package event

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dikidjatar/acode-plugin-version-control-gitpro-sub001/internal/lifecycle"
)

// DebounceOption configures a Debounce event.
type DebounceOption func(*debounceConfig)

type debounceConfig struct {
	clock clock.Clock
}

// WithClock sets the clock used to schedule the debounce timer. Tests pass
// clock.NewMock for deterministic control; the default is the wall clock.
func WithClock(c clock.Clock) DebounceOption {
	return func(cfg *debounceConfig) {
		cfg.clock = c
	}
}

// Debounce accumulates payloads with merge and delivers the accumulated
// value once no new payload has arrived for delay.
//
// merge receives the accumulated value so far (nil on the first payload of a
// burst) and the next payload, and returns the new accumulation. Each payload
// restarts the delay timer. Disposing the subscription cancels any pending
// timer, so a disposed subscription never delivers.
//
// Debounce is the only combinator that reorders in time: it collapses bursts
// rather than reordering the sequence.
func Debounce[T, A any](e Event[T], merge func(acc *A, next T) A, delay time.Duration, opts ...DebounceOption) Event[A] {
	cfg := debounceConfig{clock: clock.New()}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(fn func(A), subOpts ...SubscribeOption) lifecycle.Disposable {
		subCfg := newSubscribeConfig(subOpts)

		var (
			mu       sync.Mutex
			acc      *A
			timer    *clock.Timer
			disposed bool
		)

		upstream := e(func(v T) {
			mu.Lock()
			defer mu.Unlock()
			if disposed {
				return
			}

			// merge is caller-supplied logic: the debouncer does not catch a
			// panic here.
			merged := merge(acc, v)
			acc = &merged

			if timer != nil {
				timer.Stop()
			}
			timer = cfg.clock.AfterFunc(delay, func() {
				mu.Lock()
				if disposed || acc == nil {
					mu.Unlock()
					return
				}
				out := *acc
				acc = nil
				timer = nil
				mu.Unlock()

				// The timer callback runs outside any emitter dispatch, so
				// listener panics are isolated here instead.
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Error("listener panicked during debounced delivery", "panic", r)
						}
					}()
					fn(out)
				}()
			})
		})

		return subCfg.register(lifecycle.ToDisposable(func() {
			mu.Lock()
			disposed = true
			if timer != nil {
				timer.Stop()
				timer = nil
			}
			acc = nil
			mu.Unlock()

			upstream.Dispose()
		}))
	}
}
