package event

import (
	"github.com/dikidjatar/acode-plugin-version-control-gitpro-sub001/internal/lifecycle"
	ilog "github.com/dikidjatar/acode-plugin-version-control-gitpro-sub001/internal/log"
)

var log = ilog.Logger("event")

// Event is the subscribe side of an event channel. Calling it registers
// listener and returns a Disposable that removes exactly that registration.
// Disposing the result is safe multiple times, from inside the listener
// itself, and after the channel is disposed.
type Event[T any] func(listener func(T), opts ...SubscribeOption) lifecycle.Disposable

// registerTarget selects where a subscription is additionally registered.
type registerTarget int

const (
	targetNone registerTarget = iota
	targetList
	targetStore
)

type subscribeConfig struct {
	target registerTarget
	store  *lifecycle.Store
	list   *[]lifecycle.Disposable
}

// SubscribeOption configures a single subscription.
type SubscribeOption func(*subscribeConfig)

// AddTo additionally registers the subscription into store, tying its
// lifetime to the store's.
func AddTo(store *lifecycle.Store) SubscribeOption {
	return func(c *subscribeConfig) {
		c.target = targetStore
		c.store = store
	}
}

// Append additionally appends the subscription to list.
func Append(list *[]lifecycle.Disposable) SubscribeOption {
	return func(c *subscribeConfig) {
		c.target = targetList
		c.list = list
	}
}

func newSubscribeConfig(opts []SubscribeOption) subscribeConfig {
	var c subscribeConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// register hands d to the configured collector, if any, and returns d.
func (c subscribeConfig) register(d lifecycle.Disposable) lifecycle.Disposable {
	switch c.target {
	case targetStore:
		c.store.Add(d)
	case targetList:
		*c.list = append(*c.list, d)
	}
	return d
}
