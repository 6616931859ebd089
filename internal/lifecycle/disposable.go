package lifecycle

import (
	"sync"

	ilog "github.com/dikidjatar/acode-plugin-version-control-gitpro-sub001/internal/log"
)

var log = ilog.Logger("lifecycle")

// Disposable is a handle whose release action runs at most once.
// Dispose must be safe to call multiple times and from any goroutine.
type Disposable interface {
	Dispose()
}

// None is the no-op Disposable for the "nothing to release" case.
// It can be disposed any number of times.
var None Disposable = noop{}

type noop struct{}

func (noop) Dispose() {}

// funcDisposable wraps a release action and guarantees it runs at most once.
type funcDisposable struct {
	once sync.Once
	fn   func()
}

func (d *funcDisposable) Dispose() {
	d.once.Do(d.fn)
}

// ToDisposable wraps an arbitrary release action as a Disposable.
// The action runs at most once, on the first Dispose call.
func ToDisposable(fn func()) Disposable {
	if fn == nil {
		return None
	}
	return &funcDisposable{fn: fn}
}

// Combine returns a composite Disposable whose release disposes each argument
// in argument order. Each release call is isolated: a panic in one does not
// prevent the rest from running.
func Combine(disposables ...Disposable) Disposable {
	return ToDisposable(func() {
		for _, d := range disposables {
			disposeOne(d)
		}
	})
}

// DisposeAll disposes every element of items and returns a nil slice,
// supporting the pattern of clearing an owner's resource list in one call:
//
//	v.subs = lifecycle.DisposeAll(v.subs)
func DisposeAll[T Disposable](items []T) []T {
	for _, d := range items {
		disposeOne(d)
	}
	return nil
}

// disposeOne disposes d, converting a panic during release into a log entry
// so sibling releases still run.
func disposeOne(d Disposable) {
	if d == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Error("panic while disposing resource", "panic", r)
		}
	}()
	d.Dispose()
}
