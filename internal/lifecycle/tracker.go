package lifecycle

import (
	"os"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"
)

// Leak tracking is disabled by default; enable it in tests or debug builds
// with SetTracking(true) or GITPRO_TRACK_DISPOSABLES=1.
var (
	trackMu  sync.Mutex
	tracking = os.Getenv("GITPRO_TRACK_DISPOSABLES") == "1"
	live     = make(map[string]LeakInfo)
)

// LeakInfo describes a tracked resource that has not been disposed yet.
type LeakInfo struct {
	// ID uniquely identifies the tracked resource.
	ID string

	// Label is the caller-supplied description.
	Label string

	// Stack is the creation stack trace.
	Stack string
}

// SetTracking enables or disables leak tracking.
func SetTracking(on bool) {
	trackMu.Lock()
	tracking = on
	trackMu.Unlock()
}

// Track registers d with the leak tracker under the given label and returns
// a Disposable that forwards to d. When tracking is disabled, d is returned
// unchanged.
func Track(label string, d Disposable) Disposable {
	trackMu.Lock()
	if !tracking {
		trackMu.Unlock()
		return d
	}
	id := uuid.NewString()
	live[id] = LeakInfo{ID: id, Label: label, Stack: string(debug.Stack())}
	trackMu.Unlock()

	return ToDisposable(func() {
		trackMu.Lock()
		delete(live, id)
		trackMu.Unlock()
		disposeOne(d)
	})
}

// Live returns the tracked resources that are still undisposed.
func Live() []LeakInfo {
	trackMu.Lock()
	defer trackMu.Unlock()
	out := make([]LeakInfo, 0, len(live))
	for _, info := range live {
		out = append(out, info)
	}
	return out
}

// ResetTracking clears the live set. Intended for tests.
func ResetTracking() {
	trackMu.Lock()
	live = make(map[string]LeakInfo)
	trackMu.Unlock()
}
