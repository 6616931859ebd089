package lifecycle

import "sync"

// Map is a keyed mapping from identifiers to Disposables.
// Setting a key that already holds a resource releases the previous resource
// first, unless the caller opts out with SetRetained.
//
// Unlike Store, Dispose only marks the map dead: it stops accepting new
// entries but does not release the held resources. Use ClearAndDisposeAll to
// tear everything down.
type Map[K comparable] struct {
	mu       sync.Mutex
	entries  map[K]Disposable
	disposed bool
}

// NewMap creates an empty Map.
func NewMap[K comparable]() *Map[K] {
	return &Map[K]{entries: make(map[K]Disposable)}
}

// Get returns the resource held under key, if any.
func (m *Map[K]) Get(key K) (Disposable, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.entries[key]
	return d, ok
}

// Has reports whether key holds a resource.
func (m *Map[K]) Has(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Len returns the number of entries.
func (m *Map[K]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Set stores d under key, releasing any previous occupant first.
// Setting on a disposed map disposes d immediately and logs a diagnostic.
func (m *Map[K]) Set(key K, d Disposable) {
	m.set(key, d, true)
}

// SetRetained stores d under key without releasing the previous occupant.
// Used when re-inserting the same logical resource under a new generation.
func (m *Map[K]) SetRetained(key K, d Disposable) {
	m.set(key, d, false)
}

func (m *Map[K]) set(key K, d Disposable, disposePrevious bool) {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		log.Warn("resource set on disposed map; disposing it immediately")
		disposeOne(d)
		return
	}
	prev, had := m.entries[key]
	m.entries[key] = d
	m.mu.Unlock()

	if had && disposePrevious && prev != d {
		disposeOne(prev)
	}
}

// DeleteAndDispose removes key and releases its resource.
func (m *Map[K]) DeleteAndDispose(key K) {
	if d := m.DeleteAndLeak(key); d != nil {
		disposeOne(d)
	}
}

// DeleteAndLeak removes key and returns its resource without releasing it.
// Returns nil when the key holds nothing.
func (m *Map[K]) DeleteAndLeak(key K) Disposable {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.entries[key]
	if !ok {
		return nil
	}
	delete(m.entries, key)
	return d
}

// ClearAndDisposeAll removes every entry and releases each resource.
// The map remains usable unless it was disposed.
func (m *Map[K]) ClearAndDisposeAll() {
	m.mu.Lock()
	held := make([]Disposable, 0, len(m.entries))
	for _, d := range m.entries {
		held = append(held, d)
	}
	m.entries = make(map[K]Disposable)
	m.mu.Unlock()

	for _, d := range held {
		disposeOne(d)
	}
}

// Dispose marks the map dead. Held resources are NOT released; callers that
// want synchronous teardown call ClearAndDisposeAll first. Idempotent.
func (m *Map[K]) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return
	}
	m.disposed = true
	if len(m.entries) > 0 {
		log.Debug("map disposed while holding resources", "held", len(m.entries))
	}
}

// IsDisposed reports whether the map has been disposed.
func (m *Map[K]) IsDisposed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.disposed
}
