package lifecycle

import "sync"

// Store is a mutable set of Disposables that are released together.
// It scopes the lifetime of a group of subscriptions to the lifetime of an
// owning object. The zero value is ready to use.
//
// Release order is insertion order. Once disposed, adding a resource releases
// it immediately and logs a warning; the store never retains it.
type Store struct {
	mu        sync.Mutex
	resources []Disposable
	disposed  bool
}

// NewStore creates an empty Store. Equivalent to &Store{}.
func NewStore() *Store {
	return &Store{}
}

// Add registers d with the store and returns d for chaining.
//
// Adding a store to itself is a structural bug and panics. Adding to a
// disposed store disposes d immediately and logs a diagnostic.
func (s *Store) Add(d Disposable) Disposable {
	if d == nil {
		return None
	}
	if d == Disposable(s) {
		panic("lifecycle: cannot register a store on itself")
	}

	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		log.Warn("resource added to disposed store; disposing it immediately")
		disposeOne(d)
		return d
	}
	s.resources = append(s.resources, d)
	s.mu.Unlock()
	return d
}

// Delete removes d from the store and disposes it.
// Removing a resource that is not in the store is a no-op.
func (s *Store) Delete(d Disposable) {
	if d == nil {
		return
	}
	if d == Disposable(s) {
		panic("lifecycle: cannot dispose a store on itself")
	}

	s.mu.Lock()
	for i, held := range s.resources {
		if held == d {
			s.resources = append(s.resources[:i], s.resources[i+1:]...)
			s.mu.Unlock()
			disposeOne(d)
			return
		}
	}
	s.mu.Unlock()
}

// Clear disposes all held resources, in insertion order, without marking the
// store itself dead. The store remains usable afterwards.
func (s *Store) Clear() {
	s.mu.Lock()
	held := s.resources
	s.resources = nil
	s.mu.Unlock()

	for _, d := range held {
		disposeOne(d)
	}
}

// Dispose releases all held resources and marks the store dead.
// Idempotent.
func (s *Store) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	held := s.resources
	s.resources = nil
	s.mu.Unlock()

	for _, d := range held {
		disposeOne(d)
	}
}

// IsDisposed reports whether the store has been disposed.
func (s *Store) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// Len returns the number of resources currently held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.resources)
}
