// Package config provides the plugin's JSON settings store with change
// notification.
//
// Settings live in a single JSON document addressed by dot-separated paths
// ("git.autoFetch", "diff.ignoreWhitespace"). Every mutation fires a Change
// through OnDidChange; Batch coalesces the delivery of several mutations so
// listeners observe one ordered group after the batch completes.
package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dikidjatar/acode-plugin-version-control-gitpro-sub001/internal/event"
)

// Common errors returned by store operations.
var (
	ErrDisposed    = errors.New("config store is disposed")
	ErrInvalidJSON = errors.New("settings document is not valid JSON")
	ErrNoPath      = errors.New("config store has no backing file")
)

// ChangeType represents the type of configuration change.
type ChangeType int

const (
	// ChangeSet indicates a value was set or updated.
	ChangeSet ChangeType = iota

	// ChangeDelete indicates a value was deleted.
	ChangeDelete

	// ChangeReload indicates the entire document was replaced.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeDelete:
		return "delete"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change describes a single configuration change.
type Change struct {
	// Path is the dot-separated path to the changed setting.
	// Empty for reload events.
	Path string

	// Type is the type of change.
	Type ChangeType

	// Old is the previous value at Path. Old.Exists() is false when the
	// path was unset.
	Old gjson.Result

	// New is the value at Path after the change.
	New gjson.Result
}

// Store holds the settings document and its change channel.
type Store struct {
	mu       sync.Mutex
	path     string
	doc      string
	disposed bool

	didChange *event.Emitter[Change]
	bufferer  *event.Bufferer
}

// Option configures a Store.
type Option func(*Store)

// WithDocument sets the initial JSON document. Defaults to "{}".
func WithDocument(doc string) Option {
	return func(s *Store) {
		s.doc = doc
	}
}

// WithPath sets the backing file used by Save.
func WithPath(path string) Option {
	return func(s *Store) {
		s.path = path
	}
}

// New creates a settings store.
func New(opts ...Option) (*Store, error) {
	s := &Store{
		doc:       "{}",
		didChange: event.NewEmitter[Change](event.WithName("config.didChange")),
		bufferer:  event.NewBufferer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if !gjson.Valid(s.doc) {
		return nil, ErrInvalidJSON
	}
	return s, nil
}

// Load reads the settings document from path. A missing file yields an empty
// document backed by that path.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(WithPath(path))
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings %s: %w", path, err)
	}
	return New(WithPath(path), WithDocument(string(data)))
}

// Get returns the value at the dot-separated path.
func (s *Store) Get(path string) gjson.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gjson.Get(s.doc, path)
}

// Document returns the current JSON document.
func (s *Store) Document() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Set stores value at the dot-separated path and fires a ChangeSet.
func (s *Store) Set(path string, value any) error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return ErrDisposed
	}
	old := gjson.Get(s.doc, path)
	doc, err := sjson.Set(s.doc, path, value)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("setting %q: %w", path, err)
	}
	s.doc = doc
	change := Change{Path: path, Type: ChangeSet, Old: old, New: gjson.Get(doc, path)}
	s.mu.Unlock()

	s.didChange.Fire(change)
	return nil
}

// Delete removes the value at the dot-separated path and fires a
// ChangeDelete. Deleting an unset path is a no-op.
func (s *Store) Delete(path string) error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return ErrDisposed
	}
	old := gjson.Get(s.doc, path)
	if !old.Exists() {
		s.mu.Unlock()
		return nil
	}
	doc, err := sjson.Delete(s.doc, path)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("deleting %q: %w", path, err)
	}
	s.doc = doc
	change := Change{Path: path, Type: ChangeDelete, Old: old}
	s.mu.Unlock()

	s.didChange.Fire(change)
	return nil
}

// Reload replaces the whole document and fires a ChangeReload.
func (s *Store) Reload(doc string) error {
	if !gjson.Valid(doc) {
		return ErrInvalidJSON
	}
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return ErrDisposed
	}
	s.doc = doc
	s.mu.Unlock()

	s.didChange.Fire(Change{Type: ChangeReload})
	return nil
}

// Save writes the document to the backing file.
func (s *Store) Save() error {
	s.mu.Lock()
	path, doc := s.path, s.doc
	s.mu.Unlock()

	if path == "" {
		return ErrNoPath
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing settings %s: %w", path, err)
	}
	return nil
}

// OnDidChange is the change channel. Deliveries participate in Batch
// buffering: changes made inside a batch arrive as one ordered group after
// the batch returns.
func (s *Store) OnDidChange() event.Event[Change] {
	return event.BufferEvent(s.bufferer, s.didChange.Event())
}

// OnDidChangePath narrows OnDidChange to changes at path or below it.
// Subscribing to "git" also observes "git.autoFetch". Reload changes always
// match.
func (s *Store) OnDidChangePath(path string) event.Event[Change] {
	return event.Filter(s.OnDidChange(), func(c Change) bool {
		if c.Type == ChangeReload {
			return true
		}
		return c.Path == path || isParentPath(path, c.Path)
	})
}

// Batch runs fn with change delivery deferred: listeners see all of fn's
// changes, in order, only after fn returns. Batches nest.
func (s *Store) Batch(fn func() error) error {
	var err error
	s.bufferer.BufferWhile(func() {
		err = fn()
	})
	return err
}

// Dispose releases the change channel and stops accepting mutations.
// Idempotent.
func (s *Store) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	s.mu.Unlock()

	s.didChange.Dispose()
}

// isParentPath reports whether parent is a strict path prefix of child,
// e.g. "git" is a parent of "git.autoFetch".
func isParentPath(parent, child string) bool {
	if parent == "" || len(parent) >= len(child) {
		return false
	}
	return child[:len(parent)] == parent && child[len(parent)] == '.'
}
