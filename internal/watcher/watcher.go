// Package watcher provides file system change notification for the plugin.
//
// The watcher maps raw fsnotify events onto the plugin's event core: bursts
// of changes are coalesced with a debounce window and delivered through
// OnDidChangeFiles as one ordered slice. Paths matching ignore patterns are
// dropped before they ever reach a listener.
package watcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/fsnotify/fsnotify"
	"github.com/tidwall/match"

	"github.com/dikidjatar/acode-plugin-version-control-gitpro-sub001/internal/event"
	ilog "github.com/dikidjatar/acode-plugin-version-control-gitpro-sub001/internal/log"
)

var log = ilog.Logger("watcher")

// ErrClosed is returned by operations on a closed watcher.
var ErrClosed = errors.New("watcher is closed")

// Op represents the type of file system operation.
type Op uint32

const (
	// OpCreate indicates a file or directory was created.
	OpCreate Op = 1 << iota
	// OpWrite indicates a file was written to.
	OpWrite
	// OpRemove indicates a file or directory was removed.
	OpRemove
	// OpRename indicates a file or directory was renamed.
	OpRename
	// OpChmod indicates file permissions were changed.
	OpChmod
)

// String returns a human-readable representation of the operation.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpWrite:
		return "WRITE"
	case OpRemove:
		return "REMOVE"
	case OpRename:
		return "RENAME"
	case OpChmod:
		return "CHMOD"
	default:
		return "UNKNOWN"
	}
}

// Has returns true if the operation includes the given op.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Change represents a single file system change.
type Change struct {
	// Path is the path of the affected file or directory.
	Path string

	// Op is the operation that occurred.
	Op Op
}

// Config holds watcher configuration.
type Config struct {
	// DebounceDelay is the quiet period before a burst of changes is
	// delivered. Default: 100ms.
	DebounceDelay time.Duration

	// IgnorePatterns are glob patterns for paths to drop. A pattern is
	// matched against both the base name and the full path.
	IgnorePatterns []string

	// Clock schedules the debounce timer. Tests pass clock.NewMock.
	Clock clock.Clock
}

// Option configures a watcher.
type Option func(*Config)

// WithDebounceDelay sets the debounce window.
func WithDebounceDelay(d time.Duration) Option {
	return func(c *Config) {
		c.DebounceDelay = d
	}
}

// WithIgnorePatterns sets the ignore patterns.
func WithIgnorePatterns(patterns ...string) Option {
	return func(c *Config) {
		c.IgnorePatterns = patterns
	}
}

// WithWatchClock sets the clock used for debouncing.
func WithWatchClock(clk clock.Clock) Option {
	return func(c *Config) {
		c.Clock = clk
	}
}

// Watcher monitors file system changes and publishes them through the event
// core.
type Watcher struct {
	config Config

	fsw       *fsnotify.Watcher
	didChange *event.Emitter[Change]
	didErr    *event.Emitter[error]
	batched   event.Event[[]Change]

	done      chan struct{}
	closeOnce sync.Once
}

// New creates a watcher. Call Add to start watching paths and Close to
// release it.
func New(opts ...Option) (*Watcher, error) {
	cfg := Config{
		DebounceDelay: 100 * time.Millisecond,
		Clock:         clock.New(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &Watcher{
		config:    cfg,
		fsw:       fsw,
		didChange: event.NewEmitter[Change](event.WithName("watcher.didChange")),
		didErr:    event.NewEmitter[error](event.WithName("watcher.didErr")),
		done:      make(chan struct{}),
	}
	w.batched = event.Debounce(w.didChange.Event(), appendChange, cfg.DebounceDelay, event.WithClock(cfg.Clock))

	go w.loop()

	return w, nil
}

// appendChange is the debounce accumulator: a burst becomes one ordered slice.
func appendChange(acc *[]Change, next Change) []Change {
	if acc == nil {
		return []Change{next}
	}
	return append(*acc, next)
}

// Add starts watching a path (file or directory).
func (w *Watcher) Add(path string) error {
	if w.closed() {
		return ErrClosed
	}
	if err := w.fsw.Add(path); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	return nil
}

// Remove stops watching a path.
func (w *Watcher) Remove(path string) error {
	if w.closed() {
		return ErrClosed
	}
	if err := w.fsw.Remove(path); err != nil {
		return fmt.Errorf("unwatching %s: %w", path, err)
	}
	return nil
}

func (w *Watcher) closed() bool {
	select {
	case <-w.done:
		return true
	default:
		return false
	}
}

// OnDidChangeFiles delivers bursts of changes as one ordered slice after the
// debounce window passes with no further activity. Each subscription owns
// its timer; disposing the subscription cancels it.
func (w *Watcher) OnDidChangeFiles() event.Event[[]Change] {
	return w.batched
}

// OnDidChangeRaw delivers every change individually, without debouncing.
func (w *Watcher) OnDidChangeRaw() event.Event[Change] {
	return w.didChange.Event()
}

// OnError delivers watcher errors.
func (w *Watcher) OnError() event.Event[error] {
	return w.didErr.Event()
}

// Close stops the watcher and disposes its event channels. Idempotent.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.didChange.Dispose()
		w.didErr.Dispose()
	})
	return err
}

// loop maps fsnotify events onto the change channel.
func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			op := mapOp(ev.Op)
			if op == 0 || w.ignored(ev.Name) {
				continue
			}
			w.didChange.Fire(Change{Path: ev.Name, Op: op})

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn("file watcher error", "error", err)
			w.didErr.Fire(err)
		}
	}
}

// ignored reports whether the path matches any ignore pattern.
func (w *Watcher) ignored(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range w.config.IgnorePatterns {
		if match.Match(base, pattern) || match.Match(path, pattern) {
			return true
		}
	}
	return false
}

func mapOp(op fsnotify.Op) Op {
	var out Op
	if op.Has(fsnotify.Create) {
		out |= OpCreate
	}
	if op.Has(fsnotify.Write) {
		out |= OpWrite
	}
	if op.Has(fsnotify.Remove) {
		out |= OpRemove
	}
	if op.Has(fsnotify.Rename) {
		out |= OpRename
	}
	if op.Has(fsnotify.Chmod) {
		out |= OpChmod
	}
	return out
}
