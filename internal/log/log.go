// Package log provides per-subsystem structured logging for the plugin core.
//
// Loggers are obtained by subsystem name and wrap log/slog. The level and
// output format are configured once from the environment:
//
//	GITPRO_LOG_LEVEL=debug     # debug, info, warn, error (default: info)
//	GITPRO_LOG_FORMAT=json     # text or json (default: text)
//
// Usage:
//
//	var log = ilog.Logger("event")
//
//	log.Warn("listener panicked during fire", "emitter", name, "panic", v)
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	loggers sync.Map // map[string]*slog.Logger

	defaultHandler slog.Handler
	handlerOnce    sync.Once

	// output is swappable for tests.
	outputMu sync.Mutex
	output   io.Writer = os.Stderr
)

// Logger returns the logger for the given subsystem, creating it on first use.
// The subsystem name is attached to every record as the "subsystem" attribute.
func Logger(subsystem string) *slog.Logger {
	if l, ok := loggers.Load(subsystem); ok {
		return l.(*slog.Logger)
	}

	handlerOnce.Do(initHandler)

	l := slog.New(defaultHandler).With("subsystem", subsystem)
	actual, _ := loggers.LoadOrStore(subsystem, l)
	return actual.(*slog.Logger)
}

// SetOutput redirects log output. It only affects loggers created after the
// call, so tests should call it before requesting any logger.
func SetOutput(w io.Writer) {
	outputMu.Lock()
	output = w
	outputMu.Unlock()
}

func initHandler() {
	level := parseLevel(os.Getenv("GITPRO_LOG_LEVEL"))

	outputMu.Lock()
	w := output
	outputMu.Unlock()

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(os.Getenv("GITPRO_LOG_FORMAT"), "json") {
		defaultHandler = slog.NewJSONHandler(w, opts)
		return
	}
	defaultHandler = slog.NewTextHandler(w, opts)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
