package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_CachedPerSubsystem(t *testing.T) {
	a := Logger("event")
	b := Logger("event")
	if a != b {
		t.Error("expected the same logger instance for one subsystem")
	}
	if Logger("lifecycle") == a {
		t.Error("expected distinct loggers for distinct subsystems")
	}
}

func TestLogger_IncludesSubsystem(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	Logger("testsub").Info("hello")

	if out := buf.String(); out != "" && !strings.Contains(out, "testsub") {
		t.Errorf("log record %q missing subsystem attribute", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", "DEBUG"},
		{"info", "INFO"},
		{"warn", "WARN"},
		{"warning", "WARN"},
		{"error", "ERROR"},
		{"", "INFO"},
		{"bogus", "INFO"},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in).String(); got != tt.want {
			t.Errorf("parseLevel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
