package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"Warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn)
	l.SetOutput(&buf)

	l.Info("hidden %d", 1)
	l.Warn("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line written at warn level: %q", out)
	}
	if !strings.Contains(out, "[WARN] shown 2") {
		t.Errorf("output = %q, want warn line", out)
	}
}

func TestWithPrefixesComponent(t *testing.T) {
	var buf bytes.Buffer
	root := New(LevelDebug)
	root.SetOutput(&buf)

	nav := root.With("scene").With("nav")
	nav.Debug("drill %s", "galaxy")

	if !strings.Contains(buf.String(), "[DEBUG] [scene/nav] drill galaxy") {
		t.Errorf("output = %q", buf.String())
	}

	// Children share the parent's level.
	root.SetLevel(LevelError)
	if nav.Enabled(LevelInfo) {
		t.Error("child should follow parent level")
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing")
	if l.Enabled(LevelError) {
		t.Error("Discard logger should not be enabled")
	}
}
