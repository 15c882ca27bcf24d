package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func newTestLogger(level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	clock := func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }
	return New(&buf, "test", WithLevel(level), WithClock(clock)), &buf
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"Warning", LevelWarn},
		{"error", LevelError},
		{"unknown", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestLogger_Format(t *testing.T) {
	l, buf := newTestLogger(LevelDebug)

	l.Info("pasted %d items", 3)
	l.Named("automath").With("conversion", "abc").With("delay", "100ms").Debug("scheduled")

	want := "2024-05-01T12:30:00.000 INFO  test: pasted 3 items\n" +
		"2024-05-01T12:30:00.000 DEBUG test.automath: scheduled conversion=abc delay=100ms\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		level   Level
		written []string
	}{
		{LevelDebug, []string{"debug", "info", "warn", "error"}},
		{LevelWarn, []string{"warn", "error"}},
		{LevelError, []string{"error"}},
	}

	for _, tt := range tests {
		l, buf := newTestLogger(tt.level)
		l.Debug("debug")
		l.Info("info")
		l.Warn("warn")
		l.Error("error")

		if got := strings.Count(buf.String(), "\n"); got != len(tt.written) {
			t.Errorf("level %v: wrote %d lines, want %d", tt.level, got, len(tt.written))
		}
		for _, msg := range tt.written {
			if !strings.Contains(buf.String(), ": "+msg+"\n") {
				t.Errorf("level %v: output = %q, want %q", tt.level, buf.String(), msg)
			}
		}
	}
}

func TestLogger_DerivedLoggersStayIndependent(t *testing.T) {
	l, buf := newTestLogger(LevelDebug)

	_ = l.With("a", 1)
	b := l.With("b", 2)
	b.Info("child")
	l.Info("parent")

	want := []string{"test: child b=2", "test: parent"}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	for i, w := range want {
		if i >= len(lines) || !strings.HasSuffix(lines[i], w) {
			t.Errorf("line %d = %q, want suffix %q", i, lines, w)
		}
	}
}

func TestLogger_SetLevelReachesDerived(t *testing.T) {
	l, buf := newTestLogger(LevelError)
	child := l.Named("editor").With("session", "s1")

	child.Info("hidden")
	l.SetLevel(LevelInfo)
	child.Info("shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic.
	Discard.Info("nothing")
	Discard.Named("x").With("k", "v").Error("nothing")
	Discard.SetLevel(LevelDebug)
	Discard.Debug("still nothing")

	if OrDiscard(nil) != Discard {
		t.Error("OrDiscard(nil) != Discard")
	}
	l := New(nil, "automath")
	if OrDiscard(l) != l {
		t.Error("OrDiscard(l) != l")
	}
}
