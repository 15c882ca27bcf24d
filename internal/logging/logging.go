// Package logging provides the leveled logger shared by the editor
// components.
//
// A root logger owns a sink: the writer, the minimum level and the clock.
// Loggers derived with Named or With share that sink, so a level change
// on any of them applies to the whole tree.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents the severity level of a log message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a string into a Level. Unknown names yield LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

type sink struct {
	mu    sync.Mutex
	w     io.Writer
	level Level
	now   func() time.Time
}

// Option configures a root logger.
type Option func(*sink)

// WithLevel sets the minimum level written. The default is LevelInfo.
func WithLevel(level Level) Option {
	return func(s *sink) { s.level = level }
}

// WithClock sets the time source used for line timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *sink) { s.now = now }
}

// Logger writes one line per message: timestamp, level, the dotted
// component name, the message and the bound key/value pairs in the
// order they were added. A nil sink discards everything.
type Logger struct {
	sink  *sink
	name  string
	attrs []string
}

// Discard is a logger that writes nothing.
var Discard = &Logger{}

// New creates a root logger named name writing to w. A nil w selects
// os.Stderr.
func New(w io.Writer, name string, opts ...Option) *Logger {
	if w == nil {
		w = os.Stderr
	}
	s := &sink{w: w, level: LevelInfo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return &Logger{sink: s, name: name}
}

// OrDiscard returns l, or Discard when l is nil.
func OrDiscard(l *Logger) *Logger {
	if l == nil {
		return Discard
	}
	return l
}

// Named returns a logger for a sub-component. Names nest with dots.
func (l *Logger) Named(component string) *Logger {
	name := component
	if l.name != "" {
		name = l.name + "." + component
	}
	return &Logger{sink: l.sink, name: name, attrs: l.attrs}
}

// With returns a logger that appends key=value to every line.
func (l *Logger) With(key string, value any) *Logger {
	attrs := make([]string, len(l.attrs), len(l.attrs)+1)
	copy(attrs, l.attrs)
	attrs = append(attrs, fmt.Sprintf("%s=%v", key, value))
	return &Logger{sink: l.sink, name: l.name, attrs: attrs}
}

// SetLevel changes the minimum level for every logger sharing the sink.
func (l *Logger) SetLevel(level Level) {
	if l.sink == nil {
		return
	}
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.level = level
}

func (l *Logger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.log(LevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(LevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.log(LevelError, msg, args) }

func (l *Logger) log(level Level, msg string, args []any) {
	if l.sink == nil {
		return
	}
	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()
	if level < s.level {
		return
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	var sb strings.Builder
	sb.WriteString(s.now().Format("2006-01-02T15:04:05.000"))
	fmt.Fprintf(&sb, " %-5s ", level)
	if l.name != "" {
		sb.WriteString(l.name)
		sb.WriteString(": ")
	}
	sb.WriteString(msg)
	for _, a := range l.attrs {
		sb.WriteByte(' ')
		sb.WriteString(a)
	}
	sb.WriteByte('\n')

	_, _ = io.WriteString(s.w, sb.String())
}
