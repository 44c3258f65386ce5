// Package logger provides a simple leveled logger for the application.
// It supports three levels: off (no output), normal (info/warn/error),
// and verbose (includes debug). The logger is safe for concurrent use.
//
// Child loggers created with Named share the parent's level, so a single
// SetLevel call affects every component.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level controls the verbosity of the logger.
type Level int

const (
	// LevelOff disables all log output.
	LevelOff Level = iota
	// LevelNormal enables info, warn, and error output.
	LevelNormal
	// LevelVerbose enables all output including debug.
	LevelVerbose
)

// String returns the flag form of the level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelVerbose:
		return "verbose"
	default:
		return "normal"
	}
}

// ParseLevel converts "off", "normal" or "verbose" into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "quiet", "none":
		return LevelOff, nil
	case "", "normal", "info":
		return LevelNormal, nil
	case "verbose", "debug":
		return LevelVerbose, nil
	default:
		return LevelNormal, fmt.Errorf("logger: unknown level %q", s)
	}
}

// levelBox holds the level shared between a logger and its children.
type levelBox struct {
	mu    sync.RWMutex
	level Level
}

// Logger is a leveled logger. All methods are safe for concurrent use.
type Logger struct {
	lvl    *levelBox
	prefix string
	debug  *log.Logger
	info   *log.Logger
	warn   *log.Logger
	errLog *log.Logger
}

// New creates a logger with the given level, writing to the given output.
// If out is nil, os.Stderr is used.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}

	flags := log.Ltime

	return &Logger{
		lvl:    &levelBox{level: level},
		debug:  log.New(out, "[DBG] ", flags),
		info:   log.New(out, "[INF] ", flags),
		warn:   log.New(out, "[WRN] ", flags),
		errLog: log.New(out, "[ERR] ", flags),
	}
}

// Named returns a child logger whose messages are prefixed with
// "component: ". Children nest: Named("a").Named("b") prefixes "a.b: ".
func (l *Logger) Named(component string) *Logger {
	child := *l
	if l.prefix == "" {
		child.prefix = component
	} else {
		child.prefix = l.prefix + "." + component
	}
	return &child
}

// SetLevel changes the log level at runtime.
func (l *Logger) SetLevel(level Level) {
	l.lvl.mu.Lock()
	defer l.lvl.mu.Unlock()
	l.lvl.level = level
}

// GetLevel returns the current log level.
func (l *Logger) GetLevel() Level {
	l.lvl.mu.RLock()
	defer l.lvl.mu.RUnlock()
	return l.lvl.level
}

// Debug logs a message at debug level (only visible in verbose mode).
func (l *Logger) Debug(format string, args ...any) {
	l.output(LevelVerbose, l.debug, format, args...)
}

// Info logs a message at info level.
func (l *Logger) Info(format string, args ...any) {
	l.output(LevelNormal, l.info, format, args...)
}

// Warn logs a message at warn level.
func (l *Logger) Warn(format string, args ...any) {
	l.output(LevelNormal, l.warn, format, args...)
}

// Error logs a message at error level.
func (l *Logger) Error(format string, args ...any) {
	l.output(LevelNormal, l.errLog, format, args...)
}

func (l *Logger) output(min Level, dst *log.Logger, format string, args ...any) {
	if l.GetLevel() < min {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if l.prefix != "" {
		msg = l.prefix + ": " + msg
	}
	dst.Output(3, msg)
}
