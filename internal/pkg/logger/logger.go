package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Logger defines the interface for logging messages.
type Logger interface {
	Error(msg string, err error)
	Warn(msg string)
	Info(msg string)
	Debug(msg string)
	// With returns a logger that prefixes every message with the component name.
	With(component string) Logger
}

// Level is the minimum severity a logger writes.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a LOG_LEVEL value to a Level. Unknown values fall back to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

type levelLogger struct {
	logger    *log.Logger
	level     Level
	component string
}

var (
	loggerInstance Logger
	once           sync.Once
)

// New creates the process-wide logger writing to stdout.
// Only the first call's level is honored.
func New(level Level) Logger {
	once.Do(func() {
		loggerInstance = NewWithWriter(os.Stdout, level)
	})
	return loggerInstance
}

// NewWithWriter creates a standalone logger. Tests use it with a buffer.
func NewWithWriter(w io.Writer, level Level) Logger {
	return &levelLogger{
		logger: log.New(w, "", log.LstdFlags|log.Lshortfile),
		level:  level,
	}
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return NewWithWriter(io.Discard, LevelError+1)
}

func (l *levelLogger) With(component string) Logger {
	c := component
	if l.component != "" {
		c = l.component + "." + component
	}
	return &levelLogger{logger: l.logger, level: l.level, component: c}
}

func (l *levelLogger) output(level Level, line string) {
	if level < l.level {
		return
	}
	if l.component != "" {
		line = "[" + l.component + "] " + line
	}
	// Depth 3 points at the caller of Error/Warn/Info/Debug.
	l.logger.Output(3, line)
}

// Error logs an error message with the 🔴 emoji. err may be nil.
func (l *levelLogger) Error(msg string, err error) {
	if err == nil {
		l.output(LevelError, fmt.Sprintf("🔴 ERROR: %s", msg))
		return
	}
	l.output(LevelError, fmt.Sprintf("🔴 ERROR: %s - %v", msg, err))
}

// Warn logs a warning message with the ⚠️ emoji.
func (l *levelLogger) Warn(msg string) {
	l.output(LevelWarn, fmt.Sprintf("⚠️ WARN: %s", msg))
}

func (l *levelLogger) Info(msg string) {
	l.output(LevelInfo, fmt.Sprintf("INFO: %s", msg))
}

func (l *levelLogger) Debug(msg string) {
	l.output(LevelDebug, fmt.Sprintf("DEBUG: %s", msg))
}
