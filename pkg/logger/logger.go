package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// Level controls which messages are written.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel converts a config string ("debug", "info", "warn", "error")
// into a Level. Unknown values default to info.
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

// Logger is a leveled printf-style logger writing to a file or stderr.
type Logger struct {
	level Level
	out   *log.Logger
	file  *os.File
}

// New creates a logger. When filePath is empty, messages go to stderr;
// otherwise the file is opened in append mode.
func New(filePath, level string) (*Logger, error) {
	l := &Logger{
		level: ParseLevel(level),
		out:   log.New(os.Stderr, "", log.LstdFlags),
	}

	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: open %s: %w", filePath, err)
		}
		l.file = f
		l.out = log.New(f, "", log.LstdFlags)
	}

	return l, nil
}

// Close releases the underlying log file, if any.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *Logger) write(level Level, tag, format string, v ...interface{}) {
	if level < l.level {
		return
	}
	l.out.Printf(tag+" "+format, v...)
}

// Debug logs a debug-level message.
func (l *Logger) Debug(format string, v ...interface{}) {
	l.write(LevelDebug, "[DEBUG]", format, v...)
}

// Info logs an info-level message.
func (l *Logger) Info(format string, v ...interface{}) {
	l.write(LevelInfo, "[INFO]", format, v...)
}

// Warn logs a warning.
func (l *Logger) Warn(format string, v ...interface{}) {
	l.write(LevelWarn, "[WARN]", format, v...)
}

// Error logs an error.
func (l *Logger) Error(format string, v ...interface{}) {
	l.write(LevelError, "[ERROR]", format, v...)
}

// Fatal logs an error and terminates the process.
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.write(LevelError, "[FATAL]", format, v...)
	if l.file != nil {
		_ = l.file.Close()
	}
	os.Exit(1)
}
