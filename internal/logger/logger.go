package logger

import (
	"strings"
	"sync"
)

// Log levels accepted in config.yml (log.level).
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	// globalLogger holds the singleton logger instance.
	globalLogger *Logger
	once         sync.Once
)

// Get returns the process-wide logger. The first call fixes the level;
// later calls return the same instance whatever level they pass.
func Get(level string) *Logger {
	once.Do(func() {
		globalLogger = newZapLogger(normalizeLevel(level))
	})
	return globalLogger
}

// normalizeLevel trims and lowercases a configured level string.
func normalizeLevel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
