// Package logger provides a simple leveled logging utility for the CLI.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level represents the logging level
type Level int

const (
	// LevelOff disables informational logging; warnings are still shown
	LevelOff Level = iota
	// LevelInfo shows basic progress information
	LevelInfo
	// LevelDebug shows detailed debugging information
	LevelDebug
)

var (
	mu           sync.Mutex
	currentLevel           = LevelOff
	startTime              = time.Now()
	output       io.Writer = os.Stderr
)

// SetLevel sets the global logging level
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	currentLevel = level
	startTime = time.Now()
}

// GetLevel returns the current logging level
func GetLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return currentLevel
}

// SetOutput redirects log output. A nil writer restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	output = w
}

// IsVerbose returns true if verbose logging is enabled
func IsVerbose() bool {
	return GetLevel() >= LevelInfo
}

// IsDebug returns true if debug logging is enabled
func IsDebug() bool {
	return GetLevel() >= LevelDebug
}

// Info logs an informational message (shown with --verbose)
func Info(format string, args ...interface{}) {
	logf(LevelInfo, "", format, args...)
}

// Debug logs a debug message (shown with --debug)
func Debug(format string, args ...interface{}) {
	logf(LevelDebug, "[DEBUG] ", format, args...)
}

// Error logs an error message (always shown when verbose is on)
func Error(format string, args ...interface{}) {
	logf(LevelInfo, "[ERROR] ", format, args...)
}

// Warn logs a warning regardless of the level.
func Warn(format string, args ...interface{}) {
	logf(LevelOff, "[WARN] ", format, args...)
}

func logf(min Level, tag, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if currentLevel < min {
		return
	}
	elapsed := time.Since(startTime).Round(time.Millisecond)
	prefix := fmt.Sprintf("[%s] %s", elapsed, tag)
	fmt.Fprintf(output, prefix+format+"\n", args...)
}
