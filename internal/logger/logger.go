// Package logger provides a minimal leveled logger for graphcal.
//
// Debug output is suppressed unless verbose mode is enabled, which keeps
// normal server logs quiet while still allowing detailed Graph API tracing
// during development.
package logger

import (
	"fmt"
	"log"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	verbose bool
	std     = log.New(os.Stderr, "", log.LstdFlags)
)

// SetVerbose enables or disables debug output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// SetOutput redirects log output. Used by tests.
func SetOutput(l *log.Logger) {
	mu.Lock()
	defer mu.Unlock()
	std = l
}

// Debug logs a debug message when verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !verbose {
		return
	}
	std.Output(2, "DEBUG "+fmt.Sprintf(format, args...))
}

// Info logs an informational message.
func Info(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	std.Output(2, "INFO "+fmt.Sprintf(format, args...))
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	std.Output(2, "WARN "+fmt.Sprintf(format, args...))
}

// Error logs an error message.
func Error(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	std.Output(2, "ERROR "+fmt.Sprintf(format, args...))
}
