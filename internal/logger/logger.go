// Package logger provides the small leveled, colored logger used by the CLI.
package logger

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

// Level orders log severities.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) color() string {
	switch l {
	case DEBUG:
		return colorGray
	case INFO:
		return colorBlue
	case WARN:
		return colorYellow
	case ERROR:
		return colorRed
	default:
		return colorReset
	}
}

var (
	mu      sync.RWMutex
	verbose bool
	stdout  = log.New(os.Stdout, "", 0)
	stderr  = log.New(os.Stderr, "", 0)
)

// SetVerbose enables DEBUG output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

func emit(level Level, format string, args ...any) {
	mu.RLock()
	if level == DEBUG && !verbose {
		mu.RUnlock()
		return
	}
	out := stdout
	if level >= ERROR {
		out = stderr
	}
	mu.RUnlock()

	timestamp := time.Now().Format("06-01-02 15:04:05")
	message := fmt.Sprintf(format, args...)
	out.Printf("%s[%s]%s %s%-5s%s %s",
		colorGray, timestamp, colorReset,
		level.color(), level.String(), colorReset,
		message)
}

// Debug logs at DEBUG level; suppressed unless verbose.
func Debug(format string, args ...any) { emit(DEBUG, format, args...) }

// Info logs at INFO level.
func Info(format string, args ...any) { emit(INFO, format, args...) }

// Warn logs at WARN level.
func Warn(format string, args ...any) { emit(WARN, format, args...) }

// Error logs at ERROR level to stderr.
func Error(format string, args ...any) { emit(ERROR, format, args...) }
