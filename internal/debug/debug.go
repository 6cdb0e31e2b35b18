package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	enabled bool
	noColor bool
	output  io.Writer = os.Stderr
	logger            = build()
)

// build creates the logger from the current settings. Callers hold mu.
func build() zerolog.Logger {
	console := zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: "15:04:05.000",
		NoColor:    noColor,
	}
	level := zerolog.WarnLevel
	if enabled {
		level = zerolog.DebugLevel
	}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// SetDebug enables or disables debug mode
func SetDebug(enable bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = enable
	logger = build()
}

// IsEnabled returns whether debug mode is enabled
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetNoColor enables or disables colored output
func SetNoColor(disable bool) {
	mu.Lock()
	defer mu.Unlock()
	noColor = disable
	logger = build()
}

// SetOutput redirects log output. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	output = w
	logger = build()
}

// Logger returns a logger tagged with the given component name.
func Logger(component string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger.With().Str("component", component).Logger()
}

func current() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug prints a debug message
func Debug(format string, args ...interface{}) {
	if !IsEnabled() {
		return
	}
	l := current()
	l.Debug().Msg(fmt.Sprintf(format, args...))
}

// Debugf is an alias for Debug
func Debugf(format string, args ...interface{}) {
	Debug(format, args...)
}

// DebugSection prints a section header for debug output
func DebugSection(section string) {
	if !IsEnabled() {
		return
	}
	l := current()
	l.Debug().Msg("=== " + section + " ===")
}

// DebugValue prints key=value style debug info
func DebugValue(key string, value interface{}) {
	if !IsEnabled() {
		return
	}
	l := current()
	l.Debug().Interface("value", value).Msg(key)
}

// DebugJSON prints structured data as JSON for debugging
func DebugJSON(key string, v interface{}) {
	if !IsEnabled() {
		return
	}

	jsonBytes, err := json.Marshal(v)
	if err != nil {
		Debug("Failed to marshal %s to JSON: %v", key, err)
		return
	}
	l := current()
	l.Debug().RawJSON("data", jsonBytes).Msg(key)
}

// Duration logs how long an operation took. Use with defer:
//
//	defer debug.Duration("[generator] materialize", time.Now())
func Duration(operation string, start time.Time) {
	if !IsEnabled() {
		return
	}
	l := current()
	l.Debug().Dur("duration", time.Since(start)).Msg(operation)
}
