// Package obslog is the thin structured-logging wrapper used only at
// invariant-violation boundaries (spec.md §7: "internal invariant
// violations... must be detected and treated as programming errors").
// Grounded on the teacher's logging usage pattern across pkg/reality and
// pkg/rlm, which favor a package-level zerolog.Logger over passing a
// logger through every call.
package obslog

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
)

// SetLogger replaces the package logger, letting a host application route
// coverkit's invariant logs into its own sink.
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

func current() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// InvariantViolation logs a detected programming error at the site it was
// caught, without panicking: the core stays total per spec.md §7.
func InvariantViolation(component, message string, fields map[string]any) {
	ev := current().Error().Str("component", component)
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(message)
}
