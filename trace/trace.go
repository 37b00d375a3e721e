// File: trace/trace.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Thin zerolog front for the library. One process-wide logger, swappable
// by the host; call sites format in printf style.

package trace

import (
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"
)

var logger atomic.Pointer[zerolog.Logger]

func init() {
	l := zerolog.New(os.Stderr).With().Timestamp().Str("component", "taskq").Logger().Level(zerolog.WarnLevel)
	logger.Store(&l)
}

// SetLogger replaces the library logger. Safe to call at any time.
func SetLogger(l zerolog.Logger) {
	logger.Store(&l)
}

// Logger returns the current library logger for callers that want to
// attach their own fields.
func Logger() *zerolog.Logger {
	return logger.Load()
}

// Information records a verbose lifecycle message.
func Information(format string, v ...any) {
	logger.Load().Info().Msgf(format, v...)
}

// Error records a diagnostic for an invariant breach or misuse.
func Error(format string, v ...any) {
	logger.Load().Error().Msgf(format, v...)
}
