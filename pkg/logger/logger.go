// Package logger owns the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "catalog-api"

// Options controls how the process logger is built.
type Options struct {
	// Level is the minimum level name (trace, debug, info, warn,
	// error). Empty or unrecognised values fall back to info.
	Level string
	// Pretty switches to human-readable console output for local
	// development; production emits JSON.
	Pretty bool
	// Output defaults to os.Stderr.
	Output io.Writer
}

var (
	mu       sync.Mutex
	instance zerolog.Logger
	ready    bool
)

// Init builds the process logger. The first call wins; later calls
// return the existing logger unchanged.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if ready {
		return instance
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339
	instance = zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
	ready = true
	return instance
}

// Get returns the process logger. Code that runs before main has
// called Init gets a default stderr logger rather than a panic.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !ready {
		instance = zerolog.New(os.Stderr).With().Timestamp().Str("service", serviceName).Logger()
		ready = true
	}
	return instance
}

// Reset discards the current logger so the next Init rebuilds it.
// Test helper.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	instance = zerolog.Logger{}
	ready = false
}
