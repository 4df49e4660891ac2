// Package logging wires zerolog into the amortization engine and the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger. Outside production output is
// a human-readable console; in production it is JSON on w.
func Setup(w io.Writer, env string, verbose bool) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	out := w
	if env != "production" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}

// SetupFromEnv calls Setup with ENV from the process environment.
func SetupFromEnv(verbose bool) zerolog.Logger {
	return Setup(os.Stderr, os.Getenv("ENV"), verbose)
}

// Adapter exposes a zerolog.Logger through the engine's printf-style
// Debugf/Infof/Warnf/Errorf interface.
type Adapter struct {
	logger zerolog.Logger
}

// NewAdapter wraps logger.
func NewAdapter(logger zerolog.Logger) *Adapter {
	return &Adapter{logger: logger}
}

// With returns an adapter whose entries carry an extra string field.
func (a *Adapter) With(key, value string) *Adapter {
	return &Adapter{logger: a.logger.With().Str(key, value).Logger()}
}

func (a *Adapter) Debugf(format string, args ...any) { a.logger.Debug().Msg(sprintf(format, args)) }
func (a *Adapter) Infof(format string, args ...any)  { a.logger.Info().Msg(sprintf(format, args)) }
func (a *Adapter) Warnf(format string, args ...any)  { a.logger.Warn().Msg(sprintf(format, args)) }
func (a *Adapter) Errorf(format string, args ...any) { a.logger.Error().Msg(sprintf(format, args)) }

func sprintf(format string, args []any) string {
	if len(args) == 0 {
		return strings.TrimSpace(format)
	}
	return strings.TrimSpace(fmt.Sprintf(format, args...))
}
