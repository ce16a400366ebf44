package dvdvideo

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the narrow structured-logging surface this package needs:
// just the two levels the error-recovery cascade (§7) emits diagnostics
// at. Keeping it an interface (rather than importing zerolog types into
// every call site) lets callers inject a no-op logger in tests.
//
// Grounded pack-wide on rs/zerolog usage (ManuGH-xg2g/internal/log); the
// teacher itself has no logger at all since its CLI prints one report and
// exits.
type Logger interface {
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)
}

// ZerologLogger adapts a zerolog.Logger to the Logger interface.
type ZerologLogger struct {
	base zerolog.Logger
}

// NewZerologLogger wraps l.
func NewZerologLogger(l zerolog.Logger) ZerologLogger { return ZerologLogger{base: l} }

// NewDefaultLogger returns a timestamped console-writer zerolog logger on
// stderr, matching the ambient logging convention the rest of the retrieved
// pack uses for CLI tools. It sets no minimum level of its own.
func NewDefaultLogger() ZerologLogger {
	return NewZerologLogger(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger())
}

func (z ZerologLogger) Warn(msg string, kv ...any) {
	z.event(z.base.Warn(), kv).Msg(msg)
}

func (z ZerologLogger) Error(msg string, kv ...any) {
	z.event(z.base.Error(), kv).Msg(msg)
}

func (z ZerologLogger) event(e *zerolog.Event, kv []any) *zerolog.Event {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, kv[i+1])
	}
	return e
}

// NopLogger discards everything. Used by tests and by callers that don't
// want diagnostics.
type NopLogger struct{}

func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
