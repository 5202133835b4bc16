// Package logging builds the zerolog logger used by the server.
//
// Logs always go to the writer handed in (stderr in production) because stdout
// carries the MCP protocol.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to w at the named level.
//
// Parameters:
//   - w: destination, typically os.Stderr.
//   - level: zerolog level name ("debug", "info", "warn", "error", ...).
//   - format: "console" for zerolog.ConsoleWriter output, "json" for raw JSON
//     lines.
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}

	out := w
	if format != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}
