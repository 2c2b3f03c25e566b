// Package logging provides the package-level structured logger used for
// orchestration progress and diagnostics. It never receives secret material:
// callers pass sizes, indices, and phase names, never passwords or keys.
package logging

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Logger is the process-wide structured logger, writing human-readable,
// colorized lines to stderr.
var Logger *slog.Logger

func init() {
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	})
	Logger = slog.New(handler)
}

// SetDebug reconfigures Logger to emit Debug-level records with source
// locations, used by the -debug CLI flag.
func SetDebug() {
	Logger = slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.Kitchen,
		AddSource:  true,
	}))
}
