// Package logging builds the service's slog.Logger: coloured text via tint or
// JSON on stdout, optionally mirrored to Fluent Bit.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

type Options struct {
	// Level is one of debug, info, warn, error. Unknown values mean info.
	Level string
	// Format is "json" or "text".
	Format  string
	Writer  io.Writer
	NoColor bool
	// Fluent, when set, receives every record that passes its own level.
	Fluent      Poster
	FluentLevel string
}

func New(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	level := ParseLevel(opts.Level)

	var h slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	} else {
		h = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: "2006-01-02 15:04:05",
			NoColor:    opts.NoColor,
		})
	}

	if opts.Fluent != nil {
		fluentLevel := level
		if opts.FluentLevel != "" {
			fluentLevel = ParseLevel(opts.FluentLevel)
		}
		h = fanout{h, NewFluentHandler(opts.Fluent, fluentLevel)}
	}
	return slog.New(h)
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}
