package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	charmlog "github.com/charmbracelet/log"

	"github.com/p-arndt/sortbench/internal/config"
)

// newLogger builds the process logger. "pretty" uses charmbracelet/log as the
// slog handler; "json" and "text" use the standard handlers.
func newLogger(w io.Writer, lc config.LogConfig) (*slog.Logger, error) {
	var level slog.Level
	if lc.Level != "" {
		if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
			return nil, fmt.Errorf("%w: log level %q", config.ErrInvalid, lc.Level)
		}
	}

	switch strings.ToLower(lc.Format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})), nil
	case "pretty":
		h := charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmlog.Level(level),
			ReportTimestamp: true,
			Prefix:          "sortbench",
		})
		return slog.New(h), nil
	default:
		return nil, fmt.Errorf("%w: log format %q", config.ErrInvalid, lc.Format)
	}
}
