package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/edstrip/internal/config"
	"github.com/dusk-indust/edstrip/internal/strip"
)

// globalFlags are shared by every command.
type globalFlags struct {
	config    string
	logLevel  string
	logFormat string
}

// loadConfig reads the config file and environment, then applies the
// global flags the user set explicitly.
func loadConfig(cmd *cobra.Command, gf *globalFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if gf.config != "" {
		cfg, err = config.LoadFile(gf.config)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = gf.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = gf.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger. Logs always go to w (stderr) so
// that stdout stays free for stripped output and the MCP stdio transport.
func newLogger(w io.Writer, lc config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(lc.Level)}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newStripper builds a Stripper from the config's strip settings.
func newStripper(cfg *config.Config) (*strip.Stripper, error) {
	opts, err := cfg.StripOptions()
	if err != nil {
		return nil, fmt.Errorf("strip options: %w", err)
	}
	return strip.New(nil, opts), nil
}
