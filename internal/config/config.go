// Package config loads edstrip settings: defaults, then an edstrip.yml
// file, then EDSTRIP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/dusk-indust/edstrip/internal/strip"
)

// FileNames are the config file names Load looks for, in order.
var FileNames = []string{"edstrip.yml", "edstrip.yaml"}

// Config holds the settings shared by the CLI, the MCP server and the
// HTTP API.
type Config struct {
	Glob            string   `yaml:"glob,omitempty" envconfig:"EDSTRIP_GLOB"`
	Exclude         []string `yaml:"exclude,omitempty" envconfig:"EDSTRIP_EXCLUDE"`
	Jobs            int      `yaml:"jobs,omitempty" envconfig:"EDSTRIP_JOBS"`
	TypeHints       string   `yaml:"typeHints,omitempty" envconfig:"EDSTRIP_TYPE_HINTS"`
	Docstrings      string   `yaml:"docstrings,omitempty" envconfig:"EDSTRIP_DOCSTRINGS"`
	KeepComments    bool     `yaml:"keepComments,omitempty" envconfig:"EDSTRIP_KEEP_COMMENTS"`
	NoCollapse      bool     `yaml:"noCollapse,omitempty" envconfig:"EDSTRIP_NO_COLLAPSE"`
	PreserveLicense bool     `yaml:"preserveLicense,omitempty" envconfig:"EDSTRIP_PRESERVE_LICENSE"`
	LicensePattern  string   `yaml:"licensePattern,omitempty" envconfig:"EDSTRIP_LICENSE_PATTERN"`

	Log    LogConfig    `yaml:"log,omitempty"`
	Server ServerConfig `yaml:"server,omitempty"`

	// Source is the file the config was read from, empty for none.
	Source string `yaml:"-" ignored:"true"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level,omitempty" envconfig:"EDSTRIP_LOG_LEVEL"`
	Format string `yaml:"format,omitempty" envconfig:"EDSTRIP_LOG_FORMAT"`
}

// ServerConfig configures `edstrip serve`.
type ServerConfig struct {
	Addr         string `yaml:"addr,omitempty" envconfig:"EDSTRIP_ADDR"`
	MaxBodyBytes int64  `yaml:"maxBodyBytes,omitempty" envconfig:"EDSTRIP_MAX_BODY_BYTES"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Glob:       "**/*",
		Docstrings: string(strip.DocstringsRemove),
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8080",
			MaxBodyBytes: 8 << 20,
		},
	}
}

// Load reads edstrip.yml or edstrip.yaml from dir over the defaults and
// applies environment overrides. A missing file is not an error.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return LoadFile("")
}

// LoadFile is Load for an explicit file path. An empty path skips the
// file.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.Source = path
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("processing env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	var errs []string

	if c.Jobs < 0 {
		errs = append(errs, "jobs must not be negative")
	}
	if _, err := strip.ParseDocstringMode(c.Docstrings); err != nil {
		errs = append(errs, err.Error())
	}
	if c.LicensePattern != "" {
		if _, err := regexp.Compile(c.LicensePattern); err != nil {
			errs = append(errs, fmt.Sprintf("invalid license pattern: %v", err))
		}
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log level: %s (must be debug, info, warn or error)", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("invalid log format: %s (must be text or json)", c.Log.Format))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, "server.maxBodyBytes must be positive")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// StripOptions converts the strip settings.
func (c *Config) StripOptions() (strip.Options, error) {
	opts := strip.DefaultOptions()

	mode, err := strip.ParseDocstringMode(c.Docstrings)
	if err != nil {
		return opts, err
	}
	opts.Docstrings = mode
	opts.KeepComments = c.KeepComments
	opts.Collapse = !c.NoCollapse
	opts.PreserveLicense = c.PreserveLicense

	if c.LicensePattern != "" {
		re, err := regexp.Compile(c.LicensePattern)
		if err != nil {
			return opts, fmt.Errorf("license pattern: %w", err)
		}
		opts.LicensePattern = re
	}
	return opts, nil
}
