package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/edstrip/internal/strip"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Empty(t, cfg.Source)
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "edstrip.yaml", `
glob: "src/**/*.py"
exclude: [vendor, node_modules]
jobs: 3
docstrings: clear
preserveLicense: true
log:
  level: debug
  format: json
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "src/**/*.py", cfg.Glob)
	assert.Equal(t, []string{"vendor", "node_modules"}, cfg.Exclude)
	assert.Equal(t, 3, cfg.Jobs)
	assert.Equal(t, "clear", cfg.Docstrings)
	assert.True(t, cfg.PreserveLicense)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, path, cfg.Source)

	// Untouched settings keep their defaults.
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
}

func TestLoad_PrefersYml(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "edstrip.yml", "jobs: 1\n")
	writeConfig(t, dir, "edstrip.yaml", "jobs: 2\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Jobs)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "edstrip.yml", "jobs: 2\nlog:\n  level: warn\n")
	t.Setenv("EDSTRIP_JOBS", "8")
	t.Setenv("EDSTRIP_LOG_LEVEL", "error")
	t.Setenv("EDSTRIP_EXCLUDE", "a,b")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Jobs)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, []string{"a", "b"}, cfg.Exclude)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"negative jobs":  "jobs: -1\n",
		"bad docstrings": "docstrings: shred\n",
		"bad log level":  "log:\n  level: loud\n",
		"bad format":     "log:\n  format: xml\n",
		"bad license":    "licensePattern: \"(\"\n",
		"not yaml":       "jobs: [\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, t.TempDir(), "edstrip.yml", content))
			assert.Error(t, err)
		})
	}

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestStripOptions(t *testing.T) {
	cfg := Default()
	cfg.Docstrings = "keep"
	cfg.KeepComments = true
	cfg.NoCollapse = true
	cfg.LicensePattern = "(?i)proprietary"

	opts, err := cfg.StripOptions()
	require.NoError(t, err)
	assert.Equal(t, strip.DocstringsKeep, opts.Docstrings)
	assert.True(t, opts.KeepComments)
	assert.False(t, opts.Collapse)
	assert.True(t, opts.LicensePattern.MatchString("PROPRIETARY code"))

	opts, err = Default().StripOptions()
	require.NoError(t, err)
	assert.Equal(t, strip.DocstringsRemove, opts.Docstrings)
	assert.True(t, opts.Collapse)
	assert.Same(t, strip.DefaultLicensePattern, opts.LicensePattern)
}
