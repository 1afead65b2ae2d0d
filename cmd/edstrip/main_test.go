package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/edstrip/internal/report"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestVersion(t *testing.T) {
	r := runCLI(t, "", "version")
	assert.Equal(t, 0, r.code)
	assert.Equal(t, "edstrip dev\n", r.stdout)
}

func TestLanguages(t *testing.T) {
	r := runCLI(t, "", "languages")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "python")
	assert.Contains(t, r.stdout, "markdown")
}

func TestStdin(t *testing.T) {
	r := runCLI(t, "x = 1  # c\n# gone\ny = 2\n", "-", "--language", "python", "--log-level", "error")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "x = 1\ny = 2\n", r.stdout)
}

func TestStdin_NeedsLanguage(t *testing.T) {
	r := runCLI(t, "x = 1\n", "-")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "requires --language")
}

func TestSingleFileToStdout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.go")
	writeFile(t, path, "package p\n\n// X is x.\nvar X = 1\n")

	r := runCLI(t, "", path, "--log-level", "error")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "package p\n\nvar X = 1\n", r.stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package p\n\n// X is x.\nvar X = 1\n", string(data))
}

func TestOutputDirWithJSONReport(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeFile(t, filepath.Join(in, "a.py"), "x = 1  # c\n")
	writeFile(t, filepath.Join(in, "src", "b.c"), "int x;\n/* open\n")
	writeFile(t, filepath.Join(in, "notes.txt"), "text\n")

	r := runCLI(t, "", "-i", in, "-o", out, "-j", "2", "--report", "json", "--log-level", "error")
	assert.Equal(t, 1, r.code, r.stderr)

	var rep report.SummaryExport
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &rep), r.stdout)
	assert.Equal(t, 3, rep.Totals.Files)
	assert.Equal(t, 1, rep.Totals.OK)
	assert.Equal(t, 1, rep.Totals.Warned)
	assert.Equal(t, 1, rep.Totals.Skipped)
	assert.Equal(t, 1, rep.ExitCode)

	data, err := os.ReadFile(filepath.Join(out, "a.py"))
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(data))
	assert.FileExists(t, filepath.Join(out, "src", "b.c"))
}

func TestInPlaceWithProgress(t *testing.T) {
	in := t.TempDir()
	writeFile(t, filepath.Join(in, "a.rs"), "// c\nfn main() {}\n")

	r := runCLI(t, "", "-i", in, "--in-place", "--progress", "--log-level", "error")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stderr, "✓ [1/1]")
	assert.Contains(t, r.stdout, "1/1 files passed")

	data, err := os.ReadFile(filepath.Join(in, "a.rs"))
	require.NoError(t, err)
	assert.Equal(t, "fn main() {}\n", string(data))
}

func TestUsageErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "nowhere to write", args: []string{filepath.Join(dir, "a.go"), filepath.Join(dir, "b.go")}, want: "nothing to write"},
		{name: "both outputs", args: []string{"-o", dir, "--in-place"}, want: "mutually exclusive"},
		{name: "report format", args: []string{"-o", dir, "--report", "xml"}, want: "invalid report format"},
		{name: "docstring mode", args: []string{"-o", dir, "--docstrings", "maybe"}, want: "invalid docstring mode"},
		{name: "log level", args: []string{"-o", dir, "--log-level", "loud"}, want: "invalid log level"},
		{name: "unknown flag", args: []string{"--frobnicate"}, want: "unknown flag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := runCLI(t, "", tt.args...)
			assert.Equal(t, 1, r.code)
			assert.Contains(t, r.stderr, tt.want)
		})
	}
}
