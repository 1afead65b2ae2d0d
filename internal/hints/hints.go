// Package hints loads type hint files. A type hint forces the language of
// every file whose path matches its glob pattern; when several hints match
// a file, the last one wins.
package hints

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Hint maps a glob pattern to a language name.
type Hint struct {
	Pattern  string `yaml:"pattern" json:"pattern"`
	Language string `yaml:"language" json:"language"`
}

// Hints is an ordered list of type hints. The zero value matches nothing.
type Hints []Hint

// Load reads a type hints file. The file holds a JSON array of
// {"pattern": ..., "language": ...} objects; YAML is accepted too.
func Load(path string) (Hints, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read type hints: %w", err)
	}
	h, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return h, nil
}

// Parse decodes and validates type hints.
func Parse(data []byte) (Hints, error) {
	var h Hints
	if err := yaml.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("parse type hints: %w", err)
	}
	for i, hint := range h {
		if hint.Pattern == "" || hint.Language == "" {
			return nil, fmt.Errorf("type hint %d: pattern and language are required", i)
		}
		if !doublestar.ValidatePattern(hint.Pattern) {
			return nil, fmt.Errorf("type hint %d: invalid pattern %q", i, hint.Pattern)
		}
	}
	return h, nil
}

// Matching returns the hints whose pattern matches path, in file order.
func (h Hints) Matching(path string) []Hint {
	p := strings.TrimPrefix(filepath.ToSlash(path), "/")
	var out []Hint
	for _, hint := range h {
		pattern := strings.TrimPrefix(hint.Pattern, "/")
		if ok, _ := doublestar.Match(pattern, p); ok {
			out = append(out, hint)
		}
	}
	return out
}

// Match returns the language of the last hint matching path and the number
// of matching hints.
func (h Hints) Match(path string) (string, int) {
	m := h.Matching(path)
	if len(m) == 0 {
		return "", 0
	}
	return m[len(m)-1].Language, len(m)
}
