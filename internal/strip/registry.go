package strip

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// Definition describes one supported language: how files are recognized,
// which grammar parses it and its strip policy.
type Definition struct {
	Name  Language
	Title string

	// Extensions are matched case-insensitively, without the dot.
	Extensions []string

	// Filenames are glob patterns matched case-insensitively against the
	// base name, for files without a telling extension.
	Filenames []string

	// Interpreters are shebang interpreter names (version suffixes are
	// ignored: python3.12 matches python).
	Interpreters []string

	Policy Policy

	newGrammar func() Grammar
	once       sync.Once
	grammar    Grammar
	loaded     atomic.Bool
}

func define(d *Definition, newGrammar func() Grammar) *Definition {
	d.newGrammar = newGrammar
	return d
}

// Grammar returns the language's grammar, creating it on first use.
func (d *Definition) Grammar() Grammar {
	d.once.Do(func() {
		d.grammar = d.newGrammar()
		d.loaded.Store(true)
	})
	return d.grammar
}

// HintMatcher maps a path to a user supplied language name. It returns
// the name of the last matching hint and the number of hints that matched.
type HintMatcher interface {
	Match(path string) (language string, matches int)
}

// Registry maps languages and paths to definitions. A Registry is
// read-only after construction and safe for concurrent use.
type Registry struct {
	defs   []*Definition
	byName map[Language]*Definition
	byExt  map[string][]*Definition
}

// NewRegistry builds a registry over defs.
func NewRegistry(defs ...*Definition) *Registry {
	r := &Registry{
		defs:   defs,
		byName: make(map[Language]*Definition, len(defs)),
		byExt:  make(map[string][]*Definition),
	}
	for _, d := range defs {
		r.byName[d.Name] = d
		for _, ext := range d.Extensions {
			ext = strings.ToLower(ext)
			r.byExt[ext] = append(r.byExt[ext], d)
		}
	}
	return r
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return NewRegistry(builtinDefinitions()...)
})

// DefaultRegistry returns the process-wide registry of every compiled-in
// language.
func DefaultRegistry() *Registry {
	return defaultRegistry()
}

// NewBuiltinRegistry returns a registry with fresh copies of every
// compiled-in language. Callers own it and should Close it.
func NewBuiltinRegistry() *Registry {
	return NewRegistry(builtinDefinitions()...)
}

// Resolve returns the definition registered for lang.
func (r *Registry) Resolve(lang Language) (*Definition, error) {
	d, ok := r.byName[lang]
	if !ok {
		return nil, &UnsupportedLanguageError{Language: lang}
	}
	return d, nil
}

// Lookup finds a definition by language id or display title, ignoring
// case. Type hint files name languages either way ("javascript",
// "JavaScript", "C++").
func (r *Registry) Lookup(name string) (*Definition, bool) {
	if d, ok := r.byName[Language(strings.ToLower(name))]; ok {
		return d, true
	}
	for _, d := range r.defs {
		if strings.EqualFold(d.Title, name) {
			return d, true
		}
	}
	return nil, false
}

// Languages returns every definition sorted by name.
func (r *Registry) Languages() []*Definition {
	out := make([]*Definition, len(r.defs))
	copy(out, r.defs)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Identify determines the language of the file at path. Type hints are
// consulted first, then the extension, then filename patterns and finally
// the shebang line in head (the first bytes of the file, may be nil).
func (r *Registry) Identify(filePath string, head []byte, hints HintMatcher) (*Definition, error) {
	if hints != nil {
		if name, n := hints.Match(filePath); n > 0 {
			if d, ok := r.Lookup(name); ok {
				return d, nil
			}
		}
	}

	var matches []*Definition
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filePath), "."))
	if ext != "" {
		matches = append(matches, r.byExt[ext]...)
	}

	base := strings.ToLower(filepath.Base(filePath))
	for _, d := range r.defs {
		if containsDef(matches, d) {
			continue
		}
		for _, pattern := range d.Filenames {
			if ok, _ := path.Match(strings.ToLower(pattern), base); ok {
				matches = append(matches, d)
				break
			}
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		if d := r.identifyShebang(head); d != nil {
			return d, nil
		}
		return nil, fmt.Errorf("%s: %w", filePath, ErrNoStripperFound)
	default:
		return nil, ambiguous(filePath, ext, matches)
	}
}

func (r *Registry) identifyShebang(head []byte) *Definition {
	interp := shebangInterpreter(head)
	if interp == "" {
		return nil
	}
	for _, d := range r.defs {
		for _, name := range d.Interpreters {
			if interp == name {
				return d
			}
		}
	}
	return nil
}

// Close releases the grammars this registry has created.
func (r *Registry) Close() error {
	var errs []error
	for _, d := range r.defs {
		if d.loaded.Load() {
			errs = append(errs, d.grammar.Close())
		}
	}
	return errors.Join(errs...)
}

// shebangInterpreter extracts the interpreter name from a "#!" line:
// "#!/usr/bin/env -S python3 -u" yields "python".
func shebangInterpreter(head []byte) string {
	if !bytes.HasPrefix(head, []byte("#!")) {
		return ""
	}
	line := head[2:]
	if i := bytes.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(string(line))
	if len(fields) == 0 {
		return ""
	}

	name := path.Base(fields[0])
	if name == "env" {
		name = ""
		for _, f := range fields[1:] {
			if strings.HasPrefix(f, "-") || strings.Contains(f, "=") {
				continue
			}
			name = path.Base(f)
			break
		}
	}
	return strings.TrimRight(name, "0123456789.")
}

func ambiguous(filePath, ext string, matches []*Definition) error {
	names := make([]Language, len(matches))
	titles := make([]string, len(matches))
	for i, d := range matches {
		names[i] = d.Name
		titles[i] = d.Title
	}
	pattern := filepath.ToSlash(filePath)
	if ext != "" {
		pattern = "**/*." + ext
	}
	return &AmbiguousLanguageError{
		Path:       filePath,
		Candidates: names,
		Suggestion: fmt.Sprintf(`{ "pattern": "%s", "language": "%s" }`, pattern, strings.Join(titles, "/")),
	}
}

func containsDef(defs []*Definition, d *Definition) bool {
	for _, x := range defs {
		if x == d {
			return true
		}
	}
	return false
}
