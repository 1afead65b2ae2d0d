// Package strip removes comments and docstrings from source code. Each
// language is parsed into a concrete syntax tree, a per-language policy
// selects the byte ranges to delete, and a range editor copies
// everything else.
package strip

import (
	"context"
	"fmt"
	"regexp"
	"unicode/utf8"
)

// maxErrorSites bounds the error locations reported per diagnostic.
const maxErrorSites = 5

// Options controls what is stripped.
type Options struct {
	Docstrings      DocstringMode
	KeepComments    bool
	Collapse        bool
	PreserveLicense bool
	LicensePattern  *regexp.Regexp
}

// DefaultOptions strips comments and docstrings and collapses the lines
// they leave behind.
func DefaultOptions() Options {
	return Options{
		Docstrings:     DocstringsRemove,
		Collapse:       true,
		LicensePattern: DefaultLicensePattern,
	}
}

// Stripper strips buffers of any registered language. It holds no
// per-call state and is safe for concurrent use.
type Stripper struct {
	registry *Registry
	opts     Options
}

// New returns a Stripper over registry. A nil registry selects
// DefaultRegistry.
func New(registry *Registry, opts Options) *Stripper {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if opts.Docstrings == "" {
		opts.Docstrings = DocstringsRemove
	}
	if opts.LicensePattern == nil {
		opts.LicensePattern = DefaultLicensePattern
	}
	return &Stripper{registry: registry, opts: opts}
}

// With returns a Stripper sharing s's registry with different options.
func (s *Stripper) With(opts Options) *Stripper {
	return New(s.registry, opts)
}

// Registry returns the registry languages are resolved against.
func (s *Stripper) Registry() *Registry {
	return s.registry
}

// Options returns the options the Stripper was built with.
func (s *Stripper) Options() Options {
	return s.opts
}

// Strip removes the comments and docstrings of src, a buffer in language
// lang. Syntax errors are not fatal: the damaged regions are kept verbatim
// and reported as a warning diagnostic wrapping ErrParseIncomplete.
func (s *Stripper) Strip(ctx context.Context, lang Language, src []byte) (*Result, error) {
	def, err := s.registry.Resolve(lang)
	if err != nil {
		return nil, err
	}
	return s.StripWith(ctx, def, src)
}

// StripWith is Strip for an already resolved definition.
func (s *Stripper) StripWith(ctx context.Context, def *Definition, src []byte) (*Result, error) {
	if !utf8.Valid(src) {
		return nil, fmt.Errorf("%s: %w: input is not valid UTF-8", def.Name, ErrInvalidEncoding)
	}

	tree, err := def.Grammar().Parse(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", def.Name, err)
	}

	res := &Result{Language: def.Name}
	if tree.HasError {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Severity: SeverityWarning,
			Message:  "syntax errors found, stripping may be incomplete",
			Sites:    tree.ErrorSites(maxErrorSites),
			Err:      ErrParseIncomplete,
		})
	}

	res.Ranges = Classify(tree, &def.Policy, s.opts)
	res.Output = Apply(src, res.Ranges, EditOptions{Collapse: s.opts.Collapse})
	return res, nil
}
