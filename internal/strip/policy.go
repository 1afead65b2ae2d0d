package strip

import (
	"bytes"
	"regexp"
)

// DocstringRule selects the structural docstring recognizer of a language.
type DocstringRule int

const (
	// DocstringNone: docstrings are only recognized by comment prefix.
	DocstringNone DocstringRule = iota

	// DocstringPython: leading bare string statements of a module, class
	// or function body.
	DocstringPython

	// DocstringAttached: top-level comment groups that sit directly on top
	// of a declaration (Go doc comments).
	DocstringAttached
)

// Policy is the strip policy of one language. It is static data; adding a
// language means adding a table row in languages.go.
type Policy struct {
	// Comments lists the node kinds that are comments.
	Comments map[string]bool

	// DocPrefixes classifies a comment as a docstring when its text starts
	// with one of them ("/**", "///").
	DocPrefixes []string

	// Docstrings selects the structural docstring recognizer.
	Docstrings DocstringRule

	// DocTargets lists the declaration kinds a DocstringAttached comment
	// group documents.
	DocTargets map[string]bool

	// Shebang preserves a comment starting with "#!" at byte 0.
	Shebang bool

	// Directives preserves comments matching any pattern, wherever they are.
	Directives []*regexp.Regexp

	// HeaderDirectives preserves comments matching any pattern in the
	// file header (the comments before the first code node), limited to
	// the first HeaderLines lines when HeaderLines > 0.
	HeaderDirectives []*regexp.Regexp
	HeaderLines      int

	// CgoPreamble preserves the comment group directly above import "C".
	CgoPreamble bool

	// TextComments marks markup languages whose comments sit in running
	// text. Removing one never inserts a separator space.
	TextComments bool

	// LineBreakInComment marks grammars whose line comment tokens swallow
	// the trailing line break; the break is kept in the output.
	LineBreakInComment bool
}

// DefaultLicensePattern matches license and copyright header comments.
var DefaultLicensePattern = regexp.MustCompile(`(?i)copyright|licen[cs]e|spdx-license-identifier`)

func kinds(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

func patterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// isDocComment reports whether text starts with one of the prefixes and
// is not a longer run of the prefix's last character ("////", "/***") or
// the empty block comment "/**/".
func isDocComment(text []byte, prefixes []string) bool {
	for _, p := range prefixes {
		if !bytes.HasPrefix(text, []byte(p)) {
			continue
		}
		if len(text) == len(p) {
			return true
		}
		next := text[len(p)]
		if next == p[len(p)-1] || next == '/' {
			continue
		}
		return true
	}
	return false
}

func matchesAny(text []byte, res []*regexp.Regexp) bool {
	for _, re := range res {
		if re.Match(text) {
			return true
		}
	}
	return false
}
