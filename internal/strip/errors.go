package strip

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedLanguage is returned when no grammar is registered for
	// a language.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrNoStripperFound is returned when a path maps to no language.
	ErrNoStripperFound = errors.New("no stripper found")

	// ErrAmbiguousLanguage is returned when a path maps to several languages.
	ErrAmbiguousLanguage = errors.New("multiple strippers found")

	// ErrParseIncomplete marks a warning: the grammar reported syntax
	// errors and the affected regions were left untouched.
	ErrParseIncomplete = errors.New("parse incomplete")

	// ErrInvalidEncoding is returned when the input is not valid UTF-8.
	ErrInvalidEncoding = errors.New("invalid encoding")

	// ErrInvalidDocstringMode is returned for an unknown docstring mode.
	ErrInvalidDocstringMode = errors.New("invalid docstring mode")
)

// UnsupportedLanguageError names the language that has no grammar.
type UnsupportedLanguageError struct {
	Language Language
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language: %s", e.Language)
}

func (e *UnsupportedLanguageError) Is(target error) bool {
	return target == ErrUnsupportedLanguage
}

// AmbiguousLanguageError lists the candidate languages for a path and a
// type hint entry that would resolve the ambiguity.
type AmbiguousLanguageError struct {
	Path       string
	Candidates []Language
	Suggestion string
}

func (e *AmbiguousLanguageError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		names[i] = string(c)
	}
	return fmt.Sprintf("multiple strippers found for '%s' (%s); add a type hint such as %s",
		e.Path, strings.Join(names, "/"), e.Suggestion)
}

func (e *AmbiguousLanguageError) Is(target error) bool {
	return target == ErrAmbiguousLanguage
}
