package strip

import "fmt"

// --- Enums ---

// Language identifies a supported source language.
type Language string

const (
	LangGo         Language = "go"
	LangPython     Language = "python"
	LangRust       Language = "rust"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
	LangJavaScript Language = "javascript"
	LangC          Language = "c"
	LangCPP        Language = "cpp"
	LangJava       Language = "java"
	LangBash       Language = "bash"
	LangRuby       Language = "ruby"
	LangCSharp     Language = "csharp"
	LangPHP        Language = "php"
	LangCSS        Language = "css"
	LangYAML       Language = "yaml"
	LangTOML       Language = "toml"
	LangLua        Language = "lua"
	LangMarkdown   Language = "markdown"
	LangHTML       Language = "html"
	LangXML        Language = "xml"
	LangKotlin     Language = "kotlin"
	LangDockerfile Language = "dockerfile"
	LangPowerShell Language = "powershell"
)

// Class tells why a byte range is deleted.
type Class int

const (
	ClassComment Class = iota
	ClassDocstring
)

func (c Class) String() string {
	switch c {
	case ClassComment:
		return "comment"
	case ClassDocstring:
		return "docstring"
	default:
		return "unknown"
	}
}

// DocstringMode selects what happens to docstrings and doc comments.
type DocstringMode string

const (
	// DocstringsRemove deletes docstrings like any other comment. A
	// string-literal docstring that is the only statement of a body is
	// cleared instead so the body stays valid.
	DocstringsRemove DocstringMode = "remove"

	// DocstringsClear deletes only the contents of string-literal
	// docstrings and keeps their delimiters. Doc comments are removed.
	DocstringsClear DocstringMode = "clear"

	// DocstringsKeep leaves docstrings and doc comments untouched.
	DocstringsKeep DocstringMode = "keep"
)

// ParseDocstringMode converts a user supplied mode. The empty string
// selects DocstringsRemove.
func ParseDocstringMode(s string) (DocstringMode, error) {
	switch DocstringMode(s) {
	case "", DocstringsRemove:
		return DocstringsRemove, nil
	case DocstringsClear, DocstringsKeep:
		return DocstringMode(s), nil
	default:
		return "", fmt.Errorf("%w %q (want remove, clear or keep)", ErrInvalidDocstringMode, s)
	}
}

// Severity grades a Diagnostic.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// --- Models ---

// DeletionRange is a half-open byte range [Start, End) of the original
// buffer that the range editor removes. A Space range is replaced by a
// single space so the tokens on either side stay apart.
type DeletionRange struct {
	Start int   `json:"start"`
	End   int   `json:"end"`
	Class Class `json:"class"`
	Space bool  `json:"space,omitempty"`
}

// Len returns the number of bytes covered by the range.
func (r DeletionRange) Len() int {
	return r.End - r.Start
}

// Position is a 1-based line and column (in bytes).
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Diagnostic reports a problem found while stripping a single buffer.
type Diagnostic struct {
	Severity Severity   `json:"severity"`
	Message  string     `json:"message"`
	Sites    []Position `json:"sites,omitempty"`
	Err      error      `json:"-"`
}

func (d Diagnostic) String() string {
	if len(d.Sites) == 0 {
		return d.Message
	}
	s := d.Message + " near"
	for i, p := range d.Sites {
		if i > 0 {
			s += ","
		}
		s += " " + p.String()
	}
	return s
}

// Result is the outcome of stripping one buffer.
type Result struct {
	Language    Language        `json:"language"`
	Output      []byte          `json:"-"`
	Ranges      []DeletionRange `json:"ranges"`
	Diagnostics []Diagnostic    `json:"diagnostics,omitempty"`
}

// HasWarnings reports whether any diagnostic was produced.
func (r *Result) HasWarnings() bool {
	return len(r.Diagnostics) > 0
}

// Removed returns the number of bytes the deletion ranges took out of
// the buffer, net of separator spaces.
func (r *Result) Removed() int {
	n := 0
	for _, rg := range r.Ranges {
		n += rg.Len()
		if rg.Space {
			n--
		}
	}
	return n
}
