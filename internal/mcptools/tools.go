package mcptools

// --- MCP Tool Input Types ---
// The MCP Go SDK derives each tool's JSON schema from these struct tags.

// StripSourceInput is the input for the strip_source MCP tool.
type StripSourceInput struct {
	Source       string `json:"source" jsonschema:"the source text to strip"`
	Language     string `json:"language,omitempty" jsonschema:"language id or name, e.g. go, python, C++. Takes precedence over filename"`
	Filename     string `json:"filename,omitempty" jsonschema:"file name used to detect the language when language is not given"`
	Docstrings   string `json:"docstrings,omitempty" jsonschema:"docstring handling: remove, clear or keep (default: remove)"`
	KeepComments bool   `json:"keepComments,omitempty" jsonschema:"keep regular comments and only process docstrings"`
	NoCollapse   bool   `json:"noCollapse,omitempty" jsonschema:"keep lines left empty by a removed comment"`
}

// StripSourceOutput is the result of the strip_source MCP tool.
type StripSourceOutput struct {
	Language string   `json:"language"`
	Output   string   `json:"output"`
	Ranges   int      `json:"ranges"`
	Removed  int      `json:"removedBytes"`
	Warnings []string `json:"warnings,omitempty"`
}

// ListLanguagesInput is the input for the list_languages MCP tool.
type ListLanguagesInput struct{}

// LanguageInfo describes one supported language.
type LanguageInfo struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
	Filenames  []string `json:"filenames,omitempty"`
}

// ListLanguagesOutput is the result of the list_languages MCP tool.
type ListLanguagesOutput struct {
	Languages []LanguageInfo `json:"languages"`
}
