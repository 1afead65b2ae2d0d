package mcptools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dusk-indust/edstrip/internal/strip"
)

// sniffLen is how much of the source is handed to shebang detection.
const sniffLen = 512

// ErrMissingLanguage is returned when a request names neither a language
// nor a filename.
var ErrMissingLanguage = errors.New("language or filename is required")

// StripService strips single buffers on behalf of the MCP tools and the
// HTTP API.
type StripService struct {
	stripper *strip.Stripper
	log      *slog.Logger
}

// NewStripService creates a StripService. Per-request options start from
// the options s was built with.
func NewStripService(s *strip.Stripper, log *slog.Logger) *StripService {
	if log == nil {
		log = slog.Default()
	}
	return &StripService{stripper: s, log: log}
}

// Strip resolves the language of in and strips its source.
func (s *StripService) Strip(ctx context.Context, in StripSourceInput) (StripSourceOutput, error) {
	src := []byte(in.Source)

	def, err := s.resolve(in, src)
	if err != nil {
		return StripSourceOutput{}, err
	}

	opts := s.stripper.Options()
	if in.Docstrings != "" {
		mode, err := strip.ParseDocstringMode(in.Docstrings)
		if err != nil {
			return StripSourceOutput{}, err
		}
		opts.Docstrings = mode
	}
	if in.KeepComments {
		opts.KeepComments = true
	}
	if in.NoCollapse {
		opts.Collapse = false
	}

	res, err := s.stripper.With(opts).StripWith(ctx, def, src)
	if err != nil {
		return StripSourceOutput{}, err
	}

	out := StripSourceOutput{
		Language: string(res.Language),
		Output:   string(res.Output),
		Ranges:   len(res.Ranges),
		Removed:  res.Removed(),
	}
	for _, d := range res.Diagnostics {
		out.Warnings = append(out.Warnings, d.String())
	}
	s.log.Debug("stripped buffer",
		"language", res.Language,
		"filename", in.Filename,
		"removed", out.Removed,
		"warnings", len(out.Warnings))
	return out, nil
}

func (s *StripService) resolve(in StripSourceInput, src []byte) (*strip.Definition, error) {
	reg := s.stripper.Registry()
	switch {
	case in.Language != "":
		d, ok := reg.Lookup(in.Language)
		if !ok {
			return nil, &strip.UnsupportedLanguageError{Language: strip.Language(in.Language)}
		}
		return d, nil
	case in.Filename != "":
		return reg.Identify(in.Filename, src[:min(len(src), sniffLen)], nil)
	default:
		return nil, ErrMissingLanguage
	}
}

// Languages lists every registered language.
func (s *StripService) Languages() []LanguageInfo {
	defs := s.stripper.Registry().Languages()
	out := make([]LanguageInfo, len(defs))
	for i, d := range defs {
		out[i] = LanguageInfo{
			ID:         string(d.Name),
			Name:       d.Title,
			Extensions: d.Extensions,
			Filenames:  d.Filenames,
		}
	}
	return out
}

// StripSource is the strip_source tool handler.
func (s *StripService) StripSource(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input StripSourceInput,
) (*mcp.CallToolResult, StripSourceOutput, error) {
	out, err := s.Strip(ctx, input)
	if err != nil {
		return nil, StripSourceOutput{}, fmt.Errorf("strip_source: %w", err)
	}
	return nil, out, nil
}

// ListLanguages is the list_languages tool handler.
func (s *StripService) ListLanguages(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListLanguagesInput,
) (*mcp.CallToolResult, ListLanguagesOutput, error) {
	return nil, ListLanguagesOutput{Languages: s.Languages()}, nil
}
