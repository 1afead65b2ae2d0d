package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/edstrip/internal/strip"
)

func newService() *StripService {
	return NewStripService(
		strip.New(nil, strip.DefaultOptions()),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

// setupServerClient wires an MCP server and client together using in-memory
// transports and returns the connected client session.
func setupServerClient(t *testing.T) *mcp.ClientSession {
	t.Helper()

	server := NewMCPServer(newService())
	st, ct := mcp.NewInMemoryTransports()

	ctx := context.Background()

	_, err := server.Connect(ctx, st, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		session.Close()
	})

	return session
}

func decode[T any](t *testing.T, result *mcp.CallToolResult) T {
	t.Helper()
	require.NotNil(t, result.StructuredContent, "expected structured content")
	raw, err := json.Marshal(result.StructuredContent)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestMCPListTools(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	names := make([]string, len(result.Tools))
	for i, tool := range result.Tools {
		names[i] = tool.Name
	}
	sort.Strings(names)
	assert.Equal(t, []string{"list_languages", "strip_source"}, names)
}

func TestMCPStripSource(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "strip_source",
		Arguments: StripSourceInput{
			Source:   "x = 1  # one\n# two\ny = 2\n",
			Filename: "pkg/mod.py",
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError, "strip_source should not return an error")

	out := decode[StripSourceOutput](t, result)
	assert.Equal(t, "python", out.Language)
	assert.Equal(t, "x = 1\ny = 2\n", out.Output)
	assert.Equal(t, 2, out.Ranges)
	assert.Empty(t, out.Warnings)
}

func TestMCPStripSource_UnknownLanguage(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "strip_source",
		Arguments: StripSourceInput{Source: "x", Language: "cobol"},
	})

	// Tool errors surface as IsError results; accept a protocol error too.
	if err != nil {
		return
	}
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestMCPListLanguages(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "list_languages",
		Arguments: map[string]any{},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	out := decode[ListLanguagesOutput](t, result)
	require.Len(t, out.Languages, 23)
	assert.Equal(t, "bash", out.Languages[0].ID)
}

func TestMCPCallUnknownTool(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "nonexistent_tool",
		Arguments: map[string]any{},
	})
	if err != nil {
		return
	}
	require.NotNil(t, result)
	assert.True(t, result.IsError, "calling an unknown tool should set IsError")
}

// ---------------------------------------------------------------------------
// StripService
// ---------------------------------------------------------------------------

func TestStripService_Strip(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	out, err := svc.Strip(ctx, StripSourceInput{
		Source:   "// c\nint x; /* d */\n",
		Language: "C",
	})
	require.NoError(t, err)
	assert.Equal(t, "int x;\n", out.Output)

	out, err = svc.Strip(ctx, StripSourceInput{
		Source:     "// c\nint x;\n",
		Language:   "c",
		NoCollapse: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "\nint x;\n", out.Output)

	out, err = svc.Strip(ctx, StripSourceInput{
		Source:       "/// doc\n// note\nfn f() {}\n",
		Language:     "rust",
		KeepComments: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "// note\nfn f() {}\n", out.Output)

	out, err = svc.Strip(ctx, StripSourceInput{
		Source:     "/// doc\n// note\nfn f() {}\n",
		Language:   "rust",
		Docstrings: "keep",
	})
	require.NoError(t, err)
	assert.Equal(t, "/// doc\nfn f() {}\n", out.Output)
}

func TestStripService_StripShebangDetection(t *testing.T) {
	out, err := newService().Strip(context.Background(), StripSourceInput{
		Source:   "#!/bin/sh\n# c\necho hi\n",
		Filename: "run",
	})
	require.NoError(t, err)
	assert.Equal(t, "bash", out.Language)
	assert.Equal(t, "#!/bin/sh\necho hi\n", out.Output)
}

func TestStripService_StripErrors(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Strip(ctx, StripSourceInput{Source: "x"})
	assert.True(t, errors.Is(err, ErrMissingLanguage))

	_, err = svc.Strip(ctx, StripSourceInput{Source: "x", Language: "cobol"})
	assert.True(t, errors.Is(err, strip.ErrUnsupportedLanguage))

	_, err = svc.Strip(ctx, StripSourceInput{Source: "x", Filename: "a.h"})
	assert.True(t, errors.Is(err, strip.ErrAmbiguousLanguage))

	_, err = svc.Strip(ctx, StripSourceInput{Source: "x", Language: "go", Docstrings: "maybe"})
	assert.Error(t, err)

	_, err = svc.Strip(ctx, StripSourceInput{Source: "# caf\xe9\n", Language: "python"})
	assert.True(t, errors.Is(err, strip.ErrInvalidEncoding))
}
