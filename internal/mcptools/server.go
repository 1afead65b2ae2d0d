// Package mcptools exposes the stripper as Model Context Protocol tools.
package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// SetVersion overrides the version the server reports to clients.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// NewMCPServer creates an MCP server with the strip tools registered.
func NewMCPServer(svc *StripService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "edstrip",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "strip_source",
		Description: "Remove comments and docstrings from a source buffer. The language is taken from the language argument or detected from filename. Returns the stripped text, the number of bytes removed and any parse warnings.",
	}, svc.StripSource)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_languages",
		Description: "List the languages the stripper supports with their file extensions and filename patterns.",
	}, svc.ListLanguages)

	return server
}

// RunStdio runs server on the stdio transport, blocking until stdin is
// closed or ctx is cancelled.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler serves server over the streamable HTTP transport.
func HTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)
}
