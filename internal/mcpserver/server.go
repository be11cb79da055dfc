// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes jsonref capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/erraggy/jsonref"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `jsonref MCP server — dereferences $ref pointers in JSON and YAML documents.

Configuration: All defaults are configurable via JSONREF_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- JSONREF_HTTP_TIMEOUT (default: 30s) — timeout for fetching remote documents
- JSONREF_MAX_DEPTH (default: 1000) — maximum reference nesting depth
- JSONREF_MAX_DOCUMENTS (default: 100) — maximum documents cached per resolution
- JSONREF_MAX_FILE_SIZE (default: 10485760) — maximum loaded document size in bytes
- JSONREF_MAX_INLINE_SIZE (default: 4194304) — maximum inline content input size in bytes
- JSONREF_REFERENCE_KEY — when set, each substituted node keeps its original $ref value under this key

Relative file references resolve against the referring document's location; remote documents may reference further remote documents. Circular references are unrolled exactly one level.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "jsonref", Version: jsonref.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve",
		Description: "Dereference all $ref pointers in a JSON or YAML document. Local fragments, relative file paths, and http(s) URLs are all resolved; circular references are unrolled one level. Set reference_key to keep each original $ref value under that key in the substituted node. Returns the fully dereferenced document as JSON.",
	}, handleResolve)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_refs",
		Description: "List every $ref occurrence in a JSON or YAML document without resolving anything. Each entry reports the raw reference, the JSON Pointer path of the node holding it, and its kind (local, file, or http). Useful for auditing a document's external dependencies before resolving.",
	}, handleListRefs)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
