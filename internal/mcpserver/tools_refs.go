package mcpserver

import (
	"context"

	"github.com/erraggy/jsonref/resolver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type listRefsInput struct {
	Doc documentInput `json:"doc" jsonschema:"The document to inspect"`
}

type listRefsOutput struct {
	Refs  []resolver.RefInfo `json:"refs,omitempty"`
	Count int                `json:"count"`
}

func handleListRefs(_ context.Context, _ *mcp.CallToolRequest, input listRefsInput) (*mcp.CallToolResult, listRefsOutput, error) {
	doc, err := input.Doc.document()
	if err != nil {
		return errResult(err), listRefsOutput{}, nil
	}

	refs := resolver.CollectRefs(doc)
	return nil, listRefsOutput{Refs: refs, Count: len(refs)}, nil
}
