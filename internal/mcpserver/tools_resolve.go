package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/erraggy/jsonref/resolver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type resolveInput struct {
	Doc          documentInput `json:"doc"                     jsonschema:"The document to dereference"`
	ReferenceKey string        `json:"reference_key,omitempty" jsonschema:"Keep each original $ref value under this key in the substituted node"`
}

type resolveOutput struct {
	Document string `json:"document"`
}

func handleResolve(_ context.Context, _ *mcp.CallToolRequest, input resolveInput) (*mcp.CallToolResult, resolveOutput, error) {
	var extraOpts []resolver.Option
	if input.ReferenceKey != "" {
		extraOpts = append(extraOpts, resolver.WithReferenceKey(input.ReferenceKey))
	}

	resolved, err := input.Doc.resolve(extraOpts...)
	if err != nil {
		return errResult(err), resolveOutput{}, nil
	}

	data, err := json.MarshalIndent(resolved, "", "  ")
	if err != nil {
		return errResult(err), resolveOutput{}, nil
	}
	return nil, resolveOutput{Document: string(data)}, nil
}
