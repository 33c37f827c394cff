package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

func searchLeads(ctx context.Context, svc CRMService, args map[string]any) (*mcp.CallToolResult, error) {
	in, err := decodeArgs[SearchArgs](args)
	if err != nil {
		return nil, err
	}
	res, err := svc.SearchLeads(ctx, in.Query, in.Limit)
	if err != nil {
		return nil, err
	}
	return queryResult(res, "leads", in.Query)
}
