package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/mcp-salesforce/internal/mcp/tools/types"
)

func searchAllRecords(ctx context.Context, svc CRMService, args map[string]any) (*mcp.CallToolResult, error) {
	in, err := decodeArgs[SearchArgs](args)
	if err != nil {
		return nil, err
	}
	res, err := svc.SearchAll(ctx, in.Query, in.Limit)
	if err != nil {
		return nil, err
	}
	return textResult(types.GlobalSearchResponse{
		SearchResults: res,
		Message:       fmt.Sprintf("Global search results for %q", in.Query),
	})
}
