package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/mcp-salesforce/internal/crm"
)

func searchOpportunities(ctx context.Context, svc CRMService, args map[string]any) (*mcp.CallToolResult, error) {
	in, err := decodeArgs[SearchArgs](args)
	if err != nil {
		return nil, err
	}
	res, err := svc.SearchOpportunities(ctx, in.Query, in.Limit)
	if err != nil {
		return nil, err
	}
	return queryResult(res, "opportunities", in.Query)
}

func getOpportunityDetails(ctx context.Context, svc CRMService, args map[string]any) (*mcp.CallToolResult, error) {
	in, err := decodeArgs[OpportunityArgs](args)
	if err != nil {
		return nil, err
	}
	rec, err := svc.GetOpportunity(ctx, in.OpportunityID)
	if err != nil {
		return nil, err
	}
	return recordResult("opportunity", rec, "Opportunity details for "+field(rec, "Name"))
}

func updateOpportunity(ctx context.Context, svc CRMService, args map[string]any) (*mcp.CallToolResult, error) {
	in, err := decodeArgs[UpdateOpportunityArgs](args)
	if err != nil {
		return nil, err
	}
	if err := requireUpdates(in.Updates); err != nil {
		return nil, err
	}
	res, err := svc.UpdateOpportunity(ctx, in.OpportunityID, in.Updates)
	if err != nil {
		return nil, err
	}
	return mutationResult(res, fmt.Sprintf("Opportunity %s updated successfully", in.OpportunityID))
}

func createOpportunity(ctx context.Context, svc CRMService, args map[string]any) (*mcp.CallToolResult, error) {
	in, err := decodeArgs[crm.NewOpportunity](args)
	if err != nil {
		return nil, err
	}
	res, err := svc.CreateOpportunity(ctx, in)
	if err != nil {
		return nil, err
	}
	return mutationResult(res, fmt.Sprintf("Opportunity %q created successfully", in.Name))
}
