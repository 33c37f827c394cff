package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/mcp-salesforce/internal/crm"
	"github.com/roivaz/mcp-salesforce/internal/mcp/tools/types"
)

func getRecentActivities(ctx context.Context, svc CRMService, args map[string]any) (*mcp.CallToolResult, error) {
	in, err := decodeArgs[ActivitiesArgs](args)
	if err != nil {
		return nil, err
	}
	activities, err := svc.RecentActivities(ctx, in.RecordID, in.Limit)
	if err != nil {
		return nil, err
	}
	return textResult(types.ActivitiesResponse{
		TotalActivities: len(activities),
		Activities:      activities,
		Message:         fmt.Sprintf("Found %d recent activities for record %s", len(activities), in.RecordID),
	})
}

func createTask(ctx context.Context, svc CRMService, args map[string]any) (*mcp.CallToolResult, error) {
	in, err := decodeArgs[crm.NewTask](args)
	if err != nil {
		return nil, err
	}
	res, err := svc.CreateTask(ctx, in)
	if err != nil {
		return nil, err
	}
	return mutationResult(res, fmt.Sprintf("Task %q created successfully", in.Subject))
}
