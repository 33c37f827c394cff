package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/mcp-salesforce/internal/crm"
)

func searchAccounts(ctx context.Context, svc CRMService, args map[string]any) (*mcp.CallToolResult, error) {
	in, err := decodeArgs[SearchArgs](args)
	if err != nil {
		return nil, err
	}
	res, err := svc.SearchAccounts(ctx, in.Query, in.Limit)
	if err != nil {
		return nil, err
	}
	return queryResult(res, "accounts", in.Query)
}

func getAccountDetails(ctx context.Context, svc CRMService, args map[string]any) (*mcp.CallToolResult, error) {
	in, err := decodeArgs[AccountArgs](args)
	if err != nil {
		return nil, err
	}
	rec, err := svc.GetAccount(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}
	return recordResult("account", rec, "Account details for "+field(rec, "Name"))
}

func updateAccount(ctx context.Context, svc CRMService, args map[string]any) (*mcp.CallToolResult, error) {
	in, err := decodeArgs[UpdateAccountArgs](args)
	if err != nil {
		return nil, err
	}
	if err := requireUpdates(in.Updates); err != nil {
		return nil, err
	}
	res, err := svc.UpdateAccount(ctx, in.AccountID, in.Updates)
	if err != nil {
		return nil, err
	}
	return mutationResult(res, fmt.Sprintf("Account %s updated successfully", in.AccountID))
}

func createAccount(ctx context.Context, svc CRMService, args map[string]any) (*mcp.CallToolResult, error) {
	in, err := decodeArgs[crm.NewAccount](args)
	if err != nil {
		return nil, err
	}
	res, err := svc.CreateAccount(ctx, in)
	if err != nil {
		return nil, err
	}
	return mutationResult(res, fmt.Sprintf("Account %q created successfully", in.Name))
}
