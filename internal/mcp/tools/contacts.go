package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/mcp-salesforce/internal/crm"
)

func searchContacts(ctx context.Context, svc CRMService, args map[string]any) (*mcp.CallToolResult, error) {
	in, err := decodeArgs[SearchArgs](args)
	if err != nil {
		return nil, err
	}
	res, err := svc.SearchContacts(ctx, in.Query, in.Limit)
	if err != nil {
		return nil, err
	}
	return queryResult(res, "contacts", in.Query)
}

func getContactDetails(ctx context.Context, svc CRMService, args map[string]any) (*mcp.CallToolResult, error) {
	in, err := decodeArgs[ContactArgs](args)
	if err != nil {
		return nil, err
	}
	rec, err := svc.GetContact(ctx, in.ContactID)
	if err != nil {
		return nil, err
	}
	name := fullName(field(rec, "FirstName"), field(rec, "LastName"))
	return recordResult("contact", rec, "Contact details for "+name)
}

func updateContact(ctx context.Context, svc CRMService, args map[string]any) (*mcp.CallToolResult, error) {
	in, err := decodeArgs[UpdateContactArgs](args)
	if err != nil {
		return nil, err
	}
	if err := requireUpdates(in.Updates); err != nil {
		return nil, err
	}
	res, err := svc.UpdateContact(ctx, in.ContactID, in.Updates)
	if err != nil {
		return nil, err
	}
	return mutationResult(res, fmt.Sprintf("Contact %s updated successfully", in.ContactID))
}

func createContact(ctx context.Context, svc CRMService, args map[string]any) (*mcp.CallToolResult, error) {
	in, err := decodeArgs[crm.NewContact](args)
	if err != nil {
		return nil, err
	}
	res, err := svc.CreateContact(ctx, in)
	if err != nil {
		return nil, err
	}
	return mutationResult(res, fmt.Sprintf("Contact %q created successfully", fullName(in.FirstName, in.LastName)))
}
