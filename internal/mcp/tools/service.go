package tools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/mcp-salesforce/internal/crm"
	"github.com/roivaz/mcp-salesforce/internal/salesforce"
)

// CRMService is what the tool handlers need from the backend adapter.
// *crm.Service implements it.
type CRMService interface {
	SearchAccounts(ctx context.Context, term string, limit int) (*salesforce.QueryResult, error)
	SearchContacts(ctx context.Context, term string, limit int) (*salesforce.QueryResult, error)
	SearchOpportunities(ctx context.Context, term string, limit int) (*salesforce.QueryResult, error)
	SearchLeads(ctx context.Context, term string, limit int) (*salesforce.QueryResult, error)
	SearchAll(ctx context.Context, term string, limit int) (json.RawMessage, error)

	GetAccount(ctx context.Context, id string) (salesforce.Record, error)
	GetContact(ctx context.Context, id string) (salesforce.Record, error)
	GetOpportunity(ctx context.Context, id string) (salesforce.Record, error)

	UpdateAccount(ctx context.Context, id string, updates map[string]any) (*salesforce.SaveResult, error)
	UpdateContact(ctx context.Context, id string, updates map[string]any) (*salesforce.SaveResult, error)
	UpdateOpportunity(ctx context.Context, id string, updates map[string]any) (*salesforce.SaveResult, error)

	RecentActivities(ctx context.Context, recordID string, limit int) ([]salesforce.Record, error)

	CreateTask(ctx context.Context, in crm.NewTask) (*salesforce.SaveResult, error)
	CreateAccount(ctx context.Context, in crm.NewAccount) (*salesforce.SaveResult, error)
	CreateContact(ctx context.Context, in crm.NewContact) (*salesforce.SaveResult, error)
	CreateOpportunity(ctx context.Context, in crm.NewOpportunity) (*salesforce.SaveResult, error)
}

var _ CRMService = (*crm.Service)(nil)

// HandlerFunc runs one tool against a connected backend. args has already
// been validated against the tool's parameter schema.
type HandlerFunc func(ctx context.Context, svc CRMService, args map[string]any) (*mcp.CallToolResult, error)

// Handlers maps every tool name to its handler.
func Handlers() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		"search_accounts":         searchAccounts,
		"search_contacts":         searchContacts,
		"search_opportunities":    searchOpportunities,
		"search_leads":            searchLeads,
		"get_account_details":     getAccountDetails,
		"get_contact_details":     getContactDetails,
		"get_opportunity_details": getOpportunityDetails,
		"update_account":          updateAccount,
		"update_contact":          updateContact,
		"update_opportunity":      updateOpportunity,
		"get_recent_activities":   getRecentActivities,
		"create_task":             createTask,
		"create_account":          createAccount,
		"create_contact":          createContact,
		"create_opportunity":      createOpportunity,
		"search_all_records":      searchAllRecords,
	}
}
