package mcp

import (
	"errors"
	"slices"
	"testing"
)

func TestCatalog(t *testing.T) {
	reg := NewRegistry(Catalog())
	descs := reg.List()
	if len(descs) != 16 {
		t.Fatalf("expected 16 tools, got %d", len(descs))
	}
	for _, name := range []string{
		"search_accounts", "search_contacts", "search_opportunities", "search_leads",
		"get_account_details", "get_contact_details", "get_opportunity_details",
		"update_account", "update_contact", "update_opportunity",
		"get_recent_activities", "create_task", "create_account", "create_contact",
		"create_opportunity", "search_all_records",
	} {
		if _, ok := reg.Lookup(name); !ok {
			t.Fatalf("missing tool %s", name)
		}
	}
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate descriptor")
		}
	}()
	NewRegistry([]Descriptor{{Name: "a"}, {Name: "a"}})
}

func TestValidateDefaults(t *testing.T) {
	reg := NewRegistry(Catalog())

	tests := []struct {
		name  string
		tool  string
		limit any
		want  float64
	}{
		{"omitted", "search_accounts", nil, 10},
		{"zero", "search_contacts", float64(0), 10},
		{"negative", "search_leads", float64(-3), 10},
		{"explicit", "search_opportunities", float64(4), 4},
		{"global omitted", "search_all_records", nil, 20},
		{"activities omitted", "get_recent_activities", nil, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := map[string]any{"query": "x", "recordId": "001"}
			if tt.limit != nil {
				args["limit"] = tt.limit
			}
			out, err := reg.Validate(tt.tool, args)
			if err != nil {
				t.Fatalf("validate: %v", err)
			}
			if out["limit"] != tt.want {
				t.Fatalf("expected limit %v, got %v", tt.want, out["limit"])
			}
			if tt.limit == nil {
				if _, ok := args["limit"]; ok {
					t.Fatalf("input args must not be modified")
				}
			}
		})
	}
}

func TestValidateErrors(t *testing.T) {
	reg := NewRegistry(Catalog())

	tests := []struct {
		name  string
		tool  string
		args  map[string]any
		param string
	}{
		{"missing required", "search_accounts", map[string]any{}, "query"},
		{"empty required", "get_account_details", map[string]any{"accountId": "  "}, "accountId"},
		{"string type", "search_accounts", map[string]any{"query": 42.0}, "query"},
		{"number type", "search_accounts", map[string]any{"query": "x", "limit": "ten"}, "limit"},
		{"fractional limit", "search_accounts", map[string]any{"query": "x", "limit": 2.5}, "limit"},
		{"object type", "update_account", map[string]any{"accountId": "001", "updates": "Phone=1"}, "updates"},
		{"missing updates", "update_contact", map[string]any{"contactId": "003"}, "updates"},
		{"enum", "create_task", map[string]any{"subject": "s", "priority": "Urgent"}, "priority"},
		{"opportunity required", "create_opportunity", map[string]any{"name": "n", "accountId": "a", "stageName": "s"}, "closeDate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Validate(tt.tool, tt.args)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Param != tt.param {
				t.Fatalf("expected param %s, got %s", tt.param, verr.Param)
			}
		})
	}
}

func TestValidateKeepsOptionalValues(t *testing.T) {
	reg := NewRegistry(Catalog())
	out, err := reg.Validate("create_task", map[string]any{"subject": "s", "priority": "Low", "extra": true})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if out["priority"] != "Low" || out["extra"] != true {
		t.Fatalf("unexpected args %v", out)
	}
	if _, ok := out["description"]; ok {
		t.Fatalf("omitted optional param should stay omitted")
	}
}

func TestDescriptorTool(t *testing.T) {
	reg := NewRegistry(Catalog())

	d, _ := reg.Lookup("search_accounts")
	tool := d.Tool()
	if tool.Name != "search_accounts" || tool.Description == "" {
		t.Fatalf("unexpected tool %+v", tool)
	}
	if !slices.Contains(tool.InputSchema.Required, "query") {
		t.Fatalf("query should be required: %v", tool.InputSchema.Required)
	}
	limit, ok := tool.InputSchema.Properties["limit"].(map[string]any)
	if !ok || limit["type"] != "number" || limit["default"] != float64(10) {
		t.Fatalf("unexpected limit schema %v", tool.InputSchema.Properties["limit"])
	}

	d, _ = reg.Lookup("create_task")
	priority, _ := d.Tool().InputSchema.Properties["priority"].(map[string]any)
	if enum, _ := priority["enum"].([]string); !slices.Equal(enum, []string{"High", "Normal", "Low"}) {
		t.Fatalf("unexpected priority schema %v", priority)
	}

	d, _ = reg.Lookup("update_opportunity")
	updates, _ := d.Tool().InputSchema.Properties["updates"].(map[string]any)
	props, _ := updates["properties"].(map[string]any)
	amount, _ := props["Amount"].(map[string]any)
	if updates["type"] != "object" || amount["type"] != "number" {
		t.Fatalf("unexpected updates schema %v", updates)
	}
}
