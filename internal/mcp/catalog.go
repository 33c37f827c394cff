package mcp

import "github.com/roivaz/mcp-salesforce/internal/crm"

func limitParam(def float64, what string) Param {
	return Param{
		Name:        "limit",
		Type:        TypeNumber,
		Description: what,
		Default:     &def,
		Integer:     true,
	}
}

func str(name, description string) Param {
	return Param{Name: name, Type: TypeString, Description: description}
}

func requiredStr(name, description string) Param {
	return Param{Name: name, Type: TypeString, Description: description, Required: true}
}

func num(name, description string) Param {
	return Param{Name: name, Type: TypeNumber, Description: description}
}

func updates(entity string, props map[string]ParamType) Param {
	return Param{
		Name:        "updates",
		Type:        TypeObject,
		Description: "Fields to update on the " + entity,
		Required:    true,
		Properties:  props,
	}
}

// Catalog returns the descriptors of every tool this server exposes.
func Catalog() []Descriptor {
	return []Descriptor{
		{
			Name:        "search_accounts",
			Description: "Search for Salesforce accounts by name, industry, or other criteria",
			Params: []Param{
				requiredStr("query", "Search query for account name or other fields"),
				limitParam(crm.DefaultSearchLimit, "Maximum number of results to return (default: 10)"),
			},
		},
		{
			Name:        "search_contacts",
			Description: "Search for Salesforce contacts by name, email, or other criteria",
			Params: []Param{
				requiredStr("query", "Search query for contact name, email, or other fields"),
				limitParam(crm.DefaultSearchLimit, "Maximum number of results to return (default: 10)"),
			},
		},
		{
			Name:        "search_opportunities",
			Description: "Search for Salesforce opportunities by name, stage, or other criteria",
			Params: []Param{
				requiredStr("query", "Search query for opportunity name, stage, or other fields"),
				limitParam(crm.DefaultSearchLimit, "Maximum number of results to return (default: 10)"),
			},
		},
		{
			Name:        "search_leads",
			Description: "Search for Salesforce leads by name, company, or other criteria",
			Params: []Param{
				requiredStr("query", "Search query for lead name, company, or other fields"),
				limitParam(crm.DefaultSearchLimit, "Maximum number of results to return (default: 10)"),
			},
		},
		{
			Name:        "get_account_details",
			Description: "Get detailed information about a specific Salesforce account",
			Params:      []Param{requiredStr("accountId", "The Salesforce Account ID")},
		},
		{
			Name:        "get_contact_details",
			Description: "Get detailed information about a specific Salesforce contact",
			Params:      []Param{requiredStr("contactId", "The Salesforce Contact ID")},
		},
		{
			Name:        "get_opportunity_details",
			Description: "Get detailed information about a specific Salesforce opportunity",
			Params:      []Param{requiredStr("opportunityId", "The Salesforce Opportunity ID")},
		},
		{
			Name:        "update_account",
			Description: "Update a Salesforce account with new information",
			Params: []Param{
				requiredStr("accountId", "The Salesforce Account ID"),
				updates("account", map[string]ParamType{
					"Name": TypeString, "Industry": TypeString, "Phone": TypeString,
					"Website": TypeString, "Description": TypeString,
				}),
			},
		},
		{
			Name:        "update_contact",
			Description: "Update a Salesforce contact with new information",
			Params: []Param{
				requiredStr("contactId", "The Salesforce Contact ID"),
				updates("contact", map[string]ParamType{
					"FirstName": TypeString, "LastName": TypeString, "Email": TypeString,
					"Phone": TypeString, "Title": TypeString, "Department": TypeString,
				}),
			},
		},
		{
			Name:        "update_opportunity",
			Description: "Update a Salesforce opportunity with new information",
			Params: []Param{
				requiredStr("opportunityId", "The Salesforce Opportunity ID"),
				updates("opportunity", map[string]ParamType{
					"Name": TypeString, "StageName": TypeString, "Amount": TypeNumber,
					"CloseDate": TypeString, "Description": TypeString, "Probability": TypeNumber,
				}),
			},
		},
		{
			Name:        "get_recent_activities",
			Description: "Get recent activities (tasks, events, calls) for an account or contact",
			Params: []Param{
				requiredStr("recordId", "The Salesforce Record ID (Account, Contact, or Opportunity)"),
				limitParam(crm.DefaultSearchLimit, "Maximum number of activities to return (default: 10)"),
			},
		},
		{
			Name:        "create_task",
			Description: "Create a new task in Salesforce",
			Params: []Param{
				requiredStr("subject", "Task subject/title"),
				str("description", "Task description"),
				str("whoId", "Contact or Lead ID this task is related to"),
				str("whatId", "Account, Opportunity, or other record ID this task is related to"),
				str("dueDate", "Due date in YYYY-MM-DD format"),
				{
					Name:        "priority",
					Type:        TypeString,
					Description: "Task priority (High, Normal, Low)",
					Enum:        crm.TaskPriorities,
				},
			},
		},
		{
			Name:        "create_account",
			Description: "Create a new Salesforce account",
			Params: []Param{
				requiredStr("name", "Account name (required)"),
				str("industry", "Account industry"),
				str("phone", "Account phone number"),
				str("website", "Account website URL"),
				str("billingStreet", "Billing street address"),
				str("billingCity", "Billing city"),
				str("billingState", "Billing state/province"),
				str("billingPostalCode", "Billing postal code"),
				str("billingCountry", "Billing country"),
				str("description", "Account description"),
				num("numberOfEmployees", "Number of employees"),
				num("annualRevenue", "Annual revenue"),
				str("type", "Account type (e.g., Customer, Partner, Prospect)"),
			},
		},
		{
			Name:        "create_contact",
			Description: "Create a new Salesforce contact",
			Params: []Param{
				str("firstName", "Contact first name"),
				requiredStr("lastName", "Contact last name (required)"),
				str("email", "Contact email address"),
				str("phone", "Contact phone number"),
				str("title", "Contact job title"),
				str("department", "Contact department"),
				str("accountId", "Associated account ID"),
				str("mailingStreet", "Mailing street address"),
				str("mailingCity", "Mailing city"),
				str("mailingState", "Mailing state/province"),
				str("mailingPostalCode", "Mailing postal code"),
				str("mailingCountry", "Mailing country"),
				str("description", "Contact description"),
			},
		},
		{
			Name:        "create_opportunity",
			Description: "Create a new Salesforce opportunity",
			Params: []Param{
				requiredStr("name", "Opportunity name (required)"),
				requiredStr("accountId", "Associated account ID (required)"),
				requiredStr("stageName", "Opportunity stage (required)"),
				requiredStr("closeDate", "Close date in YYYY-MM-DD format (required)"),
				num("amount", "Opportunity amount"),
				num("probability", "Probability percentage (0-100)"),
				str("type", "Opportunity type (e.g., New Business, Existing Business)"),
				str("description", "Opportunity description"),
				str("leadSource", "Lead source"),
				str("nextStep", "Next step in the sales process"),
			},
		},
		{
			Name:        "search_all_records",
			Description: "Search across all Salesforce records using SOSL (global search)",
			Params: []Param{
				requiredStr("query", "Search query to find across all records"),
				limitParam(crm.DefaultGlobalSearchLimit, "Maximum number of results to return (default: 20)"),
			},
		},
	}
}
