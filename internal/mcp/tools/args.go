package tools

type SearchArgs struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type AccountArgs struct {
	AccountID string `json:"accountId"`
}

type ContactArgs struct {
	ContactID string `json:"contactId"`
}

type OpportunityArgs struct {
	OpportunityID string `json:"opportunityId"`
}

type UpdateAccountArgs struct {
	AccountID string         `json:"accountId"`
	Updates   map[string]any `json:"updates"`
}

type UpdateContactArgs struct {
	ContactID string         `json:"contactId"`
	Updates   map[string]any `json:"updates"`
}

type UpdateOpportunityArgs struct {
	OpportunityID string         `json:"opportunityId"`
	Updates       map[string]any `json:"updates"`
}

type ActivitiesArgs struct {
	RecordID string `json:"recordId"`
	Limit    int    `json:"limit"`
}
