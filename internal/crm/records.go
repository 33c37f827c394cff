package crm

const (
	DefaultTaskPriority = "Normal"
	NewTaskStatus       = "Not Started"
)

// TaskPriorities is the closed set accepted for a task's priority.
var TaskPriorities = []string{"High", "Normal", "Low"}

type NewTask struct {
	Subject     string `json:"subject"`
	Description string `json:"description,omitempty"`
	WhoID       string `json:"whoId,omitempty"`
	WhatID      string `json:"whatId,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	Priority    string `json:"priority,omitempty"`
}

func (t NewTask) fields() map[string]any {
	priority := t.Priority
	if priority == "" {
		priority = DefaultTaskPriority
	}
	f := map[string]any{
		"Subject":  t.Subject,
		"Priority": priority,
		"Status":   NewTaskStatus,
	}
	setString(f, "Description", t.Description)
	setString(f, "WhoId", t.WhoID)
	setString(f, "WhatId", t.WhatID)
	setString(f, "ActivityDate", t.DueDate)
	return f
}

type NewAccount struct {
	Name              string   `json:"name"`
	Industry          string   `json:"industry,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	Website           string   `json:"website,omitempty"`
	BillingStreet     string   `json:"billingStreet,omitempty"`
	BillingCity       string   `json:"billingCity,omitempty"`
	BillingState      string   `json:"billingState,omitempty"`
	BillingPostalCode string   `json:"billingPostalCode,omitempty"`
	BillingCountry    string   `json:"billingCountry,omitempty"`
	Description       string   `json:"description,omitempty"`
	NumberOfEmployees *float64 `json:"numberOfEmployees,omitempty"`
	AnnualRevenue     *float64 `json:"annualRevenue,omitempty"`
	Type              string   `json:"type,omitempty"`
}

func (a NewAccount) fields() map[string]any {
	f := map[string]any{"Name": a.Name}
	setString(f, "Industry", a.Industry)
	setString(f, "Phone", a.Phone)
	setString(f, "Website", a.Website)
	setString(f, "BillingStreet", a.BillingStreet)
	setString(f, "BillingCity", a.BillingCity)
	setString(f, "BillingState", a.BillingState)
	setString(f, "BillingPostalCode", a.BillingPostalCode)
	setString(f, "BillingCountry", a.BillingCountry)
	setString(f, "Description", a.Description)
	setString(f, "Type", a.Type)
	setNumber(f, "NumberOfEmployees", a.NumberOfEmployees)
	setNumber(f, "AnnualRevenue", a.AnnualRevenue)
	return f
}

type NewContact struct {
	FirstName         string `json:"firstName,omitempty"`
	LastName          string `json:"lastName"`
	Email             string `json:"email,omitempty"`
	Phone             string `json:"phone,omitempty"`
	Title             string `json:"title,omitempty"`
	Department        string `json:"department,omitempty"`
	AccountID         string `json:"accountId,omitempty"`
	MailingStreet     string `json:"mailingStreet,omitempty"`
	MailingCity       string `json:"mailingCity,omitempty"`
	MailingState      string `json:"mailingState,omitempty"`
	MailingPostalCode string `json:"mailingPostalCode,omitempty"`
	MailingCountry    string `json:"mailingCountry,omitempty"`
	Description       string `json:"description,omitempty"`
}

func (c NewContact) fields() map[string]any {
	f := map[string]any{"LastName": c.LastName}
	setString(f, "FirstName", c.FirstName)
	setString(f, "Email", c.Email)
	setString(f, "Phone", c.Phone)
	setString(f, "Title", c.Title)
	setString(f, "Department", c.Department)
	setString(f, "AccountId", c.AccountID)
	setString(f, "MailingStreet", c.MailingStreet)
	setString(f, "MailingCity", c.MailingCity)
	setString(f, "MailingState", c.MailingState)
	setString(f, "MailingPostalCode", c.MailingPostalCode)
	setString(f, "MailingCountry", c.MailingCountry)
	setString(f, "Description", c.Description)
	return f
}

type NewOpportunity struct {
	Name        string   `json:"name"`
	AccountID   string   `json:"accountId"`
	StageName   string   `json:"stageName"`
	CloseDate   string   `json:"closeDate"`
	Amount      *float64 `json:"amount,omitempty"`
	Probability *float64 `json:"probability,omitempty"`
	Type        string   `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	LeadSource  string   `json:"leadSource,omitempty"`
	NextStep    string   `json:"nextStep,omitempty"`
}

func (o NewOpportunity) fields() map[string]any {
	f := map[string]any{
		"Name":      o.Name,
		"AccountId": o.AccountID,
		"StageName": o.StageName,
		"CloseDate": o.CloseDate,
	}
	setNumber(f, "Amount", o.Amount)
	setNumber(f, "Probability", o.Probability)
	setString(f, "Type", o.Type)
	setString(f, "Description", o.Description)
	setString(f, "LeadSource", o.LeadSource)
	setString(f, "NextStep", o.NextStep)
	return f
}

func setString(f map[string]any, key, v string) {
	if v != "" {
		f[key] = v
	}
}

func setNumber(f map[string]any, key string, v *float64) {
	if v != nil {
		f[key] = *v
	}
}
