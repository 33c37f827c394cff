package crm

import (
	"strconv"
	"strings"

	"github.com/roivaz/mcp-salesforce/internal/salesforce"
)

type searchSpec struct {
	sobject string
	plural  string
	fields  []string
	match   []string
	orderBy string
}

var accountSearch = searchSpec{
	sobject: "Account",
	plural:  "accounts",
	fields: []string{
		"Id", "Name", "Industry", "Phone", "Website", "BillingCity", "BillingState",
		"BillingCountry", "Type", "Description", "NumberOfEmployees", "AnnualRevenue", "CreatedDate",
	},
	match:   []string{"Name", "Industry", "BillingCity", "Type"},
	orderBy: "Name",
}

var contactSearch = searchSpec{
	sobject: "Contact",
	plural:  "contacts",
	fields: []string{
		"Id", "FirstName", "LastName", "Email", "Phone", "Title", "Department", "AccountId",
		"Account.Name", "MailingCity", "MailingState", "MailingCountry", "CreatedDate",
	},
	match:   []string{"FirstName", "LastName", "Email", "Title", "Department", "Account.Name"},
	orderBy: "LastName, FirstName",
}

var opportunitySearch = searchSpec{
	sobject: "Opportunity",
	plural:  "opportunities",
	fields: []string{
		"Id", "Name", "StageName", "Amount", "CloseDate", "Probability", "AccountId", "Account.Name",
		"Type", "Description", "ForecastCategoryName", "CreatedDate",
	},
	match:   []string{"Name", "StageName", "Account.Name", "Type"},
	orderBy: "CloseDate DESC",
}

var leadSearch = searchSpec{
	sobject: "Lead",
	plural:  "leads",
	fields: []string{
		"Id", "FirstName", "LastName", "Email", "Phone", "Title", "Company", "Status", "LeadSource",
		"City", "State", "Country", "Industry", "CreatedDate",
	},
	match:   []string{"FirstName", "LastName", "Email", "Company", "Title", "Industry"},
	orderBy: "CreatedDate DESC",
}

func (s searchSpec) soql(term string, limit int) string {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	pattern := "'%" + salesforce.EscapeLike(term) + "%'"
	conds := make([]string, 0, len(s.match))
	for _, f := range s.match {
		conds = append(conds, f+" LIKE "+pattern)
	}
	return "SELECT " + strings.Join(s.fields, ", ") +
		" FROM " + s.sobject +
		" WHERE " + strings.Join(conds, " OR ") +
		" ORDER BY " + s.orderBy +
		" LIMIT " + strconv.Itoa(limit)
}

type detailSpec struct {
	sobject string
	label   string
	fields  []string
}

var accountDetail = detailSpec{
	sobject: "Account",
	label:   "account",
	fields: []string{
		"Id", "Name", "Industry", "Phone", "Website", "BillingStreet", "BillingCity", "BillingState",
		"BillingPostalCode", "BillingCountry", "Type", "Description", "NumberOfEmployees",
		"AnnualRevenue", "CreatedDate", "LastModifiedDate", "OwnerId", "Owner.Name",
	},
}

var contactDetail = detailSpec{
	sobject: "Contact",
	label:   "contact",
	fields: []string{
		"Id", "FirstName", "LastName", "Email", "Phone", "Title", "Department", "AccountId", "Account.Name",
		"MailingStreet", "MailingCity", "MailingState", "MailingPostalCode", "MailingCountry",
		"CreatedDate", "LastModifiedDate", "OwnerId", "Owner.Name", "Description",
	},
}

var opportunityDetail = detailSpec{
	sobject: "Opportunity",
	label:   "opportunity",
	fields: []string{
		"Id", "Name", "StageName", "Amount", "CloseDate", "Probability", "AccountId", "Account.Name",
		"Type", "Description", "ForecastCategoryName", "CreatedDate", "LastModifiedDate",
		"OwnerId", "Owner.Name", "LeadSource", "NextStep",
	},
}

func (d detailSpec) soql(id string) string {
	return "SELECT " + strings.Join(d.fields, ", ") +
		" FROM " + d.sobject +
		" WHERE Id = '" + salesforce.EscapeLiteral(id) + "'"
}

var taskActivityFields = []string{
	"Id", "Subject", "Description", "Status", "Priority", "ActivityDate", "WhoId", "WhatId",
	"Who.Name", "What.Name", "CreatedDate", "Type",
}

var eventActivityFields = []string{
	"Id", "Subject", "Description", "StartDateTime", "EndDateTime", "WhoId", "WhatId",
	"Who.Name", "What.Name", "CreatedDate", "Type",
}

// activitySOQL selects the activities whose who or what relationship points
// at recordID, newest first.
func activitySOQL(sobject string, fields []string, recordID string, limit int) string {
	id := "'" + salesforce.EscapeLiteral(recordID) + "'"
	return "SELECT " + strings.Join(fields, ", ") +
		" FROM " + sobject +
		" WHERE WhatId = " + id + " OR WhoId = " + id +
		" ORDER BY CreatedDate DESC" +
		" LIMIT " + strconv.Itoa(limit)
}

func globalSearchSOSL(term string, limit int) string {
	if limit <= 0 {
		limit = DefaultGlobalSearchLimit
	}
	return "FIND {" + salesforce.EscapeSearchTerm(term) + "} IN ALL FIELDS" +
		" RETURNING Account(Id, Name, Industry, Phone)," +
		" Contact(Id, FirstName, LastName, Email, Phone, Account.Name)," +
		" Opportunity(Id, Name, StageName, Amount, CloseDate, Account.Name)," +
		" Lead(Id, FirstName, LastName, Email, Company, Status)" +
		" LIMIT " + strconv.Itoa(limit)
}

func labelOf(sobject string) string {
	return strings.ToLower(sobject)
}
