package salesforce

import (
	"bytes"
	"encoding/json"
)

// Record is an sObject row as returned by the REST API. Values are passed
// through untouched; numbers keep their literal form.
type Record map[string]any

// QueryResult is the first batch of a SOQL query.
type QueryResult struct {
	TotalSize int      `json:"totalSize"`
	Done      bool     `json:"done"`
	Records   []Record `json:"records"`
}

// SaveResult is the outcome of a single-record create or update.
type SaveResult struct {
	ID      string     `json:"id"`
	Success bool       `json:"success"`
	Errors  []APIError `json:"errors"`
}

func decodeJSON(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(v)
}
