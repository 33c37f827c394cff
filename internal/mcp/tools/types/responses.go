package types

import (
	"bytes"
	"encoding/json"

	"github.com/roivaz/mcp-salesforce/internal/salesforce"
)

// The JSON keys below are read by existing clients and must not change.

type QueryResponse struct {
	TotalSize int                 `json:"totalSize"`
	Records   []salesforce.Record `json:"records"`
	Message   string              `json:"message"`
}

// RecordResponse holds a single record under its entity key, for example
// {"account": {...}, "message": "..."}.
type RecordResponse struct {
	Key     string
	Record  salesforce.Record
	Message string
}

func (r RecordResponse) MarshalJSON() ([]byte, error) {
	key, err := json.Marshal(r.Key)
	if err != nil {
		return nil, err
	}
	rec, err := json.Marshal(r.Record)
	if err != nil {
		return nil, err
	}
	msg, err := json.Marshal(r.Message)
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	b.WriteByte('{')
	b.Write(key)
	b.WriteByte(':')
	b.Write(rec)
	b.WriteString(`,"message":`)
	b.Write(msg)
	b.WriteByte('}')
	return b.Bytes(), nil
}

type MutationResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

type ActivitiesResponse struct {
	TotalActivities int                 `json:"totalActivities"`
	Activities      []salesforce.Record `json:"activities"`
	Message         string              `json:"message"`
}

type GlobalSearchResponse struct {
	SearchResults json.RawMessage `json:"searchResults"`
	Message       string          `json:"message"`
}
