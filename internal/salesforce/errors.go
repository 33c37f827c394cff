package salesforce

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrMissingCredentials is returned before any network call when the username
// or password is not configured.
var ErrMissingCredentials = errors.New("SALESFORCE_USERNAME and SALESFORCE_PASSWORD must be set")

// LoginError reports a failed authentication against the login endpoint.
type LoginError struct {
	Err error
}

func (e *LoginError) Error() string {
	return "Failed to connect to Salesforce: " + e.Err.Error()
}

func (e *LoginError) Unwrap() error { return e.Err }

// APIError is one entry of the error list Salesforce returns for a failed
// REST call.
type APIError struct {
	ErrorCode string   `json:"errorCode,omitempty"`
	Message   string   `json:"message"`
	Fields    []string `json:"fields,omitempty"`
}

func (e APIError) Error() string {
	if e.ErrorCode == "" {
		return e.Message
	}
	return e.ErrorCode + ": " + e.Message
}

// RequestError is a non-2xx response to a query or search call.
type RequestError struct {
	StatusCode int
	Errors     []APIError
}

func (e *RequestError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("salesforce request failed with status %d", e.StatusCode)
	}
	return joinErrors(e.Errors)
}

// MutationError carries the per-record errors of a rejected create or update.
type MutationError struct {
	SObject string
	Errors  []APIError
}

func (e *MutationError) Error() string {
	if len(e.Errors) == 0 {
		return e.SObject + " mutation was rejected"
	}
	return joinErrors(e.Errors)
}

func joinErrors(list []APIError) string {
	parts := make([]string, 0, len(list))
	for _, e := range list {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, ", ")
}

// parseErrors decodes the error payloads Salesforce uses: the REST error list,
// the OAuth error object, or anything else as plain text.
func parseErrors(body []byte) []APIError {
	doc := gjson.ParseBytes(body)
	switch {
	case doc.IsArray():
		var out []APIError
		doc.ForEach(func(_, item gjson.Result) bool {
			out = append(out, apiErrorFrom(item))
			return true
		})
		return out
	case doc.IsObject() && doc.Get("error").Exists():
		return []APIError{{
			ErrorCode: doc.Get("error").String(),
			Message:   doc.Get("error_description").String(),
		}}
	case doc.IsObject() && doc.Get("message").Exists():
		return []APIError{apiErrorFrom(doc)}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return []APIError{{Message: text}}
	}
	return nil
}

func apiErrorFrom(item gjson.Result) APIError {
	e := APIError{
		ErrorCode: item.Get("errorCode").String(),
		Message:   item.Get("message").String(),
	}
	for _, f := range item.Get("fields").Array() {
		e.Fields = append(e.Fields, f.String())
	}
	if e.ErrorCode == "" {
		e.ErrorCode = item.Get("statusCode").String()
	}
	return e
}
