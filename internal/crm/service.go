// Package crm builds and runs the SOQL/SOSL queries and sObject mutations
// behind each tool.
package crm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roivaz/mcp-salesforce/internal/salesforce"
)

// Backend is the subset of the Salesforce client the service needs.
type Backend interface {
	Query(ctx context.Context, soql string) (*salesforce.QueryResult, error)
	Search(ctx context.Context, sosl string) (json.RawMessage, error)
	Create(ctx context.Context, sobject string, fields map[string]any) (*salesforce.SaveResult, error)
	Update(ctx context.Context, sobject, id string, fields map[string]any) (*salesforce.SaveResult, error)
}

// ErrNotFound matches lookups by id that returned no rows.
var ErrNotFound = errors.New("record not found")

type notFoundError struct {
	entity string
	id     string
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.entity, e.id)
}

func (e *notFoundError) Is(target error) bool { return target == ErrNotFound }

// OpError prefixes a failure with the operation it interrupted.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string { return "Failed to " + e.Op + ": " + e.Err.Error() }

func (e *OpError) Unwrap() error { return e.Err }

const (
	DefaultSearchLimit       = 10
	DefaultGlobalSearchLimit = 20
)

type Service struct {
	backend Backend
}

func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

func (s *Service) SearchAccounts(ctx context.Context, term string, limit int) (*salesforce.QueryResult, error) {
	return s.search(ctx, accountSearch, term, limit)
}

func (s *Service) SearchContacts(ctx context.Context, term string, limit int) (*salesforce.QueryResult, error) {
	return s.search(ctx, contactSearch, term, limit)
}

func (s *Service) SearchOpportunities(ctx context.Context, term string, limit int) (*salesforce.QueryResult, error) {
	return s.search(ctx, opportunitySearch, term, limit)
}

func (s *Service) SearchLeads(ctx context.Context, term string, limit int) (*salesforce.QueryResult, error) {
	return s.search(ctx, leadSearch, term, limit)
}

func (s *Service) search(ctx context.Context, spec searchSpec, term string, limit int) (*salesforce.QueryResult, error) {
	result, err := s.backend.Query(ctx, spec.soql(term, limit))
	if err != nil {
		return nil, &OpError{Op: "search " + spec.plural, Err: err}
	}
	return result, nil
}

func (s *Service) GetAccount(ctx context.Context, id string) (salesforce.Record, error) {
	return s.get(ctx, accountDetail, id)
}

func (s *Service) GetContact(ctx context.Context, id string) (salesforce.Record, error) {
	return s.get(ctx, contactDetail, id)
}

func (s *Service) GetOpportunity(ctx context.Context, id string) (salesforce.Record, error) {
	return s.get(ctx, opportunityDetail, id)
}

func (s *Service) get(ctx context.Context, spec detailSpec, id string) (salesforce.Record, error) {
	op := "get " + spec.label + " details"
	result, err := s.backend.Query(ctx, spec.soql(id))
	if err != nil {
		return nil, &OpError{Op: op, Err: err}
	}
	if result.TotalSize == 0 || len(result.Records) == 0 {
		return nil, &OpError{Op: op, Err: &notFoundError{entity: spec.sobject, id: id}}
	}
	return result.Records[0], nil
}

func (s *Service) UpdateAccount(ctx context.Context, id string, updates map[string]any) (*salesforce.SaveResult, error) {
	return s.update(ctx, "Account", id, updates)
}

func (s *Service) UpdateContact(ctx context.Context, id string, updates map[string]any) (*salesforce.SaveResult, error) {
	return s.update(ctx, "Contact", id, updates)
}

func (s *Service) UpdateOpportunity(ctx context.Context, id string, updates map[string]any) (*salesforce.SaveResult, error) {
	return s.update(ctx, "Opportunity", id, updates)
}

func (s *Service) update(ctx context.Context, sobject, id string, updates map[string]any) (*salesforce.SaveResult, error) {
	op := "update " + labelOf(sobject)
	fields := make(map[string]any, len(updates))
	for k, v := range updates {
		// The target comes from the id argument only.
		if k == "Id" {
			continue
		}
		fields[k] = v
	}
	if len(fields) == 0 {
		return nil, &OpError{Op: op, Err: errors.New("no fields to update")}
	}
	result, err := s.backend.Update(ctx, sobject, id, fields)
	if err != nil {
		return nil, &OpError{Op: op, Err: err}
	}
	if !result.Success {
		return nil, &OpError{Op: op, Err: &salesforce.MutationError{SObject: sobject, Errors: result.Errors}}
	}
	if result.ID == "" {
		result.ID = id
	}
	return result, nil
}

func (s *Service) CreateTask(ctx context.Context, in NewTask) (*salesforce.SaveResult, error) {
	return s.create(ctx, "Task", in.fields())
}

func (s *Service) CreateAccount(ctx context.Context, in NewAccount) (*salesforce.SaveResult, error) {
	return s.create(ctx, "Account", in.fields())
}

func (s *Service) CreateContact(ctx context.Context, in NewContact) (*salesforce.SaveResult, error) {
	return s.create(ctx, "Contact", in.fields())
}

func (s *Service) CreateOpportunity(ctx context.Context, in NewOpportunity) (*salesforce.SaveResult, error) {
	return s.create(ctx, "Opportunity", in.fields())
}

func (s *Service) create(ctx context.Context, sobject string, fields map[string]any) (*salesforce.SaveResult, error) {
	op := "create " + labelOf(sobject)
	result, err := s.backend.Create(ctx, sobject, fields)
	if err != nil {
		return nil, &OpError{Op: op, Err: err}
	}
	if !result.Success {
		return nil, &OpError{Op: op, Err: &salesforce.MutationError{SObject: sobject, Errors: result.Errors}}
	}
	return result, nil
}

// SearchAll runs a global SOSL search and returns the backend's document as is.
func (s *Service) SearchAll(ctx context.Context, term string, limit int) (json.RawMessage, error) {
	result, err := s.backend.Search(ctx, globalSearchSOSL(term, limit))
	if err != nil {
		return nil, &OpError{Op: "search all records", Err: err}
	}
	return result, nil
}
