package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/mcp-salesforce/internal/crm"
	"github.com/roivaz/mcp-salesforce/internal/db"
	"github.com/roivaz/mcp-salesforce/internal/logging"
	"github.com/roivaz/mcp-salesforce/internal/mcp/tools"
	"github.com/roivaz/mcp-salesforce/internal/salesforce"
	"github.com/roivaz/mcp-salesforce/internal/telemetry"
)

// ToolError is the failure returned by Dispatcher.Call. Code is one of the
// JSON-RPC codes mcp.INVALID_PARAMS, mcp.METHOD_NOT_FOUND or
// mcp.INTERNAL_ERROR.
type ToolError struct {
	Code    int
	Tool    string
	Message string
	Err     error
}

func (e *ToolError) Error() string { return e.Message }

func (e *ToolError) Unwrap() error { return e.Err }

// BackendSource yields the CRM service, connecting on first use.
type BackendSource interface {
	CRM(ctx context.Context) (tools.CRMService, error)
}

// ConnectorSource adapts the init-once Salesforce connector.
type ConnectorSource struct {
	Connector *salesforce.Connector
}

func (s ConnectorSource) CRM(ctx context.Context) (tools.CRMService, error) {
	client, err := s.Connector.Client(ctx)
	if err != nil {
		return nil, err
	}
	return crm.NewService(client), nil
}

// AuditRecorder stores one row per dispatched call. *db.AuditLog implements it.
type AuditRecorder interface {
	Record(ctx context.Context, inv *db.ToolInvocation) error
}

type Dispatcher struct {
	registry *Registry
	handlers map[string]tools.HandlerFunc
	source   BackendSource
	metrics  *telemetry.Metrics
	audit    AuditRecorder
	log      logging.Logger
}

type DispatcherOption func(*Dispatcher)

func WithMetrics(m *telemetry.Metrics) DispatcherOption {
	return func(d *Dispatcher) { d.metrics = m }
}

func WithAudit(a AuditRecorder) DispatcherOption {
	return func(d *Dispatcher) { d.audit = a }
}

func WithLogger(l logging.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.log = l }
}

func NewDispatcher(registry *Registry, handlers map[string]tools.HandlerFunc, source BackendSource, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		handlers: handlers,
		source:   source,
		log:      logging.New(logging.DefaultLogger()),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Call validates args, connects to the backend if needed and runs the named
// tool. Argument and name errors are reported before the backend is touched.
func (d *Dispatcher) Call(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	start := time.Now()
	res, err := d.call(ctx, name, args)
	d.observe(ctx, name, args, time.Since(start), err)
	return res, err
}

func (d *Dispatcher) call(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	if args == nil {
		return nil, &ToolError{Code: mcp.INVALID_PARAMS, Tool: name, Message: "Missing arguments"}
	}
	handler, ok := d.handlers[name]
	if _, known := d.registry.Lookup(name); !ok || !known {
		return nil, &ToolError{Code: mcp.METHOD_NOT_FOUND, Tool: name, Message: "Unknown tool: " + name}
	}
	validated, err := d.registry.Validate(name, args)
	if err != nil {
		return nil, &ToolError{Code: mcp.INVALID_PARAMS, Tool: name, Message: err.Error(), Err: err}
	}

	svc, err := d.source.CRM(ctx)
	if err != nil {
		return nil, executionError(name, err)
	}
	res, err := handler(ctx, svc, validated)
	if err != nil {
		var argErr *tools.ArgumentError
		if errors.As(err, &argErr) {
			return nil, &ToolError{Code: mcp.INVALID_PARAMS, Tool: name, Message: err.Error(), Err: err}
		}
		return nil, executionError(name, err)
	}
	return res, nil
}

func executionError(name string, err error) *ToolError {
	return &ToolError{
		Code:    mcp.INTERNAL_ERROR,
		Tool:    name,
		Message: fmt.Sprintf("Error executing %s: %s", name, err.Error()),
		Err:     err,
	}
}

func (d *Dispatcher) observe(ctx context.Context, name string, args map[string]any, elapsed time.Duration, err error) {
	status := statusOf(err)
	if d.metrics != nil {
		d.metrics.RecordToolExecution(name, status, elapsed)
	}
	switch {
	case err == nil:
		d.log.Debug("tool call completed", "tool", name, "duration", elapsed)
	case status != db.StatusError || errors.Is(err, crm.ErrNotFound):
		// Caller mistakes and missing records are ordinary results.
		d.log.Debug("tool call rejected", "tool", name, "status", status, "error", err.Error())
	default:
		d.log.Error(err, "tool call failed", "tool", name, "status", status)
	}
	if d.audit == nil {
		return
	}
	inv := &db.ToolInvocation{
		Tool:       name,
		Status:     status,
		Arguments:  args,
		DurationMS: elapsed.Milliseconds(),
	}
	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		code, msg := toolErr.Code, toolErr.Message
		inv.ErrorCode, inv.ErrorMessage = &code, &msg
	}
	// A failed audit write never fails the call.
	if aerr := d.audit.Record(context.WithoutCancel(ctx), inv); aerr != nil {
		d.log.Error(aerr, "failed to record tool invocation", "tool", name)
	}
}

func statusOf(err error) string {
	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		if err != nil {
			return db.StatusError
		}
		return db.StatusSuccess
	}
	switch toolErr.Code {
	case mcp.INVALID_PARAMS:
		return db.StatusInvalidParams
	case mcp.METHOD_NOT_FOUND:
		return db.StatusUnknownTool
	}
	return db.StatusError
}
