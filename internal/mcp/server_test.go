package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/tidwall/gjson"

	"github.com/roivaz/mcp-salesforce/internal/logging"
	"github.com/roivaz/mcp-salesforce/internal/salesforce"
	"github.com/roivaz/mcp-salesforce/internal/telemetry"
)

func newTestServer(t *testing.T, backend *fakeBackend) *Server {
	t.Helper()
	metrics := telemetry.NewMetrics()
	registry := NewRegistry(Catalog())
	d := newTestDispatcher(&fakeSource{backend: backend}, WithMetrics(metrics))
	return New(Config{
		Registry:   registry,
		Dispatcher: d,
		Metrics:    metrics,
		Logger:     logging.New(logr.Discard()),
	})
}

func rpc(t *testing.T, srv *Server, msg string) string {
	t.Helper()
	resp := srv.MCP.HandleMessage(context.Background(), json.RawMessage(msg))
	out, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	return string(out)
}

func initialize(t *testing.T, srv *Server) {
	t.Helper()
	out := rpc(t, srv, `{"jsonrpc":"2.0","id":0,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`)
	if gjson.Get(out, "result.serverInfo.name").String() != ServerName {
		t.Fatalf("unexpected initialize response %s", out)
	}
}

func TestServerListsTools(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{})
	initialize(t, srv)

	out := rpc(t, srv, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	if n := gjson.Get(out, "result.tools.#").Int(); n != 16 {
		t.Fatalf("expected 16 tools, got %d: %s", n, out)
	}
	if !gjson.Get(out, `result.tools.#(name=="create_task")`).Exists() {
		t.Fatalf("create_task not listed")
	}
}

func TestServerCallTool(t *testing.T) {
	backend := &fakeBackend{records: []salesforce.Record{{"Id": "00Q1", "LastName": "Smith"}}}
	srv := newTestServer(t, backend)
	initialize(t, srv)

	out := rpc(t, srv, `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"search_leads","arguments":{"query":"Smith","limit":3}}}`)
	text := gjson.Get(out, "result.content.0.text").String()
	if gjson.Get(text, "message").String() != `Found 1 leads matching "Smith"` {
		t.Fatalf("unexpected result %s", out)
	}
	if !strings.HasSuffix(backend.queries[0], "LIMIT 3") {
		t.Fatalf("unexpected soql %s", backend.queries[0])
	}
}

func TestServerCallWithoutArguments(t *testing.T) {
	backend := &fakeBackend{}
	srv := newTestServer(t, backend)
	initialize(t, srv)

	out := rpc(t, srv, `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"search_leads"}}`)
	if !strings.Contains(gjson.Get(out, "error.message").String(), "Missing arguments") {
		t.Fatalf("expected missing arguments error, got %s", out)
	}
	if len(backend.queries) != 0 {
		t.Fatalf("backend must not be queried")
	}
}

func TestServerHTTPRoutes(t *testing.T) {
	srv := newTestServer(t, &fakeBackend{})
	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected healthz status %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "http_requests_total") {
		t.Fatalf("metrics endpoint missing http metrics:\n%s", body)
	}
}

// mcp-go v0.41.1 reports every handler error as INTERNAL_ERROR and rejects
// unregistered names itself, so the dispatcher codes only survive in-process.
// A library upgrade that forwards them will fail this test.
func TestServerWireErrorCodes(t *testing.T) {
	backend := &fakeBackend{}
	srv := newTestServer(t, backend)
	initialize(t, srv)

	tests := []struct {
		name    string
		params  string
		code    int64
		message string
	}{
		{
			name:    "missing arguments",
			params:  `{"name":"search_leads"}`,
			code:    mcp.INTERNAL_ERROR,
			message: "Missing arguments",
		},
		{
			name:    "unknown tool",
			params:  `{"name":"nope","arguments":{}}`,
			code:    mcp.INVALID_PARAMS,
			message: "tool 'nope' not found",
		},
		{
			name:    "priority outside the enum",
			params:  `{"name":"create_task","arguments":{"subject":"Call","priority":"Urgent"}}`,
			code:    mcp.INTERNAL_ERROR,
			message: `invalid argument "priority"`,
		},
		{
			name:    "record not found",
			params:  `{"name":"get_account_details","arguments":{"accountId":"001"}}`,
			code:    mcp.INTERNAL_ERROR,
			message: "Error executing get_account_details: Failed to get account details",
		},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := rpc(t, srv, fmt.Sprintf(`{"jsonrpc":"2.0","id":%d,"method":"tools/call","params":%s}`, 10+i, tt.params))
			if got := gjson.Get(out, "error.code").Int(); got != tt.code {
				t.Fatalf("expected code %d, got %d: %s", tt.code, got, out)
			}
			if msg := gjson.Get(out, "error.message").String(); !strings.Contains(msg, tt.message) {
				t.Fatalf("expected message containing %q, got %q", tt.message, msg)
			}
		})
	}
	if len(backend.queries) != 1 {
		t.Fatalf("only the lookup should reach the backend, got %v", backend.queries)
	}
}
