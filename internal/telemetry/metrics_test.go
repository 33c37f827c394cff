package telemetry

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordToolExecution(t *testing.T) {
	m := NewMetrics()
	m.RecordToolExecution("search_accounts", "success", 120*time.Millisecond)
	m.RecordToolExecution("search_accounts", "success", 80*time.Millisecond)
	m.RecordToolExecution("search_accounts", "error", time.Second)

	if got := testutil.ToFloat64(m.ToolExecutions.WithLabelValues("search_accounts", "success")); got != 2 {
		t.Fatalf("expected 2 successes, got %v", got)
	}
	if got := testutil.CollectAndCount(m.ToolDuration); got != 1 {
		t.Fatalf("expected one duration series, got %d", got)
	}
}

func TestRecordLogin(t *testing.T) {
	m := NewMetrics()
	m.RecordLogin(nil)
	m.RecordLogin(errors.New("bad password"))
	m.RecordLogin(errors.New("bad password"))
	if got := testutil.ToFloat64(m.BackendLogins.WithLabelValues("error")); got != 2 {
		t.Fatalf("expected 2 failed logins, got %v", got)
	}
}

func TestHTTPMetricsMiddlewareUsesRoutePattern(t *testing.T) {
	m := NewMetrics()
	r := chi.NewRouter()
	r.Use(HTTPMetricsMiddleware(m))
	r.Get("/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
	}

	if got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/items/{id}", "418")); got != 2 {
		t.Fatalf("expected 2 requests under the route pattern, got %v", got)
	}
	if got := testutil.ToFloat64(m.HTTPRequestsInFlight); got != 0 {
		t.Fatalf("in-flight gauge should return to zero, got %v", got)
	}
}
