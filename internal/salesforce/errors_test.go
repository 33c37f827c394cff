package salesforce

import "testing"

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"list", `[{"message":"m1","errorCode":"E1"},{"message":"m2","statusCode":"E2"}]`, "E1: m1, E2: m2"},
		{"oauth", `{"error":"invalid_grant","error_description":"authentication failure"}`, "invalid_grant: authentication failure"},
		{"object", `{"message":"boom","errorCode":"X"}`, "X: boom"},
		{"text", "Service Unavailable\n", "Service Unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinErrors(parseErrors([]byte(tt.body))); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
	if got := parseErrors(nil); got != nil {
		t.Fatalf("expected nil for empty body, got %v", got)
	}
}
