package tools

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/mcp-salesforce/internal/mcp/tools/types"
	"github.com/roivaz/mcp-salesforce/internal/salesforce"
)

// queryResult shapes a search over one sObject type.
func queryResult(res *salesforce.QueryResult, plural, term string) (*mcp.CallToolResult, error) {
	return textResult(types.QueryResponse{
		TotalSize: res.TotalSize,
		Records:   res.Records,
		Message:   fmt.Sprintf("Found %d %s matching %q", res.TotalSize, plural, term),
	})
}

// mutationResult shapes a successful create or update.
func mutationResult(res *salesforce.SaveResult, message string) (*mcp.CallToolResult, error) {
	return textResult(types.MutationResponse{
		Success: true,
		ID:      res.ID,
		Message: message,
	})
}

// recordResult shapes a single-record lookup, placing the record under key.
func recordResult(key string, rec salesforce.Record, message string) (*mcp.CallToolResult, error) {
	return textResult(types.RecordResponse{Key: key, Record: rec, Message: message})
}

func field(rec salesforce.Record, name string) string {
	if v, ok := rec[name]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}

func fullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
