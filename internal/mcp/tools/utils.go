package tools

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ArgumentError reports arguments that passed schema validation but do not
// fit the tool's typed request.
type ArgumentError struct {
	Err error
}

func (e *ArgumentError) Error() string { return "invalid arguments: " + e.Err.Error() }

func (e *ArgumentError) Unwrap() error { return e.Err }

// decodeArgs converts the loosely typed argument bag into T.
func decodeArgs[T any](args map[string]any) (T, error) {
	var out T
	raw, err := json.Marshal(args)
	if err != nil {
		return out, &ArgumentError{Err: err}
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &ArgumentError{Err: err}
	}
	return out, nil
}

func requireUpdates(updates map[string]any) error {
	if len(updates) == 0 {
		return &ArgumentError{Err: errors.New("updates must contain at least one field")}
	}
	return nil
}

// textResult renders v as pretty-printed JSON in a single text block.
func textResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(b)), nil
}
