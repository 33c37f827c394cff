package db

import (
	"time"

	"github.com/uptrace/bun"
)

// Invocation statuses stored in tool_invocations.status.
const (
	StatusSuccess       = "success"
	StatusInvalidParams = "invalid_params"
	StatusUnknownTool   = "unknown_tool"
	StatusError         = "error"
)

// ToolInvocation is one dispatched tool call.
type ToolInvocation struct {
	bun.BaseModel `bun:"table:tool_invocations"`

	ID           int64          `bun:"id,pk,autoincrement"`
	Tool         string         `bun:"tool"`
	Status       string         `bun:"status"`
	ErrorCode    *int           `bun:"error_code,nullzero"`
	ErrorMessage *string        `bun:"error_message,nullzero"`
	Arguments    map[string]any `bun:"arguments,type:jsonb"`
	DurationMS   int64          `bun:"duration_ms"`
	CreatedAt    time.Time      `bun:"created_at,nullzero,notnull,default:now()"`
}
