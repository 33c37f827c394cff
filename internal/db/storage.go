package db

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// AuditLog persists tool invocations.
type AuditLog struct {
	db *bun.DB
	// Retain caps the number of stored rows; zero keeps everything.
	Retain int
}

func NewAuditLog(database *Database, opts ...func(*AuditLog)) *AuditLog {
	a := &AuditLog{db: database.Bun()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func WithRetain(n int) func(*AuditLog) {
	return func(a *AuditLog) { a.Retain = n }
}

func (a *AuditLog) Record(ctx context.Context, inv *ToolInvocation) error {
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}
	if _, err := a.db.NewInsert().Model(inv).Exec(ctx); err != nil {
		return err
	}
	if a.Retain <= 0 {
		return nil
	}
	_, err := a.db.NewDelete().
		Model((*ToolInvocation)(nil)).
		Where("id IN (SELECT id FROM tool_invocations ORDER BY created_at DESC, id DESC OFFSET ?)", a.Retain).
		Exec(ctx)
	return err
}

// Recent returns the newest invocations first.
func (a *AuditLog) Recent(ctx context.Context, limit int) ([]ToolInvocation, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []ToolInvocation
	err := a.db.NewSelect().
		Model(&rows).
		OrderExpr("created_at DESC, id DESC").
		Limit(limit).
		Scan(ctx)
	return rows, err
}

type StatusCount struct {
	Tool   string `bun:"tool"`
	Status string `bun:"status"`
	Count  int    `bun:"count"`
}

func (a *AuditLog) CountByStatus(ctx context.Context, since time.Time) ([]StatusCount, error) {
	var rows []StatusCount
	err := a.db.NewSelect().
		Model((*ToolInvocation)(nil)).
		Column("tool", "status").
		ColumnExpr("count(*) AS count").
		Where("created_at >= ?", since).
		Group("tool", "status").
		OrderExpr("tool, status").
		Scan(ctx, &rows)
	return rows, err
}
