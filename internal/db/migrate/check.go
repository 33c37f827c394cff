package dbmigrate

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/uptrace/bun"
)

// EnsureCurrent initializes the migration tables and either applies pending
// migrations or reports them, depending on autoMigrate.
func EnsureCurrent(ctx context.Context, bunDB *bun.DB, fsys fs.FS, autoMigrate bool) error {
	manager, err := NewManagerWithFS(bunDB, fsys)
	if err != nil {
		return err
	}

	if err := manager.Init(ctx); err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}

	pending, err := manager.Pending(ctx)
	if err != nil {
		return fmt.Errorf("fetch migration status: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	if !autoMigrate {
		return fmt.Errorf("pending migrations: %s. Run 'auditctl migrate up' to apply them", strings.Join(pending, ", "))
	}

	if err := manager.Up(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
