package dbmigrate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// Manager applies and rolls back the audit log schema.
type Manager struct {
	migrator *migrate.Migrator
}

func NewManagerWithFS(db *bun.DB, fsys fs.FS) (*Manager, error) {
	if db == nil {
		return nil, errors.New("database is required")
	}
	if fsys == nil {
		return nil, errors.New("migrations filesystem is required")
	}

	migrations := migrate.NewMigrations()
	if err := migrations.Discover(fsys); err != nil {
		return nil, fmt.Errorf("discover migrations: %w", err)
	}
	return &Manager{migrator: migrate.NewMigrator(db, migrations)}, nil
}

// NewManager loads migrations from dir instead of the bundled set.
func NewManager(db *bun.DB, dir string) (*Manager, error) {
	if dir == "" {
		return nil, errors.New("migrations directory is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve migrations dir: %w", err)
	}
	return NewManagerWithFS(db, os.DirFS(abs))
}

func (m *Manager) Init(ctx context.Context) error {
	return m.migrator.Init(ctx)
}

// Version is one migration as name_comment together with its state.
type Version struct {
	Name    string
	Applied bool
}

func (m *Manager) Status(ctx context.Context) ([]Version, error) {
	ms, err := m.migrator.MigrationsWithStatus(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Version, 0, len(ms))
	for _, mig := range ms {
		out = append(out, Version{Name: mig.Name + "_" + mig.Comment, Applied: mig.IsApplied()})
	}
	return out, nil
}

func (m *Manager) Pending(ctx context.Context) ([]string, error) {
	versions, err := m.Status(ctx)
	if err != nil {
		return nil, err
	}
	var pending []string
	for _, v := range versions {
		if !v.Applied {
			pending = append(pending, v.Name)
		}
	}
	return pending, nil
}

// Up applies every pending migration while holding the migration lock.
func (m *Manager) Up(ctx context.Context) error {
	if err := m.migrator.Lock(ctx); err != nil {
		return err
	}
	defer m.migrator.Unlock(ctx) //nolint:errcheck
	_, err := m.migrator.Migrate(ctx)
	return err
}

// RollbackTarget selects how far Rollback goes. To wins over Steps; a zero
// target rolls back everything that is applied.
type RollbackTarget struct {
	Steps int
	To    string
}

func (m *Manager) Rollback(ctx context.Context, target RollbackTarget) (int, error) {
	ms, err := m.migrator.MigrationsWithStatus(ctx)
	if err != nil {
		return 0, err
	}
	var known, applied []string
	for _, mig := range ms {
		known = append(known, mig.Name)
		if mig.IsApplied() {
			applied = append(applied, mig.Name)
		}
	}
	n, err := rollbackCount(known, applied, target)
	if err != nil {
		return 0, err
	}
	for i := 0; i < n; i++ {
		if _, err := m.migrator.Rollback(ctx); err != nil {
			return i, err
		}
	}
	return n, nil
}

// rollbackCount returns how many applied migrations must be undone. Versions
// sort lexically by their timestamp prefix; To itself stays applied.
func rollbackCount(known, applied []string, target RollbackTarget) (int, error) {
	if target.Steps < 0 {
		return 0, errors.New("steps must be >= 0")
	}
	if target.To != "" {
		if !slices.Contains(known, target.To) {
			return 0, fmt.Errorf("migration %s not found", target.To)
		}
		n := 0
		for _, name := range applied {
			if name > target.To {
				n++
			}
		}
		return n, nil
	}
	if target.Steps == 0 || target.Steps > len(applied) {
		return len(applied), nil
	}
	return target.Steps, nil
}
