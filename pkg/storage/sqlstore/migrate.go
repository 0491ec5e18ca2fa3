package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// ErrMigrateInTx is returned when Migrate is called on a transactional handle.
var ErrMigrateInTx = errors.New("migrations cannot run inside a transaction")

// Migrate applies the goose migrations for the store's dialect. fsys must
// contain one directory per dialect, under migrations/postgres and
// migrations/sqlite.
func (s *Store) Migrate(ctx context.Context, fsys fs.FS) error {
	db := s.SQLDB()
	if db == nil {
		return fmt.Errorf("could not migrate: %w", ErrMigrateInTx)
	}

	dir := "migrations/postgres"
	gooseDialect := "postgres"
	if s.Dialect == DialectSQLite {
		dir = "migrations/sqlite"
		gooseDialect = "sqlite3"
	}

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("could not set goose dialect to %s: %w", gooseDialect, err)
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("could not apply migrations: %w", err)
	}

	return nil
}
