// Package store persists gitdrop's small amount of local state (the sealed
// GitHub token and its salt) in a key/value metadata table.
//
// Two backends are supported and chosen by DSN:
//   - SQLite (modernc.org/sqlite, pure Go) for a plain file path;
//   - PostgreSQL (pgx stdlib driver) for postgres:// or postgresql:// URLs,
//     which lets several bot processes share one credential.
//
// Schema changes are applied with embedded goose migrations on Open.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"

	"github.com/dmitrijs2005/gitdrop/internal/filex"
	"github.com/dmitrijs2005/gitdrop/internal/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DialectFor picks the backend for dsn.
func DialectFor(dsn string) Dialect {
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

// Store owns the database handle.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Open connects to dsn, runs migrations and returns a ready Store.
func Open(ctx context.Context, dsn string) (*Store, error) {
	dialect := DialectFor(dsn)

	driver := "sqlite"
	if dialect == DialectPostgres {
		driver = "pgx"
	} else if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
		if _, err := filex.EnsureParentDir(dsn); err != nil {
			return nil, fmt.Errorf("db open error: %w", err)
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if dialect == DialectSQLite {
		// SQLite allows a single writer; one connection avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db, dialect: dialect}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	gooseDialect := goose.DialectSQLite3
	if s.dialect == DialectPostgres {
		gooseDialect = goose.DialectPostgres
	}

	fsys, err := fs.Sub(migrations.FS, string(s.dialect))
	if err != nil {
		return err
	}

	provider, err := goose.NewProvider(gooseDialect, s.db, fsys)
	if err != nil {
		return err
	}
	_, err = provider.Up(ctx)
	return err
}

// Dialect reports the backend in use.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Metadata returns a repository bound to the shared connection pool.
func (s *Store) Metadata() MetadataRepository {
	return newMetadataRepository(s.dialect, s.db)
}

// WithTx runs fn with a repository bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise; a panic
// rolls back and is re-raised.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, repo MetadataRepository) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(ctx, newMetadataRepository(s.dialect, tx))
}

func (s *Store) Close() error {
	return s.db.Close()
}

func newMetadataRepository(dialect Dialect, db DBTX) MetadataRepository {
	if dialect == DialectPostgres {
		return NewPostgresRepository(db)
	}
	return NewSQLiteRepository(db)
}
