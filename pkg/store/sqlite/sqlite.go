// Package sqlite is the store.Store implementation backed by SQLite.
// Primary entities are queried through go-jet generated builders under
// schema/gen; peripheral configuration and log tables go through
// parameterized database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	_ "github.com/mattn/go-sqlite3"

	"github.com/reelforge/reelforge/pkg/logger"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"

// SQLite is the shared connection used by every repository method in this
// package. mu serializes access for the hand-written query paths, matching
// how busy-timeout contention is handled throughout the reference codebase
// this was grounded on; go-jet paths rely on database/sql's own pooling.
type SQLite struct {
	db *sql.DB
	mu sync.Mutex
}

// New opens (creating if needed) the SQLite database at filePath.
func New(filePath string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", filePath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	return &SQLite{db: db}, nil
}

// Init applies all pending migrations.
func (s *SQLite) Init(ctx context.Context) error {
	return runMigrations(s.db)
}

// WithTx runs fn inside a transaction, committing on success and rolling
// back on error or panic. Repository methods called from fn must use the
// executor returned by rawDB/jetDB for that ctx rather than s.db directly.
func (s *SQLite) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txCtx := withTx(ctx, tx)

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type txKey struct{}

func withTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// queryer abstracts over *sql.DB and *sql.Tx for raw-SQL repositories.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rawDB returns the active transaction if WithTx is in progress, else the pool.
func (s *SQLite) rawDB(ctx context.Context) queryer {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return s.db
}

// jetDB is the same resolution for go-jet statements, which accept the
// narrower qrm.DB interface satisfied by both *sql.DB and *sql.Tx.
func (s *SQLite) jetDB(ctx context.Context) qrm.DB {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return s.db
}

func (s *SQLite) handleStatement(ctx context.Context, stmt sqlite.Statement) (sql.Result, error) {
	log := logger.FromCtx(ctx)

	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		result, err := stmt.ExecContext(ctx, tx)
		if err != nil {
			log.Debugw("statement failed", "query", stmt.DebugSql(), "error", err)
		}
		return result, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	result, err := stmt.ExecContext(ctx, tx)
	if err != nil {
		log.Debugw("statement failed", "query", stmt.DebugSql(), "error", err)
		tx.Rollback()
		return result, err
	}

	return result, tx.Commit()
}
