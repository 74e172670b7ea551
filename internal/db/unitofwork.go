package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/alexanderramin/boardwalk/internal/db"

// DBTX is what repositories run queries against: a *sql.DB for single
// statements or a *sql.Tx inside a unit of work.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// UnitOfWork runs fn inside one transaction. Repositories built from the
// DBTX handed to fn see each other's uncommitted writes; all of them are
// discarded if fn fails or panics.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(database *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: database}
}

// WithinTx traces each transaction as a "db.tx" span that ends with an
// error status on rollback.
func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) (err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "db.tx")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "rolled back")
		}
		span.End()
	}()

	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	done := false
	defer func() {
		if !done {
			_ = tx.Rollback()
		}
	}()

	if err = fn(ctx, tx); err != nil {
		done = true
		return rollback(tx, err)
	}
	done = true
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// rollback aborts tx after cause. A failed rollback is joined onto cause.
func rollback(tx *sql.Tx, cause error) error {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return errors.Join(cause, fmt.Errorf("rolling back: %w", err))
	}
	return cause
}
