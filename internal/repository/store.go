package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a query resolves to no live record.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
var ErrDuplicate = errors.New("duplicate record")

// liveCards is the soft-delete predicate. Every query that reads debit cards
// must apply it so tombstoned cards behave as if they did not exist.
const liveCards = "deleted_at IS NULL"

// DBTX abstracts *sql.DB and *sql.Tx so repository methods run unchanged
// inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repository provides database operations
type Repository struct {
	db   DBTX
	pool *sql.DB // nil when bound to a transaction
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, pool: db}
}

// WithinTx runs fn against a store bound to a single database transaction.
// The transaction commits when fn returns nil and rolls back otherwise, so a
// read-validate-write sequence executes as one atomic unit.
func (r *Repository) WithinTx(ctx context.Context, fn func(Store) error) error {
	if r.pool == nil {
		// Already inside a transaction.
		return fn(r)
	}
	tx, err := r.pool.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(&Repository{db: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// translateErr maps driver errors onto repository sentinels.
func translateErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}
