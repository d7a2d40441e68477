package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/romasdental/clinic-portal/internal/repository"
	"github.com/romasdental/clinic-portal/pkg/metrics"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db      *sqlx.DB
	metrics *metrics.Metrics
}

// NewBaseRepository creates a new base repository. m may be nil.
func NewBaseRepository(db *sqlx.DB, m *metrics.Metrics) BaseRepository {
	return BaseRepository{db: db, metrics: m}
}

// WithTx executes a function within a transaction
func (r *BaseRepository) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *BaseRepository) observe(operation string, start time.Time, err error) {
	r.metrics.ObserveDatabase(operation, start, err)
}

// count runs SELECT COUNT(*) against table.
func (r *BaseRepository) count(ctx context.Context, table string) (int, error) {
	start := time.Now()
	var n int
	err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+table)
	r.observe(table+".count", start, err)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

// execAffecting runs a write and maps zero affected rows to ErrNotFound.
func (r *BaseRepository) execAffecting(ctx context.Context, operation, query string, args ...interface{}) error {
	start := time.Now()
	result, err := r.db.ExecContext(ctx, query, args...)
	if err == nil {
		err = mustAffect(result)
	}
	r.observe(operation, start, ignoreNotFound(err))
	return err
}

func mustAffect(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// notFound maps sql.ErrNoRows to repository.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

func ignoreNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}
