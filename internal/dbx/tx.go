// Package dbx runs repository calls inside serializable database transactions
// carried through context, retrying serialization conflicts with backoff.
package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/apperr"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/logger"
)

const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeUniqueViolation      = "23505"
)

type contextKey struct{}

var txKey = contextKey{}

// WithTx stores a transaction in the context.
func WithTx(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// TxFromContext retrieves the transaction from the context. Returns nil if not present.
func TxFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey).(*sqlx.Tx)
	return tx
}

// Option configures a Transactor.
type Option func(*Transactor)

// WithIsolation overrides the isolation level (serializable by default).
func WithIsolation(level sql.IsolationLevel) Option {
	return func(t *Transactor) {
		t.opts = &sql.TxOptions{Isolation: level}
	}
}

// WithBackOff overrides the retry schedule between conflicting attempts.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(t *Transactor) {
		t.newBackOff = newBackOff
	}
}

// Transactor begins, commits and retries database transactions.
type Transactor struct {
	db         *sqlx.DB
	opts       *sql.TxOptions
	retries    uint64
	newBackOff func() backoff.BackOff
}

// NewTransactor creates a Transactor that retries serialization failures up to retries times.
func NewTransactor(db *sqlx.DB, retries uint64, opts ...Option) *Transactor {
	t := &Transactor{
		db:      db,
		opts:    &sql.TxOptions{Isolation: sql.LevelSerializable},
		retries: retries,
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// WithinTx runs fn inside a transaction. If ctx already carries a transaction,
// fn joins it and the outermost caller owns commit and retry.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if TxFromContext(ctx) != nil {
		return fn(ctx)
	}

	attempt := 0
	op := func() error {
		attempt++
		err := t.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if IsRetryable(err) {
			logger.FromContext(ctx).Warnw("retrying conflicting transaction", "attempt", attempt, "error", err)
			return err
		}
		return backoff.Permanent(err)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(t.newBackOff(), t.retries), ctx)
	err := backoff.Retry(op, b)
	if err != nil && IsRetryable(err) {
		return fmt.Errorf("%w: %v", apperr.ErrPersistence, err)
	}
	return err
}

func (t *Transactor) runOnce(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := t.db.BeginTxx(ctx, t.opts)
	if err != nil {
		return err
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

	return fn(WithTx(ctx, tx))
}

// IsRetryable reports whether err is a serialization failure or deadlock.
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeSerializationFailure || pgErr.Code == codeDeadlockDetected
	}
	return false
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}
