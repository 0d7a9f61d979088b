package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/apperr"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/dbx"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
	"github.com/shopspring/decimal"
)

const transactionColumns = `id, user_id, type, status, amount_kes, amount_sats, exchange_rate,
	fee_kes, fee_sats, correlation_key, mpesa_receipt, lightning_invoice, lightning_preimage,
	phone_number, failure_reason, metadata, created_at, updated_at, completed_at`

// TransactionRepository stores ledger transactions. Rows are never deleted.
type TransactionRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewTransactionRepository(db *sqlx.DB, txGetter TxGetter) *TransactionRepository {
	return &TransactionRepository{db: db, txGetter: txGetter}
}

// Create inserts t. A reused correlation key yields apperr.ErrDuplicateCorrelation.
func (r *TransactionRepository) Create(ctx context.Context, t *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, type, status, amount_kes, amount_sats, exchange_rate,
			fee_kes, fee_sats, correlation_key, lightning_invoice, phone_number, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at`

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if len(t.Metadata) == 0 {
		t.Metadata = types.JSONText(`{}`)
	}

	args := []any{t.ID, t.UserID, t.Type, t.Status, t.AmountKES, t.AmountSats, t.ExchangeRate,
		t.FeeKES, t.FeeSats, t.CorrelationKey, t.LightningInvoice, t.PhoneNumber, t.Metadata}
	row := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...)
	err := row.Scan(&t.CreatedAt, &t.UpdatedAt)

	logQuery(ctx, query, args, t.ID, err)

	if dbx.IsUniqueViolation(err) {
		return apperr.ErrDuplicateCorrelation
	}
	return err
}

// GetByID returns the transaction with id.
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	return r.get(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
}

// LockByID returns the transaction with id under a row lock.
func (r *TransactionRepository) LockByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	return r.get(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1 FOR UPDATE`, id)
}

// GetByCorrelationKey returns the transaction matched by a provider reference.
func (r *TransactionRepository) GetByCorrelationKey(ctx context.Context, key string) (*models.Transaction, error) {
	return r.get(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE correlation_key = $1`, key)
}

// Update persists the mutable fields of t.
func (r *TransactionRepository) Update(ctx context.Context, t *models.Transaction) error {
	query := `
		UPDATE transactions
		SET status = $2, correlation_key = $3, mpesa_receipt = $4, lightning_invoice = $5,
			lightning_preimage = $6, failure_reason = $7, completed_at = $8, metadata = $9,
			fee_sats = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	if len(t.Metadata) == 0 {
		t.Metadata = types.JSONText(`{}`)
	}

	args := []any{t.ID, t.Status, t.CorrelationKey, t.MpesaReceipt, t.LightningInvoice,
		t.LightningPreimage, t.FailureReason, t.CompletedAt, t.Metadata, t.FeeSats}
	err := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...).Scan(&t.UpdatedAt)

	logQuery(ctx, query, args, t.Status, err)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return apperr.ErrNotFound
	case dbx.IsUniqueViolation(err):
		return apperr.ErrDuplicateCorrelation
	}
	return err
}

// SumKESSince totals the KES amounts of the user's live or completed transactions created at or after since.
func (r *TransactionRepository) SumKESSince(ctx context.Context, userID uuid.UUID, since time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount_kes), 0)
		FROM transactions
		WHERE user_id = $1
		  AND created_at >= $2
		  AND status IN ('pending', 'processing', 'completed')`

	var total decimal.Decimal
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &total, query, userID, since)

	logQuery(ctx, query, []any{userID, since}, total, err)

	return total, err
}

// ListByUser returns the user's transactions, newest first.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	txs := []models.Transaction{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &txs, query, userID, limit, offset)

	logQuery(ctx, query, []any{userID, limit, offset}, len(txs), err)

	return txs, err
}

// ListStalePending returns ids of pending transactions created before cutoff, oldest first.
func (r *TransactionRepository) ListStalePending(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	query := `
		SELECT id
		FROM transactions
		WHERE status = 'pending' AND created_at < $1
		ORDER BY created_at
		LIMIT $2`

	ids := []uuid.UUID{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &ids, query, cutoff, limit)

	logQuery(ctx, query, []any{cutoff, limit}, len(ids), err)

	return ids, err
}

// ListStuckProcessing returns ids of processing transactions not updated since cutoff, oldest first.
func (r *TransactionRepository) ListStuckProcessing(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	query := `
		SELECT id
		FROM transactions
		WHERE status = 'processing' AND updated_at < $1
		ORDER BY updated_at
		LIMIT $2`

	ids := []uuid.UUID{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &ids, query, cutoff, limit)

	logQuery(ctx, query, []any{cutoff, limit}, len(ids), err)

	return ids, err
}

func (r *TransactionRepository) get(ctx context.Context, query string, args ...any) (*models.Transaction, error) {
	var t models.Transaction
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &t, query, args...)

	logQuery(ctx, query, args, t.Status, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
