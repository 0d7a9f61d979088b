package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/apperr"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
	"github.com/shopspring/decimal"
)

const walletColumns = `id, user_id, balance_sats, balance_kes, pending_balance_sats, version, created_at, updated_at`

// WalletRepository stores wallets. Balance updates are single conditional
// statements so a row can never be driven below zero.
type WalletRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewWalletRepository(db *sqlx.DB, txGetter TxGetter) *WalletRepository {
	return &WalletRepository{db: db, txGetter: txGetter}
}

// Create opens an empty wallet for userID.
func (r *WalletRepository) Create(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	query := `INSERT INTO wallets (user_id) VALUES ($1) RETURNING ` + walletColumns
	return r.get(ctx, query, userID)
}

// GetByUserID returns the wallet of userID.
func (r *WalletRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1`
	w, err := r.get(ctx, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	return w, err
}

// LockByUserID returns the wallet of userID holding a row lock until the transaction ends.
func (r *WalletRepository) LockByUserID(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 FOR UPDATE`
	w, err := r.get(ctx, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	return w, err
}

// AddSats adds delta to a sats bucket. It returns sql.ErrNoRows when the
// wallet is missing or the bucket would go negative.
func (r *WalletRepository) AddSats(ctx context.Context, userID uuid.UUID, bucket models.Currency, delta int64) (*models.Wallet, error) {
	col, err := satsColumn(bucket)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		UPDATE wallets
		SET %[1]s = %[1]s + $2, version = version + 1, updated_at = NOW()
		WHERE user_id = $1 AND %[1]s + $2 >= 0
		RETURNING `+walletColumns, col)
	return r.get(ctx, query, userID, delta)
}

// AddKES adds delta to the pending M-Pesa balance with the same guarantees as AddSats.
func (r *WalletRepository) AddKES(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) (*models.Wallet, error) {
	query := `
		UPDATE wallets
		SET balance_kes = balance_kes + $2::numeric, version = version + 1, updated_at = NOW()
		WHERE user_id = $1 AND balance_kes + $2::numeric >= 0
		RETURNING ` + walletColumns
	return r.get(ctx, query, userID, delta)
}

// MoveSats moves amount between two sats buckets in one statement.
func (r *WalletRepository) MoveSats(ctx context.Context, userID uuid.UUID, from, to models.Currency, amount int64) (*models.Wallet, error) {
	src, err := satsColumn(from)
	if err != nil {
		return nil, err
	}
	dst, err := satsColumn(to)
	if err != nil {
		return nil, err
	}
	if src == dst {
		return nil, fmt.Errorf("move within %s: %w", src, apperr.ErrValidation)
	}
	query := fmt.Sprintf(`
		UPDATE wallets
		SET %[1]s = %[1]s - $2, %[2]s = %[2]s + $2, version = version + 1, updated_at = NOW()
		WHERE user_id = $1 AND %[1]s >= $2
		RETURNING `+walletColumns, src, dst)
	return r.get(ctx, query, userID, amount)
}

func (r *WalletRepository) get(ctx context.Context, query string, args ...any) (*models.Wallet, error) {
	var w models.Wallet
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &w, query, args...)

	logQuery(ctx, query, args, w, err)

	if err != nil {
		return nil, err
	}
	return &w, nil
}

func satsColumn(c models.Currency) (string, error) {
	switch c {
	case models.CurrencySats:
		return "balance_sats", nil
	case models.CurrencySatsInFlight:
		return "pending_balance_sats", nil
	}
	return "", fmt.Errorf("currency %q is not a sats bucket: %w", c, apperr.ErrValidation)
}
