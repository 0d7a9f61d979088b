package services

//go:generate mockgen -source=ledger.go -destination=ledger_mock.go -package=services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/apperr"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/logger"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
	"github.com/shopspring/decimal"
)

// WalletStore persists wallet balances.
type WalletStore interface {
	Create(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)                                           // Opens a zero-balance wallet
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)                                      // Reads a wallet
	LockByUserID(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)                                     // Reads a wallet under a row lock
	AddSats(ctx context.Context, userID uuid.UUID, bucket models.Currency, delta int64) (*models.Wallet, error)     // Adjusts a sats bucket
	AddKES(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) (*models.Wallet, error)                    // Adjusts the KES bucket
	MoveSats(ctx context.Context, userID uuid.UUID, from, to models.Currency, amount int64) (*models.Wallet, error) // Moves sats between buckets
}

// LedgerRef identifies who changed a balance and why.
type LedgerRef struct {
	Actor     string // Audit actor
	Reference string // Transaction id or other external reference
}

// LedgerService applies balance changes. Each change is atomic and audited.
type LedgerService struct {
	tx      Transactor
	wallets WalletStore
	audit   AuditWriter
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(tx Transactor, wallets WalletStore, audit AuditWriter) *LedgerService {
	return &LedgerService{
		tx:      tx,
		wallets: wallets,
		audit:   audit,
	}
}

// Open creates the user's wallet with zero balances.
func (s *LedgerService) Open(ctx context.Context, userID uuid.UUID, ref LedgerRef) (*models.Wallet, error) {
	var w *models.Wallet
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if w, err = s.wallets.Create(ctx, userID); err != nil {
			return err
		}
		return recordAudit(ctx, s.audit, ref.Actor, "wallet.open", models.EntityWallet, w.ID.String(), ref.Reference, nil, w)
	})
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to open wallet", "userID", userID, "error", err)
		return nil, err
	}
	return w, nil
}

// Credit adds amount to the currency bucket.
func (s *LedgerService) Credit(ctx context.Context, userID uuid.UUID, currency models.Currency, amount decimal.Decimal, ref LedgerRef) (*models.Wallet, error) {
	return s.apply(ctx, userID, currency, amount, "ledger.credit", ref)
}

// Debit subtracts amount from the currency bucket. It fails with
// apperr.ErrInsufficientFunds rather than letting a balance go negative.
func (s *LedgerService) Debit(ctx context.Context, userID uuid.UUID, currency models.Currency, amount decimal.Decimal, ref LedgerRef) (*models.Wallet, error) {
	return s.apply(ctx, userID, currency, amount.Neg(), "ledger.debit", ref)
}

// Move transfers sats between two sats buckets.
func (s *LedgerService) Move(ctx context.Context, userID uuid.UUID, from, to models.Currency, sats int64, ref LedgerRef) (*models.Wallet, error) {
	if sats <= 0 {
		return nil, apperr.ErrInvalidAmount
	}

	var w *models.Wallet
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		w, err = s.wallets.MoveSats(ctx, userID, from, to, sats)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.ErrInsufficientFunds
		}
		if err != nil {
			return err
		}

		before := *w
		before.Version--
		shiftSats(&before, from, sats)
		shiftSats(&before, to, -sats)

		action := fmt.Sprintf("ledger.move:%s>%s", from, to)
		return recordAudit(ctx, s.audit, ref.Actor, action, models.EntityWallet, w.ID.String(), ref.Reference, before, w)
	})
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to move funds", "userID", userID, "from", from, "to", to, "sats", sats, "error", err)
		return nil, err
	}
	return w, nil
}

// Lock takes the wallet row lock for the rest of the surrounding transaction.
func (s *LedgerService) Lock(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	return s.wallets.LockByUserID(ctx, userID)
}

// Balance returns the user's current wallet.
func (s *LedgerService) Balance(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	w, err := s.wallets.GetByUserID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to get wallet", "userID", userID, "error", err)
		return nil, err
	}
	return w, nil
}

func (s *LedgerService) apply(ctx context.Context, userID uuid.UUID, currency models.Currency, delta decimal.Decimal, action string, ref LedgerRef) (*models.Wallet, error) {
	if err := validateAmount(currency, delta.Abs()); err != nil {
		return nil, err
	}

	var w *models.Wallet
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if currency == models.CurrencyKES {
			w, err = s.wallets.AddKES(ctx, userID, delta)
		} else {
			w, err = s.wallets.AddSats(ctx, userID, currency, delta.IntPart())
		}
		if errors.Is(err, sql.ErrNoRows) {
			if delta.IsNegative() {
				return apperr.ErrInsufficientFunds
			}
			return apperr.ErrNotFound
		}
		if err != nil {
			return err
		}

		before := *w
		before.Version--
		if currency == models.CurrencyKES {
			before.BalanceKES = w.BalanceKES.Sub(delta)
		} else {
			shiftSats(&before, currency, -delta.IntPart())
		}

		return recordAudit(ctx, s.audit, ref.Actor, action+":"+string(currency), models.EntityWallet, w.ID.String(), ref.Reference, before, w)
	})
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to apply ledger entry", "userID", userID, "currency", currency, "delta", delta, "error", err)
		return nil, err
	}
	return w, nil
}

func validateAmount(currency models.Currency, amount decimal.Decimal) error {
	switch currency {
	case models.CurrencyKES:
		if !models.ValidKES(amount) {
			return apperr.ErrInvalidAmount
		}
	case models.CurrencySats, models.CurrencySatsInFlight:
		if !amount.IsPositive() || !amount.IsInteger() {
			return apperr.ErrInvalidAmount
		}
	default:
		return fmt.Errorf("unknown currency %q: %w", currency, apperr.ErrValidation)
	}
	return nil
}

func shiftSats(w *models.Wallet, bucket models.Currency, delta int64) {
	switch bucket {
	case models.CurrencySats:
		w.BalanceSats += delta
	case models.CurrencySatsInFlight:
		w.InFlightSats += delta
	}
}
