package services

//go:generate mockgen -source=payments.go -destination=payments_mock.go -package=services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/apperr"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/logger"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
	"github.com/shopspring/decimal"
)

// Payment limits.
var (
	MinDepositKES = decimal.NewFromInt(10)
	MaxDepositKES = decimal.NewFromInt(500_000)
)

const (
	MinWithdrawalSats    = 1_000
	MinInvoiceSats       = 1
	MaxInvoiceSats       = 100_000_000
	MinInvoiceExpiry     = time.Minute
	MaxInvoiceExpiry     = 24 * time.Hour
	DefaultInvoiceExpiry = time.Hour
	DefaultHistoryLimit  = 20
	MaxHistoryLimit      = 100
)

// MpesaGateway initiates M-Pesa collections and payouts.
type MpesaGateway interface {
	STKPush(ctx context.Context, phone string, amountKES decimal.Decimal, reference string) (string, error)    // Prompts the payer, returns the CheckoutRequestID
	B2CPayment(ctx context.Context, phone string, amountKES decimal.Decimal, reference string) (string, error) // Pays out, returns the ConversationID
}

// LightningNode issues, decodes and pays BOLT11 invoices.
type LightningNode interface {
	CreateInvoice(ctx context.Context, sats int64, memo string, expiry time.Duration) (*models.Invoice, error) // Issues an invoice
	DecodeInvoice(ctx context.Context, bolt11 string) (*models.Invoice, error)                                 // Decodes an invoice
	PayInvoice(ctx context.Context, bolt11 string, maxFeeSats int64) (*models.Payment, error)                  // Pays an invoice
}

// RateOracle serves the current BTC/KES rate.
type RateOracle interface {
	Current(ctx context.Context) (*models.ExchangeRate, error) // Newest fresh sample
}

// TransactionManager creates and advances transactions.
type TransactionManager interface {
	Create(ctx context.Context, p CreateParams) (*models.Transaction, error)                                             // Records a pending transaction
	AttachCorrelation(ctx context.Context, id uuid.UUID, p CorrelationParams, actor string) (*models.Transaction, error) // Sets the provider reference
	MarkProcessing(ctx context.Context, id uuid.UUID, actor string) (*models.Transaction, error)                         // Moves to processing
	Fail(ctx context.Context, id uuid.UUID, reason, actor string) (*models.Transaction, error)                           // Fails and refunds
	Get(ctx context.Context, id uuid.UUID) (*models.Transaction, error)                                                  // Reads a transaction
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Transaction, error)                         // Pages a user's history
}

// BalanceReader reads wallet balances.
type BalanceReader interface {
	Balance(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) // Current wallet
}

// LightningSettler applies Lightning payment outcomes.
type LightningSettler interface {
	OnLightningPayment(ctx context.Context, paymentHash, preimage string, feeSats int64) (*models.Transaction, error) // Settles an outbound payment
	OnLightningFailure(ctx context.Context, paymentHash, reason string) (*models.Transaction, error)                  // Fails a payment
}

// WalletBalance is the user-facing view of a wallet.
type WalletBalance struct {
	BitcoinSats        int64           // Confirmed sats
	MpesaKES           decimal.Decimal // KES value of the confirmed sats
	PendingDepositsKES decimal.Decimal // Deposits awaiting M-Pesa confirmation
	PendingWithdrawals int64           // Outbound sats awaiting settlement
	Rate               *models.ExchangeRate
	RateStale          bool
}

// PaymentService runs the user-facing payment flows. Provider calls are made
// outside database transactions and bounded by the provider timeout.
type PaymentService struct {
	machine         TransactionManager
	wallets         BalanceReader
	oracle          RateOracle
	settler         LightningSettler
	mpesa           MpesaGateway
	node            LightningNode
	fees            FeePolicy
	providerTimeout time.Duration
	now             func() time.Time
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	machine TransactionManager,
	wallets BalanceReader,
	oracle RateOracle,
	settler LightningSettler,
	mpesa MpesaGateway,
	node LightningNode,
	fees FeePolicy,
	providerTimeout time.Duration,
	now func() time.Time,
) *PaymentService {
	if now == nil {
		now = time.Now
	}
	return &PaymentService{
		machine:         machine,
		wallets:         wallets,
		oracle:          oracle,
		settler:         settler,
		mpesa:           mpesa,
		node:            node,
		fees:            fees,
		providerTimeout: providerTimeout,
		now:             now,
	}
}

// Deposit prompts the payer with an STK push and records a pending deposit
// that credits sats at the current rate, net of fees, once M-Pesa confirms.
func (s *PaymentService) Deposit(ctx context.Context, userID uuid.UUID, amountKES decimal.Decimal, phone string) (*models.Transaction, error) {
	if !amountKES.IsInteger() || amountKES.LessThan(MinDepositKES) || amountKES.GreaterThan(MaxDepositKES) {
		return nil, apperr.ErrInvalidAmount
	}
	if !ValidPhoneNumber(phone) {
		return nil, apperr.ErrInvalidPhoneNumber
	}

	rate, err := s.oracle.Current(ctx)
	if err != nil {
		return nil, err
	}

	fee := s.fees.DepositFee(amountKES)
	sats := models.KESToSats(amountKES.Sub(fee), rate.BTCKES)
	if sats <= 0 {
		return nil, apperr.ErrInvalidAmount
	}

	t, err := s.machine.Create(ctx, CreateParams{
		UserID:      userID,
		Type:        models.TypeDepositMpesa,
		AmountKES:   amountKES,
		AmountSats:  sats,
		Rate:        rate.BTCKES,
		FeeKES:      fee,
		PhoneNumber: phone,
		Metadata:    map[string]any{"rate_source": rate.Source},
		Actor:       UserActor(userID),
	})
	if err != nil {
		return nil, err
	}

	pctx, cancel := context.WithTimeout(ctx, s.providerTimeout)
	checkoutID, err := s.mpesa.STKPush(pctx, phone, amountKES, t.ID.String())
	cancel()
	if err != nil {
		return s.providerFailed(ctx, t, "stk push", err)
	}

	return s.machine.AttachCorrelation(ctx, t.ID, CorrelationParams{CorrelationKey: checkoutID}, ActorPayments)
}

// Withdraw reserves amountSats plus fees and pays the KES value out over M-Pesa.
func (s *PaymentService) Withdraw(ctx context.Context, userID uuid.UUID, amountSats int64, phone string) (*models.Transaction, error) {
	if amountSats < MinWithdrawalSats {
		return nil, apperr.ErrInvalidAmount
	}
	if !ValidPhoneNumber(phone) {
		return nil, apperr.ErrInvalidPhoneNumber
	}

	rate, err := s.oracle.Current(ctx)
	if err != nil {
		return nil, err
	}

	payout := models.SatsToKES(amountSats, rate.BTCKES).Truncate(0)
	if !payout.IsPositive() {
		return nil, apperr.ErrInvalidAmount
	}
	fee := s.fees.WithdrawalFee(payout)
	feeSats := models.KESToSats(fee, rate.BTCKES)

	t, err := s.machine.Create(ctx, CreateParams{
		UserID:      userID,
		Type:        models.TypeWithdrawalMpesa,
		AmountKES:   payout,
		AmountSats:  amountSats,
		Rate:        rate.BTCKES,
		FeeKES:      fee,
		FeeSats:     feeSats,
		PhoneNumber: phone,
		Metadata:    map[string]any{"rate_source": rate.Source},
		Actor:       UserActor(userID),
	})
	if err != nil {
		return nil, err
	}

	pctx, cancel := context.WithTimeout(ctx, s.providerTimeout)
	conversationID, err := s.mpesa.B2CPayment(pctx, phone, payout, t.ID.String())
	cancel()
	if err != nil {
		return s.providerFailed(ctx, t, "b2c payment", err)
	}

	return s.machine.AttachCorrelation(ctx, t.ID, CorrelationParams{CorrelationKey: conversationID}, ActorPayments)
}

// CreateInvoice issues a Lightning invoice and records a pending receive
// correlated by its payment hash.
func (s *PaymentService) CreateInvoice(ctx context.Context, userID uuid.UUID, sats int64, description string, expiry time.Duration) (*models.Transaction, *models.Invoice, error) {
	if sats < MinInvoiceSats || sats > MaxInvoiceSats {
		return nil, nil, apperr.ErrInvalidAmount
	}
	if expiry == 0 {
		expiry = DefaultInvoiceExpiry
	}
	if expiry < MinInvoiceExpiry || expiry > MaxInvoiceExpiry {
		return nil, nil, fmt.Errorf("invoice expiry must be between %s and %s: %w", MinInvoiceExpiry, MaxInvoiceExpiry, apperr.ErrValidation)
	}

	t, err := s.machine.Create(ctx, CreateParams{
		UserID:     userID,
		Type:       models.TypeLightningReceive,
		AmountSats: sats,
		Rate:       s.optionalRate(ctx),
		Metadata:   map[string]any{"description": description},
		Actor:      UserActor(userID),
	})
	if err != nil {
		return nil, nil, err
	}

	pctx, cancel := context.WithTimeout(ctx, s.providerTimeout)
	inv, err := s.node.CreateInvoice(pctx, sats, description, expiry)
	cancel()
	if err != nil {
		// nobody can pay an invoice that was never returned, so a timeout fails too
		return nil, nil, s.abandon(ctx, t, "create invoice", err)
	}

	t, err = s.machine.AttachCorrelation(ctx, t.ID, CorrelationParams{
		CorrelationKey:   inv.PaymentHash,
		LightningInvoice: inv.PaymentRequest,
	}, ActorPayments)
	if err != nil {
		return nil, nil, err
	}
	return t, inv, nil
}

// PayInvoice reserves the invoice amount plus maxFeeSats and dispatches the
// payment. A synchronous outcome is settled immediately; otherwise the
// transaction stays processing until the node reports back.
func (s *PaymentService) PayInvoice(ctx context.Context, userID uuid.UUID, bolt11 string, maxFeeSats int64) (*models.Transaction, error) {
	if bolt11 == "" {
		return nil, apperr.ErrInvalidInvoice
	}
	if maxFeeSats < 0 {
		return nil, apperr.ErrInvalidAmount
	}

	dctx, cancel := context.WithTimeout(ctx, s.providerTimeout)
	inv, err := s.node.DecodeInvoice(dctx, bolt11)
	cancel()
	if err != nil {
		logger.FromContext(ctx).Warnw("failed to decode invoice", "userID", userID, "error", err)
		return nil, apperr.ErrInvalidInvoice
	}
	if inv.AmountSats <= 0 || inv.PaymentHash == "" || inv.Expired(s.now()) {
		return nil, apperr.ErrInvalidInvoice
	}

	t, err := s.machine.Create(ctx, CreateParams{
		UserID:           userID,
		Type:             models.TypeLightningSend,
		AmountSats:       inv.AmountSats,
		Rate:             s.optionalRate(ctx),
		FeeSats:          maxFeeSats,
		CorrelationKey:   inv.PaymentHash,
		LightningInvoice: bolt11,
		Metadata:         map[string]any{"description": inv.Description},
		Actor:            UserActor(userID),
	})
	if err != nil {
		return nil, err
	}

	if t, err = s.machine.MarkProcessing(ctx, t.ID, ActorPayments); err != nil {
		return nil, err
	}

	pctx, cancel := context.WithTimeout(ctx, s.providerTimeout)
	pay, err := s.node.PayInvoice(pctx, bolt11, maxFeeSats)
	cancel()

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		logger.FromContext(ctx).Warnw("lightning payment still in flight", "transaction_id", t.ID)
		return t, nil
	case err != nil:
		return s.settler.OnLightningFailure(ctx, inv.PaymentHash, err.Error())
	case pay.Status == models.PaymentSucceeded:
		return s.settler.OnLightningPayment(ctx, inv.PaymentHash, pay.Preimage, pay.FeeSats)
	case pay.Status == models.PaymentFailed:
		return s.settler.OnLightningFailure(ctx, inv.PaymentHash, pay.FailureReason)
	}
	return t, nil
}

// Balance returns the user's balances with the KES value of their sats.
func (s *PaymentService) Balance(ctx context.Context, userID uuid.UUID) (*WalletBalance, error) {
	w, err := s.wallets.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}

	b := &WalletBalance{
		BitcoinSats:        w.BalanceSats,
		MpesaKES:           decimal.Zero,
		PendingDepositsKES: w.BalanceKES,
		PendingWithdrawals: w.InFlightSats,
	}

	rate, err := s.oracle.Current(ctx)
	switch {
	case errors.Is(err, apperr.ErrStaleRate):
		b.RateStale = true
	case err != nil:
		return nil, err
	default:
		b.Rate = rate
		b.MpesaKES = models.SatsToKES(w.BalanceSats, rate.BTCKES)
	}
	return b, nil
}

// Transactions returns a page of the user's history. limit defaults to
// DefaultHistoryLimit and may not exceed MaxHistoryLimit.
func (s *PaymentService) Transactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Transaction, error) {
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	if limit < 0 || limit > MaxHistoryLimit || offset < 0 {
		return nil, fmt.Errorf("limit must be 1..%d and offset non-negative: %w", MaxHistoryLimit, apperr.ErrValidation)
	}
	return s.machine.List(ctx, userID, limit, offset)
}

// Transaction returns one of the user's transactions.
func (s *PaymentService) Transaction(ctx context.Context, userID, id uuid.UUID) (*models.Transaction, error) {
	t, err := s.machine.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, apperr.ErrNotFound
	}
	return t, nil
}

// providerFailed leaves a timed out request pending for the expiry sweeper,
// since the provider may still act on it, and fails a rejected one.
func (s *PaymentService) providerFailed(ctx context.Context, t *models.Transaction, call string, err error) (*models.Transaction, error) {
	if errors.Is(err, context.DeadlineExceeded) {
		logger.FromContext(ctx).Warnw("provider call timed out, leaving transaction pending", "call", call, "transaction_id", t.ID)
		return t, nil
	}

	return nil, s.abandon(ctx, t, call, err)
}

// abandon fails t after a provider error and returns the error for the caller.
func (s *PaymentService) abandon(ctx context.Context, t *models.Transaction, call string, err error) error {
	logger.FromContext(ctx).Errorw("provider call failed", "call", call, "transaction_id", t.ID, "error", err)
	if _, ferr := s.machine.Fail(ctx, t.ID, call+": "+err.Error(), ActorPayments); ferr != nil {
		logger.FromContext(ctx).Errorw("failed to fail transaction", "transaction_id", t.ID, "error", ferr)
	}
	return fmt.Errorf("%s: %w", call, apperr.ErrProviderUnavailable)
}

// optionalRate pins the current rate when one is fresh. Lightning flows work
// without it unless a daily ceiling applies.
func (s *PaymentService) optionalRate(ctx context.Context) decimal.Decimal {
	rate, err := s.oracle.Current(ctx)
	if err != nil {
		return decimal.Zero
	}
	return rate.BTCKES
}
