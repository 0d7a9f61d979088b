package services

//go:generate mockgen -source=transactions.go -destination=transactions_mock.go -package=services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/apperr"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/logger"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
	"github.com/shopspring/decimal"
)

// TransactionStore persists transactions.
type TransactionStore interface {
	Create(ctx context.Context, t *models.Transaction) error                                           // Inserts a transaction
	GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)                            // Reads a transaction
	LockByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)                           // Reads a transaction under a row lock
	GetByCorrelationKey(ctx context.Context, key string) (*models.Transaction, error)                  // Finds a transaction by provider reference
	Update(ctx context.Context, t *models.Transaction) error                                           // Persists mutable fields
	SumKESSince(ctx context.Context, userID uuid.UUID, since time.Time) (decimal.Decimal, error)       // Totals KES volume for the tier limits
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Transaction, error) // Pages a user's history
	ListStalePending(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error)            // Finds pending transactions older than cutoff
	ListStuckProcessing(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error)         // Finds processing transactions untouched since cutoff
}

// UserReader reads users.
type UserReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) // Reads a user
}

// Ledger applies audited balance changes.
type Ledger interface {
	Lock(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)                                                                    // Serializes work on a wallet
	Credit(ctx context.Context, userID uuid.UUID, currency models.Currency, amount decimal.Decimal, ref LedgerRef) (*models.Wallet, error) // Adds to a bucket
	Debit(ctx context.Context, userID uuid.UUID, currency models.Currency, amount decimal.Decimal, ref LedgerRef) (*models.Wallet, error)  // Subtracts from a bucket
	Move(ctx context.Context, userID uuid.UUID, from, to models.Currency, sats int64, ref LedgerRef) (*models.Wallet, error)               // Moves sats between buckets
}

// CreateParams describes a new transaction.
type CreateParams struct {
	UserID           uuid.UUID              // Owning user
	Type             models.TransactionType // Movement type
	AmountKES        decimal.Decimal        // Zero when the movement has no KES leg
	AmountSats       int64                  // Zero when the movement has no sats leg
	Rate             decimal.Decimal        // Zero when no rate was pinned
	FeeKES           decimal.Decimal        // Fee in KES
	FeeSats          int64                  // Fee in sats, reserved with outbound amounts
	CorrelationKey   string                 // Known provider reference, if any
	LightningInvoice string                 // BOLT11 invoice, if any
	PhoneNumber      string                 // M-Pesa counterparty, if any
	Metadata         map[string]any         // Free-form metadata
	Actor            string                 // Audit actor
}

// CorrelationParams records a provider's acknowledgement of a transaction.
type CorrelationParams struct {
	CorrelationKey   string // Provider reference used to match the settlement
	LightningInvoice string // BOLT11 invoice issued for a receive
}

// TransactionService owns the transaction lifecycle. Every transition and its
// balance effects commit together in one database transaction.
type TransactionService struct {
	tx       Transactor
	store    TransactionStore
	users    UserReader
	ledger   Ledger
	audit    AuditWriter
	kafka    KafkaWriter
	limits   models.TierLimits
	monthly  models.TierLimits
	recon    ReconciliationPusher
	monitor  Monitoring
	location *time.Location
	now      func() time.Time
}

// TransactionOpt configures a TransactionService.
type TransactionOpt func(*TransactionService)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) TransactionOpt {
	return func(s *TransactionService) {
		s.now = now
	}
}

// WithMonthlyLimits adds per-tier ceilings on KES volume since the first of the local month.
func WithMonthlyLimits(limits models.TierLimits) TransactionOpt {
	return func(s *TransactionService) {
		s.monthly = limits
	}
}

// WithMonitoring queues a review item for every new transaction whose KES
// value trips one of m's thresholds.
func WithMonitoring(recon ReconciliationPusher, m Monitoring) TransactionOpt {
	return func(s *TransactionService) {
		s.recon = recon
		s.monitor = m
	}
}

// WithLocation sets the zone whose calendar resets the daily and monthly limits.
func WithLocation(loc *time.Location) TransactionOpt {
	return func(s *TransactionService) {
		s.location = loc
	}
}

// Nairobi is East Africa Time, which has no daylight saving.
var Nairobi = time.FixedZone("EAT", 3*60*60)

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	tx Transactor,
	store TransactionStore,
	users UserReader,
	ledger Ledger,
	audit AuditWriter,
	kafka KafkaWriter,
	limits models.TierLimits,
	opts ...TransactionOpt,
) *TransactionService {
	s := &TransactionService{
		tx:       tx,
		store:    store,
		users:    users,
		ledger:   ledger,
		audit:    audit,
		kafka:    kafka,
		limits:   limits,
		location: Nairobi,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create records a pending transaction. Outbound transactions reserve their
// amount and fee in the in-flight bucket in the same commit, so a wallet that
// cannot cover them leaves no transaction behind.
func (s *TransactionService) Create(ctx context.Context, p CreateParams) (*models.Transaction, error) {
	t, err := s.build(p)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.ledger.Lock(ctx, p.UserID); err != nil {
			return err
		}
		if err := s.checkLimits(ctx, t); err != nil {
			return err
		}
		if err := s.store.Create(ctx, t); err != nil {
			return err
		}
		if t.Type.Outbound() {
			ref := LedgerRef{Actor: p.Actor, Reference: t.ID.String()}
			if _, err := s.ledger.Move(ctx, t.UserID, models.CurrencySats, models.CurrencySatsInFlight, t.Reserved(), ref); err != nil {
				return err
			}
		}
		return recordAudit(ctx, s.audit, p.Actor, "transaction.create", models.EntityTransaction, t.ID.String(), t.ID.String(), nil, t)
	})
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to create transaction", "userID", p.UserID, "type", p.Type, "error", err)
		return nil, err
	}

	publishTransaction(ctx, s.kafka, t, s.now())
	s.review(ctx, t)
	return t, nil
}

// AttachCorrelation sets the provider reference once and moves a pending
// transaction to processing. Repeating it with the same reference is a no-op.
func (s *TransactionService) AttachCorrelation(ctx context.Context, id uuid.UUID, p CorrelationParams, actor string) (*models.Transaction, error) {
	if p.CorrelationKey == "" {
		return nil, fmt.Errorf("correlation key required: %w", apperr.ErrValidation)
	}

	return s.transition(ctx, id, "transaction.correlate", actor, func(ctx context.Context, t *models.Transaction) (bool, error) {
		if t.CorrelationKey != nil {
			if *t.CorrelationKey != p.CorrelationKey {
				return false, apperr.ErrDuplicateCorrelation
			}
			if t.Status != models.StatusPending {
				return false, nil
			}
		}
		if t.Status.Terminal() {
			return false, apperr.ErrTerminalStateViolation
		}
		if t.Status != models.StatusPending {
			return false, apperr.ErrInvalidTransition
		}

		t.CorrelationKey = &p.CorrelationKey
		if p.LightningInvoice != "" {
			t.LightningInvoice = &p.LightningInvoice
		}
		return true, s.toProcessing(ctx, t, actor)
	})
}

// MarkProcessing moves a pending transaction to processing.
func (s *TransactionService) MarkProcessing(ctx context.Context, id uuid.UUID, actor string) (*models.Transaction, error) {
	return s.transition(ctx, id, "transaction.processing", actor, func(ctx context.Context, t *models.Transaction) (bool, error) {
		switch t.Status {
		case models.StatusProcessing:
			return false, nil
		case models.StatusCompleted, models.StatusRefunded:
			return false, apperr.ErrTerminalStateViolation
		case models.StatusFailed:
			return false, apperr.ErrInvalidTransition
		}
		return true, s.toProcessing(ctx, t, actor)
	})
}

// Complete settles a processing transaction against proof. Completing an
// already completed transaction succeeds without effect.
func (s *TransactionService) Complete(ctx context.Context, id uuid.UUID, proof models.SettlementProof, actor string) (*models.Transaction, error) {
	return s.transition(ctx, id, "transaction.complete", actor, func(ctx context.Context, t *models.Transaction) (bool, error) {
		switch t.Status {
		case models.StatusCompleted:
			return false, nil
		case models.StatusRefunded:
			return false, apperr.ErrTerminalStateViolation
		case models.StatusPending, models.StatusFailed:
			return false, apperr.ErrInvalidTransition
		}
		return true, s.toCompleted(ctx, t, proof, actor)
	})
}

// Settle completes a transaction, advancing it through processing first when
// the provider confirms before the engine recorded the acknowledgement.
func (s *TransactionService) Settle(ctx context.Context, id uuid.UUID, proof models.SettlementProof, actor string) (*models.Transaction, error) {
	return s.transition(ctx, id, "transaction.complete", actor, func(ctx context.Context, t *models.Transaction) (bool, error) {
		switch t.Status {
		case models.StatusCompleted:
			return false, nil
		case models.StatusRefunded:
			return false, apperr.ErrTerminalStateViolation
		case models.StatusFailed:
			return false, apperr.ErrInvalidTransition
		case models.StatusPending:
			if err := s.toProcessing(ctx, t, actor); err != nil {
				return false, err
			}
		}
		return true, s.toCompleted(ctx, t, proof, actor)
	})
}

// Fail ends a pending or processing transaction. Reserved funds are returned
// and the transaction ends refunded. Failing a failed or refunded transaction
// succeeds without effect.
func (s *TransactionService) Fail(ctx context.Context, id uuid.UUID, reason, actor string) (*models.Transaction, error) {
	return s.transition(ctx, id, "transaction.fail", actor, func(ctx context.Context, t *models.Transaction) (bool, error) {
		switch t.Status {
		case models.StatusFailed, models.StatusRefunded:
			return false, nil
		case models.StatusCompleted:
			return false, apperr.ErrTerminalStateViolation
		}
		return true, s.toFailed(ctx, t, reason, actor)
	})
}

// ExpireStale fails pending transactions older than maxAge. It returns how many were failed.
func (s *TransactionService) ExpireStale(ctx context.Context, maxAge time.Duration, limit int) (int, error) {
	cutoff := s.now().Add(-maxAge)
	ids, err := s.store.ListStalePending(ctx, cutoff, limit)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to list stale transactions", "cutoff", cutoff, "error", err)
		return 0, err
	}

	expired := 0
	for _, id := range ids {
		changed := false
		_, err := s.transition(ctx, id, "transaction.expire", ActorExpiry, func(ctx context.Context, t *models.Transaction) (bool, error) {
			if changed = t.Status == models.StatusPending; !changed {
				return false, nil
			}
			return true, s.toFailed(ctx, t, "expired waiting for provider", ActorExpiry)
		})
		if err != nil {
			logger.FromContext(ctx).Errorw("failed to expire transaction", "transaction_id", id, "error", err)
			continue
		}
		if changed {
			expired++
		}
	}
	return expired, nil
}

// FlagStuckProcessing queues processing transactions untouched for maxAge for
// an operator. A provider confirmation that lands before its correlation key
// is recorded leaves a transaction here. Flagging stamps the transaction, so
// one that stays stuck is raised again only after another maxAge.
func (s *TransactionService) FlagStuckProcessing(ctx context.Context, maxAge time.Duration, limit int) (int, error) {
	cutoff := s.now().Add(-maxAge)
	ids, err := s.store.ListStuckProcessing(ctx, cutoff, limit)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to list stuck transactions", "cutoff", cutoff, "error", err)
		return 0, err
	}

	flagged := 0
	for _, id := range ids {
		changed := false
		t, err := s.transition(ctx, id, "transaction.flag_stuck", ActorExpiry, func(ctx context.Context, t *models.Transaction) (bool, error) {
			if changed = t.Status == models.StatusProcessing; !changed {
				return false, nil
			}
			return true, setMetadata(t, "stuck_flagged_at", s.now().UTC().Format(time.RFC3339))
		})
		if err != nil {
			logger.FromContext(ctx).Errorw("failed to flag stuck transaction", "transaction_id", id, "error", err)
			continue
		}
		if changed {
			s.flagStuck(ctx, t, maxAge)
			flagged++
		}
	}
	return flagged, nil
}

func (s *TransactionService) flagStuck(ctx context.Context, t *models.Transaction, maxAge time.Duration) {
	key := t.ID.String()
	if t.CorrelationKey != nil {
		key = *t.CorrelationKey
	}
	reason := "processing for over " + maxAge.String() + " without a settlement"
	logger.FromContext(ctx).Warnw("transaction stuck in processing", "transaction_id", t.ID, "correlation_key", key, "max_age", maxAge)

	if s.recon == nil {
		return
	}
	payload, _ := json.Marshal(t)
	item := models.ReconciliationItem{
		Kind:           models.ReconStuckProcessing,
		Source:         "sweeper",
		CorrelationKey: key,
		Reason:         reason,
		Payload:        string(payload),
		CreatedAt:      s.now(),
	}
	if err := s.recon.Push(ctx, item); err != nil {
		logger.FromContext(ctx).Errorw("failed to queue reconciliation item", "kind", item.Kind, "transaction_id", t.ID, "error", err)
	}
}

func setMetadata(t *models.Transaction, key string, value any) error {
	fields := map[string]any{}
	if len(t.Metadata) > 0 {
		if err := json.Unmarshal(t.Metadata, &fields); err != nil {
			return fmt.Errorf("decode metadata: %w", err)
		}
	}
	fields[key] = value
	data, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	t.Metadata = types.JSONText(data)
	return nil
}

// Get returns a transaction by id.
func (s *TransactionService) Get(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	return s.store.GetByID(ctx, id)
}

// GetByCorrelationKey returns the transaction matched by a provider reference.
func (s *TransactionService) GetByCorrelationKey(ctx context.Context, key string) (*models.Transaction, error) {
	return s.store.GetByCorrelationKey(ctx, key)
}

// List returns a page of the user's transactions, newest first.
func (s *TransactionService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Transaction, error) {
	return s.store.ListByUser(ctx, userID, limit, offset)
}

type transitionFunc func(ctx context.Context, t *models.Transaction) (changed bool, err error)

// transition locks the transaction, applies fn and persists the result. The
// event is published only after the commit succeeds.
func (s *TransactionService) transition(ctx context.Context, id uuid.UUID, action, actor string, fn transitionFunc) (*models.Transaction, error) {
	var (
		t       *models.Transaction
		changed bool
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if t, err = s.store.LockByID(ctx, id); err != nil {
			return err
		}
		before := *t

		if changed, err = fn(ctx, t); err != nil || !changed {
			return err
		}
		if err := s.store.Update(ctx, t); err != nil {
			return err
		}
		return recordAudit(ctx, s.audit, actor, action, models.EntityTransaction, t.ID.String(), t.ID.String(), before, t)
	})
	if err != nil {
		logger.FromContext(ctx).Errorw("transaction transition rejected", "transaction_id", id, "action", action, "error", err)
		return nil, err
	}

	if changed {
		publishTransaction(ctx, s.kafka, t, s.now())
	}
	return t, nil
}

// toProcessing marks a pending deposit's shillings as awaiting settlement.
func (s *TransactionService) toProcessing(ctx context.Context, t *models.Transaction, actor string) error {
	if t.Type == models.TypeDepositMpesa && t.AmountKES.Valid {
		ref := LedgerRef{Actor: actor, Reference: t.ID.String()}
		if _, err := s.ledger.Credit(ctx, t.UserID, models.CurrencyKES, t.AmountKES.Decimal, ref); err != nil {
			return err
		}
	}
	t.Status = models.StatusProcessing
	return nil
}

func (s *TransactionService) toCompleted(ctx context.Context, t *models.Transaction, proof models.SettlementProof, actor string) error {
	ref := LedgerRef{Actor: actor, Reference: t.ID.String()}

	switch t.Type {
	case models.TypeDepositMpesa:
		if t.AmountKES.Valid {
			if _, err := s.ledger.Debit(ctx, t.UserID, models.CurrencyKES, t.AmountKES.Decimal, ref); err != nil {
				return err
			}
		}
		if t.Sats() > 0 {
			if _, err := s.ledger.Credit(ctx, t.UserID, models.CurrencySats, decimal.NewFromInt(t.Sats()), ref); err != nil {
				return err
			}
		}
	case models.TypeLightningReceive:
		if _, err := s.ledger.Credit(ctx, t.UserID, models.CurrencySats, decimal.NewFromInt(t.Sats()), ref); err != nil {
			return err
		}
	case models.TypeWithdrawalMpesa, models.TypeLightningSend:
		reserved := t.Reserved()
		if proof.FeeSats != nil && *proof.FeeSats >= 0 && *proof.FeeSats < t.FeeSats {
			unused := t.FeeSats - *proof.FeeSats
			if _, err := s.ledger.Move(ctx, t.UserID, models.CurrencySatsInFlight, models.CurrencySats, unused, ref); err != nil {
				return err
			}
			reserved -= unused
			t.FeeSats = *proof.FeeSats
		}
		if reserved > 0 {
			if _, err := s.ledger.Debit(ctx, t.UserID, models.CurrencySatsInFlight, decimal.NewFromInt(reserved), ref); err != nil {
				return err
			}
		}
	}

	if proof.MpesaReceipt != "" {
		t.MpesaReceipt = &proof.MpesaReceipt
	}
	if proof.Preimage != "" {
		t.LightningPreimage = &proof.Preimage
	}
	now := s.now()
	t.Status = models.StatusCompleted
	t.CompletedAt = &now
	return nil
}

func (s *TransactionService) toFailed(ctx context.Context, t *models.Transaction, reason, actor string) error {
	ref := LedgerRef{Actor: actor, Reference: t.ID.String()}

	switch {
	case t.Type.Outbound():
		if _, err := s.ledger.Move(ctx, t.UserID, models.CurrencySatsInFlight, models.CurrencySats, t.Reserved(), ref); err != nil {
			return err
		}
		t.Status = models.StatusRefunded
	case t.Type == models.TypeDepositMpesa && t.Status == models.StatusProcessing && t.AmountKES.Valid:
		if _, err := s.ledger.Debit(ctx, t.UserID, models.CurrencyKES, t.AmountKES.Decimal, ref); err != nil {
			return err
		}
		t.Status = models.StatusFailed
	default:
		t.Status = models.StatusFailed
	}

	if reason != "" {
		t.FailureReason = &reason
	}
	return nil
}

func (s *TransactionService) build(p CreateParams) (*models.Transaction, error) {
	if !p.Type.Valid() {
		return nil, fmt.Errorf("unknown transaction type %q: %w", p.Type, apperr.ErrValidation)
	}
	if p.AmountKES.IsZero() && p.AmountSats == 0 {
		return nil, apperr.ErrInvalidAmount
	}
	if !p.AmountKES.IsZero() && !models.ValidKES(p.AmountKES) {
		return nil, apperr.ErrInvalidAmount
	}
	if p.AmountSats < 0 || p.FeeSats < 0 || p.FeeKES.IsNegative() || p.Rate.IsNegative() {
		return nil, apperr.ErrInvalidAmount
	}
	if p.Type.Outbound() && p.AmountSats == 0 {
		return nil, apperr.ErrInvalidAmount
	}

	t := &models.Transaction{
		ID:       uuid.New(),
		UserID:   p.UserID,
		Type:     p.Type,
		Status:   models.StatusPending,
		FeeKES:   p.FeeKES,
		FeeSats:  p.FeeSats,
		Metadata: types.JSONText(`{}`),
	}
	if p.AmountSats > 0 {
		sats := p.AmountSats
		t.AmountSats = &sats
	}
	if p.Rate.IsPositive() {
		t.ExchangeRate = decimal.NewNullDecimal(p.Rate)
	}
	switch {
	case !p.AmountKES.IsZero():
		t.AmountKES = decimal.NewNullDecimal(p.AmountKES)
	case p.Rate.IsPositive():
		if kes := models.SatsToKES(p.AmountSats, p.Rate); kes.IsPositive() {
			t.AmountKES = decimal.NewNullDecimal(kes)
		}
	}
	if p.CorrelationKey != "" {
		t.CorrelationKey = &p.CorrelationKey
	}
	if p.LightningInvoice != "" {
		t.LightningInvoice = &p.LightningInvoice
	}
	if p.PhoneNumber != "" {
		t.PhoneNumber = &p.PhoneNumber
	}
	if len(p.Metadata) > 0 {
		data, err := json.Marshal(p.Metadata)
		if err != nil {
			return nil, fmt.Errorf("encode metadata: %w", apperr.ErrValidation)
		}
		t.Metadata = types.JSONText(data)
	}
	return t, nil
}

// checkLimits rejects t when it would take the user's KES volume for the local
// day or month past the tier ceiling. Transactions without a KES value can only
// be priced against a pinned rate, so a ceiling without one is a stale rate.
func (s *TransactionService) checkLimits(ctx context.Context, t *models.Transaction) error {
	user, err := s.users.GetByID(ctx, t.UserID)
	if err != nil {
		return err
	}
	daily, hasDaily := s.limits.Ceiling(user.KYCTier)
	monthly, hasMonthly := s.monthly.Ceiling(user.KYCTier)
	if !hasDaily && !hasMonthly {
		return nil
	}
	if !t.AmountKES.Valid {
		return apperr.ErrStaleRate
	}

	now := s.now().In(s.location)
	if hasDaily {
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
		if err := s.checkCeiling(ctx, t, user.KYCTier, "daily", midnight, daily); err != nil {
			return err
		}
	}
	if hasMonthly {
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.location)
		if err := s.checkCeiling(ctx, t, user.KYCTier, "monthly", firstOfMonth, monthly); err != nil {
			return err
		}
	}
	return nil
}

func (s *TransactionService) checkCeiling(ctx context.Context, t *models.Transaction, tier models.KYCTier, period string, since time.Time, ceiling decimal.Decimal) error {
	spent, err := s.store.SumKESSince(ctx, t.UserID, since)
	if err != nil {
		return err
	}
	if spent.Add(t.AmountKES.Decimal).GreaterThan(ceiling) {
		logger.FromContext(ctx).Warnw(period+" limit exceeded", "userID", t.UserID, "tier", tier, "spent", spent, "amount", t.AmountKES.Decimal, "ceiling", ceiling)
		return apperr.ErrLimitExceeded
	}
	return nil
}
