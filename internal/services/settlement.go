package services

//go:generate mockgen -source=settlement.go -destination=settlement_mock.go -package=services

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/apperr"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/logger"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
	"github.com/shopspring/decimal"
)

// TransactionMachine drives transaction state transitions.
type TransactionMachine interface {
	GetByCorrelationKey(ctx context.Context, key string) (*models.Transaction, error)                                  // Finds a transaction by provider reference
	Settle(ctx context.Context, id uuid.UUID, proof models.SettlementProof, actor string) (*models.Transaction, error) // Completes, advancing through processing
	Fail(ctx context.Context, id uuid.UUID, reason, actor string) (*models.Transaction, error)                         // Fails and refunds reserved funds
}

// MpesaResult is a normalized STK push or B2C result callback.
type MpesaResult struct {
	CorrelationKey string          // CheckoutRequestID or ConversationID
	ResultCode     int             // Zero on success
	ResultDesc     string          // Provider description
	Receipt        string          // M-Pesa receipt number on success
	AmountKES      decimal.Decimal // Amount reported by the provider, zero when absent
	PhoneNumber    string          // Counterparty MSISDN, when reported
	Raw            string          // Original payload for reconciliation
}

// SettlementService matches provider settlement events to transactions.
// Events that cannot be matched or proven are queued for reconciliation and
// never change a balance.
type SettlementService struct {
	machine TransactionMachine
	recon   ReconciliationPusher
	now     func() time.Time
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(machine TransactionMachine, recon ReconciliationPusher, now func() time.Time) *SettlementService {
	if now == nil {
		now = time.Now
	}
	return &SettlementService{
		machine: machine,
		recon:   recon,
		now:     now,
	}
}

// OnMpesaCallback applies an M-Pesa result to the matching deposit or withdrawal.
func (s *SettlementService) OnMpesaCallback(ctx context.Context, res MpesaResult) (*models.Transaction, error) {
	t, err := s.lookup(ctx, "mpesa", res.CorrelationKey, res.Raw)
	if err != nil {
		return nil, err
	}
	if t.Type != models.TypeDepositMpesa && t.Type != models.TypeWithdrawalMpesa {
		s.flag(ctx, models.ReconAmountMismatch, "mpesa", res.CorrelationKey, "callback matched a "+string(t.Type)+" transaction", res.Raw)
		return nil, apperr.ErrSettlementMismatch
	}

	if res.ResultCode != 0 {
		reason := res.ResultDesc
		if reason == "" {
			reason = "mpesa result code " + strconv.Itoa(res.ResultCode)
		}
		return s.machine.Fail(ctx, t.ID, reason, ActorSettlement)
	}

	if !res.AmountKES.IsZero() && t.AmountKES.Valid && !res.AmountKES.Equal(t.AmountKES.Decimal) {
		reason := "reported " + res.AmountKES.StringFixed(2) + " KES, expected " + t.AmountKES.Decimal.StringFixed(2)
		s.flag(ctx, models.ReconAmountMismatch, "mpesa", res.CorrelationKey, reason, res.Raw)
		return nil, apperr.ErrSettlementMismatch
	}

	return s.settle(ctx, t, models.SettlementProof{MpesaReceipt: res.Receipt}, "mpesa", res.CorrelationKey, res.Raw)
}

// OnLightningSettlement completes the Lightning transaction for paymentHash
// once preimage is proven to hash to it.
func (s *SettlementService) OnLightningSettlement(ctx context.Context, paymentHash, preimage string) (*models.Transaction, error) {
	return s.settleLightning(ctx, paymentHash, preimage, nil)
}

// OnLightningPayment settles an outbound payment and releases the part of the
// reserved routing fee that was not spent.
func (s *SettlementService) OnLightningPayment(ctx context.Context, paymentHash, preimage string, feeSats int64) (*models.Transaction, error) {
	return s.settleLightning(ctx, paymentHash, preimage, &feeSats)
}

func (s *SettlementService) settleLightning(ctx context.Context, paymentHash, preimage string, feeSats *int64) (*models.Transaction, error) {
	paymentHash = strings.ToLower(strings.TrimSpace(paymentHash))
	raw := lightningPayload(paymentHash, preimage)

	t, err := s.lookup(ctx, "lightning", paymentHash, raw)
	if err != nil {
		return nil, err
	}
	if t.Type != models.TypeLightningSend && t.Type != models.TypeLightningReceive {
		s.flag(ctx, models.ReconAmountMismatch, "lightning", paymentHash, "settlement matched a "+string(t.Type)+" transaction", raw)
		return nil, apperr.ErrSettlementMismatch
	}

	if !VerifyPreimage(paymentHash, preimage) {
		s.flag(ctx, models.ReconInvalidProof, "lightning", paymentHash, "preimage does not hash to payment hash", raw)
		return nil, apperr.ErrInvalidPreimage
	}

	proof := models.SettlementProof{Preimage: strings.ToLower(preimage), FeeSats: feeSats}
	return s.settle(ctx, t, proof, "lightning", paymentHash, raw)
}

// settle completes t. A positive outcome for a transaction that already failed
// or was refunded means the provider moved money the ledger gave back, so it
// is queued for an operator.
func (s *SettlementService) settle(ctx context.Context, t *models.Transaction, proof models.SettlementProof, source, key, raw string) (*models.Transaction, error) {
	settled, err := s.machine.Settle(ctx, t.ID, proof, ActorSettlement)
	if errors.Is(err, apperr.ErrInvalidTransition) || errors.Is(err, apperr.ErrTerminalStateViolation) {
		s.flag(ctx, models.ReconSettlementConflict, source, key, "provider confirmed a "+string(t.Status)+" transaction", raw)
		return nil, err
	}
	return settled, err
}

// OnLightningFailure fails the Lightning transaction for paymentHash.
func (s *SettlementService) OnLightningFailure(ctx context.Context, paymentHash, reason string) (*models.Transaction, error) {
	paymentHash = strings.ToLower(strings.TrimSpace(paymentHash))

	t, err := s.lookup(ctx, "lightning", paymentHash, lightningPayload(paymentHash, ""))
	if err != nil {
		return nil, err
	}
	if reason == "" {
		reason = "lightning payment failed"
	}
	return s.machine.Fail(ctx, t.ID, reason, ActorSettlement)
}

func (s *SettlementService) lookup(ctx context.Context, source, key, raw string) (*models.Transaction, error) {
	if key == "" {
		s.flag(ctx, models.ReconUnknownCorrelation, source, key, "missing correlation key", raw)
		return nil, apperr.ErrUnknownCorrelation
	}

	t, err := s.machine.GetByCorrelationKey(ctx, key)
	if errors.Is(err, apperr.ErrNotFound) {
		s.flag(ctx, models.ReconUnknownCorrelation, source, key, "no transaction matches correlation key", raw)
		return nil, apperr.ErrUnknownCorrelation
	}
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to look up transaction", "source", source, "correlation_key", key, "error", err)
		return nil, err
	}
	return t, nil
}

func (s *SettlementService) flag(ctx context.Context, kind, source, key, reason, raw string) {
	logger.FromContext(ctx).Warnw("settlement queued for reconciliation", "kind", kind, "source", source, "correlation_key", key, "reason", reason)

	if s.recon == nil {
		return
	}
	item := models.ReconciliationItem{
		Kind:           kind,
		Source:         source,
		CorrelationKey: key,
		Reason:         reason,
		Payload:        raw,
		CreatedAt:      s.now(),
	}
	if err := s.recon.Push(ctx, item); err != nil {
		logger.FromContext(ctx).Errorw("failed to queue reconciliation item", "kind", kind, "correlation_key", key, "error", err)
	}
}

// VerifyPreimage reports whether the hex preimage hashes to the hex payment hash.
func VerifyPreimage(paymentHash, preimage string) bool {
	hash, err := hex.DecodeString(strings.TrimSpace(paymentHash))
	if err != nil || len(hash) != sha256.Size {
		return false
	}
	pre, err := hex.DecodeString(strings.TrimSpace(preimage))
	if err != nil || len(pre) == 0 {
		return false
	}
	sum := sha256.Sum256(pre)
	return subtle.ConstantTimeCompare(sum[:], hash) == 1
}

func lightningPayload(paymentHash, preimage string) string {
	data, _ := json.Marshal(map[string]string{"payment_hash": paymentHash, "preimage": preimage})
	return string(data)
}
