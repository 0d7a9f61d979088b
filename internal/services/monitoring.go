package services

import (
	"context"
	"encoding/json"

	"github.com/sbilibin2017/gw-pesa-settlement/internal/logger"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
	"github.com/shopspring/decimal"
)

// Monitoring holds the KES thresholds that put a new transaction up for review.
// A zero threshold is disabled.
type Monitoring struct {
	LargeKES       decimal.Decimal // Amounts above this raise a large transaction alert
	StructuringKES decimal.Decimal // Amounts above this and below LargeKES raise a structuring alert
}

// Alert returns the reconciliation kind raised by amount, or an empty string.
func (m Monitoring) Alert(amount decimal.Decimal) string {
	if m.LargeKES.IsPositive() && amount.GreaterThan(m.LargeKES) {
		return models.ReconLargeTransaction
	}
	if m.StructuringKES.IsPositive() && amount.GreaterThan(m.StructuringKES) &&
		(!m.LargeKES.IsPositive() || amount.LessThan(m.LargeKES)) {
		return models.ReconStructuring
	}
	return ""
}

// review queues t for an operator when its KES value trips a threshold. It runs
// after commit, so a failed push never undoes the transaction.
func (s *TransactionService) review(ctx context.Context, t *models.Transaction) {
	if s.recon == nil || !t.AmountKES.Valid {
		return
	}
	kind := s.monitor.Alert(t.AmountKES.Decimal)
	if kind == "" {
		return
	}

	payload, _ := json.Marshal(t)
	item := models.ReconciliationItem{
		Kind:           kind,
		Source:         "monitoring",
		CorrelationKey: t.ID.String(),
		Reason:         string(t.Type) + " of " + t.AmountKES.Decimal.StringFixed(2) + " KES by user " + t.UserID.String(),
		Payload:        string(payload),
		CreatedAt:      s.now(),
	}
	logger.FromContext(ctx).Warnw("transaction queued for review", "kind", kind, "transactionID", t.ID, "userID", t.UserID, "amount", t.AmountKES.Decimal)
	if err := s.recon.Push(ctx, item); err != nil {
		logger.FromContext(ctx).Errorw("failed to queue review item", "kind", kind, "transactionID", t.ID, "error", err)
	}
}
