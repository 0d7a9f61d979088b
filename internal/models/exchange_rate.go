package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a BTC/KES price sample tagged by source.
type ExchangeRate struct {
	ID        int64           `json:"id" db:"id"`
	Source    string          `json:"source" db:"source"`
	BTCKES    decimal.Decimal `json:"btc_kes" db:"btc_kes"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// ReconciliationItem is queued for an operator when a settlement cannot be matched.
type ReconciliationItem struct {
	Kind           string    `json:"kind"`
	Source         string    `json:"source"`
	CorrelationKey string    `json:"correlation_key"`
	Reason         string    `json:"reason"`
	Payload        string    `json:"payload,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Reconciliation item kinds.
const (
	ReconUnknownCorrelation = "unknown_correlation"
	ReconInvalidProof       = "invalid_proof"
	ReconAmountMismatch     = "amount_mismatch"
	ReconRateDisagreement   = "rate_disagreement"
	ReconSettlementConflict = "settlement_conflict"
	ReconLargeTransaction   = "large_transaction"
	ReconStructuring        = "structuring"
	ReconStuckProcessing    = "stuck_processing"
)
