package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a money movement.
type TransactionType string

const (
	TypeDepositMpesa     TransactionType = "deposit_mpesa"
	TypeWithdrawalMpesa  TransactionType = "withdrawal_mpesa"
	TypeLightningSend    TransactionType = "lightning_send"
	TypeLightningReceive TransactionType = "lightning_receive"
)

// Valid reports whether t is a known type.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeDepositMpesa, TypeWithdrawalMpesa, TypeLightningSend, TypeLightningReceive:
		return true
	}
	return false
}

// Outbound reports whether the type reserves sats when it is created.
func (t TransactionType) Outbound() bool {
	return t == TypeWithdrawalMpesa || t == TypeLightningSend
}

// TransactionStatus is a state of the transaction lifecycle.
type TransactionStatus string

const (
	StatusPending    TransactionStatus = "pending"
	StatusProcessing TransactionStatus = "processing"
	StatusCompleted  TransactionStatus = "completed"
	StatusFailed     TransactionStatus = "failed"
	StatusRefunded   TransactionStatus = "refunded"
)

// Terminal reports whether no further transition is permitted from s.
func (s TransactionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusRefunded
}

// Transaction represents a ledger unit of work. CompletedAt is set iff Status is completed.
type Transaction struct {
	ID                uuid.UUID           `json:"id" db:"id"`                                 // Primary key
	UserID            uuid.UUID           `json:"user_id" db:"user_id"`                       // Owning user
	Type              TransactionType     `json:"type" db:"type"`                             // Movement type
	Status            TransactionStatus   `json:"status" db:"status"`                         // Lifecycle state
	AmountKES         decimal.NullDecimal `json:"amount_kes" db:"amount_kes"`                 // Amount in KES, if any
	AmountSats        *int64              `json:"amount_sats" db:"amount_sats"`               // Amount in sats, if any
	ExchangeRate      decimal.NullDecimal `json:"exchange_rate" db:"exchange_rate"`           // BTC/KES rate pinned at creation
	FeeKES            decimal.Decimal     `json:"fee_kes" db:"fee_kes"`                       // Fee in KES
	FeeSats           int64               `json:"fee_sats" db:"fee_sats"`                     // Fee in sats
	CorrelationKey    *string             `json:"correlation_key" db:"correlation_key"`       // Provider reference or payment hash
	MpesaReceipt      *string             `json:"mpesa_receipt" db:"mpesa_receipt"`           // M-Pesa receipt number
	LightningInvoice  *string             `json:"lightning_invoice" db:"lightning_invoice"`   // BOLT11 invoice
	LightningPreimage *string             `json:"lightning_preimage" db:"lightning_preimage"` // Hex preimage proving payment
	PhoneNumber       *string             `json:"phone_number" db:"phone_number"`             // M-Pesa counterparty
	FailureReason     *string             `json:"failure_reason" db:"failure_reason"`         // Why the transaction failed
	Metadata          types.JSONText      `json:"metadata" db:"metadata"`                     // Free-form metadata
	CreatedAt         time.Time           `json:"created_at" db:"created_at"`                 // Creation timestamp
	UpdatedAt         time.Time           `json:"updated_at" db:"updated_at"`                 // Last update timestamp
	CompletedAt       *time.Time          `json:"completed_at" db:"completed_at"`             // Completion timestamp
}

// Sats returns the sats amount or zero.
func (t *Transaction) Sats() int64 {
	if t.AmountSats == nil {
		return 0
	}
	return *t.AmountSats
}

// Reserved returns the sats held in flight for an outbound transaction.
func (t *Transaction) Reserved() int64 {
	if !t.Type.Outbound() {
		return 0
	}
	return t.Sats() + t.FeeSats
}

// SettlementProof is the evidence supplied when completing a transaction.
type SettlementProof struct {
	MpesaReceipt string // Receipt number from an M-Pesa callback
	Preimage     string // Hex preimage from a Lightning settlement
	FeeSats      *int64 // Routing fee actually paid, when lower than reserved
}

// TransactionEvent is published after every committed state transition.
type TransactionEvent struct {
	TransactionID string            `json:"transaction_id"` // Transaction identifier
	UserID        string            `json:"user_id"`        // Owning user
	Type          TransactionType   `json:"type"`           // Movement type
	Status        TransactionStatus `json:"status"`         // State after the transition
	AmountSats    int64             `json:"amount_sats"`    // Amount in sats
	AmountKES     string            `json:"amount_kes"`     // Amount in KES
	Timestamp     int64             `json:"timestamp"`      // Unix seconds of the transition
}

// NewTransactionEvent builds the event describing t's current state.
func NewTransactionEvent(t *Transaction, at time.Time) TransactionEvent {
	kes := ""
	if t.AmountKES.Valid {
		kes = t.AmountKES.Decimal.StringFixed(2)
	}
	return TransactionEvent{
		TransactionID: t.ID.String(),
		UserID:        t.UserID.String(),
		Type:          t.Type,
		Status:        t.Status,
		AmountSats:    t.Sats(),
		AmountKES:     kes,
		Timestamp:     at.Unix(),
	}
}
