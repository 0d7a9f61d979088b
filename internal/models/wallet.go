package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Currency names a wallet balance bucket.
type Currency string

const (
	CurrencySats         Currency = "SAT"         // confirmed bitcoin balance
	CurrencyKES          Currency = "KES"         // pending M-Pesa balance
	CurrencySatsInFlight Currency = "SAT_PENDING" // outbound sats awaiting settlement
)

// Valid reports whether c is a known bucket.
func (c Currency) Valid() bool {
	switch c {
	case CurrencySats, CurrencyKES, CurrencySatsInFlight:
		return true
	}
	return false
}

// Wallet represents a wallet row in the database. Every balance is non-negative.
type Wallet struct {
	ID           uuid.UUID       `json:"id" db:"id"`                               // Unique wallet identifier
	UserID       uuid.UUID       `json:"user_id" db:"user_id"`                     // Owner, one wallet per user
	BalanceSats  int64           `json:"balance_sats" db:"balance_sats"`           // Confirmed bitcoin balance
	BalanceKES   decimal.Decimal `json:"balance_kes" db:"balance_kes"`             // Pending M-Pesa balance
	InFlightSats int64           `json:"in_flight_sats" db:"pending_balance_sats"` // Unconfirmed outbound sats
	Version      int64           `json:"version" db:"version"`                     // Incremented on every mutation
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`               // Timestamp when the wallet was created
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`               // Timestamp of the last wallet update
}
