package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// KYCTier determines a user's daily transaction ceiling.
type KYCTier string

const (
	KYCTier0 KYCTier = "tier0"
	KYCTier1 KYCTier = "tier1"
	KYCTier2 KYCTier = "tier2"
)

// Valid reports whether t is a known tier.
func (t KYCTier) Valid() bool {
	switch t {
	case KYCTier0, KYCTier1, KYCTier2:
		return true
	}
	return false
}

// TierLimits maps a tier to a KES ceiling over some period. A missing or zero entry means unlimited.
type TierLimits map[KYCTier]decimal.Decimal

// Ceiling returns the tier's ceiling and whether one applies.
func (l TierLimits) Ceiling(t KYCTier) (decimal.Decimal, bool) {
	limit, ok := l[t]
	if !ok || !limit.IsPositive() {
		return decimal.Zero, false
	}
	return limit, true
}

// User represents a user record in the database
type User struct {
	ID                uuid.UUID `json:"id" db:"id"`                                 // Primary key
	PhoneNumber       string    `json:"phone_number" db:"phone_number"`             // E.164 phone number
	LightningUsername string    `json:"lightning_username" db:"lightning_username"` // Lightning address username
	PinHash           string    `json:"-" db:"pin_hash"`                            // bcrypt hash of the PIN
	KYCTier           KYCTier   `json:"kyc_tier" db:"kyc_tier"`                     // Verification level
	CreatedAt         time.Time `json:"created_at" db:"created_at"`                 // Creation timestamp
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`                 // Last update timestamp
}
