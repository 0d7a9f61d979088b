package models

import "time"

// Invoice is a BOLT11 payment request as reported by the Lightning node.
type Invoice struct {
	PaymentRequest string    `json:"payment_request"` // Encoded BOLT11 invoice
	PaymentHash    string    `json:"payment_hash"`    // Hex SHA-256 of the preimage
	AmountSats     int64     `json:"amount_sats"`     // Requested amount, zero for open amounts
	Description    string    `json:"description"`     // Memo
	ExpiresAt      time.Time `json:"expires_at"`      // Time after which the invoice cannot be paid
}

// Expired reports whether the invoice can no longer be paid at now.
func (i *Invoice) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// Payment statuses reported by the Lightning node.
const (
	PaymentSucceeded = "SUCCEEDED"
	PaymentFailed    = "FAILED"
	PaymentInFlight  = "IN_FLIGHT"
)

// Payment is the outcome of dispatching an outbound payment.
type Payment struct {
	PaymentHash   string `json:"payment_hash"`   // Hex payment hash
	Preimage      string `json:"preimage"`       // Hex preimage, set on success
	Status        string `json:"status"`         // One of the Payment* statuses
	FeeSats       int64  `json:"fee_sats"`       // Routing fee paid
	FailureReason string `json:"failure_reason"` // Node error, set on failure
}
