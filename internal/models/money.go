package models

import "github.com/shopspring/decimal"

// SatsPerBTC is the number of satoshis in one bitcoin.
const SatsPerBTC = 100_000_000

// KESScale is the number of decimal places kept for shilling amounts.
const KESScale = 2

var satsPerBTC = decimal.NewFromInt(SatsPerBTC)

// KESToSats converts a shilling amount to satoshis at rate (KES per BTC).
// Fractions of a satoshi are truncated so the ledger never credits more than was paid.
func KESToSats(kes, rate decimal.Decimal) int64 {
	if !rate.IsPositive() || !kes.IsPositive() {
		return 0
	}
	q, _ := kes.Mul(satsPerBTC).QuoRem(rate, 0)
	return q.IntPart()
}

// SatsToKES converts satoshis to shillings at rate, truncated to two decimals.
func SatsToKES(sats int64, rate decimal.Decimal) decimal.Decimal {
	if sats <= 0 || !rate.IsPositive() {
		return decimal.Zero
	}
	q, _ := decimal.NewFromInt(sats).Mul(rate).QuoRem(satsPerBTC, KESScale)
	return q
}

// ValidKES reports whether amount is positive and has at most two decimals.
func ValidKES(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(amount.Truncate(KESScale))
}
