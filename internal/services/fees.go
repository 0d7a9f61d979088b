package services

import "github.com/shopspring/decimal"

var bpsDivisor = decimal.NewFromInt(10_000)

// FeePolicy prices deposits and withdrawals in KES.
type FeePolicy struct {
	Enabled       bool            // Charge fees at all
	DepositBps    int64           // Deposit fee in basis points
	DepositMinKES decimal.Decimal // Deposit fee floor
	WithdrawalBps int64           // Withdrawal fee in basis points, on top of the M-Pesa tariff
}

// DepositFee returns the fee withheld from a deposit of amount.
func (p FeePolicy) DepositFee(amount decimal.Decimal) decimal.Decimal {
	if !p.Enabled || !amount.IsPositive() {
		return decimal.Zero
	}
	fee := percent(amount, p.DepositBps)
	if fee.LessThan(p.DepositMinKES) {
		fee = p.DepositMinKES
	}
	if fee.GreaterThan(amount) {
		fee = amount
	}
	return fee
}

// WithdrawalFee returns the fee charged for paying out amount over M-Pesa.
func (p FeePolicy) WithdrawalFee(amount decimal.Decimal) decimal.Decimal {
	if !p.Enabled || !amount.IsPositive() {
		return decimal.Zero
	}
	return percent(amount, p.WithdrawalBps).Add(MpesaTariff(amount))
}

type tariffBand struct {
	upTo int64
	fee  int64
}

// Safaricom B2C tariff bands in KES.
var mpesaTariff = []tariffBand{
	{49, 1},
	{100, 5},
	{500, 7},
	{1_000, 13},
	{1_500, 20},
	{2_500, 25},
	{3_500, 30},
	{5_000, 35},
	{7_500, 45},
	{10_000, 55},
	{15_000, 60},
	{20_000, 65},
	{25_000, 70},
	{30_000, 75},
}

const mpesaTariffMax = 105

// MpesaTariff returns the network charge for sending amount KES.
func MpesaTariff(amount decimal.Decimal) decimal.Decimal {
	for _, band := range mpesaTariff {
		if amount.LessThanOrEqual(decimal.NewFromInt(band.upTo)) {
			return decimal.NewFromInt(band.fee)
		}
	}
	return decimal.NewFromInt(mpesaTariffMax)
}

func percent(amount decimal.Decimal, bps int64) decimal.Decimal {
	q, _ := amount.Mul(decimal.NewFromInt(bps)).QuoRem(bpsDivisor, 2)
	return q
}
