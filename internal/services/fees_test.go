package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFeePolicy(t *testing.T) {
	policy := FeePolicy{
		Enabled:       true,
		DepositBps:    100,
		DepositMinKES: decimal.NewFromInt(10),
		WithdrawalBps: 100,
	}

	deposits := []struct {
		amount string
		want   string
	}{
		{"100", "10"},
		{"1000", "10"},
		{"5000", "50"},
		{"1234.56", "12.34"},
		{"5", "5"},
	}
	for _, tt := range deposits {
		t.Run("deposit "+tt.amount, func(t *testing.T) {
			got := policy.DepositFee(decimal.RequireFromString(tt.amount))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}

	withdrawals := []struct {
		amount string
		want   string
	}{
		{"10", "1.1"},
		{"100", "6"},
		{"1000", "23"},
		{"1001", "30.01"},
		{"30000", "375"},
		{"40000", "505"},
	}
	for _, tt := range withdrawals {
		t.Run("withdrawal "+tt.amount, func(t *testing.T) {
			got := policy.WithdrawalFee(decimal.RequireFromString(tt.amount))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}

	t.Run("disabled", func(t *testing.T) {
		off := policy
		off.Enabled = false
		assert.True(t, off.DepositFee(decimal.NewFromInt(1000)).IsZero())
		assert.True(t, off.WithdrawalFee(decimal.NewFromInt(1000)).IsZero())
	})
}

func TestMpesaTariff(t *testing.T) {
	tests := map[string]int64{
		"1":      1,
		"49":     1,
		"50":     5,
		"101":    7,
		"2500":   25,
		"7500":   45,
		"10000":  55,
		"25001":  75,
		"30001":  105,
		"150000": 105,
	}
	for amount, want := range tests {
		got := MpesaTariff(decimal.RequireFromString(amount))
		assert.True(t, decimal.NewFromInt(want).Equal(got), "amount %s: got %s", amount, got)
	}
}
