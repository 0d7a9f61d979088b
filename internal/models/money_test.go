package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestKESToSats(t *testing.T) {
	tests := []struct {
		name string
		kes  string
		rate string
		want int64
	}{
		{"deposit example", "1000", "5300000", 18867},
		{"exact", "53000", "5300000", 1_000_000},
		{"one sat floor", "0.06", "5300000", 1},
		{"below one sat", "0.05", "5300000", 0},
		{"zero rate", "1000", "0", 0},
		{"negative amount", "-5", "5300000", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KESToSats(decimal.RequireFromString(tt.kes), decimal.RequireFromString(tt.rate))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSatsToKES(t *testing.T) {
	rate := decimal.RequireFromString("5300000")

	assert.Equal(t, "53.00", SatsToKES(1000, rate).StringFixed(2))
	assert.Equal(t, "0.05", SatsToKES(1, rate).StringFixed(2))
	assert.True(t, SatsToKES(0, rate).IsZero())
	assert.Equal(t, "999.95", SatsToKES(18867, rate).StringFixed(2))
}

func TestValidKES(t *testing.T) {
	assert.True(t, ValidKES(decimal.RequireFromString("10.50")))
	assert.False(t, ValidKES(decimal.RequireFromString("10.505")))
	assert.False(t, ValidKES(decimal.Zero))
	assert.False(t, ValidKES(decimal.RequireFromString("-1")))
}

func TestStatusAndTypeHelpers(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusRefunded.Terminal())
	assert.False(t, StatusFailed.Terminal())
	assert.True(t, TypeWithdrawalMpesa.Outbound())
	assert.True(t, TypeLightningSend.Outbound())
	assert.False(t, TypeDepositMpesa.Outbound())

	sats := int64(600)
	tx := Transaction{Type: TypeLightningSend, AmountSats: &sats, FeeSats: 10}
	assert.Equal(t, int64(610), tx.Reserved())
	tx.Type = TypeLightningReceive
	assert.Equal(t, int64(0), tx.Reserved())
}

func TestTierLimits(t *testing.T) {
	limits := TierLimits{
		KYCTier0: decimal.NewFromInt(10000),
		KYCTier2: decimal.Zero,
	}

	ceiling, ok := limits.Ceiling(KYCTier0)
	assert.True(t, ok)
	assert.True(t, ceiling.Equal(decimal.NewFromInt(10000)))

	_, ok = limits.Ceiling(KYCTier1)
	assert.False(t, ok)
	_, ok = limits.Ceiling(KYCTier2)
	assert.False(t, ok)
}
