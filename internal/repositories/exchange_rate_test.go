package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/sbilibin2017/gw-pesa-settlement/internal/apperr"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeRateRepository(t *testing.T) {
	db := setupPostgres(t)
	repo := NewExchangeRateRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	samples := []models.ExchangeRate{
		{Source: "coingecko", BTCKES: decimal.NewFromInt(5_300_000), CreatedAt: now.Add(-10 * time.Minute)},
		{Source: "coingecko", BTCKES: decimal.NewFromInt(5_310_000), CreatedAt: now.Add(-2 * time.Minute)},
		{Source: "exchanger", BTCKES: decimal.NewFromInt(5_320_000), CreatedAt: now.Add(-1 * time.Minute)},
	}
	for i := range samples {
		require.NoError(t, repo.Save(ctx, &samples[i]))
		assert.NotZero(t, samples[i].ID)
	}

	t.Run("latest within window", func(t *testing.T) {
		got, err := repo.Latest(ctx, now.Add(-5*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, "exchanger", got.Source)
		assert.True(t, got.BTCKES.Equal(decimal.NewFromInt(5_320_000)))
	})

	t.Run("nothing fresh", func(t *testing.T) {
		_, err := repo.Latest(ctx, now.Add(time.Minute))
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("latest per source", func(t *testing.T) {
		got, err := repo.LatestPerSource(ctx, now.Add(-5*time.Minute))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "coingecko", got[0].Source)
		assert.True(t, got[0].BTCKES.Equal(decimal.NewFromInt(5_310_000)))
		assert.Equal(t, "exchanger", got[1].Source)
	})

	t.Run("price must be positive", func(t *testing.T) {
		err := repo.Save(ctx, &models.ExchangeRate{Source: "bad", BTCKES: decimal.Zero, CreatedAt: now})
		assert.Error(t, err)
	})
}
