package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/apperr"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/logger"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
)

const latestRateKey = "exchange_rate:BTC:KES"

// ExchangeRateCacheRepository caches the latest BTC/KES sample in Redis.
type ExchangeRateCacheRepository struct {
	client *redis.Client
	exp    time.Duration
}

// NewExchangeRateCacheRepository creates a cache whose entries expire after expiration.
func NewExchangeRateCacheRepository(client *redis.Client, expiration time.Duration) *ExchangeRateCacheRepository {
	return &ExchangeRateCacheRepository{
		client: client,
		exp:    expiration,
	}
}

// GetLatest returns the cached sample or apperr.ErrNotFound on a miss.
func (r *ExchangeRateCacheRepository) GetLatest(ctx context.Context) (*models.ExchangeRate, error) {
	val, err := r.client.Get(ctx, latestRateKey).Bytes()

	logger.FromContext(ctx).Debugw("cache get", "key", latestRateKey, "error", err)

	if errors.Is(err, redis.Nil) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rate models.ExchangeRate
	if err := json.Unmarshal(val, &rate); err != nil {
		return nil, err
	}
	return &rate, nil
}

// SetLatest stores rate unless the cache already holds a newer sample.
func (r *ExchangeRateCacheRepository) SetLatest(ctx context.Context, rate *models.ExchangeRate) error {
	if cached, err := r.GetLatest(ctx); err == nil && cached.CreatedAt.After(rate.CreatedAt) {
		return nil
	}

	data, err := json.Marshal(rate)
	if err != nil {
		return err
	}
	err = r.client.Set(ctx, latestRateKey, data, r.exp).Err()

	logger.FromContext(ctx).Debugw("cache set", "key", latestRateKey, "rate", rate.BTCKES, "error", err)

	return err
}
