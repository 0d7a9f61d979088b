// Package workers runs the engine's background loops.
package workers

//go:generate mockgen -source=workers.go -destination=workers_mock.go -package=workers

import (
	"context"
	"time"

	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
	"github.com/shopspring/decimal"
)

// StaleExpirer handles transactions that outlived their timeout.
type StaleExpirer interface {
	ExpireStale(ctx context.Context, maxAge time.Duration, limit int) (int, error)         // Fails up to limit stale pending transactions
	FlagStuckProcessing(ctx context.Context, maxAge time.Duration, limit int) (int, error) // Queues up to limit stuck processing transactions for review
}

// PriceFeed is an external BTC/KES price source.
type PriceFeed interface {
	Name() string                                        // Source tag stored with each sample
	BTCKES(ctx context.Context) (decimal.Decimal, error) // Current KES price of one bitcoin
}

// RateRecorder stores price samples.
type RateRecorder interface {
	Record(ctx context.Context, source string, price decimal.Decimal) (*models.ExchangeRate, error) // Appends a sample
}
