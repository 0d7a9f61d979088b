package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/apperr"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
)

// ExchangeRateRepository stores the append-only BTC/KES sample series.
type ExchangeRateRepository struct {
	db *sqlx.DB
}

func NewExchangeRateRepository(db *sqlx.DB) *ExchangeRateRepository {
	return &ExchangeRateRepository{db: db}
}

// Save appends a sample. CreatedAt is taken from rate so callers control the clock.
func (r *ExchangeRateRepository) Save(ctx context.Context, rate *models.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (source, btc_kes, created_at)
		VALUES ($1, $2::numeric, $3)
		RETURNING id`

	args := []any{rate.Source, rate.BTCKES, rate.CreatedAt}
	err := r.db.QueryRowxContext(ctx, query, args...).Scan(&rate.ID)

	logQuery(ctx, query, args, rate.ID, err)

	return err
}

// Latest returns the newest sample created at or after since.
func (r *ExchangeRateRepository) Latest(ctx context.Context, since time.Time) (*models.ExchangeRate, error) {
	query := `
		SELECT id, source, btc_kes, created_at
		FROM exchange_rates
		WHERE created_at >= $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1`

	var rate models.ExchangeRate
	err := r.db.GetContext(ctx, &rate, query, since)

	logQuery(ctx, query, []any{since}, rate.BTCKES, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

// LatestPerSource returns the newest sample of every source seen since.
func (r *ExchangeRateRepository) LatestPerSource(ctx context.Context, since time.Time) ([]models.ExchangeRate, error) {
	query := `
		SELECT DISTINCT ON (source) id, source, btc_kes, created_at
		FROM exchange_rates
		WHERE created_at >= $1
		ORDER BY source, created_at DESC, id DESC`

	rates := []models.ExchangeRate{}
	err := r.db.SelectContext(ctx, &rates, query, since)

	logQuery(ctx, query, []any{since}, len(rates), err)

	return rates, err
}
