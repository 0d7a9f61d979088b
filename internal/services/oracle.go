package services

//go:generate mockgen -source=oracle.go -destination=oracle_mock.go -package=services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sbilibin2017/gw-pesa-settlement/internal/apperr"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/logger"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
	"github.com/shopspring/decimal"
)

// RateStore persists rate samples.
type RateStore interface {
	Save(ctx context.Context, rate *models.ExchangeRate) error                           // Appends a sample
	Latest(ctx context.Context, since time.Time) (*models.ExchangeRate, error)           // Newest sample at or after since
	LatestPerSource(ctx context.Context, since time.Time) ([]models.ExchangeRate, error) // Newest sample of every source at or after since
}

// RateCache caches the newest sample.
type RateCache interface {
	GetLatest(ctx context.Context) (*models.ExchangeRate, error)    // Returns the cached sample
	SetLatest(ctx context.Context, rate *models.ExchangeRate) error // Replaces the cached sample
}

// OracleService records BTC/KES samples and serves the current rate. A rate
// older than the staleness window is never served.
type OracleService struct {
	store        RateStore
	cache        RateCache
	recon        ReconciliationPusher
	staleness    time.Duration
	toleranceBps int64
	now          func() time.Time
}

// NewOracleService creates a new OracleService.
func NewOracleService(
	store RateStore,
	cache RateCache,
	recon ReconciliationPusher,
	staleness time.Duration,
	toleranceBps int64,
	now func() time.Time,
) *OracleService {
	if now == nil {
		now = time.Now
	}
	return &OracleService{
		store:        store,
		cache:        cache,
		recon:        recon,
		staleness:    staleness,
		toleranceBps: toleranceBps,
		now:          now,
	}
}

// Record stores a sample from source, timestamped by the oracle clock.
func (s *OracleService) Record(ctx context.Context, source string, price decimal.Decimal) (*models.ExchangeRate, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, fmt.Errorf("rate source required: %w", apperr.ErrValidation)
	}
	if !price.IsPositive() {
		return nil, apperr.ErrInvalidAmount
	}

	rate := &models.ExchangeRate{
		Source:    source,
		BTCKES:    price.Truncate(models.KESScale),
		CreatedAt: s.now(),
	}
	if !rate.BTCKES.IsPositive() {
		return nil, apperr.ErrInvalidAmount
	}

	if err := s.store.Save(ctx, rate); err != nil {
		logger.FromContext(ctx).Errorw("failed to save exchange rate", "source", source, "price", price, "error", err)
		return nil, err
	}
	if err := s.cache.SetLatest(ctx, rate); err != nil {
		logger.FromContext(ctx).Errorw("failed to cache exchange rate", "source", source, "error", err)
	}

	s.checkDisagreement(ctx)
	return rate, nil
}

// Current returns the newest sample inside the staleness window.
func (s *OracleService) Current(ctx context.Context) (*models.ExchangeRate, error) {
	cutoff := s.now().Add(-s.staleness)

	cached, err := s.cache.GetLatest(ctx)
	if err == nil && !cached.CreatedAt.Before(cutoff) {
		return cached, nil
	}
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		logger.FromContext(ctx).Warnw("exchange rate cache unavailable", "error", err)
	}

	rate, err := s.store.Latest(ctx, cutoff)
	if errors.Is(err, apperr.ErrNotFound) {
		logger.FromContext(ctx).Warnw("no fresh exchange rate", "cutoff", cutoff)
		return nil, apperr.ErrStaleRate
	}
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to get exchange rate", "error", err)
		return nil, err
	}

	if err := s.cache.SetLatest(ctx, rate); err != nil {
		logger.FromContext(ctx).Errorw("failed to cache exchange rate", "error", err)
	}
	return rate, nil
}

// checkDisagreement flags fresh samples whose spread exceeds the tolerance.
// Every sample is still stored; the newest one keeps being served.
func (s *OracleService) checkDisagreement(ctx context.Context) {
	if s.toleranceBps <= 0 || s.recon == nil {
		return
	}

	rates, err := s.store.LatestPerSource(ctx, s.now().Add(-s.staleness))
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to compare rate sources", "error", err)
		return
	}

	spread, low, high, ok := Spread(rates)
	if !ok || spread.LessThanOrEqual(decimal.NewFromInt(s.toleranceBps)) {
		return
	}

	reason := fmt.Sprintf("sources disagree by %s bps: %s=%s %s=%s",
		spread.StringFixed(0), low.Source, low.BTCKES, high.Source, high.BTCKES)
	logger.FromContext(ctx).Warnw("exchange rate sources disagree", "spread_bps", spread, "low", low.Source, "high", high.Source)

	item := models.ReconciliationItem{
		Kind:      models.ReconRateDisagreement,
		Source:    "oracle",
		Reason:    reason,
		CreatedAt: s.now(),
	}
	if err := s.recon.Push(ctx, item); err != nil {
		logger.FromContext(ctx).Errorw("failed to queue rate disagreement", "error", err)
	}
}

// Spread returns the gap between the lowest and highest rates in basis points
// of the lowest. ok is false when fewer than two rates are given.
func Spread(rates []models.ExchangeRate) (bps decimal.Decimal, low, high models.ExchangeRate, ok bool) {
	if len(rates) < 2 {
		return decimal.Zero, low, high, false
	}
	low, high = rates[0], rates[0]
	for _, r := range rates[1:] {
		if r.BTCKES.LessThan(low.BTCKES) {
			low = r
		}
		if r.BTCKES.GreaterThan(high.BTCKES) {
			high = r
		}
	}
	if !low.BTCKES.IsPositive() {
		return decimal.Zero, low, high, false
	}
	bps = high.BTCKES.Sub(low.BTCKES).Mul(bpsDivisor).Div(low.BTCKES)
	return bps, low, high, true
}
