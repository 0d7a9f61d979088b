package workers

import (
	"context"
	"time"

	"github.com/sbilibin2017/gw-pesa-settlement/internal/logger"
	"golang.org/x/time/rate"
)

// RatePoller samples every price feed on an interval and records the prices.
// Feed requests share one limiter so upstream quotas are respected.
type RatePoller struct {
	feeds    []PriceFeed
	recorder RateRecorder
	limiter  *rate.Limiter
	interval time.Duration
	timeout  time.Duration
}

// NewRatePoller creates a poller allowing at most perMinute feed requests per minute.
func NewRatePoller(recorder RateRecorder, interval, timeout time.Duration, perMinute int, feeds ...PriceFeed) *RatePoller {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &RatePoller{
		feeds:    feeds,
		recorder: recorder,
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), len(feeds)),
		interval: interval,
		timeout:  timeout,
	}
}

// Run polls once immediately and then on every tick until ctx is cancelled.
func (p *RatePoller) Run(ctx context.Context) {
	logger.Log.Infow("Starting rate poller", "interval", p.interval, "feeds", len(p.feeds))

	p.Poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Log.Infow("Stopping rate poller")
			return
		case <-ticker.C:
			p.Poll(ctx)
		}
	}
}

// Poll queries every feed once and returns how many samples were recorded.
func (p *RatePoller) Poll(ctx context.Context) int {
	recorded := 0
	for _, feed := range p.feeds {
		if err := p.limiter.Wait(ctx); err != nil {
			logger.Log.Warnw("Rate limiter error", "source", feed.Name(), "error", err)
			return recorded
		}

		fctx, cancel := context.WithTimeout(ctx, p.timeout)
		price, err := feed.BTCKES(fctx)
		cancel()
		if err != nil {
			logger.Log.Warnw("Error fetching price", "source", feed.Name(), "error", err)
			continue
		}

		if _, err := p.recorder.Record(ctx, feed.Name(), price); err != nil {
			logger.Log.Errorw("Error recording price", "source", feed.Name(), "price", price, "error", err)
			continue
		}
		recorded++
	}
	return recorded
}
