package workers

import (
	"context"
	"time"

	"github.com/sbilibin2017/gw-pesa-settlement/internal/logger"
)

// maxSweepRounds bounds how many full batches one tick drains.
const maxSweepRounds = 10

// ExpirySweeper periodically fails pending transactions older than maxAge and
// raises processing transactions untouched for stuckAge.
type ExpirySweeper struct {
	expirer  StaleExpirer
	maxAge   time.Duration
	stuckAge time.Duration
	interval time.Duration
	batch    int
}

// NewExpirySweeper creates a sweeper that runs every interval. A zero stuckAge
// disables the processing check.
func NewExpirySweeper(expirer StaleExpirer, maxAge, stuckAge, interval time.Duration, batch int) *ExpirySweeper {
	if batch <= 0 {
		batch = 100
	}
	return &ExpirySweeper{
		expirer:  expirer,
		maxAge:   maxAge,
		stuckAge: stuckAge,
		interval: interval,
		batch:    batch,
	}
}

// Run sweeps on every tick until ctx is cancelled.
func (s *ExpirySweeper) Run(ctx context.Context) {
	logger.Log.Infow("Starting expiry sweeper", "interval", s.interval, "max_age", s.maxAge, "stuck_age", s.stuckAge)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Log.Infow("Stopping expiry sweeper")
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil && ctx.Err() == nil {
				logger.Log.Errorw("Error expiring stale transactions", "error", err)
			}
			if _, err := s.FlagStuck(ctx); err != nil && ctx.Err() == nil {
				logger.Log.Errorw("Error flagging stuck transactions", "error", err)
			}
		}
	}
}

// Sweep expires stale transactions in batches and returns how many changed.
func (s *ExpirySweeper) Sweep(ctx context.Context) (int, error) {
	total := 0
	for round := 0; round < maxSweepRounds; round++ {
		n, err := s.expirer.ExpireStale(ctx, s.maxAge, s.batch)
		total += n
		if err != nil {
			return total, err
		}
		if n < s.batch {
			break
		}
	}
	if total > 0 {
		logger.Log.Infow("Expired stale transactions", "count", total)
	}
	return total, nil
}

// FlagStuck queues one batch of stuck processing transactions for review.
func (s *ExpirySweeper) FlagStuck(ctx context.Context) (int, error) {
	if s.stuckAge <= 0 {
		return 0, nil
	}
	n, err := s.expirer.FlagStuckProcessing(ctx, s.stuckAge, s.batch)
	if n > 0 {
		logger.Log.Warnw("Flagged transactions stuck in processing", "count", n)
	}
	return n, err
}
