package repositories

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/logger"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
)

// ReconciliationQueue is an operator-facing Redis stream of unmatched settlements.
type ReconciliationQueue struct {
	client *redis.Client
	stream string
}

func NewReconciliationQueue(client *redis.Client, stream string) *ReconciliationQueue {
	return &ReconciliationQueue{client: client, stream: stream}
}

// Push appends item to the stream.
func (q *ReconciliationQueue) Push(ctx context.Context, item models.ReconciliationItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}

	id, err := q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: q.stream,
		Values: map[string]any{
			"kind":            item.Kind,
			"correlation_key": item.CorrelationKey,
			"item":            string(data),
		},
	}).Result()

	logger.FromContext(ctx).Infow("reconciliation item queued",
		"stream", q.stream, "id", id, "kind", item.Kind, "correlation_key", item.CorrelationKey, "error", err)

	return err
}

// Recent returns up to count items, newest first.
func (q *ReconciliationQueue) Recent(ctx context.Context, count int64) ([]models.ReconciliationItem, error) {
	msgs, err := q.client.XRevRangeN(ctx, q.stream, "+", "-", count).Result()
	if err != nil {
		return nil, err
	}

	items := make([]models.ReconciliationItem, 0, len(msgs))
	for _, msg := range msgs {
		raw, _ := msg.Values["item"].(string)
		var item models.ReconciliationItem
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			logger.FromContext(ctx).Warnw("skipping malformed reconciliation item", "id", msg.ID, "error", err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}
