// Package services holds the settlement engine's business logic: the wallet
// ledger, the transaction state machine, the exchange rate oracle, the
// settlement matcher and the payment flows that tie them to providers.
package services

//go:generate mockgen -source=services.go -destination=services_mock.go -package=services

import (
	"context"
	"encoding/json"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/logger"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
	"github.com/segmentio/kafka-go"
)

// Transactor runs a function inside one database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error // Runs fn atomically
}

// AuditWriter appends entries to the audit trail.
type AuditWriter interface {
	Append(ctx context.Context, e *models.AuditLogEntry) error // Appends an immutable entry
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// ReconciliationPusher queues unmatched provider events for operators.
type ReconciliationPusher interface {
	Push(ctx context.Context, item models.ReconciliationItem) error // Enqueues an item
}

// Actors recorded on audit entries for system-driven changes.
const (
	ActorSettlement = "system:settlement"
	ActorExpiry     = "system:expiry"
	ActorPayments   = "system:payments"
)

// UserActor returns the audit actor for a user-initiated change.
func UserActor(id uuid.UUID) string {
	return "user:" + id.String()
}

var phonePattern = regexp.MustCompile(`^\+[1-9][0-9]{8,14}$`)

// ValidPhoneNumber reports whether phone is an E.164 number.
func ValidPhoneNumber(phone string) bool {
	return phonePattern.MatchString(phone)
}

func recordAudit(ctx context.Context, w AuditWriter, actor, action, entityType, entityID, reference string, before, after any) error {
	e := &models.AuditLogEntry{
		ID:         uuid.New(),
		Actor:      actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Reference:  reference,
		Before:     snapshot(before),
		After:      snapshot(after),
	}
	return w.Append(ctx, e)
}

func snapshot(v any) types.JSONText {
	if v == nil {
		return types.JSONText(`null`)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return types.JSONText(`null`)
	}
	return types.JSONText(data)
}

// publishTransaction publishes a transaction event to Kafka.
func publishTransaction(ctx context.Context, w KafkaWriter, t *models.Transaction, at time.Time) {
	if w == nil {
		logger.FromContext(ctx).Warnw("Kafka writer not configured, skipping publishing", "transaction_id", t.ID)
		return
	}

	event := models.NewTransactionEvent(t, at)
	data, err := json.Marshal(event)
	if err != nil {
		logger.FromContext(ctx).Errorw("Failed to marshal transaction for Kafka", "transaction_id", t.ID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.TransactionID),
		Value: data,
	}

	if err := w.WriteMessages(ctx, msg); err != nil {
		logger.FromContext(ctx).Errorw("Failed to publish transaction to Kafka", "transaction_id", t.ID, "error", err)
	} else {
		logger.FromContext(ctx).Infow("Transaction published to Kafka", "transaction_id", t.ID, "status", t.Status)
	}
}
