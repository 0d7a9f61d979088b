package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
)

// AuditRepository appends to the audit log. The table rejects updates and deletes.
type AuditRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewAuditRepository(db *sqlx.DB, txGetter TxGetter) *AuditRepository {
	return &AuditRepository{db: db, txGetter: txGetter}
}

// Append writes e in the caller's transaction, if any.
func (r *AuditRepository) Append(ctx context.Context, e *models.AuditLogEntry) error {
	query := `
		INSERT INTO audit_logs (id, actor, action, entity_type, entity_id, reference, before, after)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if len(e.Before) == 0 {
		e.Before = types.JSONText(`null`)
	}
	if len(e.After) == 0 {
		e.After = types.JSONText(`null`)
	}

	args := []any{e.ID, e.Actor, e.Action, e.EntityType, e.EntityID, e.Reference, e.Before, e.After}
	err := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...).Scan(&e.CreatedAt)

	logQuery(ctx, query, []any{e.Actor, e.Action, e.EntityType, e.EntityID, e.Reference}, e.ID, err)

	return err
}

// ListByEntity returns the trail of one entity, oldest first.
func (r *AuditRepository) ListByEntity(ctx context.Context, entityType, entityID string) ([]models.AuditLogEntry, error) {
	query := `
		SELECT id, actor, action, entity_type, entity_id, reference, before, after, created_at
		FROM audit_logs
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at, id`

	entries := []models.AuditLogEntry{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &entries, query, entityType, entityID)

	logQuery(ctx, query, []any{entityType, entityID}, len(entries), err)

	return entries, err
}
