package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
)

// Audit entity types.
const (
	EntityUser        = "user"
	EntityWallet      = "wallet"
	EntityTransaction = "transaction"
)

// AuditLogEntry is an immutable record of a mutating action.
type AuditLogEntry struct {
	ID         uuid.UUID      `json:"id" db:"id"`
	Actor      string         `json:"actor" db:"actor"`
	Action     string         `json:"action" db:"action"`
	EntityType string         `json:"entity_type" db:"entity_type"`
	EntityID   string         `json:"entity_id" db:"entity_id"`
	Reference  string         `json:"reference" db:"reference"`
	Before     types.JSONText `json:"before" db:"before"`
	After      types.JSONText `json:"after" db:"after"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
}
