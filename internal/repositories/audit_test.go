package repositories

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx/types"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/dbx"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditRepository(t *testing.T) {
	db := setupPostgres(t)
	repo := NewAuditRepository(db, dbx.TxFromContext)
	ctx := context.Background()

	entry := &models.AuditLogEntry{
		Actor:      "user:1",
		Action:     "wallet.credit",
		EntityType: models.EntityWallet,
		EntityID:   "w-1",
		Reference:  "tx-1",
		Before:     types.JSONText(`{"balance_sats":0}`),
		After:      types.JSONText(`{"balance_sats":100}`),
	}
	require.NoError(t, repo.Append(ctx, entry))
	require.NoError(t, repo.Append(ctx, &models.AuditLogEntry{
		Actor: "system", Action: "wallet.debit", EntityType: models.EntityWallet, EntityID: "w-1",
	}))

	t.Run("trail is ordered", func(t *testing.T) {
		trail, err := repo.ListByEntity(ctx, models.EntityWallet, "w-1")
		require.NoError(t, err)
		require.Len(t, trail, 2)
		assert.Equal(t, "wallet.credit", trail[0].Action)
		assert.JSONEq(t, `{"balance_sats":100}`, trail[0].After.String())
		assert.Equal(t, "wallet.debit", trail[1].Action)
	})

	t.Run("append only", func(t *testing.T) {
		_, err := db.ExecContext(ctx, `UPDATE audit_logs SET actor = 'mallory' WHERE id = $1`, entry.ID)
		assert.ErrorContains(t, err, "append-only")

		_, err = db.ExecContext(ctx, `DELETE FROM audit_logs WHERE id = $1`, entry.ID)
		assert.ErrorContains(t, err, "append-only")
	})

	t.Run("rolled back with its transaction", func(t *testing.T) {
		tr := dbx.NewTransactor(db, 0)
		_ = tr.WithinTx(ctx, func(ctx context.Context) error {
			require.NoError(t, repo.Append(ctx, &models.AuditLogEntry{
				Actor: "system", Action: "wallet.credit", EntityType: models.EntityWallet, EntityID: "w-2",
			}))
			return assert.AnError
		})

		trail, err := repo.ListByEntity(ctx, models.EntityWallet, "w-2")
		require.NoError(t, err)
		assert.Empty(t, trail)
	})
}
