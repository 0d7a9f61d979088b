package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/apperr"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	db := setupPostgres(t)
	repo := NewUserRepository(db, nil)
	ctx := context.Background()

	user := &models.User{
		PhoneNumber:       "+254712345678",
		LightningUsername: "alice",
		PinHash:           "hash",
		KYCTier:           models.KYCTier0,
	}

	t.Run("create", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, user))
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("duplicate phone", func(t *testing.T) {
		dup := &models.User{PhoneNumber: user.PhoneNumber, LightningUsername: "bob", PinHash: "x", KYCTier: models.KYCTier0}
		assert.ErrorIs(t, repo.Create(ctx, dup), apperr.ErrUserAlreadyExists)
	})

	t.Run("duplicate lightning username", func(t *testing.T) {
		dup := &models.User{PhoneNumber: "+254700000001", LightningUsername: "alice", PinHash: "x", KYCTier: models.KYCTier0}
		assert.ErrorIs(t, repo.Create(ctx, dup), apperr.ErrUserAlreadyExists)
	})

	t.Run("get by phone and id", func(t *testing.T) {
		got, err := repo.GetByPhone(ctx, user.PhoneNumber)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, models.KYCTier0, got.KYCTier)

		got, err = repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.LightningUsername)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := repo.GetByPhone(ctx, "+254799999999")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("update kyc tier", func(t *testing.T) {
		got, err := repo.UpdateKYCTier(ctx, user.ID, models.KYCTier2)
		require.NoError(t, err)
		assert.Equal(t, models.KYCTier2, got.KYCTier)

		_, err = repo.UpdateKYCTier(ctx, uuid.New(), models.KYCTier1)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
