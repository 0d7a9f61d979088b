package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/apperr"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/dbx"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
)

const userColumns = `id, phone_number, lightning_username, pin_hash, kyc_tier, created_at, updated_at`

// UserRepository stores users.
type UserRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserRepository(db *sqlx.DB, txGetter TxGetter) *UserRepository {
	return &UserRepository{db: db, txGetter: txGetter}
}

// Create inserts u and fills its generated fields.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (phone_number, lightning_username, pin_hash, kyc_tier)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	args := []any{u.PhoneNumber, u.LightningUsername, u.PinHash, u.KYCTier}
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), u, query, args...)

	logQuery(ctx, query, []any{u.PhoneNumber, u.LightningUsername, u.KYCTier}, u.ID, err)

	if dbx.IsUniqueViolation(err) {
		return apperr.ErrUserAlreadyExists
	}
	return err
}

// GetByPhone returns the user registered with phone.
func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone_number = $1`
	return r.get(ctx, query, phone)
}

// GetByID returns the user with id.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.get(ctx, query, id)
}

// UpdateKYCTier sets the user's tier and returns the updated row.
func (r *UserRepository) UpdateKYCTier(ctx context.Context, id uuid.UUID, tier models.KYCTier) (*models.User, error) {
	query := `
		UPDATE users SET kyc_tier = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	return r.get(ctx, query, id, tier)
}

func (r *UserRepository) get(ctx context.Context, query string, args ...any) (*models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, args...)

	logQuery(ctx, query, args, user.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
