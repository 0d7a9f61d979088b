package services

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/apperr"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/logger"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	pinPattern      = regexp.MustCompile(`^[0-9]{4,6}$`)
	usernamePattern = regexp.MustCompile(`^[a-z0-9_]{3,30}$`)
)

// UserStore persists users.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error                                           // Inserts a user
	GetByPhone(ctx context.Context, phone string) (*models.User, error)                         // Finds a user by phone number
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)                            // Reads a user
	UpdateKYCTier(ctx context.Context, id uuid.UUID, tier models.KYCTier) (*models.User, error) // Changes the verification tier
}

// WalletOpener opens wallets for new users.
type WalletOpener interface {
	Open(ctx context.Context, userID uuid.UUID, ref LedgerRef) (*models.Wallet, error) // Creates a zero-balance wallet
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID) (string, error) // Issues an access token
}

// AuthService handles registration, login and KYC tier changes.
type AuthService struct {
	tx      Transactor
	users   UserStore
	wallets WalletOpener
	audit   AuditWriter
	jwt     JWTGenerator
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(tx Transactor, users UserStore, wallets WalletOpener, audit AuditWriter, jwt JWTGenerator) *AuthService {
	return &AuthService{
		tx:      tx,
		users:   users,
		wallets: wallets,
		audit:   audit,
		jwt:     jwt,
	}
}

// Register creates a user at tier0 together with an empty wallet.
func (svc *AuthService) Register(ctx context.Context, phone, pin, lightningUsername string) (*models.User, error) {
	if !ValidPhoneNumber(phone) {
		return nil, apperr.ErrInvalidPhoneNumber
	}
	if !pinPattern.MatchString(pin) {
		return nil, fmt.Errorf("PIN must be 4 to 6 digits: %w", apperr.ErrValidation)
	}
	if !usernamePattern.MatchString(lightningUsername) {
		return nil, fmt.Errorf("lightning username must be 3 to 30 lowercase letters, digits or underscores: %w", apperr.ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to hash PIN", "err", err)
		return nil, err
	}

	user := &models.User{
		ID:                uuid.New(),
		PhoneNumber:       phone,
		LightningUsername: lightningUsername,
		PinHash:           string(hashed),
		KYCTier:           models.KYCTier0,
	}

	err = svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := svc.users.Create(ctx, user); err != nil {
			return err
		}
		actor := UserActor(user.ID)
		if _, err := svc.wallets.Open(ctx, user.ID, LedgerRef{Actor: actor, Reference: user.ID.String()}); err != nil {
			return err
		}
		return recordAudit(ctx, svc.audit, actor, "user.register", models.EntityUser, user.ID.String(), "", nil, user)
	})
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to register user", "phone", phone, "err", err)
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and returns a JWT token.
func (svc *AuthService) Login(ctx context.Context, phone, pin string) (string, error) {
	user, err := svc.users.GetByPhone(ctx, phone)
	if errors.Is(err, apperr.ErrNotFound) {
		logger.FromContext(ctx).Warnw("login for unknown phone number", "phone", phone)
		return "", apperr.ErrInvalidCredentials
	}
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to get user", "err", err)
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PinHash), []byte(pin)); err != nil {
		logger.FromContext(ctx).Warnw("invalid credentials", "userID", user.ID)
		return "", apperr.ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.ID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	return token, nil
}

// SetKYCTier changes a user's verification tier on behalf of actor.
func (svc *AuthService) SetKYCTier(ctx context.Context, userID uuid.UUID, tier models.KYCTier, actor string) (*models.User, error) {
	if !tier.Valid() {
		return nil, fmt.Errorf("unknown KYC tier %q: %w", tier, apperr.ErrValidation)
	}

	var user *models.User
	err := svc.tx.WithinTx(ctx, func(ctx context.Context) error {
		before, err := svc.users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user, err = svc.users.UpdateKYCTier(ctx, userID, tier); err != nil {
			return err
		}
		return recordAudit(ctx, svc.audit, actor, "user.kyc_tier", models.EntityUser, userID.String(), "", before, user)
	})
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to set KYC tier", "userID", userID, "tier", tier, "err", err)
		return nil, err
	}
	return user, nil
}
