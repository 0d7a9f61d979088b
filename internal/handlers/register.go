package handlers

//go:generate mockgen -source=register.go -destination=register_mock.go -package=handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, phone, pin, lightningUsername string) (*models.User, error) // Creates a user with an empty wallet
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// E.164 phone number
	// required: true
	PhoneNumber string `json:"phone_number" example:"+254712345678"`

	// Four to six digit PIN
	// required: true
	Pin string `json:"pin" example:"4321"`

	// Lightning address username
	// required: true
	LightningUsername string `json:"lightning_username" example:"wanjiku"`
}

// UserResponse is the client view of a user
// swagger:model UserResponse
type UserResponse struct {
	ID                uuid.UUID `json:"id"`
	PhoneNumber       string    `json:"phone_number" example:"+254712345678"`
	LightningUsername string    `json:"lightning_username" example:"wanjiku"`
	KYCTier           string    `json:"kyc_tier" example:"tier0"`
	CreatedAt         time.Time `json:"created_at"`
}

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:                u.ID,
		PhoneNumber:       u.PhoneNumber,
		LightningUsername: u.LightningUsername,
		KYCTier:           string(u.KYCTier),
		CreatedAt:         u.CreatedAt,
	}
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a user and an empty wallet. Phone number and lightning username must be unique. The PIN is hashed before storing.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.UserResponse "User successfully registered"
// @Failure 400 {object} apperr.Response "Invalid request"
// @Failure 409 {object} apperr.Response "Phone number or username already registered"
// @Router /register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req RegisterRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(ctx, w, "failed to decode register request", err)
			return
		}

		u, err := svc.Register(ctx, req.PhoneNumber, req.Pin, req.LightningUsername)
		if err != nil {
			writeError(ctx, w, "failed to register user", err, "phone_number", req.PhoneNumber)
			return
		}

		writeJSON(w, http.StatusCreated, newUserResponse(u))
	}
}
