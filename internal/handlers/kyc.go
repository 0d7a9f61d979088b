package handlers

//go:generate mockgen -source=kyc.go -destination=kyc_mock.go -package=handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/apperr"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
)

// KYCTierSetter changes a user's verification tier.
type KYCTierSetter interface {
	SetKYCTier(ctx context.Context, userID uuid.UUID, tier models.KYCTier, actor string) (*models.User, error) // Changes the tier and audits it
}

// KYCTierRequest is the body of a tier change
// swagger:model KYCTierRequest
type KYCTierRequest struct {
	// required: true
	Tier string `json:"tier" example:"tier1" enums:"tier0,tier1,tier2"`

	// Who approved the change
	// required: true
	Actor string `json:"actor" example:"compliance:jdoe"`
}

// NewKYCTierHandler returns an HTTP handler that sets a user's KYC tier.
// @Summary Set KYC tier
// @Description Changes the verification tier that determines the user's daily ceiling. Used by the compliance service.
// @Tags internal
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body handlers.KYCTierRequest true "Tier change"
// @Success 200 {object} handlers.UserResponse
// @Failure 400 {object} apperr.Response
// @Failure 401 {object} apperr.Response
// @Failure 404 {object} apperr.Response
// @Router /internal/users/{id}/kyc-tier [put]
// @Security InternalAPIKey
func NewKYCTierHandler(svc KYCTierSetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(ctx, w, "invalid user id", fmt.Errorf("invalid user id: %w", apperr.ErrValidation))
			return
		}

		var req KYCTierRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(ctx, w, "failed to decode kyc tier request", err)
			return
		}
		if req.Actor == "" {
			writeError(ctx, w, "missing actor", fmt.Errorf("actor is required: %w", apperr.ErrValidation))
			return
		}

		u, err := svc.SetKYCTier(ctx, userID, models.KYCTier(req.Tier), req.Actor)
		if err != nil {
			writeError(ctx, w, "failed to set kyc tier", err, "userID", userID, "tier", req.Tier)
			return
		}

		writeJSON(w, http.StatusOK, newUserResponse(u))
	}
}
