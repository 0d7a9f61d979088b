package handlers

//go:generate mockgen -source=login.go -destination=login_mock.go -package=handlers

import (
	"context"
	"net/http"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, phone, pin string) (string, error) // Returns a signed access token
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// required: true
	PhoneNumber string `json:"phone_number" example:"+254712345678"`

	// required: true
	Pin string `json:"pin" example:"4321"`
}

// LoginResponse represents a successful login response
// swagger:model LoginResponse
type LoginResponse struct {
	// JWT token
	Token string `json:"token" example:"JWT_TOKEN"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate with phone number and PIN and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login Request"
// @Success 200 {object} handlers.LoginResponse "JWT token returned"
// @Failure 400 {object} apperr.Response "Invalid request body"
// @Failure 401 {object} apperr.Response "Invalid phone number or PIN"
// @Router /login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req LoginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(ctx, w, "failed to decode login request", err)
			return
		}

		token, err := svc.Login(ctx, req.PhoneNumber, req.Pin)
		if err != nil {
			writeError(ctx, w, "login failed", err)
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{Token: token})
	}
}
