package handlers

//go:generate mockgen -source=mpesa.go -destination=mpesa_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
	"github.com/shopspring/decimal"
)

// MpesaPayments defines the M-Pesa flows the handlers need.
type MpesaPayments interface {
	Deposit(ctx context.Context, userID uuid.UUID, amountKES decimal.Decimal, phone string) (*models.Transaction, error) // Starts an STK push deposit
	Withdraw(ctx context.Context, userID uuid.UUID, amountSats int64, phone string) (*models.Transaction, error)         // Starts a B2C payout
}

// DepositRequest represents the JSON body for an M-Pesa deposit
// swagger:model DepositRequest
type DepositRequest struct {
	// Whole shillings, 10 to 500000
	// required: true
	Amount decimal.Decimal `json:"amount" swaggertype:"number" example:"1000"`

	// Number that receives the STK prompt
	// required: true
	PhoneNumber string `json:"phone_number" example:"+254712345678"`
}

// WithdrawRequest represents the JSON body for an M-Pesa withdrawal
// swagger:model WithdrawRequest
type WithdrawRequest struct {
	// Sats to sell, at least 1000
	// required: true
	AmountSats int64 `json:"amount_sats" example:"100000"`

	// Number that receives the payout
	// required: true
	PhoneNumber string `json:"phone_number" example:"+254712345678"`
}

// NewDepositHandler returns an HTTP handler that starts an M-Pesa deposit.
// @Summary Deposit via M-Pesa
// @Description Sends an STK push to the phone. Sats are credited at the current rate, net of fees, once M-Pesa confirms.
// @Tags mpesa
// @Accept json
// @Produce json
// @Param request body handlers.DepositRequest true "Deposit Request"
// @Success 202 {object} handlers.TransactionResponse "Deposit pending confirmation"
// @Failure 400 {object} apperr.Response "Invalid amount or phone number"
// @Failure 401 {object} apperr.Response "Unauthorized"
// @Failure 422 {object} apperr.Response "Daily or monthly limit exceeded"
// @Failure 502 {object} apperr.Response "M-Pesa unavailable"
// @Failure 503 {object} apperr.Response "No fresh exchange rate"
// @Router /mpesa/deposit [post]
// @Security BearerAuth
func NewDepositHandler(svc MpesaPayments) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req DepositRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(ctx, w, "failed to decode deposit request", err)
			return
		}

		t, err := svc.Deposit(ctx, userID, req.Amount, req.PhoneNumber)
		if err != nil {
			writeError(ctx, w, "failed to deposit", err, "userID", userID, "amount", req.Amount)
			return
		}

		writeJSON(w, acceptedStatus(t), newTransactionResponse(t))
	}
}

// NewWithdrawHandler returns an HTTP handler that starts an M-Pesa withdrawal.
// @Summary Withdraw via M-Pesa
// @Description Reserves the sats plus fees and pays their KES value to the phone.
// @Tags mpesa
// @Accept json
// @Produce json
// @Param request body handlers.WithdrawRequest true "Withdraw Request"
// @Success 202 {object} handlers.TransactionResponse "Withdrawal in progress"
// @Failure 400 {object} apperr.Response "Invalid amount or phone number"
// @Failure 401 {object} apperr.Response "Unauthorized"
// @Failure 422 {object} apperr.Response "Insufficient funds or daily or monthly limit exceeded"
// @Failure 502 {object} apperr.Response "M-Pesa unavailable"
// @Failure 503 {object} apperr.Response "No fresh exchange rate"
// @Router /mpesa/withdrawal [post]
// @Security BearerAuth
func NewWithdrawHandler(svc MpesaPayments) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req WithdrawRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(ctx, w, "failed to decode withdraw request", err)
			return
		}

		t, err := svc.Withdraw(ctx, userID, req.AmountSats, req.PhoneNumber)
		if err != nil {
			writeError(ctx, w, "failed to withdraw", err, "userID", userID, "amount_sats", req.AmountSats)
			return
		}

		writeJSON(w, acceptedStatus(t), newTransactionResponse(t))
	}
}
