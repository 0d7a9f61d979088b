package handlers

//go:generate mockgen -source=wallet.go -destination=wallet_mock.go -package=handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/apperr"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/services"
)

// WalletReader defines the interface that the service must implement.
type WalletReader interface {
	Balance(ctx context.Context, userID uuid.UUID) (*services.WalletBalance, error)                      // Balances with the KES value of the sats
	Transactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Transaction, error) // Pages the user's history
	Transaction(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*models.Transaction, error)        // Reads one of the user's transactions
}

// BalanceResponse represents a successful response with user balances
// swagger:model BalanceResponse
type BalanceResponse struct {
	// Confirmed sats
	BitcoinBalance int64 `json:"bitcoin_balance" example:"250000"`

	// KES value of the confirmed sats at the current rate
	MpesaBalance string `json:"mpesa_balance" example:"13250.00"`

	// Deposits awaiting M-Pesa confirmation, in KES
	PendingDeposits string `json:"pending_deposits" example:"0.00"`

	// Outbound sats awaiting settlement
	PendingWithdrawals int64 `json:"pending_withdrawals" example:"0"`

	// Rate used for mpesa_balance
	ExchangeRate *string `json:"exchange_rate,omitempty" example:"5300000.00"`

	// Set when no fresh rate was available
	RateStale bool `json:"rate_stale"`
}

// TransactionsResponse is a page of history
// swagger:model TransactionsResponse
type TransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Limit        int                   `json:"limit" example:"20"`
	Offset       int                   `json:"offset" example:"0"`
}

// NewGetBalanceHandler returns an HTTP handler for fetching user balances.
// @Summary Get wallet balance
// @Description Returns the bitcoin balance, its KES value and pending amounts
// @Tags wallet
// @Produce json
// @Success 200 {object} handlers.BalanceResponse "User balance"
// @Failure 401 {object} apperr.Response "Unauthorized"
// @Failure 500 {object} apperr.Response "Internal server error"
// @Router /wallet/balance [get]
// @Security BearerAuth
func NewGetBalanceHandler(svc WalletReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		b, err := svc.Balance(ctx, userID)
		if err != nil {
			writeError(ctx, w, "failed to get balance", err, "userID", userID)
			return
		}

		resp := BalanceResponse{
			BitcoinBalance:     b.BitcoinSats,
			MpesaBalance:       b.MpesaKES.StringFixed(models.KESScale),
			PendingDeposits:    b.PendingDepositsKES.StringFixed(models.KESScale),
			PendingWithdrawals: b.PendingWithdrawals,
			RateStale:          b.RateStale,
		}
		if b.Rate != nil {
			rate := b.Rate.BTCKES.StringFixed(models.KESScale)
			resp.ExchangeRate = &rate
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// NewListTransactionsHandler returns an HTTP handler for the user's transaction history.
// @Summary List transactions
// @Description Returns the user's transactions, newest first
// @Tags wallet
// @Produce json
// @Param limit query int false "Page size, at most 100" default(20)
// @Param offset query int false "Rows to skip" default(0)
// @Success 200 {object} handlers.TransactionsResponse
// @Failure 400 {object} apperr.Response
// @Failure 401 {object} apperr.Response
// @Router /wallet/transactions [get]
// @Security BearerAuth
func NewListTransactionsHandler(svc WalletReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		limit, err := queryInt(r, "limit")
		if err != nil {
			writeError(ctx, w, "invalid limit", err)
			return
		}
		offset, err := queryInt(r, "offset")
		if err != nil {
			writeError(ctx, w, "invalid offset", err)
			return
		}

		txs, err := svc.Transactions(ctx, userID, limit, offset)
		if err != nil {
			writeError(ctx, w, "failed to list transactions", err, "userID", userID)
			return
		}

		if limit == 0 {
			limit = services.DefaultHistoryLimit
		}
		resp := TransactionsResponse{
			Transactions: make([]TransactionResponse, 0, len(txs)),
			Limit:        limit,
			Offset:       offset,
		}
		for i := range txs {
			resp.Transactions = append(resp.Transactions, newTransactionResponse(&txs[i]))
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// NewGetTransactionHandler returns an HTTP handler for one transaction.
// @Summary Get transaction
// @Tags wallet
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} handlers.TransactionResponse
// @Failure 400 {object} apperr.Response
// @Failure 401 {object} apperr.Response
// @Failure 404 {object} apperr.Response
// @Router /wallet/transactions/{id} [get]
// @Security BearerAuth
func NewGetTransactionHandler(svc WalletReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(ctx, w, "invalid transaction id", fmt.Errorf("invalid transaction id: %w", apperr.ErrValidation))
			return
		}

		t, err := svc.Transaction(ctx, userID, id)
		if err != nil {
			writeError(ctx, w, "failed to get transaction", err, "userID", userID, "transaction_id", id)
			return
		}

		writeJSON(w, http.StatusOK, newTransactionResponse(t))
	}
}
