// Package handlers exposes the settlement engine over HTTP.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/apperr"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/logger"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/middlewares"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
)

// maxBodyBytes bounds every request body.
const maxBodyBytes = 1 << 20

// TransactionResponse is the client view of a transaction.
// swagger:model TransactionResponse
type TransactionResponse struct {
	ID               uuid.UUID  `json:"id" example:"4b8f1c0e-6a0d-4c6e-9d0b-5f1f7c9f2a11"`
	Type             string     `json:"type" example:"deposit_mpesa"`
	Status           string     `json:"status" example:"processing"`
	AmountKES        *string    `json:"amount_kes,omitempty" example:"1000.00"`
	AmountSats       *int64     `json:"amount_sats,omitempty" example:"18679"`
	ExchangeRate     *string    `json:"exchange_rate,omitempty" example:"5300000.00"`
	FeeKES           string     `json:"fee_kes" example:"10.00"`
	FeeSats          int64      `json:"fee_sats" example:"0"`
	Reference        *string    `json:"reference,omitempty" example:"ws_CO_100320261030001234"`
	MpesaReceipt     *string    `json:"mpesa_receipt,omitempty" example:"QCE1ABC2DE"`
	LightningInvoice *string    `json:"lightning_invoice,omitempty"`
	PhoneNumber      *string    `json:"phone_number,omitempty" example:"+254712345678"`
	FailureReason    *string    `json:"failure_reason,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

func newTransactionResponse(t *models.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:               t.ID,
		Type:             string(t.Type),
		Status:           string(t.Status),
		AmountSats:       t.AmountSats,
		FeeKES:           t.FeeKES.StringFixed(models.KESScale),
		FeeSats:          t.FeeSats,
		Reference:        t.CorrelationKey,
		MpesaReceipt:     t.MpesaReceipt,
		LightningInvoice: t.LightningInvoice,
		PhoneNumber:      t.PhoneNumber,
		FailureReason:    t.FailureReason,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
		CompletedAt:      t.CompletedAt,
	}
	if t.AmountKES.Valid {
		s := t.AmountKES.Decimal.StringFixed(models.KESScale)
		resp.AmountKES = &s
	}
	if t.ExchangeRate.Valid {
		s := t.ExchangeRate.Decimal.StringFixed(models.KESScale)
		resp.ExchangeRate = &s
	}
	return resp
}

// acceptedStatus is 200 for a settled transaction and 202 while it is in flight.
func acceptedStatus(t *models.Transaction) int {
	if t.Status == models.StatusCompleted {
		return http.StatusOK
	}
	return http.StatusAccepted
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError logs err at a level matching its class and replies with it.
func writeError(ctx context.Context, w http.ResponseWriter, msg string, err error, kv ...any) {
	kv = append(kv, "error", err)
	if apperr.CodeOf(err) == apperr.CodeInternal {
		logger.FromContext(ctx).Errorw(msg, kv...)
	} else {
		logger.FromContext(ctx).Warnw(msg, kv...)
	}
	apperr.Write(w, err)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %v: %w", err, apperr.ErrValidation)
	}
	return nil
}

// currentUser returns the authenticated user or replies 401.
func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middlewares.UserIDFromContext(r.Context())
	if !ok {
		apperr.Write(w, apperr.ErrUnauthorized)
	}
	return id, ok
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, apperr.ErrValidation)
	}
	return n, nil
}
