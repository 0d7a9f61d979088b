package handlers

//go:generate mockgen -source=lightning.go -destination=lightning_mock.go -package=handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/apperr"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
)

// LightningPayments defines the Lightning flows the handlers need.
type LightningPayments interface {
	CreateInvoice(ctx context.Context, userID uuid.UUID, sats int64, description string, expiry time.Duration) (*models.Transaction, *models.Invoice, error) // Issues an invoice
	PayInvoice(ctx context.Context, userID uuid.UUID, bolt11 string, maxFeeSats int64) (*models.Transaction, error)                                          // Pays an invoice
}

// CreateInvoiceRequest is the body of an invoice request
// swagger:model CreateInvoiceRequest
type CreateInvoiceRequest struct {
	// required: true
	AmountSats int64 `json:"amount_sats" example:"50000"`

	Description string `json:"description" example:"Chai"`

	// 60 to 86400, default 3600
	ExpirySeconds int64 `json:"expiry_seconds" example:"3600"`
}

// InvoiceResponse carries the issued invoice and its transaction
// swagger:model InvoiceResponse
type InvoiceResponse struct {
	PaymentRequest string              `json:"payment_request" example:"lnbc500u1p..."`
	PaymentHash    string              `json:"payment_hash"`
	ExpiresAt      time.Time           `json:"expires_at"`
	Transaction    TransactionResponse `json:"transaction"`
}

// PayInvoiceRequest is the body of a payment request
// swagger:model PayInvoiceRequest
type PayInvoiceRequest struct {
	// BOLT11 invoice
	// required: true
	PaymentRequest string `json:"payment_request" example:"lnbc500u1p..."`

	// Routing fee ceiling, reserved up front
	MaxFeeSats int64 `json:"max_fee_sats" example:"100"`
}

// NewCreateInvoiceHandler returns an HTTP handler that issues a Lightning invoice.
// @Summary Create Lightning invoice
// @Tags lightning
// @Accept json
// @Produce json
// @Param request body handlers.CreateInvoiceRequest true "Invoice Request"
// @Success 201 {object} handlers.InvoiceResponse
// @Failure 400 {object} apperr.Response
// @Failure 401 {object} apperr.Response
// @Failure 502 {object} apperr.Response "Lightning node unavailable"
// @Router /lightning/invoices [post]
// @Security BearerAuth
func NewCreateInvoiceHandler(svc LightningPayments) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req CreateInvoiceRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(ctx, w, "failed to decode invoice request", err)
			return
		}
		if req.ExpirySeconds < 0 {
			writeError(ctx, w, "invalid invoice expiry", fmt.Errorf("expiry_seconds must not be negative: %w", apperr.ErrValidation))
			return
		}

		t, inv, err := svc.CreateInvoice(ctx, userID, req.AmountSats, req.Description, time.Duration(req.ExpirySeconds)*time.Second)
		if err != nil {
			writeError(ctx, w, "failed to create invoice", err, "userID", userID, "amount_sats", req.AmountSats)
			return
		}

		writeJSON(w, http.StatusCreated, InvoiceResponse{
			PaymentRequest: inv.PaymentRequest,
			PaymentHash:    inv.PaymentHash,
			ExpiresAt:      inv.ExpiresAt,
			Transaction:    newTransactionResponse(t),
		})
	}
}

// NewPayInvoiceHandler returns an HTTP handler that pays a Lightning invoice.
// @Summary Pay Lightning invoice
// @Description Reserves the invoice amount plus max_fee_sats and dispatches the payment. Returns 200 once settled, 202 while in flight.
// @Tags lightning
// @Accept json
// @Produce json
// @Param request body handlers.PayInvoiceRequest true "Payment Request"
// @Success 200 {object} handlers.TransactionResponse "Payment settled"
// @Success 202 {object} handlers.TransactionResponse "Payment in flight or failed and refunded"
// @Failure 400 {object} apperr.Response
// @Failure 401 {object} apperr.Response
// @Failure 422 {object} apperr.Response "Insufficient funds"
// @Router /lightning/payments [post]
// @Security BearerAuth
func NewPayInvoiceHandler(svc LightningPayments) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req PayInvoiceRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(ctx, w, "failed to decode payment request", err)
			return
		}

		t, err := svc.PayInvoice(ctx, userID, req.PaymentRequest, req.MaxFeeSats)
		if err != nil {
			writeError(ctx, w, "failed to pay invoice", err, "userID", userID)
			return
		}

		writeJSON(w, acceptedStatus(t), newTransactionResponse(t))
	}
}
