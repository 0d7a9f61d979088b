package handlers

//go:generate mockgen -source=callbacks.go -destination=callbacks_mock.go -package=handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sbilibin2017/gw-pesa-settlement/internal/apperr"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/logger"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/services"
	"github.com/shopspring/decimal"
)

// MpesaSettler applies M-Pesa results.
type MpesaSettler interface {
	OnMpesaCallback(ctx context.Context, res services.MpesaResult) (*models.Transaction, error) // Settles or fails the matching transaction
}

// LightningSettler applies Lightning node events.
type LightningSettler interface {
	OnLightningSettlement(ctx context.Context, paymentHash, preimage string) (*models.Transaction, error)             // Settles a received payment
	OnLightningPayment(ctx context.Context, paymentHash, preimage string, feeSats int64) (*models.Transaction, error) // Settles a sent payment
	OnLightningFailure(ctx context.Context, paymentHash, reason string) (*models.Transaction, error)                  // Fails a payment
}

// MpesaAck is the acknowledgement Daraja expects from a callback endpoint
// swagger:model MpesaAck
type MpesaAck struct {
	ResultCode int    `json:"ResultCode" example:"0"`
	ResultDesc string `json:"ResultDesc" example:"Accepted"`
}

type mpesaParam struct {
	Name  string          `json:"Name"`
	Key   string          `json:"Key"`
	Value json.RawMessage `json:"Value"`
}

// StkCallbackRequest is the body Daraja posts for an STK push result
// swagger:model StkCallbackRequest
type StkCallbackRequest struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []mpesaParam `json:"Item"`
			} `json:"CallbackMetadata"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

// B2CResultRequest is the body Daraja posts for a B2C payout result
// swagger:model B2CResultRequest
type B2CResultRequest struct {
	Result struct {
		ResultType               int    `json:"ResultType"`
		ResultCode               int    `json:"ResultCode"`
		ResultDesc               string `json:"ResultDesc"`
		OriginatorConversationID string `json:"OriginatorConversationID"`
		ConversationID           string `json:"ConversationID"`
		TransactionID            string `json:"TransactionID"`
		ResultParameters         struct {
			ResultParameter []mpesaParam `json:"ResultParameter"`
		} `json:"ResultParameters"`
	} `json:"Result"`
}

// LightningEvent kinds.
const (
	EventInvoiceSettled   = "invoice_settled"
	EventPaymentSucceeded = "payment_succeeded"
	EventPaymentFailed    = "payment_failed"
)

// LightningCallbackRequest is posted by the node watcher when an invoice or payment resolves
// swagger:model LightningCallbackRequest
type LightningCallbackRequest struct {
	// required: true
	Event string `json:"event" example:"invoice_settled" enums:"invoice_settled,payment_succeeded,payment_failed"`

	// required: true
	PaymentHash   string `json:"payment_hash"`
	Preimage      string `json:"preimage"`
	FeeSats       int64  `json:"fee_sats"`
	FailureReason string `json:"failure_reason"`
}

// NewMpesaSTKCallbackHandler returns an HTTP handler for STK push results.
// @Summary M-Pesa STK push callback
// @Description Settles or fails the deposit matching CheckoutRequestID. Unmatched results are queued for reconciliation and acknowledged.
// @Tags callbacks
// @Accept json
// @Produce json
// @Param request body handlers.StkCallbackRequest true "Daraja STK callback"
// @Success 200 {object} handlers.MpesaAck
// @Failure 400 {object} apperr.Response
// @Failure 401 {object} apperr.Response
// @Failure 500 {object} apperr.Response
// @Router /callbacks/mpesa/stk [post]
// @Security WebhookSecret
func NewMpesaSTKCallbackHandler(svc MpesaSettler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req StkCallbackRequest
		raw, err := readJSON(w, r, &req)
		if err != nil {
			writeError(ctx, w, "failed to decode stk callback", err)
			return
		}

		cb := req.Body.StkCallback
		res := services.MpesaResult{
			CorrelationKey: cb.CheckoutRequestID,
			ResultCode:     cb.ResultCode,
			ResultDesc:     cb.ResultDesc,
			Raw:            raw,
		}
		for _, item := range cb.CallbackMetadata.Item {
			switch item.Name {
			case "Amount":
				res.AmountKES = paramDecimal(item.Value)
			case "MpesaReceiptNumber":
				res.Receipt = paramString(item.Value)
			case "PhoneNumber":
				res.PhoneNumber = msisdn(paramString(item.Value))
			}
		}

		settleMpesa(ctx, w, svc, res)
	}
}

// NewMpesaB2CCallbackHandler returns an HTTP handler for B2C payout results.
// @Summary M-Pesa B2C result callback
// @Description Settles or fails the withdrawal matching ConversationID. A failed payout refunds the reserved sats.
// @Tags callbacks
// @Accept json
// @Produce json
// @Param request body handlers.B2CResultRequest true "Daraja B2C result"
// @Success 200 {object} handlers.MpesaAck
// @Failure 400 {object} apperr.Response
// @Failure 401 {object} apperr.Response
// @Failure 500 {object} apperr.Response
// @Router /callbacks/mpesa/b2c [post]
// @Security WebhookSecret
func NewMpesaB2CCallbackHandler(svc MpesaSettler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req B2CResultRequest
		raw, err := readJSON(w, r, &req)
		if err != nil {
			writeError(ctx, w, "failed to decode b2c result", err)
			return
		}

		result := req.Result
		res := services.MpesaResult{
			CorrelationKey: result.ConversationID,
			ResultCode:     result.ResultCode,
			ResultDesc:     result.ResultDesc,
			Receipt:        result.TransactionID,
			Raw:            raw,
		}
		for _, p := range result.ResultParameters.ResultParameter {
			switch p.Key {
			case "TransactionAmount":
				res.AmountKES = paramDecimal(p.Value)
			case "TransactionReceipt":
				if receipt := paramString(p.Value); receipt != "" {
					res.Receipt = receipt
				}
			case "ReceiverPartyPublicName":
				// "254712345678 - Jane Doe"
				number, _, _ := strings.Cut(paramString(p.Value), " ")
				res.PhoneNumber = msisdn(number)
			}
		}

		settleMpesa(ctx, w, svc, res)
	}
}

// NewLightningCallbackHandler returns an HTTP handler for Lightning node events.
// @Summary Lightning settlement callback
// @Description Settles a received invoice or a sent payment once its preimage is proven, or fails a payment.
// @Tags callbacks
// @Accept json
// @Produce json
// @Param request body handlers.LightningCallbackRequest true "Node event"
// @Success 200 {object} handlers.TransactionResponse
// @Failure 400 {object} apperr.Response
// @Failure 401 {object} apperr.Response
// @Failure 404 {object} apperr.Response "Unknown payment hash"
// @Failure 422 {object} apperr.Response "Preimage does not match"
// @Router /callbacks/lightning [post]
// @Security WebhookSecret
func NewLightningCallbackHandler(svc LightningSettler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req LightningCallbackRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(ctx, w, "failed to decode lightning callback", err)
			return
		}

		var (
			t   *models.Transaction
			err error
		)
		switch req.Event {
		case EventInvoiceSettled:
			t, err = svc.OnLightningSettlement(ctx, req.PaymentHash, req.Preimage)
		case EventPaymentSucceeded:
			t, err = svc.OnLightningPayment(ctx, req.PaymentHash, req.Preimage, req.FeeSats)
		case EventPaymentFailed:
			t, err = svc.OnLightningFailure(ctx, req.PaymentHash, req.FailureReason)
		default:
			err = fmt.Errorf("unknown event %q: %w", req.Event, apperr.ErrValidation)
		}
		if err != nil {
			writeError(ctx, w, "failed to apply lightning event", err, "event", req.Event, "payment_hash", req.PaymentHash)
			return
		}

		writeJSON(w, http.StatusOK, newTransactionResponse(t))
	}
}

// settleMpesa applies res and acknowledges it. Outcomes a retry cannot change
// are acknowledged so Daraja stops redelivering; storage errors are not.
func settleMpesa(ctx context.Context, w http.ResponseWriter, svc MpesaSettler, res services.MpesaResult) {
	t, err := svc.OnMpesaCallback(ctx, res)
	code := apperr.CodeOf(err)
	switch {
	case err == nil:
		logger.FromContext(ctx).Infow("mpesa result applied", "correlation_key", res.CorrelationKey, "transaction_id", t.ID, "status", t.Status)
		writeJSON(w, http.StatusOK, MpesaAck{ResultCode: 0, ResultDesc: "Accepted"})
	case code == apperr.CodeInternal || code == apperr.CodeTransactionPersistence:
		logger.FromContext(ctx).Errorw("failed to apply mpesa result", "correlation_key", res.CorrelationKey, "error", err)
		writeJSON(w, http.StatusServiceUnavailable, apperr.Response{Code: code, Message: apperr.Message(err)})
	default:
		logger.FromContext(ctx).Warnw("mpesa result not applied", "correlation_key", res.CorrelationKey, "code", code, "error", err)
		writeJSON(w, http.StatusOK, MpesaAck{ResultCode: 0, ResultDesc: "Accepted"})
	}
}

// readJSON decodes the body into v and returns it verbatim for reconciliation.
func readJSON(w http.ResponseWriter, r *http.Request, v any) (string, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %v: %w", err, apperr.ErrValidation)
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(v); err != nil {
		return "", fmt.Errorf("invalid request body: %v: %w", err, apperr.ErrValidation)
	}
	return string(body), nil
}

// paramString returns a Daraja parameter value, which may be a string or a number.
func paramString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

func paramDecimal(raw json.RawMessage) decimal.Decimal {
	d, err := decimal.NewFromString(paramString(raw))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func msisdn(number string) string {
	if number == "" || strings.HasPrefix(number, "+") {
		return number
	}
	return "+" + number
}
