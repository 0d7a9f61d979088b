package facades

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sbilibin2017/gw-pesa-settlement/internal/logger"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
)

// LightningLNDFacade talks to an LND node over its REST gateway.
type LightningLNDFacade struct {
	baseURL    string
	macaroon   string
	httpClient *http.Client
}

// NewLightningLNDFacade creates an LND REST client authenticated with a hex macaroon.
func NewLightningLNDFacade(baseURL, macaroonHex string, httpClient *http.Client) *LightningLNDFacade {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &LightningLNDFacade{
		baseURL:    strings.TrimRight(baseURL, "/"),
		macaroon:   macaroonHex,
		httpClient: httpClient,
	}
}

type addInvoiceRequest struct {
	Value  int64  `json:"value,string"`
	Memo   string `json:"memo"`
	Expiry int64  `json:"expiry,string"`
}

type addInvoiceResponse struct {
	RHash          string `json:"r_hash"`
	PaymentRequest string `json:"payment_request"`
}

type payReqResponse struct {
	PaymentHash string `json:"payment_hash"`
	NumSatoshis int64  `json:"num_satoshis,string"`
	Timestamp   int64  `json:"timestamp,string"`
	Expiry      int64  `json:"expiry,string"`
	Description string `json:"description"`
}

type feeLimit struct {
	Fixed int64 `json:"fixed,string"`
}

type sendPaymentRequest struct {
	PaymentRequest string   `json:"payment_request"`
	FeeLimit       feeLimit `json:"fee_limit"`
}

type sendPaymentResponse struct {
	PaymentError    string `json:"payment_error"`
	PaymentPreimage string `json:"payment_preimage"`
	PaymentHash     string `json:"payment_hash"`
	PaymentRoute    struct {
		TotalFees int64 `json:"total_fees,string"`
	} `json:"payment_route"`
}

// CreateInvoice adds an invoice for sats and returns it with a hex payment hash.
func (f *LightningLNDFacade) CreateInvoice(ctx context.Context, sats int64, memo string, expiry time.Duration) (*models.Invoice, error) {
	body := addInvoiceRequest{Value: sats, Memo: memo, Expiry: int64(expiry.Seconds())}

	var out addInvoiceResponse
	if err := f.do(ctx, http.MethodPost, "/v1/invoices", body, &out); err != nil {
		return nil, err
	}

	hash, err := base64ToHex(out.RHash)
	if err != nil {
		return nil, fmt.Errorf("lnd: r_hash: %w", err)
	}
	return &models.Invoice{
		PaymentRequest: out.PaymentRequest,
		PaymentHash:    hash,
		AmountSats:     sats,
		Description:    memo,
		ExpiresAt:      time.Now().Add(expiry),
	}, nil
}

// DecodeInvoice decodes a BOLT11 payment request.
func (f *LightningLNDFacade) DecodeInvoice(ctx context.Context, bolt11 string) (*models.Invoice, error) {
	var out payReqResponse
	if err := f.do(ctx, http.MethodGet, "/v1/payreq/"+url.PathEscape(bolt11), nil, &out); err != nil {
		return nil, err
	}

	inv := &models.Invoice{
		PaymentRequest: bolt11,
		PaymentHash:    strings.ToLower(out.PaymentHash),
		AmountSats:     out.NumSatoshis,
		Description:    out.Description,
	}
	if out.Timestamp > 0 && out.Expiry > 0 {
		inv.ExpiresAt = time.Unix(out.Timestamp+out.Expiry, 0)
	}
	return inv, nil
}

// PayInvoice pays bolt11 synchronously, spending at most maxFeeSats on routing.
func (f *LightningLNDFacade) PayInvoice(ctx context.Context, bolt11 string, maxFeeSats int64) (*models.Payment, error) {
	body := sendPaymentRequest{PaymentRequest: bolt11, FeeLimit: feeLimit{Fixed: maxFeeSats}}

	var out sendPaymentResponse
	if err := f.do(ctx, http.MethodPost, "/v1/channels/transactions", body, &out); err != nil {
		return nil, err
	}

	hash, _ := base64ToHex(out.PaymentHash)
	if out.PaymentError != "" {
		return &models.Payment{PaymentHash: hash, Status: models.PaymentFailed, FailureReason: out.PaymentError}, nil
	}

	preimage, err := base64ToHex(out.PaymentPreimage)
	if err != nil || preimage == "" {
		return &models.Payment{PaymentHash: hash, Status: models.PaymentInFlight}, nil
	}
	return &models.Payment{
		PaymentHash: hash,
		Preimage:    preimage,
		Status:      models.PaymentSucceeded,
		FeeSats:     out.PaymentRoute.TotalFees,
	}, nil
}

func (f *LightningLNDFacade) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, f.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Grpc-Metadata-macaroon", f.macaroon)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		logger.FromContext(ctx).Errorw("lnd request failed", "method", method, "path", path, "error", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		logger.FromContext(ctx).Errorw("lnd returned error status", "path", path, "status", resp.StatusCode, "body", string(raw))
		return fmt.Errorf("lnd: %s %s: status %d", method, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("lnd: decode: %w", err)
	}
	return nil
}

// base64ToHex converts LND's base64 byte fields to lowercase hex.
func base64ToHex(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
