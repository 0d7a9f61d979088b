package facades

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sbilibin2017/gw-pesa-settlement/internal/logger"
	"github.com/shopspring/decimal"
)

// darajaTimestampLayout is the YYYYMMDDHHmmss format Daraja expects, in EAT.
const darajaTimestampLayout = "20060102150405"

var eat = time.FixedZone("EAT", 3*60*60)

// MpesaConfig holds Daraja credentials and callback endpoints.
type MpesaConfig struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	ShortCode      string
	PassKey        string
	Initiator      string
	SecurityCred   string
	CallbackURL    string
	ResultURL      string
}

// MpesaDarajaFacade talks to the Safaricom Daraja API.
type MpesaDarajaFacade struct {
	cfg        MpesaConfig
	httpClient *http.Client
	now        func() time.Time

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewMpesaDarajaFacade creates a Daraja client.
func NewMpesaDarajaFacade(cfg MpesaConfig, httpClient *http.Client, now func() time.Time) *MpesaDarajaFacade {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if now == nil {
		now = time.Now
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &MpesaDarajaFacade{
		cfg:        cfg,
		httpClient: httpClient,
		now:        now,
	}
}

type stkPushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

type b2cRequest struct {
	OriginatorConversationID string `json:"OriginatorConversationID"`
	InitiatorName            string `json:"InitiatorName"`
	SecurityCredential       string `json:"SecurityCredential"`
	CommandID                string `json:"CommandID"`
	Amount                   int64  `json:"Amount"`
	PartyA                   string `json:"PartyA"`
	PartyB                   string `json:"PartyB"`
	Remarks                  string `json:"Remarks"`
	QueueTimeOutURL          string `json:"QueueTimeOutURL"`
	ResultURL                string `json:"ResultURL"`
	Occasion                 string `json:"Occasion"`
}

type darajaResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ConversationID      string `json:"ConversationID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	ErrorCode           string `json:"errorCode"`
	ErrorMessage        string `json:"errorMessage"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

// STKPush prompts phone to pay amountKES and returns the CheckoutRequestID.
func (f *MpesaDarajaFacade) STKPush(ctx context.Context, phone string, amountKES decimal.Decimal, reference string) (string, error) {
	ts := f.now().In(eat).Format(darajaTimestampLayout)
	msisdn := strings.TrimPrefix(phone, "+")

	body := stkPushRequest{
		BusinessShortCode: f.cfg.ShortCode,
		Password:          base64.StdEncoding.EncodeToString([]byte(f.cfg.ShortCode + f.cfg.PassKey + ts)),
		Timestamp:         ts,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            amountKES.IntPart(),
		PartyA:            msisdn,
		PartyB:            f.cfg.ShortCode,
		PhoneNumber:       msisdn,
		CallBackURL:       f.cfg.CallbackURL,
		AccountReference:  shorten(reference, 12),
		TransactionDesc:   "Wallet deposit",
	}

	resp, err := f.post(ctx, "/mpesa/stkpush/v1/processrequest", body)
	if err != nil {
		return "", err
	}
	if resp.CheckoutRequestID == "" {
		return "", fmt.Errorf("daraja: stk push response missing CheckoutRequestID")
	}
	return resp.CheckoutRequestID, nil
}

// B2CPayment pays amountKES to phone and returns the ConversationID.
func (f *MpesaDarajaFacade) B2CPayment(ctx context.Context, phone string, amountKES decimal.Decimal, reference string) (string, error) {
	body := b2cRequest{
		OriginatorConversationID: reference,
		InitiatorName:            f.cfg.Initiator,
		SecurityCredential:       f.cfg.SecurityCred,
		CommandID:                "BusinessPayment",
		Amount:                   amountKES.IntPart(),
		PartyA:                   f.cfg.ShortCode,
		PartyB:                   strings.TrimPrefix(phone, "+"),
		Remarks:                  "Wallet withdrawal",
		QueueTimeOutURL:          f.cfg.ResultURL,
		ResultURL:                f.cfg.ResultURL,
		Occasion:                 reference,
	}

	resp, err := f.post(ctx, "/mpesa/b2c/v1/paymentrequest", body)
	if err != nil {
		return "", err
	}
	if resp.ConversationID == "" {
		return "", fmt.Errorf("daraja: b2c response missing ConversationID")
	}
	return resp.ConversationID, nil
}

func (f *MpesaDarajaFacade) post(ctx context.Context, path string, body any) (*darajaResponse, error) {
	token, err := f.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		logger.FromContext(ctx).Errorw("daraja request failed", "path", path, "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	var out darajaResponse
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		logger.FromContext(ctx).Errorw("daraja returned unreadable body", "path", path, "status", resp.StatusCode, "body", string(raw))
		return nil, fmt.Errorf("daraja: status %d: %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK || out.ResponseCode != "0" {
		if resp.StatusCode == http.StatusUnauthorized {
			f.resetToken()
		}
		logger.FromContext(ctx).Errorw("daraja rejected request", "path", path, "status", resp.StatusCode,
			"response_code", out.ResponseCode, "error_code", out.ErrorCode, "message", out.ErrorMessage+out.ResponseDescription)
		return nil, fmt.Errorf("daraja: status %d: %s%s", resp.StatusCode, out.ErrorMessage, out.ResponseDescription)
	}

	logger.FromContext(ctx).Infow("daraja request accepted", "path", path,
		"checkout_request_id", out.CheckoutRequestID, "conversation_id", out.ConversationID)
	return &out, nil
}

// accessToken returns a cached OAuth token, refreshing it a minute before expiry.
func (f *MpesaDarajaFacade) accessToken(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.token != "" && f.now().Before(f.tokenExpiry) {
		return f.token, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.cfg.BaseURL+"/oauth/v1/generate?grant_type=client_credentials", nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(f.cfg.ConsumerKey, f.cfg.ConsumerSecret)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		logger.FromContext(ctx).Errorw("daraja token request failed", "error", err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("daraja: token status %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("daraja: decode token: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("daraja: empty access token")
	}

	ttl, err := strconv.Atoi(tok.ExpiresIn)
	if err != nil || ttl <= 0 {
		ttl = 3599
	}
	f.token = tok.AccessToken
	f.tokenExpiry = f.now().Add(time.Duration(ttl)*time.Second - time.Minute)
	return f.token, nil
}

func (f *MpesaDarajaFacade) resetToken() {
	f.mu.Lock()
	f.token = ""
	f.mu.Unlock()
}

func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
