package facades

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDarajaServer(t *testing.T, tokenCalls *int32, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(tokenCalls, 1)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key", user)
		assert.Equal(t, "secret", pass)
		assert.Equal(t, "client_credentials", r.URL.Query().Get("grant_type"))
		_, _ = w.Write([]byte(`{"access_token":"tok","expires_in":"3599"}`))
	})
	mux.HandleFunc("/", handler)
	return httptest.NewServer(mux)
}

func testMpesaConfig(baseURL string) MpesaConfig {
	return MpesaConfig{
		BaseURL:        baseURL,
		ConsumerKey:    "key",
		ConsumerSecret: "secret",
		ShortCode:      "174379",
		PassKey:        "pass",
		Initiator:      "testapi",
		SecurityCred:   "cred",
		CallbackURL:    "https://example.com/callbacks/mpesa/stk",
		ResultURL:      "https://example.com/callbacks/mpesa/b2c",
	}
}

func TestMpesaDarajaFacade_STKPush(t *testing.T) {
	now := time.Date(2026, 3, 10, 7, 30, 0, 0, time.UTC)
	var tokenCalls int32

	srv := newDarajaServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mpesa/stkpush/v1/processrequest", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body stkPushRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "20260310103000", body.Timestamp)
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("174379pass20260310103000")), body.Password)
		assert.Equal(t, int64(1000), body.Amount)
		assert.Equal(t, "254712345678", body.PartyA)
		assert.Equal(t, "254712345678", body.PhoneNumber)
		assert.Equal(t, "174379", body.PartyB)
		assert.Equal(t, "CustomerPayBillOnline", body.TransactionType)
		assert.Len(t, body.AccountReference, 12)

		_, _ = w.Write([]byte(`{"MerchantRequestID":"29115-34620561-1","CheckoutRequestID":"ws_CO_191220191020363925","ResponseCode":"0","ResponseDescription":"Success. Request accepted for processing"}`))
	})
	defer srv.Close()

	facade := NewMpesaDarajaFacade(testMpesaConfig(srv.URL), srv.Client(), func() time.Time { return now })

	id, err := facade.STKPush(context.Background(), "+254712345678", decimal.NewFromInt(1000), "0b7a6f9e-1d2c-4e5f-8a9b-0c1d2e3f4a5b")
	require.NoError(t, err)
	assert.Equal(t, "ws_CO_191220191020363925", id)

	_, err = facade.STKPush(context.Background(), "+254712345678", decimal.NewFromInt(1000), "ref")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls), "token is cached")
}

func TestMpesaDarajaFacade_STKPush_Rejected(t *testing.T) {
	var tokenCalls int32
	srv := newDarajaServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"requestId":"1","errorCode":"400.002.02","errorMessage":"Bad Request - Invalid PhoneNumber"}`))
	})
	defer srv.Close()

	facade := NewMpesaDarajaFacade(testMpesaConfig(srv.URL), srv.Client(), nil)
	_, err := facade.STKPush(context.Background(), "+254700000000", decimal.NewFromInt(10), "ref")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid PhoneNumber")
}

func TestMpesaDarajaFacade_B2CPayment(t *testing.T) {
	var tokenCalls int32
	srv := newDarajaServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mpesa/b2c/v1/paymentrequest", r.URL.Path)

		var body b2cRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "BusinessPayment", body.CommandID)
		assert.Equal(t, int64(5300), body.Amount)
		assert.Equal(t, "174379", body.PartyA)
		assert.Equal(t, "254712345678", body.PartyB)
		assert.Equal(t, "tx-1", body.OriginatorConversationID)
		assert.Equal(t, "https://example.com/callbacks/mpesa/b2c", body.ResultURL)

		_, _ = w.Write([]byte(`{"ConversationID":"AG_20191219_00005797af5d7d75f652","OriginatorConversationID":"tx-1","ResponseCode":"0","ResponseDescription":"Accept the service request successfully."}`))
	})
	defer srv.Close()

	facade := NewMpesaDarajaFacade(testMpesaConfig(srv.URL), srv.Client(), nil)
	id, err := facade.B2CPayment(context.Background(), "+254712345678", decimal.NewFromInt(5300), "tx-1")
	require.NoError(t, err)
	assert.Equal(t, "AG_20191219_00005797af5d7d75f652", id)
}

func TestMpesaDarajaFacade_TokenFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	facade := NewMpesaDarajaFacade(testMpesaConfig(srv.URL), srv.Client(), nil)
	_, err := facade.B2CPayment(context.Background(), "+254712345678", decimal.NewFromInt(100), "tx-1")
	assert.Error(t, err)
}
