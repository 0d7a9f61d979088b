package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/apperr"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBalanceHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	tests := []struct {
		name         string
		authorized   bool
		mockSetup    func(m *MockWalletReader)
		expectedCode int
		expected     *BalanceResponse
	}{
		{
			name:       "with fresh rate",
			authorized: true,
			mockSetup: func(m *MockWalletReader) {
				m.EXPECT().Balance(gomock.Any(), userID).Return(&services.WalletBalance{
					BitcoinSats:        100_000,
					MpesaKES:           decimal.NewFromInt(5300),
					PendingDepositsKES: decimal.NewFromInt(1000),
					PendingWithdrawals: 2_000,
					Rate:               &models.ExchangeRate{BTCKES: decimal.NewFromInt(5_300_000)},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expected: &BalanceResponse{
				BitcoinBalance:     100_000,
				MpesaBalance:       "5300.00",
				PendingDeposits:    "1000.00",
				PendingWithdrawals: 2_000,
				ExchangeRate:       strPtr("5300000.00"),
			},
		},
		{
			name:       "stale rate",
			authorized: true,
			mockSetup: func(m *MockWalletReader) {
				m.EXPECT().Balance(gomock.Any(), userID).Return(&services.WalletBalance{
					BitcoinSats:        100_000,
					MpesaKES:           decimal.Zero,
					PendingDepositsKES: decimal.Zero,
					RateStale:          true,
				}, nil)
			},
			expectedCode: http.StatusOK,
			expected: &BalanceResponse{
				BitcoinBalance:  100_000,
				MpesaBalance:    "0.00",
				PendingDeposits: "0.00",
				RateStale:       true,
			},
		},
		{
			name:         "unauthorized",
			mockSetup:    func(m *MockWalletReader) {},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:       "internal error",
			authorized: true,
			mockSetup: func(m *MockWalletReader) {
				m.EXPECT().Balance(gomock.Any(), userID).Return(nil, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewMockWalletReader(ctrl)
			tt.mockSetup(svc)

			req := httptest.NewRequest(http.MethodGet, "/wallet/balance", nil)
			if tt.authorized {
				req = asUser(req, userID)
			}
			rr := httptest.NewRecorder()
			NewGetBalanceHandler(svc).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expected != nil {
				var resp BalanceResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, *tt.expected, resp)
			}
		})
	}
}

func TestListTransactionsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	tx := sampleTransaction(userID, models.TypeDepositMpesa, models.StatusProcessing)

	tests := []struct {
		name          string
		query         string
		mockSetup     func(m *MockWalletReader)
		expectedCode  int
		expectedLimit int
		expectedCount int
	}{
		{
			name:  "default page",
			query: "",
			mockSetup: func(m *MockWalletReader) {
				m.EXPECT().Transactions(gomock.Any(), userID, 0, 0).Return([]models.Transaction{*tx}, nil)
			},
			expectedCode:  http.StatusOK,
			expectedLimit: services.DefaultHistoryLimit,
			expectedCount: 1,
		},
		{
			name:  "explicit page",
			query: "?limit=5&offset=10",
			mockSetup: func(m *MockWalletReader) {
				m.EXPECT().Transactions(gomock.Any(), userID, 5, 10).Return(nil, nil)
			},
			expectedCode:  http.StatusOK,
			expectedLimit: 5,
		},
		{
			name:         "non numeric limit",
			query:        "?limit=ten",
			mockSetup:    func(m *MockWalletReader) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:  "limit out of range",
			query: "?limit=500",
			mockSetup: func(m *MockWalletReader) {
				m.EXPECT().Transactions(gomock.Any(), userID, 500, 0).Return(nil, apperr.ErrValidation)
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewMockWalletReader(ctrl)
			tt.mockSetup(svc)

			req := asUser(httptest.NewRequest(http.MethodGet, "/wallet/transactions"+tt.query, nil), userID)
			rr := httptest.NewRecorder()
			NewListTransactionsHandler(svc).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode != http.StatusOK {
				return
			}
			var resp TransactionsResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedLimit, resp.Limit)
			assert.Len(t, resp.Transactions, tt.expectedCount)
			assert.NotNil(t, resp.Transactions)
		})
	}
}

func TestGetTransactionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	tx := sampleTransaction(userID, models.TypeWithdrawalMpesa, models.StatusCompleted)

	tests := []struct {
		name         string
		id           string
		mockSetup    func(m *MockWalletReader)
		expectedCode int
	}{
		{
			name: "found",
			id:   tx.ID.String(),
			mockSetup: func(m *MockWalletReader) {
				m.EXPECT().Transaction(gomock.Any(), userID, tx.ID).Return(tx, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "bad id",
			id:           "abc",
			mockSetup:    func(m *MockWalletReader) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "not found",
			id:   tx.ID.String(),
			mockSetup: func(m *MockWalletReader) {
				m.EXPECT().Transaction(gomock.Any(), userID, tx.ID).Return(nil, apperr.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewMockWalletReader(ctrl)
			tt.mockSetup(svc)

			req := withURLParam(asUser(httptest.NewRequest(http.MethodGet, "/wallet/transactions/"+tt.id, nil), userID), "id", tt.id)
			rr := httptest.NewRecorder()
			NewGetTransactionHandler(svc).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				assert.Contains(t, rr.Body.String(), tx.ID.String())
			}
		})
	}
}

func strPtr(s string) *string {
	return &s
}
