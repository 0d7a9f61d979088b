package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/apperr"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeRateHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("fresh rate", func(t *testing.T) {
		svc := NewMockRateReader(ctrl)
		svc.EXPECT().Current(gomock.Any()).Return(&models.ExchangeRate{
			Source:    "gw-exchanger",
			BTCKES:    decimal.RequireFromString("5300000.12"),
			CreatedAt: testTime,
		}, nil)

		rr := httptest.NewRecorder()
		NewExchangeRateHandler(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/exchange-rates/current", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var resp ExchangeRateResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "5300000.12", resp.BTCKES)
		assert.Equal(t, "0.05300000", resp.SatKES)
		assert.Equal(t, "gw-exchanger", resp.Source)
		assert.True(t, testTime.Equal(resp.UpdatedAt))
	})

	t.Run("stale", func(t *testing.T) {
		svc := NewMockRateReader(ctrl)
		svc.EXPECT().Current(gomock.Any()).Return(nil, apperr.ErrStaleRate)

		rr := httptest.NewRecorder()
		NewExchangeRateHandler(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/exchange-rates/current", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Equal(t, apperr.CodeStaleRate, errorCode(t, rr))
	})
}
