package handlers

//go:generate mockgen -source=exchange_rate.go -destination=exchange_rate_mock.go -package=handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
)

// RateReader serves the current rate.
type RateReader interface {
	Current(ctx context.Context) (*models.ExchangeRate, error) // Newest fresh sample
}

// ExchangeRateResponse is the current BTC/KES rate
// swagger:model ExchangeRateResponse
type ExchangeRateResponse struct {
	// KES per BTC
	BTCKES string `json:"btc_kes" example:"5300000.00"`

	// KES per sat
	SatKES string `json:"sat_kes" example:"0.05300000"`

	Source    string    `json:"source" example:"gw-exchanger"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewExchangeRateHandler returns an HTTP handler for the current exchange rate.
// @Summary Get current exchange rate
// @Description Returns the newest BTC/KES sample that is still fresh
// @Tags exchange
// @Produce json
// @Success 200 {object} handlers.ExchangeRateResponse
// @Failure 401 {object} apperr.Response "Unauthorized"
// @Failure 503 {object} apperr.Response "No fresh exchange rate"
// @Router /exchange-rates/current [get]
// @Security BearerAuth
func NewExchangeRateHandler(svc RateReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		rate, err := svc.Current(ctx)
		if err != nil {
			writeError(ctx, w, "failed to get exchange rate", err)
			return
		}

		writeJSON(w, http.StatusOK, ExchangeRateResponse{
			BTCKES:    rate.BTCKES.StringFixed(models.KESScale),
			SatKES:    rate.BTCKES.Shift(-8).StringFixed(8),
			Source:    rate.Source,
			UpdatedAt: rate.CreatedAt,
		})
	}
}
