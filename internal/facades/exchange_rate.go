package facades

import (
	"context"
	"fmt"

	"github.com/sbilibin2017/gw-pesa-settlement/internal/logger"
	pb "github.com/sbilibin2017/proto-exchange/exchange"
	"github.com/shopspring/decimal"
)

// ExchangeRatesGRPCFacade reads the BTC/KES price from the gw-exchanger service.
type ExchangeRatesGRPCFacade struct {
	client pb.ExchangeServiceClient
}

// NewExchangeRatesGRPCFacade creates a new facade with a gRPC client.
func NewExchangeRatesGRPCFacade(client pb.ExchangeServiceClient) *ExchangeRatesGRPCFacade {
	return &ExchangeRatesGRPCFacade{client: client}
}

// Name identifies the feed on recorded samples.
func (f *ExchangeRatesGRPCFacade) Name() string { return "gw-exchanger" }

// BTCKES fetches the price of one bitcoin in shillings.
func (f *ExchangeRatesGRPCFacade) BTCKES(ctx context.Context) (decimal.Decimal, error) {
	req := &pb.CurrencyRequest{
		FromCurrency: "BTC",
		ToCurrency:   "KES",
	}

	resp, err := f.client.GetExchangeRateForCurrency(ctx, req)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to fetch exchange rate via gRPC",
			"from", req.FromCurrency, "to", req.ToCurrency, "error", err)
		return decimal.Zero, err
	}
	if resp.Rate <= 0 {
		return decimal.Zero, fmt.Errorf("gw-exchanger returned non-positive rate %v", resp.Rate)
	}

	return decimal.NewFromFloat32(resp.Rate), nil
}
