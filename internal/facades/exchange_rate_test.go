package facades

import (
	"context"
	"errors"
	"testing"

	pb "github.com/sbilibin2017/proto-exchange/exchange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
)

// --- Fake gRPC client ---
type fakeExchangeClient struct {
	rate float32
	err  error
	req  *pb.CurrencyRequest
}

func (f *fakeExchangeClient) GetExchangeRates(ctx context.Context, _ *pb.Empty, opts ...grpc.CallOption) (*pb.ExchangeRatesResponse, error) {
	return nil, errors.New("not used")
}

func (f *fakeExchangeClient) GetExchangeRateForCurrency(ctx context.Context, req *pb.CurrencyRequest, opts ...grpc.CallOption) (*pb.ExchangeRateResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &pb.ExchangeRateResponse{FromCurrency: req.FromCurrency, ToCurrency: req.ToCurrency, Rate: f.rate}, nil
}

// --- Tests ---
func TestExchangeRatesGRPCFacade_BTCKES(t *testing.T) {
	client := &fakeExchangeClient{rate: 5300000}
	facade := NewExchangeRatesGRPCFacade(client)

	rate, err := facade.BTCKES(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "5300000", rate.String())
	assert.Equal(t, "BTC", client.req.FromCurrency)
	assert.Equal(t, "KES", client.req.ToCurrency)
	assert.Equal(t, "gw-exchanger", facade.Name())
}

func TestExchangeRatesGRPCFacade_BTCKES_Error(t *testing.T) {
	facade := NewExchangeRatesGRPCFacade(&fakeExchangeClient{err: errors.New("grpc error")})

	rate, err := facade.BTCKES(context.Background())
	assert.Error(t, err)
	assert.True(t, rate.IsZero())
}

func TestExchangeRatesGRPCFacade_BTCKES_NonPositive(t *testing.T) {
	facade := NewExchangeRatesGRPCFacade(&fakeExchangeClient{rate: 0})

	_, err := facade.BTCKES(context.Background())
	assert.Error(t, err)
}
