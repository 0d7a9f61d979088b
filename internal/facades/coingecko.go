package facades

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sbilibin2017/gw-pesa-settlement/internal/logger"
	"github.com/shopspring/decimal"
)

const coinGeckoTimeout = 10 * time.Second

// CoinGeckoFacade reads the BTC/KES price from the CoinGecko simple price API.
type CoinGeckoFacade struct {
	baseURL    string
	httpClient *http.Client
}

// NewCoinGeckoFacade creates a facade for the API rooted at baseURL.
func NewCoinGeckoFacade(baseURL string, httpClient *http.Client) *CoinGeckoFacade {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: coinGeckoTimeout}
	}
	return &CoinGeckoFacade{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Name identifies the feed on recorded samples.
func (f *CoinGeckoFacade) Name() string { return "coingecko" }

type simplePriceResponse map[string]map[string]json.Number

// BTCKES fetches the price of one bitcoin in shillings.
func (f *CoinGeckoFacade) BTCKES(ctx context.Context) (decimal.Decimal, error) {
	url := f.baseURL + "/simple/price?ids=bitcoin&vs_currencies=kes"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		logger.FromContext(ctx).Errorw("coingecko request failed", "url", url, "error", err)
		return decimal.Zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.FromContext(ctx).Errorw("coingecko returned error status", "status", resp.StatusCode, "body", string(body))
		return decimal.Zero, fmt.Errorf("coingecko: unexpected status %d", resp.StatusCode)
	}

	var prices simplePriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&prices); err != nil {
		return decimal.Zero, fmt.Errorf("coingecko: decode: %w", err)
	}

	raw, ok := prices["bitcoin"]["kes"]
	if !ok {
		return decimal.Zero, fmt.Errorf("coingecko: bitcoin/kes missing from response")
	}
	price, err := decimal.NewFromString(raw.String())
	if err != nil || !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("coingecko: invalid price %q", raw)
	}
	return price, nil
}
