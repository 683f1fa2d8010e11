package quote

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const coinGeckoURL = "https://api.coingecko.com/api/v3"

// CoinGecko fetches the latest crypto price, in USD, from the CoinGecko
// simple price endpoint. Asset ids are CoinGecko ids like "bitcoin" or
// "ethereum".
type CoinGecko struct {
	endpoint string
	client   *http.Client
}

// NewCoinGecko creates the source. An empty endpoint uses the public API.
func NewCoinGecko(endpoint string) *CoinGecko {
	if endpoint == "" {
		endpoint = coinGeckoURL
	}
	return &CoinGecko{endpoint: endpoint, client: &http.Client{Timeout: 8 * time.Second}}
}

// Price returns the latest USD price for the asset id.
func (c *CoinGecko) Price(ctx context.Context, assetID string) (float64, error) {
	assetID = strings.ToLower(strings.TrimSpace(assetID))
	addr := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd", c.endpoint, assetID)

	// {"bitcoin": {"usd": 30000.12}}
	content := make(map[string]map[string]float64)
	if err := jwget(ctx, c.client, addr, &content); err != nil {
		return 0, fmt.Errorf("coingecko %s: %w", assetID, err)
	}
	price, ok := content[assetID]["usd"]
	if !ok {
		return 0, fmt.Errorf("coingecko %s: no usd price in response", assetID)
	}
	return price, nil
}

// Coin is one entry of the CoinGecko asset catalog.
type Coin struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Coins returns the full asset catalog, used to resolve tickers like "btc"
// into CoinGecko ids. The catalog moves slowly, so the request goes through
// the daily disk cache.
func (c *CoinGecko) Coins(ctx context.Context) ([]Coin, error) {
	addr := c.endpoint + "/coins/list"
	content := make([]Coin, 0)
	if err := jwget(ctx, newDailyCachingClient(), addr, &content); err != nil {
		return nil, fmt.Errorf("coingecko coins list: %w", err)
	}
	return content, nil
}

// Resolve finds the asset id for a ticker symbol, e.g. "btc" → "bitcoin".
// When several assets share the ticker the first catalog entry wins.
func (c *CoinGecko) Resolve(ctx context.Context, symbol string) (string, error) {
	symbol = strings.ToLower(strings.TrimSpace(symbol))
	coins, err := c.Coins(ctx)
	if err != nil {
		return "", err
	}
	for _, coin := range coins {
		if coin.Symbol == symbol || coin.ID == symbol {
			return coin.ID, nil
		}
	}
	return "", fmt.Errorf("coingecko: unknown asset %q", symbol)
}
