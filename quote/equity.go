// Package quote fetches current prices for equities and crypto assets, one
// blocking call per symbol. Each source carries its own timeout and is opaque
// to the portfolio core, which only sees a price or a failure.
package quote

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const yahooChartURL = "https://query2.finance.yahoo.com/v8/finance/chart"

// Yahoo fetches the latest intraday equity price from the Yahoo chart v8
// endpoint.
type Yahoo struct {
	endpoint string
	client   *http.Client
}

// NewYahoo creates the source. An empty endpoint uses the public API.
func NewYahoo(endpoint string) *Yahoo {
	if endpoint == "" {
		endpoint = yahooChartURL
	}
	return &Yahoo{endpoint: endpoint, client: &http.Client{Timeout: 8 * time.Second}}
}

// Price returns the latest price for the ticker.
func (y *Yahoo) Price(ctx context.Context, ticker string) (float64, error) {
	addr := fmt.Sprintf("%s/%s?interval=1m&range=1d", y.endpoint, ticker)

	var raw struct {
		Chart struct {
			Result []struct {
				Meta struct {
					RegularMarketPrice float64 `json:"regularMarketPrice"`
				} `json:"meta"`
			} `json:"result"`
		} `json:"chart"`
	}
	if err := jwget(ctx, y.client, addr, &raw); err != nil {
		return 0, fmt.Errorf("yahoo %s: %w", ticker, err)
	}
	if len(raw.Chart.Result) == 0 {
		return 0, fmt.Errorf("yahoo %s: no chart result", ticker)
	}
	price := raw.Chart.Result[0].Meta.RegularMarketPrice
	if price <= 0 {
		return 0, fmt.Errorf("yahoo %s: empty market price", ticker)
	}
	return price, nil
}
