package fxrate

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const exchangerateAPIURL = "https://v6.exchangerate-api.com/v6"

// ExchangerateAPI quotes pairs from the exchangerate-api.com v6 latest
// endpoint. The base currency is part of the URL, the counter is looked up in
// the returned conversion table.
type ExchangerateAPI struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewExchangerateAPI creates the client for the given API key. An empty
// endpoint uses the public API.
func NewExchangerateAPI(endpoint, apiKey string) *ExchangerateAPI {
	if endpoint == "" {
		endpoint = exchangerateAPIURL
	}
	return &ExchangerateAPI{endpoint: endpoint, apiKey: apiKey, client: new(http.Client)}
}

func (p *ExchangerateAPI) Name() string { return "exchangerate-api" }

// Fetch returns the base→counter rate.
func (p *ExchangerateAPI) Fetch(ctx context.Context, base, counter string) (float64, error) {
	// https://v6.exchangerate-api.com/v6/KEY/latest/USD
	addr := fmt.Sprintf("%s/%s/latest/%s", strings.TrimSuffix(p.endpoint, "/"), p.apiKey, base)

	var payload struct {
		Result          string             `json:"result"`
		ConversionRates map[string]float64 `json:"conversion_rates"`
	}
	if err := jwget(ctx, p.client, addr, &payload); err != nil {
		return 0, err
	}
	if payload.Result != "success" {
		return 0, fmt.Errorf("%w: result %q", ErrMalformed, payload.Result)
	}
	rate, ok := payload.ConversionRates[counter]
	if !ok {
		return 0, fmt.Errorf("%w: %s has no rate for %s", ErrPairNotOffered, base, counter)
	}
	return rate, nil
}
