package fxrate

import (
	"context"
	"fmt"
	"net/http"
)

const openExchangeRatesURL = "https://openexchangerates.org/api/latest.json"

// OpenExchangeRates quotes pairs from the openexchangerates.org latest
// endpoint. The free plan only serves USD-denominated rates, so a pair whose
// base is not USD is derived from the two USD legs; when either leg is
// missing the provider abstains rather than guessing.
type OpenExchangeRates struct {
	endpoint string
	appID    string
	client   *http.Client
}

// NewOpenExchangeRates creates the client for the given app id. An empty
// endpoint uses the public API.
func NewOpenExchangeRates(endpoint, appID string) *OpenExchangeRates {
	if endpoint == "" {
		endpoint = openExchangeRatesURL
	}
	return &OpenExchangeRates{endpoint: endpoint, appID: appID, client: new(http.Client)}
}

func (p *OpenExchangeRates) Name() string { return "openexchangerates" }

// Fetch returns the base→counter rate, computed from the USD-denominated
// rate table.
func (p *OpenExchangeRates) Fetch(ctx context.Context, base, counter string) (float64, error) {
	addr := fmt.Sprintf("%s?app_id=%s", p.endpoint, p.appID)

	var payload struct {
		Base  string             `json:"base"`
		Rates map[string]float64 `json:"rates"`
	}
	if err := jwget(ctx, p.client, addr, &payload); err != nil {
		return 0, err
	}

	if base == payload.Base {
		rate, ok := payload.Rates[counter]
		if !ok {
			return 0, fmt.Errorf("%w: no rate for %s", ErrPairNotOffered, counter)
		}
		return rate, nil
	}

	// Indirect computation: base→counter from the two table legs. Only emit a
	// quote when both legs are present.
	baseRate, okBase := payload.Rates[base]
	counterRate, okCounter := payload.Rates[counter]
	if !okBase || !okCounter {
		return 0, fmt.Errorf("%w: missing leg for %s/%s", ErrPairNotOffered, base, counter)
	}
	if baseRate == 0 {
		return 0, fmt.Errorf("%w: zero rate for leg %s", ErrMalformed, base)
	}
	return counterRate / baseRate, nil
}
