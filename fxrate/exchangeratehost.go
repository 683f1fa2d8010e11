package fxrate

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
)

const exchangerateHostURL = "https://api.exchangerate.host/latest"

/*
	{
	    "base": "USD",
	    "date": "2026-09-01",
	    "rates": {
	        "EUR": 0.8554
	    }
	}
*/

// ExchangerateHost quotes any pair directly from the exchangerate.host latest
// endpoint.
type ExchangerateHost struct {
	endpoint string
	client   *http.Client
}

// NewExchangerateHost creates the client. An empty endpoint uses the public
// API.
func NewExchangerateHost(endpoint string) *ExchangerateHost {
	if endpoint == "" {
		endpoint = exchangerateHostURL
	}
	return &ExchangerateHost{endpoint: endpoint, client: new(http.Client)}
}

func (p *ExchangerateHost) Name() string { return "exchangerate.host" }

// Fetch returns the base→counter rate.
func (p *ExchangerateHost) Fetch(ctx context.Context, base, counter string) (float64, error) {
	addr := fmt.Sprintf("%s?base=%s&symbols=%s", p.endpoint, base, counter)
	var jobj any
	if err := jwget(ctx, p.client, addr, &jobj); err != nil {
		return 0, err
	}

	path := fmt.Sprintf("$.rates.%s", counter)
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		// The response parsed but carries no rate for the requested pair.
		return 0, fmt.Errorf("%w: no %q in response", ErrPairNotOffered, path)
	}
	// because jsonpath is never clear about whether it returns a list of one
	// answer, or a single answer: keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a number: %v", ErrMalformed, path, jval)
	}
	return val, nil
}
