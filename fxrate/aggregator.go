package fxrate

import (
	"context"
	"fmt"
	"log"
	"time"
)

// DefaultTimeout bounds one provider fetch within an aggregation call.
const DefaultTimeout = 5 * time.Second

type weightedClient struct {
	client Client
	weight float64
}

// Aggregator queries a fixed set of providers and combines their quotes into
// one reliability-weighted rate. The configuration is immutable once built;
// there is no process-wide provider state.
type Aggregator struct {
	clients []weightedClient
	timeout time.Duration
}

// NewAggregator creates an aggregator with the given per-provider timeout.
// A non-positive timeout falls back to DefaultTimeout.
func NewAggregator(timeout time.Duration) *Aggregator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Aggregator{timeout: timeout}
}

// Register adds a provider with its reliability weight. The weight must be
// positive; there is no upper bound, though weights at or below 1.0 are the
// expected range.
func (a *Aggregator) Register(c Client, weight float64) error {
	if weight <= 0 {
		return fmt.Errorf("provider %s: reliability weight must be positive, got %g", c.Name(), weight)
	}
	a.clients = append(a.clients, weightedClient{client: c, weight: weight})
	return nil
}

// fetchResult carries the outcome of one provider fetch back to the fold.
type fetchResult struct {
	quote Quote
	err   error
}

// Aggregate queries every configured provider for the base→counter rate and
// returns Σ(rate·weight) / Σ(weight) over the providers that succeeded.
//
// Fetches run concurrently and independently; the only synchronization point
// is the final fold, which waits for every dispatched fetch to complete or
// time out. A provider hanging past the per-provider timeout is treated as an
// ordinary fetch failure and never blocks the others. When zero providers
// produce a usable quote the error wraps ErrUnavailable.
func (a *Aggregator) Aggregate(ctx context.Context, base, counter string) (float64, error) {
	if len(a.clients) == 0 {
		return 0, fmt.Errorf("aggregate %s/%s: no providers configured: %w", base, counter, ErrUnavailable)
	}

	results := make(chan fetchResult, len(a.clients))
	for _, wc := range a.clients {
		go func(wc weightedClient) {
			results <- a.fetch(ctx, wc, base, counter)
		}(wc)
	}

	var totalWeightedRate, totalWeight float64
	for range a.clients {
		res := <-results
		if res.err != nil {
			// Recovered locally: the failure only shrinks the input set.
			log.Printf("fxrate: %v", res.err)
			continue
		}
		totalWeightedRate += res.quote.Rate * res.quote.Weight
		totalWeight += res.quote.Weight
	}

	if totalWeight == 0 {
		return 0, fmt.Errorf("aggregate %s/%s: all providers failed: %w", base, counter, ErrUnavailable)
	}
	return totalWeightedRate / totalWeight, nil
}

// fetch runs one provider fetch under the bounded per-provider timeout. A
// client that ignores cancellation is abandoned once the timeout elapses.
func (a *Aggregator) fetch(ctx context.Context, wc weightedClient, base, counter string) fetchResult {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	done := make(chan fetchResult, 1)
	go func() {
		rate, err := wc.client.Fetch(ctx, base, counter)
		if err != nil {
			done <- fetchResult{err: fmt.Errorf("%s %s/%s: %w", wc.client.Name(), base, counter, err)}
			return
		}
		done <- fetchResult{quote: Quote{Provider: wc.client.Name(), Rate: rate, Weight: wc.weight}}
	}()

	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		return fetchResult{err: fmt.Errorf("%s %s/%s: %w", wc.client.Name(), base, counter, ErrTimeout)}
	}
}
