// Package fxrate combines foreign-exchange quotes from multiple independent,
// unreliable providers into a single trusted rate.
//
// Each provider is queried through the Client capability; any transport
// error, malformed response or missing pair yields "no quote" from that
// provider only, never aborting the whole aggregation. Surviving quotes are
// folded into a reliability-weighted mean. Providers are never required to
// agree and no outlier rejection is performed.
package fxrate

import (
	"context"
	"errors"
)

// Failure taxonomy for a single provider fetch. All of them fold into an
// ordinary provider failure for aggregation purposes but remain
// distinguishable for logging.
var (
	// ErrTimeout reports a provider that did not answer within the bounded
	// per-provider timeout.
	ErrTimeout = errors.New("provider timed out")
	// ErrMalformed reports a payload that could not be parsed into a rate.
	ErrMalformed = errors.New("malformed provider response")
	// ErrPairNotOffered reports a provider that answered but does not quote
	// the requested pair.
	ErrPairNotOffered = errors.New("pair not offered")
)

// ErrUnavailable is returned by Aggregate when zero usable quotes were
// collected. Callers must treat it as a soft "no current price" condition.
var ErrUnavailable = errors.New("rate unavailable")

// Client fetches one quote for one (base, counter) currency pair from one
// named external source. Implementations encapsulate their own request and
// parse logic; adding a provider means implementing this interface, not
// branching on a name.
type Client interface {
	// Name identifies the provider in logs and quotes.
	Name() string
	// Fetch returns the current base→counter rate. It honors ctx
	// cancellation and fails with (a wrapped) ErrTimeout, ErrMalformed or
	// ErrPairNotOffered.
	Fetch(ctx context.Context, base, counter string) (float64, error)
}

// Quote is an ephemeral (provider, rate, weight) triple produced within one
// aggregation call. It is never persisted.
type Quote struct {
	Provider string
	Rate     float64
	Weight   float64
}
