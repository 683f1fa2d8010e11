// Package tracker provides the core logic for tracking a user's holdings
// across heterogeneous asset classes (equities, crypto, foreign-exchange
// pairs).
//
// The core functionalities include:
//   - Ledger Management: Recording signed buy/sell transactions per user and
//     symbol in an append-only record, and deriving net quantity and average
//     acquisition cost from it on demand.
//   - Price Resolution: Joining ledger positions with live prices obtained
//     from single-source quote fetchers (equity, crypto) or from the
//     multi-provider weighted fx rate aggregator.
//   - Alert Evaluation: A stateless engine that detects threshold crossings
//     and emits triggered-alert events for delivery by a notifier.
//
// This package serves as the foundational logic for the `ptk` command-line
// tool. Persistence, outbound notification and provider HTTP plumbing live
// in the store, notify, quote and fxrate subpackages and are consumed here
// through narrow interfaces.
package tracker
