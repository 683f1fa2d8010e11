package tracker

import (
	"iter"
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

// Ledger holds the append-only set of transactions, ordered by time.
//
// The ledger is read-mostly: pricing and alert flows only read it, recording
// appends to it. A single append is atomic; the ordering requirement is not
// used by the cost-basis computation but is kept for any future lot-based
// extension.
type Ledger struct {
	mu           sync.RWMutex
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger(txs ...Transaction) *Ledger {
	l := &Ledger{transactions: make([]Transaction, 0, len(txs))}
	l.Append(txs...)
	return l
}

// Append appends transactions to this ledger and maintains the chronological
// order of transactions.
func (l *Ledger) Append(txs ...Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.transactions = append(l.transactions, txs...)
	l.stableSort()
}

// stableSort sorts the ledger by transaction time. The sort is stable, meaning
// transactions at the same instant maintain their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Time.Before(l.transactions[j].Time)
	})
}

// Len returns the number of transactions recorded.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.transactions)
}

// Transactions returns an iterator over a snapshot of the ledger, yielding
// transactions accepted by any of the given filters, in chronological order.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	l.mu.RLock()
	snapshot := slices.Clone(l.transactions)
	l.mu.RUnlock()
	return func(yield func(int, Transaction) bool) {
		for i, tx := range snapshot {
			accept := false
			for _, filter := range filters {
				if filter(tx) {
					accept = true
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// AcceptAll accepts every transaction.
func AcceptAll(Transaction) bool { return true }

// ByUser returns a predicate that filters transactions by user.
func ByUser(user string) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.User == user }
}

// ByPosition returns a predicate that filters transactions by user and symbol.
func ByPosition(user, symbol string) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.User == user && tx.Symbol == symbol }
}

// NetQuantity sums all transaction quantities, signed, for the (user, symbol)
// pair. It may be negative if the ledger records short exposure.
func (l *Ledger) NetQuantity(user, symbol string) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	net := decimal.Zero
	for _, tx := range l.transactions {
		if tx.User == user && tx.Symbol == symbol {
			net = net.Add(tx.Quantity.value)
		}
	}
	return net.InexactFloat64()
}

// AverageCostBasis computes the average acquisition cost for the
// (user, symbol) pair: Σ(quantity·price) over acquisitions divided by the sum
// of acquisition quantities. Disposals never affect this calculation, and a
// pair without acquisitions has a cost basis of 0, not an error.
func (l *Ledger) AverageCostBasis(user, symbol string) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	totalCost, totalQuantity := decimal.Zero, decimal.Zero
	for _, tx := range l.transactions {
		if tx.User != user || tx.Symbol != symbol || !tx.IsAcquisition() {
			continue
		}
		totalCost = totalCost.Add(tx.Quantity.value.Mul(tx.Price.value))
		totalQuantity = totalQuantity.Add(tx.Quantity.value)
	}
	if totalQuantity.IsZero() {
		return 0
	}
	return totalCost.Div(totalQuantity).InexactFloat64()
}

// CurrentHoldings returns the net quantity per symbol for every symbol the
// user has ever transacted, including symbols whose net quantity is now
// exactly 0. Callers filter zero positions, the ledger itself does not.
func (l *Ledger) CurrentHoldings(user string) map[string]float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	net := make(map[string]decimal.Decimal)
	for _, tx := range l.transactions {
		if tx.User != user {
			continue
		}
		net[tx.Symbol] = net[tx.Symbol].Add(tx.Quantity.value)
	}
	holdings := make(map[string]float64, len(net))
	for symbol, quantity := range net {
		holdings[symbol] = quantity.InexactFloat64()
	}
	return holdings
}

// AllUsers iterates over the users that appear in the ledger, in order.
func (l *Ledger) AllUsers() iter.Seq[string] {
	l.mu.RLock()
	visited := make(map[string]struct{})
	for _, tx := range l.transactions {
		visited[tx.User] = struct{}{}
	}
	l.mu.RUnlock()
	return func(yield func(string) bool) {
		users := slices.Collect(maps.Keys(visited))
		slices.Sort(users)
		for _, user := range users {
			if !yield(user) {
				return
			}
		}
	}
}
