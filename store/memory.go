// Package store provides Repository implementations: a SQLite database for
// the CLI and an in-memory backend for tests.
package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/davret/tracker"
)

// Memory is an in-memory Repository. It is safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	users   map[string]tracker.User
	symbols map[string]tracker.Symbol
	rules   []tracker.AlertRule
	txs     []tracker.Transaction
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{
		users:   make(map[string]tracker.User),
		symbols: make(map[string]tracker.Symbol),
	}
}

// AddUser registers a user, replacing any previous entry with the same name.
func (m *Memory) AddUser(u tracker.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.Name] = u
}

// AddSymbol registers a symbol, replacing any previous entry with the same
// name.
func (m *Memory) AddSymbol(s tracker.Symbol) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.symbols[s.Name] = s
}

// AddRule registers an alert rule.
func (m *Memory) AddRule(r tracker.AlertRule) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = append(m.rules, r)
}

// Rules returns every alert rule of a user, active or not.
func (m *Memory) Rules(user string) ([]tracker.AlertRule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []tracker.AlertRule
	for _, r := range m.rules {
		if r.User == user {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out, nil
}

// DeactivateRules marks every rule of the user on the symbol inactive.
func (m *Memory) DeactivateRules(user, symbol string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.rules {
		if r.User == user && r.Symbol == symbol {
			m.rules[i].Active = false
		}
	}
	return nil
}

func (m *Memory) Symbols() ([]tracker.Symbol, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]tracker.Symbol, 0, len(m.symbols))
	for _, s := range m.symbols {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) Symbol(name string) (tracker.Symbol, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.symbols[name]
	if !ok {
		return tracker.Symbol{}, fmt.Errorf("symbol %q not found", name)
	}
	return s, nil
}

func (m *Memory) User(name string) (tracker.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[name]
	if !ok {
		return tracker.User{}, fmt.Errorf("user %q not found", name)
	}
	return u, nil
}

func (m *Memory) ActiveRules(symbol string) ([]tracker.AlertRule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []tracker.AlertRule
	for _, r := range m.rules {
		if r.Symbol == symbol && r.Active {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *Memory) AppendTransaction(tx tracker.Transaction) error {
	tx, err := tx.Validate()
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs = append(m.txs, tx)
	return nil
}

func (m *Memory) Transactions(user, symbol string) ([]tracker.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []tracker.Transaction
	for _, tx := range m.txs {
		if tx.User == user && tx.Symbol == symbol {
			out = append(out, tx)
		}
	}
	sortByTime(out)
	return out, nil
}

func (m *Memory) UserTransactions(user string) ([]tracker.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []tracker.Transaction
	for _, tx := range m.txs {
		if tx.User == user {
			out = append(out, tx)
		}
	}
	sortByTime(out)
	return out, nil
}

func (m *Memory) HeldSymbols(user string) ([]string, error) {
	txs, err := m.UserTransactions(user)
	if err != nil {
		return nil, err
	}
	return heldSymbols(txs), nil
}

func sortByTime(txs []tracker.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Time.Before(txs[j].Time) })
}

// heldSymbols folds transactions into the sorted list of symbol names with
// nonzero net quantity.
func heldSymbols(txs []tracker.Transaction) []string {
	net := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		q, err := decimal.NewFromString(tx.Quantity.String())
		if err != nil {
			continue
		}
		net[tx.Symbol] = net[tx.Symbol].Add(q)
	}
	var out []string
	for symbol, quantity := range net {
		if !quantity.IsZero() {
			out = append(out, symbol)
		}
	}
	sort.Strings(out)
	return out
}
