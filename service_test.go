package tracker

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type fakeRepo struct {
	symbols map[string]Symbol
	users   map[string]User
	rules   []AlertRule
}

func (r *fakeRepo) Symbols() ([]Symbol, error) {
	var out []Symbol
	for _, s := range r.symbols {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeRepo) Symbol(name string) (Symbol, error) {
	s, ok := r.symbols[name]
	if !ok {
		return Symbol{}, fmt.Errorf("symbol %q not found", name)
	}
	return s, nil
}

func (r *fakeRepo) User(name string) (User, error) {
	u, ok := r.users[name]
	if !ok {
		return User{}, fmt.Errorf("user %q not found", name)
	}
	return u, nil
}

func (r *fakeRepo) ActiveRules(symbol string) ([]AlertRule, error) {
	var out []AlertRule
	for _, rule := range r.rules {
		if rule.Symbol == symbol && rule.Active {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (r *fakeRepo) AppendTransaction(Transaction) error { return nil }

func (r *fakeRepo) Transactions(string, string) ([]Transaction, error) { return nil, nil }

func (r *fakeRepo) UserTransactions(string) ([]Transaction, error) { return nil, nil }

func (r *fakeRepo) HeldSymbols(string) ([]string, error) { return nil, nil }

type fakeSource struct {
	prices map[string]float64
}

func (s fakeSource) Price(_ context.Context, symbol string) (float64, error) {
	price, ok := s.prices[symbol]
	if !ok {
		return 0, fmt.Errorf("no price for %s", symbol)
	}
	return price, nil
}

type fakeRate struct {
	rate float64
	err  error
}

func (r fakeRate) Aggregate(_ context.Context, base, counter string) (float64, error) {
	return r.rate, r.err
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (n *fakeNotifier) Notify(recipient, subject, body string) error {
	n.sent = append(n.sent, fmt.Sprintf("%s: %s: %s", recipient, subject, body))
	return n.err
}

func newTestService(fx RateSource, notifier Notifier) (*PortfolioService, *Ledger) {
	repo := &fakeRepo{
		symbols: map[string]Symbol{
			"AAPL":    {Name: "AAPL", Class: Equity},
			"GOOG":    {Name: "GOOG", Class: Equity},
			"bitcoin": {Name: "bitcoin", Class: Crypto},
			"USD_EUR": {Name: "USD_EUR", Class: FXPair},
		},
		users: map[string]User{
			"demo": {Name: "demo", Email: "demo@example.com"},
		},
		rules: []AlertRule{
			{User: "demo", Symbol: "AAPL", Upper: f(200), Lower: f(100), Active: true},
		},
	}
	ledger := NewLedger(
		NewBuy("demo", "AAPL", Q(10), M(120.0, "USD"), day(1)),
		NewSell("demo", "AAPL", Q(4), M(150.0, "USD"), day(2)),
		NewBuy("demo", "bitcoin", Q(0.02), M(30000.0, "USD"), day(3)),
		NewBuy("demo", "USD_EUR", Q(1000), M(0.92, "EUR"), day(4)),
		NewBuy("demo", "GOOG", Q(50), M(2800.0, "USD"), day(5)),
		NewSell("demo", "GOOG", Q(50), M(2900.0, "USD"), day(6)),
	)
	equity := fakeSource{prices: map[string]float64{"AAPL": 250, "GOOG": 180}}
	crypto := fakeSource{prices: map[string]float64{"bitcoin": 30000}}
	return NewPortfolioService(repo, ledger, equity, crypto, fx, notifier), ledger
}

func TestPortfolio(t *testing.T) {
	svc, _ := newTestService(fakeRate{rate: 0.9}, &fakeNotifier{})

	rows, err := svc.Portfolio(context.Background(), "demo")
	if err != nil {
		t.Fatalf("Portfolio() unexpected error = %v", err)
	}

	// GOOG nets to zero and must be filtered before pricing.
	if len(rows) != 3 {
		t.Fatalf("Portfolio() returned %d rows, want 3: %v", len(rows), rows)
	}
	if rows[0].Symbol != "AAPL" || rows[1].Symbol != "USD_EUR" || rows[2].Symbol != "bitcoin" {
		t.Fatalf("Portfolio() rows out of order: %v", rows)
	}

	aapl := rows[0]
	if aapl.Quantity != 6 {
		t.Errorf("AAPL quantity = %v, want 6", aapl.Quantity)
	}
	if aapl.CostBasis != 120 {
		t.Errorf("AAPL cost basis = %v, want 120", aapl.CostBasis)
	}
	if aapl.Price != 250 || aapl.MarketValue != 1500 {
		t.Errorf("AAPL priced %v market value %v, want 250 and 1500", aapl.Price, aapl.MarketValue)
	}

	if rows[1].Price != 0.9 {
		t.Errorf("USD_EUR price = %v, want the aggregated 0.9", rows[1].Price)
	}
}

func TestPortfolio_OmitsUnavailableSymbol(t *testing.T) {
	// All fx providers down: the fx row is omitted, other rows survive.
	svc, _ := newTestService(fakeRate{err: errors.New("rate unavailable")}, &fakeNotifier{})

	rows, err := svc.Portfolio(context.Background(), "demo")
	if err != nil {
		t.Fatalf("Portfolio() unexpected error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Portfolio() returned %d rows, want 2: %v", len(rows), rows)
	}
	for _, row := range rows {
		if row.Symbol == "USD_EUR" {
			t.Error("Portfolio() priced USD_EUR with no rate available")
		}
	}
}

func TestRefresh_ForwardsTriggersToNotifier(t *testing.T) {
	notifier := &fakeNotifier{}
	svc, _ := newTestService(fakeRate{rate: 0.9}, notifier)

	// AAPL at 250 crosses the upper threshold 200.
	if _, err := svc.Refresh(context.Background(), "demo"); err != nil {
		t.Fatalf("Refresh() unexpected error = %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("notifier got %d messages, want 1: %v", len(notifier.sent), notifier.sent)
	}
	want := "demo@example.com: Price Alert for AAPL: AAPL above threshold 200 (current: 250.0000)"
	if notifier.sent[0] != want {
		t.Errorf("notification = %q, want %q", notifier.sent[0], want)
	}
}

func TestCheckAlerts_NotificationFailureDoesNotPropagate(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("smtp down")}
	svc, _ := newTestService(fakeRate{rate: 0.9}, notifier)

	triggered, err := svc.CheckAlerts("AAPL", 250)
	if err != nil {
		t.Fatalf("CheckAlerts() unexpected error = %v", err)
	}
	if len(triggered) != 1 {
		t.Errorf("CheckAlerts() = %v, want 1 trigger despite delivery failure", triggered)
	}
}
