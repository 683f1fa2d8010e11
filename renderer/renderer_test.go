package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/davret/tracker"
)

func TestHoldingMarkdown(t *testing.T) {
	rows := []tracker.Holding{
		{Symbol: "AAPL", Class: tracker.Equity, Quantity: 6, CostBasis: 120, Price: 250, MarketValue: 1500},
		{Symbol: "bitcoin", Class: tracker.Crypto, Quantity: 0.02, CostBasis: 30000, Price: 45000, MarketValue: 900},
	}
	got := HoldingMarkdown("demo", rows)

	for _, want := range []string{"Portfolio for demo", "AAPL", "bitcoin", "2400.00"} {
		if !strings.Contains(got, want) {
			t.Errorf("HoldingMarkdown() missing %q in:\n%s", want, got)
		}
	}
}

func TestHoldingMarkdownEmpty(t *testing.T) {
	got := HoldingMarkdown("demo", nil)
	if !strings.Contains(got, "No open positions.") {
		t.Errorf("HoldingMarkdown() = %q, want empty portfolio notice", got)
	}
}

func TestTransactionsMarkdown(t *testing.T) {
	txs := []tracker.Transaction{
		tracker.NewBuy("demo", "AAPL", tracker.Q(10), tracker.M(120.0, "USD"), time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)),
	}
	got := TransactionsMarkdown(txs)
	if !strings.Contains(got, "2025-01-01") || !strings.Contains(got, "AAPL") {
		t.Errorf("TransactionsMarkdown() = %q, want date and symbol", got)
	}
}

func TestTransactionOneLiner(t *testing.T) {
	at := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	buy := TransactionOneLiner(tracker.NewBuy("demo", "AAPL", tracker.Q(10), tracker.M(120.0, "USD"), at))
	if !strings.HasPrefix(buy, "Bought 10 of AAPL") {
		t.Errorf("buy one-liner = %q", buy)
	}
	sell := TransactionOneLiner(tracker.NewSell("demo", "AAPL", tracker.Q(4), tracker.M(150.0, "USD"), at))
	if !strings.HasPrefix(sell, "Sold 4 of AAPL") {
		t.Errorf("sell one-liner = %q", sell)
	}
}

func TestRulesMarkdown(t *testing.T) {
	upper := 200.0
	got := RulesMarkdown([]tracker.AlertRule{
		{User: "demo", Symbol: "AAPL", Upper: &upper, Active: true},
	})
	if !strings.Contains(got, "| AAPL | demo | 200 | - | true |") {
		t.Errorf("RulesMarkdown() = %q, want AAPL row", got)
	}
}
