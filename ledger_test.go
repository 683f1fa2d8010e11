package tracker

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2025, 1, d, 10, 0, 0, 0, time.UTC)
}

func TestLedger_NetQuantity(t *testing.T) {
	ledger := NewLedger(
		NewBuy("demo", "AAPL", Q(10), M(120.0, "USD"), day(1)),
		NewSell("demo", "AAPL", Q(4), M(150.0, "USD"), day(2)),
		NewBuy("demo", "bitcoin", Q(0.02), M(30000.0, "USD"), day(3)),
		NewBuy("other", "AAPL", Q(99), M(100.0, "USD"), day(4)),
	)

	testCases := []struct {
		name   string
		user   string
		symbol string
		want   float64
	}{
		{name: "buys minus sells", user: "demo", symbol: "AAPL", want: 6},
		{name: "fractional position", user: "demo", symbol: "bitcoin", want: 0.02},
		{name: "other user untouched", user: "other", symbol: "AAPL", want: 99},
		{name: "never transacted", user: "demo", symbol: "GOOG", want: 0},
		{name: "unknown user", user: "nobody", symbol: "AAPL", want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ledger.NetQuantity(tc.user, tc.symbol); got != tc.want {
				t.Errorf("NetQuantity(%s, %s) = %v, want %v", tc.user, tc.symbol, got, tc.want)
			}
		})
	}
}

func TestLedger_NetQuantity_ShortExposure(t *testing.T) {
	ledger := NewLedger(
		NewSell("demo", "AAPL", Q(5), M(150.0, "USD"), day(1)),
	)
	if got := ledger.NetQuantity("demo", "AAPL"); got != -5 {
		t.Errorf("NetQuantity() = %v, want -5", got)
	}
}

func TestLedger_AverageCostBasis(t *testing.T) {
	testCases := []struct {
		name string
		txs  []Transaction
		want float64
	}{
		{
			name: "sell ignored by basis calc",
			txs: []Transaction{
				NewBuy("demo", "AAPL", Q(10), M(120.0, "USD"), day(1)),
				NewSell("demo", "AAPL", Q(4), M(150.0, "USD"), day(2)),
			},
			want: 120.0,
		},
		{
			name: "weighted average over two buys",
			txs: []Transaction{
				NewBuy("demo", "AAPL", Q(10), M(100.0, "USD"), day(1)),
				NewBuy("demo", "AAPL", Q(10), M(200.0, "USD"), day(2)),
			},
			want: 150.0,
		},
		{
			name: "no acquisitions yields zero, not an error",
			txs: []Transaction{
				NewSell("demo", "AAPL", Q(4), M(150.0, "USD"), day(1)),
			},
			want: 0,
		},
		{
			name: "empty ledger yields zero",
			txs:  nil,
			want: 0,
		},
		{
			name: "selling more than bought still ignores sells",
			txs: []Transaction{
				NewBuy("demo", "AAPL", Q(10), M(120.0, "USD"), day(1)),
				NewSell("demo", "AAPL", Q(25), M(150.0, "USD"), day(2)),
			},
			want: 120.0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ledger := NewLedger(tc.txs...)
			if got := ledger.AverageCostBasis("demo", "AAPL"); got != tc.want {
				t.Errorf("AverageCostBasis() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLedger_AverageCostBasis_OrderInvariant(t *testing.T) {
	txs := []Transaction{
		NewBuy("demo", "AAPL", Q(10), M(120.0, "USD"), day(1)),
		NewBuy("demo", "AAPL", Q(5), M(80.0, "USD"), day(2)),
		NewSell("demo", "AAPL", Q(3), M(140.0, "USD"), day(3)),
		NewBuy("demo", "AAPL", Q(2.5), M(96.4, "USD"), day(4)),
	}

	want := NewLedger(txs...).AverageCostBasis("demo", "AAPL")

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]Transaction, len(txs))
		copy(shuffled, txs)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		ledger := NewLedger()
		for _, tx := range shuffled {
			ledger.Append(tx)
		}
		if got := ledger.AverageCostBasis("demo", "AAPL"); got != want {
			t.Fatalf("AverageCostBasis() = %v after shuffle %d, want %v", got, i, want)
		}
	}
}

func TestLedger_NetQuantity_RandomizedSum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var want float64
	var txs []Transaction
	for i := 0; i < 50; i++ {
		q := math.Round((rng.Float64()*20-10)*100) / 100
		if q == 0 {
			continue
		}
		want += q
		txs = append(txs, Transaction{
			User: "demo", Symbol: "X",
			Quantity: Q(q),
			Price:    M(rng.Float64()*100, "USD"),
			Time:     day(1 + i%28),
		})
	}

	rng.Shuffle(len(txs), func(a, b int) { txs[a], txs[b] = txs[b], txs[a] })
	ledger := NewLedger(txs...)

	if got := ledger.NetQuantity("demo", "X"); math.Abs(got-want) > 1e-9 {
		t.Errorf("NetQuantity() = %v, want %v", got, want)
	}
}

func TestLedger_CurrentHoldings(t *testing.T) {
	ledger := NewLedger(
		NewBuy("demo", "AAPL", Q(10), M(120.0, "USD"), day(1)),
		NewBuy("demo", "GOOG", Q(50), M(2800.0, "USD"), day(2)),
		NewSell("demo", "GOOG", Q(50), M(2900.0, "USD"), day(3)),
		NewBuy("other", "MSFT", Q(1), M(400.0, "USD"), day(4)),
	)

	holdings := ledger.CurrentHoldings("demo")

	if len(holdings) != 2 {
		t.Fatalf("CurrentHoldings() returned %d symbols, want 2: %v", len(holdings), holdings)
	}
	if got := holdings["AAPL"]; got != 10 {
		t.Errorf("holdings[AAPL] = %v, want 10", got)
	}
	// A fully sold position stays in the map with net quantity 0; callers
	// filter, the ledger does not.
	if got, ok := holdings["GOOG"]; !ok || got != 0 {
		t.Errorf("holdings[GOOG] = %v (present=%v), want 0 present", got, ok)
	}
	if _, ok := holdings["MSFT"]; ok {
		t.Error("holdings contains another user's symbol")
	}
}

func TestLedger_AppendKeepsChronologicalOrder(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(NewBuy("demo", "AAPL", Q(1), M(120.0, "USD"), day(10)))
	ledger.Append(NewBuy("demo", "AAPL", Q(1), M(110.0, "USD"), day(2)))
	ledger.Append(NewBuy("demo", "AAPL", Q(1), M(130.0, "USD"), day(20)))

	var last time.Time
	for _, tx := range ledger.Transactions(AcceptAll) {
		if tx.Time.Before(last) {
			t.Fatalf("transactions out of order: %v before %v", tx.Time, last)
		}
		last = tx.Time
	}
}

func TestLedger_AllUsers(t *testing.T) {
	ledger := NewLedger(
		NewBuy("bob", "AAPL", Q(1), M(120.0, "USD"), day(1)),
		NewBuy("alice", "AAPL", Q(1), M(120.0, "USD"), day(2)),
		NewBuy("bob", "GOOG", Q(1), M(2800.0, "USD"), day(3)),
	)

	var users []string
	for user := range ledger.AllUsers() {
		users = append(users, user)
	}
	if len(users) != 2 || users[0] != "alice" || users[1] != "bob" {
		t.Errorf("AllUsers() = %v, want [alice bob]", users)
	}
}
