package tracker

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sync"
)

// PriceSource resolves the current price of a single symbol with one blocking
// call. Implementations carry their own timeout.
type PriceSource interface {
	Price(ctx context.Context, symbol string) (float64, error)
}

// RateSource aggregates an fx rate for a (base, counter) pair.
// *fxrate.Aggregator implements it.
type RateSource interface {
	Aggregate(ctx context.Context, base, counter string) (float64, error)
}

// Notifier delivers one rendered alert message to one recipient.
type Notifier interface {
	Notify(recipient, subject, body string) error
}

// Holding is one priced row of a user's portfolio.
type Holding struct {
	Symbol      string
	Class       AssetClass
	Quantity    float64
	CostBasis   float64
	Price       float64
	MarketValue float64
}

// PortfolioService joins ledger positions with current prices and feeds them
// into the alert engine. Price sources are picked by asset class: equities
// and crypto each use a direct quote fetch, fx pairs go through the rate
// aggregator.
type PortfolioService struct {
	repo     Repository
	ledger   *Ledger
	equity   PriceSource
	crypto   PriceSource
	fx       RateSource
	notifier Notifier
}

// NewPortfolioService wires the orchestrator. All collaborators are required.
func NewPortfolioService(repo Repository, ledger *Ledger, equity, crypto PriceSource, fx RateSource, notifier Notifier) *PortfolioService {
	return &PortfolioService{
		repo:     repo,
		ledger:   ledger,
		equity:   equity,
		crypto:   crypto,
		fx:       fx,
		notifier: notifier,
	}
}

// resolvePrice picks the price source matching the symbol's asset class.
func (s *PortfolioService) resolvePrice(ctx context.Context, sym Symbol) (float64, error) {
	switch sym.Class {
	case Equity:
		return s.equity.Price(ctx, sym.Name)
	case Crypto:
		return s.crypto.Price(ctx, sym.Name)
	case FXPair:
		base, counter, err := sym.Pair()
		if err != nil {
			return 0, err
		}
		return s.fx.Aggregate(ctx, base, counter)
	default:
		return 0, fmt.Errorf("symbol %q has unknown asset class %q", sym.Name, sym.Class)
	}
}

// Portfolio prices a user's nonzero positions and returns one row per symbol
// whose price resolved, sorted by symbol name.
//
// Partial results are the expected steady state: a symbol whose price is
// unavailable this cycle is logged and omitted, never fatal to the rest of
// the portfolio.
func (s *PortfolioService) Portfolio(ctx context.Context, user string) ([]Holding, error) {
	holdings := s.ledger.CurrentHoldings(user)

	names := make([]string, 0, len(holdings))
	for name, quantity := range holdings {
		if quantity != 0 {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	// Pricing work fans out per symbol; rows is the only shared state and is
	// written under mu.
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		rows []Holding
	)
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()

			sym, err := s.repo.Symbol(name)
			if err != nil {
				log.Printf("portfolio %s: symbol %s not in catalog: %v", user, name, err)
				return
			}
			price, err := s.resolvePrice(ctx, sym)
			if err != nil {
				// No current price: omit the row for this cycle.
				log.Printf("portfolio %s: no price for %s: %v", user, name, err)
				return
			}

			quantity := holdings[name]
			row := Holding{
				Symbol:      name,
				Class:       sym.Class,
				Quantity:    quantity,
				CostBasis:   s.ledger.AverageCostBasis(user, name),
				Price:       price,
				MarketValue: quantity * price,
			}
			mu.Lock()
			rows = append(rows, row)
			mu.Unlock()
		}(name)
	}
	wg.Wait()

	slices.SortFunc(rows, func(a, b Holding) int {
		switch {
		case a.Symbol < b.Symbol:
			return -1
		case a.Symbol > b.Symbol:
			return 1
		default:
			return 0
		}
	})
	return rows, nil
}

// CheckAlerts evaluates every active rule watching the symbol against the
// current price and forwards the triggers to the notifier. Notification
// failures are logged and never retried; they do not affect the evaluation.
func (s *PortfolioService) CheckAlerts(symbol string, price float64) ([]TriggeredAlert, error) {
	rules, err := s.repo.ActiveRules(symbol)
	if err != nil {
		return nil, fmt.Errorf("could not list alert rules for %s: %w", symbol, err)
	}

	triggered := Evaluate(symbol, price, rules)
	for _, alert := range triggered {
		recipient := alert.User
		if user, err := s.repo.User(alert.User); err == nil && user.Email != "" {
			recipient = user.Email
		}
		if err := s.notifier.Notify(recipient, alert.Subject(), alert.String()); err != nil {
			log.Printf("alert delivery to %s failed (ignored): %v", recipient, err)
		}
	}
	return triggered, nil
}

// Refresh prices a user's portfolio and runs the alert check on every priced
// symbol. It returns the priced rows.
func (s *PortfolioService) Refresh(ctx context.Context, user string) ([]Holding, error) {
	rows, err := s.Portfolio(ctx, user)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if _, err := s.CheckAlerts(row.Symbol, row.Price); err != nil {
			log.Printf("refresh %s: %v", user, err)
		}
	}
	return rows, nil
}
