package tracker

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is a single signed entry in the ledger: an acquisition when the
// quantity is positive, a disposal when it is negative. Transactions are
// append-only, never mutated or deleted.
type Transaction struct {
	ID       string    // unique id, assigned on validation when empty
	User     string    // owner of the position
	Symbol   string    // symbol name, see Symbol
	Quantity Quantity  // signed number of units
	Price    Money     // unit price paid or received
	Time     time.Time // when the transaction occurred
}

// NewBuy creates an acquisition transaction.
func NewBuy(user, symbol string, quantity Quantity, price Money, at time.Time) Transaction {
	return Transaction{User: user, Symbol: symbol, Quantity: quantity, Price: price, Time: at}
}

// NewSell creates a disposal transaction. The quantity is given positive and
// recorded negative.
func NewSell(user, symbol string, quantity Quantity, price Money, at time.Time) Transaction {
	return Transaction{User: user, Symbol: symbol, Quantity: Q(0).Sub(quantity), Price: price, Time: at}
}

// IsAcquisition reports whether this transaction adds to the position.
func (t Transaction) IsAcquisition() bool { return t.Quantity.IsPositive() }

// Cost returns quantity × unit price.
func (t Transaction) Cost() Money { return t.Price.Mul(t.Quantity) }

func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID && t.User == o.User && t.Symbol == o.Symbol &&
		t.Quantity.Equal(o.Quantity) && t.Price.Equal(o.Price) && t.Time.Equal(o.Time)
}

// Validate checks the transaction fields and applies quick fixes where
// applicable: a missing id is assigned, a zero time defaults to now.
func (t Transaction) Validate() (Transaction, error) {
	if t.User == "" {
		return t, errors.New("transaction user is missing")
	}
	if t.Symbol == "" {
		return t, errors.New("transaction symbol is missing")
	}
	if t.Quantity.IsZero() {
		return t, errors.New("transaction quantity must be nonzero")
	}
	if t.Price.IsNegative() {
		return t, errors.New("transaction unit price must not be negative")
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Time.IsZero() {
		t.Time = time.Now()
	}
	return t, nil
}

// txJSON is a specialized struct to persist the unit price in two fields,
// amount and currency.
type txJSON struct {
	ID       string          `json:"id,omitempty"`
	User     string          `json:"user"`
	Symbol   string          `json:"symbol"`
	Quantity Quantity        `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency,omitempty"`
	Time     time.Time       `json:"time"`
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
func (t Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(txJSON{
		ID:       t.ID,
		User:     t.User,
		Symbol:   t.Symbol,
		Quantity: t.Quantity,
		Price:    t.Price.value,
		Currency: t.Price.cur,
		Time:     t.Time,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transaction.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp txJSON
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.ID = temp.ID
	t.User = temp.User
	t.Symbol = temp.Symbol
	t.Quantity = temp.Quantity
	t.Price = M(temp.Price, temp.Currency)
	t.Time = temp.Time
	return nil
}
