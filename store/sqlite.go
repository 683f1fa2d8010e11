package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/davret/tracker"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	name  TEXT PRIMARY KEY,
	email TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS symbols (
	name  TEXT PRIMARY KEY,
	class TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS transactions (
	id       TEXT PRIMARY KEY,
	user     TEXT NOT NULL,
	symbol   TEXT NOT NULL,
	quantity TEXT NOT NULL,
	price    TEXT NOT NULL,
	currency TEXT NOT NULL DEFAULT '',
	time     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS transactions_user_symbol ON transactions(user, symbol);
CREATE TABLE IF NOT EXISTS alerts (
	id     INTEGER PRIMARY KEY AUTOINCREMENT,
	user   TEXT NOT NULL,
	symbol TEXT NOT NULL,
	upper  REAL,
	lower  REAL,
	active INTEGER NOT NULL DEFAULT 1
);
`

// SQLite is a Repository backed by a SQLite database file. Quantities and
// prices are stored as decimal strings to keep the ledger arithmetic exact.
type SQLite struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema.
// Use ":memory:" for an ephemeral database.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("could not open database %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error { return s.db.Close() }

// AddUser inserts or replaces a user.
func (s *SQLite) AddUser(u tracker.User) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO users(name, email) VALUES(?, ?)`, u.Name, u.Email)
	return err
}

// AddSymbol inserts a symbol. Symbols are immutable once created, so an
// existing name is left untouched.
func (s *SQLite) AddSymbol(sym tracker.Symbol) error {
	_, err := s.db.Exec(`INSERT OR IGNORE INTO symbols(name, class) VALUES(?, ?)`, sym.Name, string(sym.Class))
	return err
}

// AddRule inserts an alert rule.
func (s *SQLite) AddRule(r tracker.AlertRule) error {
	_, err := s.db.Exec(`INSERT INTO alerts(user, symbol, upper, lower, active) VALUES(?, ?, ?, ?, ?)`,
		r.User, r.Symbol, r.Upper, r.Lower, r.Active)
	return err
}

// Rules returns every alert rule of a user, active or not.
func (s *SQLite) Rules(user string) ([]tracker.AlertRule, error) {
	rows, err := s.db.Query(`SELECT user, symbol, upper, lower, active FROM alerts WHERE user = ? ORDER BY symbol`, user)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []tracker.AlertRule
	for rows.Next() {
		var r tracker.AlertRule
		if err := rows.Scan(&r.User, &r.Symbol, &r.Upper, &r.Lower, &r.Active); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeactivateRules marks every rule of the user on the symbol inactive.
func (s *SQLite) DeactivateRules(user, symbol string) error {
	_, err := s.db.Exec(`UPDATE alerts SET active = 0 WHERE user = ? AND symbol = ?`, user, symbol)
	return err
}

func (s *SQLite) Symbols() ([]tracker.Symbol, error) {
	rows, err := s.db.Query(`SELECT name, class FROM symbols ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []tracker.Symbol
	for rows.Next() {
		var sym tracker.Symbol
		var class string
		if err := rows.Scan(&sym.Name, &class); err != nil {
			return nil, err
		}
		sym.Class = tracker.AssetClass(class)
		out = append(out, sym)
	}
	return out, rows.Err()
}

func (s *SQLite) Symbol(name string) (tracker.Symbol, error) {
	var sym tracker.Symbol
	var class string
	err := s.db.QueryRow(`SELECT name, class FROM symbols WHERE name = ?`, name).Scan(&sym.Name, &class)
	if err == sql.ErrNoRows {
		return tracker.Symbol{}, fmt.Errorf("symbol %q not found", name)
	}
	if err != nil {
		return tracker.Symbol{}, err
	}
	sym.Class = tracker.AssetClass(class)
	return sym, nil
}

func (s *SQLite) User(name string) (tracker.User, error) {
	var u tracker.User
	err := s.db.QueryRow(`SELECT name, email FROM users WHERE name = ?`, name).Scan(&u.Name, &u.Email)
	if err == sql.ErrNoRows {
		return tracker.User{}, fmt.Errorf("user %q not found", name)
	}
	return u, err
}

func (s *SQLite) ActiveRules(symbol string) ([]tracker.AlertRule, error) {
	rows, err := s.db.Query(`SELECT user, symbol, upper, lower FROM alerts WHERE symbol = ? AND active = 1`, symbol)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []tracker.AlertRule
	for rows.Next() {
		r := tracker.AlertRule{Active: true}
		if err := rows.Scan(&r.User, &r.Symbol, &r.Upper, &r.Lower); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLite) AppendTransaction(tx tracker.Transaction) error {
	tx, err := tx.Validate()
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO transactions(id, user, symbol, quantity, price, currency, time) VALUES(?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.User, tx.Symbol, tx.Quantity.String(), tx.Price.Amount().String(), tx.Price.Currency(), tx.Time.UTC().Format(time.RFC3339Nano))
	return err
}

func (s *SQLite) Transactions(user, symbol string) ([]tracker.Transaction, error) {
	return s.queryTransactions(`SELECT id, user, symbol, quantity, price, currency, time FROM transactions WHERE user = ? AND symbol = ? ORDER BY time`, user, symbol)
}

func (s *SQLite) UserTransactions(user string) ([]tracker.Transaction, error) {
	return s.queryTransactions(`SELECT id, user, symbol, quantity, price, currency, time FROM transactions WHERE user = ? ORDER BY time`, user)
}

func (s *SQLite) queryTransactions(query string, args ...any) ([]tracker.Transaction, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []tracker.Transaction
	for rows.Next() {
		var tx tracker.Transaction
		var quantity, price, cur, when string
		if err := rows.Scan(&tx.ID, &tx.User, &tx.Symbol, &quantity, &price, &cur, &when); err != nil {
			return nil, err
		}
		q, err := decimal.NewFromString(quantity)
		if err != nil {
			return nil, fmt.Errorf("invalid stored quantity %q: %w", quantity, err)
		}
		p, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("invalid stored price %q: %w", price, err)
		}
		t, err := time.Parse(time.RFC3339Nano, when)
		if err != nil {
			return nil, fmt.Errorf("invalid stored time %q: %w", when, err)
		}
		tx.Quantity = tracker.Q(q)
		tx.Price = tracker.M(p, cur)
		tx.Time = t
		out = append(out, tx)
	}
	return out, rows.Err()
}

func (s *SQLite) HeldSymbols(user string) ([]string, error) {
	txs, err := s.UserTransactions(user)
	if err != nil {
		return nil, err
	}
	return heldSymbols(txs), nil
}
