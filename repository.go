package tracker

// User is a registered owner of transactions and alert rules.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Repository is the persistence collaborator. The core consumes it as an
// abstract interface; transactional guarantees beyond a single atomic append
// are out of scope.
type Repository interface {
	// Symbols lists every symbol in the catalog.
	Symbols() ([]Symbol, error)

	// Symbol resolves one symbol by name.
	Symbol(name string) (Symbol, error)

	// User resolves one user by name.
	User(name string) (User, error)

	// ActiveRules lists the active alert rules watching a symbol.
	ActiveRules(symbol string) ([]AlertRule, error)

	// AppendTransaction records one transaction. The append is atomic.
	AppendTransaction(tx Transaction) error

	// Transactions lists all transactions for a (user, symbol) pair, ordered
	// by time.
	Transactions(user, symbol string) ([]Transaction, error)

	// UserTransactions lists all transactions for a user across symbols,
	// ordered by time.
	UserTransactions(user string) ([]Transaction, error)

	// HeldSymbols lists the names of symbols with nonzero net quantity for a
	// user.
	HeldSymbols(user string) ([]string, error)
}
