package tracker

import (
	"fmt"
	"strings"
)

// AssetClass tags a Symbol with the kind of asset it represents. The class
// decides which price source resolves the symbol's current price.
type AssetClass string

const (
	// Equity is a stock priced by a single equity quote fetch.
	Equity AssetClass = "equity"
	// Crypto is a crypto asset priced by a single crypto quote fetch.
	Crypto AssetClass = "crypto"
	// FXPair is a currency pair priced by the multi-provider rate aggregator.
	FXPair AssetClass = "fx-pair"
)

// ParseAssetClass parses a string into an AssetClass.
func ParseAssetClass(s string) (AssetClass, error) {
	switch AssetClass(s) {
	case Equity, Crypto, FXPair:
		return AssetClass(s), nil
	default:
		return "", fmt.Errorf("unknown asset class: %q", s)
	}
}

// Symbol identifies a tradable asset. A symbol is immutable once created and
// is referenced by name everywhere else.
//
// For fx pairs the name follows the "<BASE>_<COUNTER>" convention, e.g.
// "USD_EUR".
type Symbol struct {
	Name  string     `json:"name"`
	Class AssetClass `json:"class"`
}

// Pair decomposes an fx-pair symbol name into its base and counter currency
// codes. It returns an error when the symbol is not an fx pair or when the
// name does not contain exactly one underscore.
func (s Symbol) Pair() (base, counter string, err error) {
	if s.Class != FXPair {
		return "", "", fmt.Errorf("symbol %q is not an fx pair", s.Name)
	}
	parts := strings.Split(s.Name, "_")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("malformed fx pair name %q: want \"BASE_COUNTER\"", s.Name)
	}
	return parts[0], parts[1], nil
}

func (s Symbol) String() string { return s.Name }
