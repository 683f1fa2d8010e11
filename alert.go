package tracker

import "fmt"

// AlertRule is a user-defined threshold watch on a symbol. Either threshold
// may be absent, in which case it is never compared. A rule with both
// thresholds absent never triggers.
type AlertRule struct {
	User   string   `json:"user"`
	Symbol string   `json:"symbol"`
	Upper  *float64 `json:"upper,omitempty"`
	Lower  *float64 `json:"lower,omitempty"`
	Active bool     `json:"active"`
}

// BreachDirection describes which threshold a price reached.
type BreachDirection int

const (
	// BreachUpper means the price reached or passed the upper threshold.
	BreachUpper BreachDirection = iota
	// BreachLower means the price reached or fell below the lower threshold.
	BreachLower
)

func (d BreachDirection) String() string {
	switch d {
	case BreachUpper:
		return "above"
	case BreachLower:
		return "below"
	default:
		return "unknown"
	}
}

// TriggeredAlert is one threshold crossing detected by Evaluate.
type TriggeredAlert struct {
	User      string
	Symbol    string
	Direction BreachDirection
	Threshold float64
	Price     float64
}

// Subject returns the notification subject line for this trigger.
func (a TriggeredAlert) Subject() string {
	return fmt.Sprintf("Price Alert for %s", a.Symbol)
}

func (a TriggeredAlert) String() string {
	return fmt.Sprintf("%s %s threshold %g (current: %.4f)", a.Symbol, a.Direction, a.Threshold, a.Price)
}

// Evaluate checks the current price of a symbol against the given rules and
// returns the resulting triggers, zero or more.
//
// The engine is stateless: identical inputs produce identical triggers, and a
// condition that keeps holding re-triggers on every call. The upper and lower
// checks are independent and inclusive, so a rule whose lower threshold
// exceeds its upper threshold can fire both directions in one call; this
// mirrors the rules as the user wrote them and is not guarded against.
func Evaluate(symbol string, currentPrice float64, rules []AlertRule) []TriggeredAlert {
	var triggered []TriggeredAlert
	for _, rule := range rules {
		if !rule.Active || rule.Symbol != symbol {
			continue
		}
		if rule.Upper != nil && currentPrice >= *rule.Upper {
			triggered = append(triggered, TriggeredAlert{
				User:      rule.User,
				Symbol:    symbol,
				Direction: BreachUpper,
				Threshold: *rule.Upper,
				Price:     currentPrice,
			})
		}
		if rule.Lower != nil && currentPrice <= *rule.Lower {
			triggered = append(triggered, TriggeredAlert{
				User:      rule.User,
				Symbol:    symbol,
				Direction: BreachLower,
				Threshold: *rule.Lower,
				Price:     currentPrice,
			})
		}
	}
	return triggered
}
