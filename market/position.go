package market

import (
	"fmt"
	"strings"
)

// Direction is the side of a leveraged position.
type Direction string

const (
	Long  Direction = "long"
	Short Direction = "short"
)

// ParseDirection accepts long/short (and buy/sell) in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "long", "buy":
		return Long, nil
	case "short", "sell":
		return Short, nil
	default:
		return "", fmt.Errorf("unknown direction %q (want long|short)", s)
	}
}

func (d Direction) Valid() bool {
	return d == Long || d == Short
}

// Label is the upper-case form shown in trade tables.
func (d Direction) Label() string {
	return strings.ToUpper(string(d))
}

// Outcome is the user-declared result of a trade.
type Outcome string

const (
	Win       Outcome = "win"
	Loss      Outcome = "loss"
	Breakeven Outcome = "breakeven"
	Pending   Outcome = "pending"
)

// ParseOutcome accepts the outcome names plus the short forms w, l, be.
// An empty string means Pending.
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "win", "w":
		return Win, nil
	case "loss", "l":
		return Loss, nil
	case "breakeven", "be":
		return Breakeven, nil
	case "", "pending":
		return Pending, nil
	default:
		return "", fmt.Errorf("unknown outcome %q (want win|loss|breakeven|pending)", s)
	}
}

func (o Outcome) Valid() bool {
	switch o {
	case Win, Loss, Breakeven, Pending:
		return true
	}
	return false
}

// Label is the badge text: WIN, LOSS, BE or PENDING.
func (o Outcome) Label() string {
	switch o {
	case Win:
		return "WIN"
	case Loss:
		return "LOSS"
	case Breakeven:
		return "BE"
	default:
		return "PENDING"
	}
}
