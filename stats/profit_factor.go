package stats

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type PFKind int

const (
	Undefined PFKind = iota
	Finite
	Infinite
)

const (
	infinitySymbol  = "∞"
	undefinedSymbol = "-"
)

// ProfitFactor is gross wins over gross losses, with sentinels for "no
// losses" (Infinite) and "nothing to compare" (Undefined).
type ProfitFactor struct {
	Kind  PFKind
	Value decimal.Decimal
}

func (p ProfitFactor) String() string {
	switch p.Kind {
	case Finite:
		return p.Value.StringFixed(2)
	case Infinite:
		return infinitySymbol
	default:
		return undefinedSymbol
	}
}

// MarshalJSON writes the full-precision value, "∞" or "-" as a string.
func (p ProfitFactor) MarshalJSON() ([]byte, error) {
	if p.Kind == Finite {
		return json.Marshal(p.Value.String())
	}
	return json.Marshal(p.String())
}

func (p *ProfitFactor) UnmarshalJSON(b []byte) error {
	var s string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	} else {
		s = string(b)
	}

	switch s {
	case infinitySymbol, "Infinity":
		*p = ProfitFactor{Kind: Infinite}
		return nil
	case undefinedSymbol, "", "null":
		*p = ProfitFactor{Kind: Undefined}
		return nil
	}

	v, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("profit factor %q: %w", s, err)
	}
	*p = ProfitFactor{Kind: Finite, Value: v}
	return nil
}
