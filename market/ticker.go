package market

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Ticker is a display-only price snapshot for one symbol.
type Ticker struct {
	Symbol        string          `json:"symbol"`
	LastPrice     decimal.Decimal `json:"lastPrice"`
	ChangePercent decimal.Decimal `json:"changePercent"` // 24h change, in percent
	Time          time.Time       `json:"time"`
}

// Volatility is the absolute 24h change, used as the volatility input of
// adaptive sizing.
func (t Ticker) Volatility() float64 {
	return t.ChangePercent.Abs().InexactFloat64()
}

// Feed supplies ticker snapshots.
type Feed interface {
	Ticker(ctx context.Context, symbol string) (Ticker, error)
}

// FeedUnavailableError reports that the price source could not be reached or
// answered with something unusable. It is never fatal.
type FeedUnavailableError struct {
	Symbol string
	Err    error
}

func (e *FeedUnavailableError) Error() string {
	return fmt.Sprintf("price feed unavailable for %s: %v", e.Symbol, e.Err)
}

func (e *FeedUnavailableError) Unwrap() error { return e.Err }
