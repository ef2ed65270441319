// Package journal holds the trade record model: trades, the open working
// month they accumulate in, and the settings that drive month-end math.
package journal

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/cryptojournal/internal/id"
	"github.com/rustyeddy/cryptojournal/market"
	"github.com/rustyeddy/cryptojournal/risk"
	"github.com/shopspring/decimal"
)

const UnknownSymbol = "UNKNOWN"

// TradeID identifies a trade. New ids are ULIDs; legacy backups carry
// millisecond numbers, which decode as their decimal string.
type TradeID string

func (t *TradeID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = TradeID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("trade id: %w", err)
	}
	*t = TradeID(n.String())
	return nil
}

// TradeRecord is one journaled trade. ExitPrice, RealizedPnL and
// RiskRewardRatio are fixed when the record is created; there is no edit,
// only delete and re-enter.
type TradeRecord struct {
	ID              TradeID          `json:"id"`
	Timestamp       time.Time        `json:"date"`
	Symbol          string           `json:"symbol"`
	Direction       market.Direction `json:"type"`
	EntryPrice      decimal.Decimal  `json:"entry"`
	StopLoss        decimal.Decimal  `json:"sl"`
	TakeProfit      decimal.Decimal  `json:"tp"`
	ExitPrice       decimal.Decimal  `json:"exit"`
	Leverage        decimal.Decimal  `json:"leverage"`
	Quantity        decimal.Decimal  `json:"quantity"`
	RealizedPnL     decimal.Decimal  `json:"pnl"`
	RiskRewardRatio decimal.Decimal  `json:"rrRatio"`
	Outcome         market.Outcome   `json:"result"`
}

// Validate checks the fields a stored record must always satisfy.
func (t TradeRecord) Validate() error {
	switch {
	case t.ID == "":
		return &InvalidInputError{Field: "id", Reason: "is empty"}
	case !t.EntryPrice.IsPositive():
		return &InvalidInputError{Field: "entry", Reason: "must be positive"}
	case !t.Quantity.IsPositive():
		return &InvalidInputError{Field: "quantity", Reason: "must be positive"}
	case !t.Direction.Valid():
		return &InvalidInputError{Field: "type", Reason: fmt.Sprintf("unknown direction %q", t.Direction)}
	case !t.Outcome.Valid():
		return &InvalidInputError{Field: "result", Reason: fmt.Sprintf("unknown outcome %q", t.Outcome)}
	}
	return nil
}

// TradeInput is what the user types in to record a trade.
type TradeInput struct {
	Symbol     string           `json:"symbol"`
	Direction  market.Direction `json:"type"`
	Entry      decimal.Decimal  `json:"entry"`
	TakeProfit decimal.Decimal  `json:"tp"`
	StopLoss   decimal.Decimal  `json:"sl"`
	Quantity   decimal.Decimal  `json:"quantity"`
	Leverage   decimal.Decimal  `json:"leverage"`
	Outcome    market.Outcome   `json:"result"`
}

// Setup is the input seen by the risk calculator.
func (in TradeInput) Setup() risk.Setup {
	return risk.Setup{
		Direction:  in.Direction,
		Entry:      in.Entry,
		TakeProfit: in.TakeProfit,
		StopLoss:   in.StopLoss,
		Quantity:   in.Quantity,
	}
}

// Intent is the input seen by the pre-trade checks for a given wallet.
func (in TradeInput) Intent(wallet decimal.Decimal) risk.Intent {
	lev := in.Leverage
	if !lev.IsPositive() {
		lev = decimal.NewFromInt(1)
	}
	return risk.Intent{
		Wallet:     wallet.InexactFloat64(),
		Entry:      in.Entry.InexactFloat64(),
		Stop:       in.StopLoss.InexactFloat64(),
		TakeProfit: in.TakeProfit.InexactFloat64(),
		Quantity:   in.Quantity.InexactFloat64(),
		Leverage:   lev.InexactFloat64(),
	}
}

// NewTrade validates in and builds the record, deriving exit, P&L and R:R
// once. It does not insert or persist anything.
func NewTrade(in TradeInput, at time.Time) (TradeRecord, error) {
	if !in.Entry.IsPositive() {
		return TradeRecord{}, &InvalidInputError{Field: "entry", Reason: "must be positive"}
	}
	if !in.Quantity.IsPositive() {
		return TradeRecord{}, &InvalidInputError{Field: "quantity", Reason: "must be positive"}
	}
	if in.TakeProfit.IsNegative() {
		return TradeRecord{}, &InvalidInputError{Field: "tp", Reason: "must not be negative"}
	}
	if in.StopLoss.IsNegative() {
		return TradeRecord{}, &InvalidInputError{Field: "sl", Reason: "must not be negative"}
	}

	if in.Direction == "" {
		in.Direction = market.Long
	}
	if !in.Direction.Valid() {
		return TradeRecord{}, &InvalidInputError{Field: "type", Reason: fmt.Sprintf("unknown direction %q", in.Direction)}
	}
	if in.Outcome == "" {
		in.Outcome = market.Pending
	}
	if !in.Outcome.Valid() {
		return TradeRecord{}, &InvalidInputError{Field: "result", Reason: fmt.Sprintf("unknown outcome %q", in.Outcome)}
	}

	lev := in.Leverage
	if !lev.IsPositive() {
		lev = decimal.NewFromInt(1)
	}

	symbol := strings.ToUpper(strings.TrimSpace(in.Symbol))
	if symbol == "" {
		symbol = UnknownSymbol
	}

	fill := risk.FinalizeOutcome(in.Setup(), in.Outcome)

	return TradeRecord{
		ID:              TradeID(id.At(at)),
		Timestamp:       at,
		Symbol:          symbol,
		Direction:       in.Direction,
		EntryPrice:      in.Entry,
		StopLoss:        in.StopLoss,
		TakeProfit:      in.TakeProfit,
		ExitPrice:       fill.ExitPrice,
		Leverage:        lev,
		Quantity:        in.Quantity,
		RealizedPnL:     fill.PnL,
		RiskRewardRatio: fill.RiskReward,
		Outcome:         in.Outcome,
	}, nil
}
