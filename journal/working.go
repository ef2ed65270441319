package journal

import "github.com/shopspring/decimal"

// DefaultStartBalance seeds the very first working month.
var DefaultStartBalance = decimal.NewFromInt(100)

// WorkingMonth is the open accounting period. Trades are kept most recent
// first. Methods return new values and never modify the receiver's slice.
type WorkingMonth struct {
	Key          MonthKey        `json:"currentMonth"`
	Trades       []TradeRecord   `json:"trades"`
	StartBalance decimal.Decimal `json:"startBalance"`
}

func NewWorkingMonth(key MonthKey, startBalance decimal.Decimal) WorkingMonth {
	return WorkingMonth{Key: key, StartBalance: startBalance}
}

// Add puts t at the head of the trade list.
func (w WorkingMonth) Add(t TradeRecord) WorkingMonth {
	trades := make([]TradeRecord, 0, len(w.Trades)+1)
	trades = append(trades, t)
	trades = append(trades, w.Trades...)
	w.Trades = trades
	return w
}

func (w WorkingMonth) Find(tradeID TradeID) (TradeRecord, bool) {
	for _, t := range w.Trades {
		if t.ID == tradeID {
			return t, true
		}
	}
	return TradeRecord{}, false
}

// Clear drops every trade but keeps key and balance.
func (w WorkingMonth) Clear() WorkingMonth {
	w.Trades = nil
	return w
}

// DeleteTrade removes the trade with the given id. An unknown id leaves the
// month unchanged.
func DeleteTrade(w WorkingMonth, tradeID TradeID) WorkingMonth {
	if _, ok := w.Find(tradeID); !ok {
		return w
	}

	trades := make([]TradeRecord, 0, len(w.Trades)-1)
	for _, t := range w.Trades {
		if t.ID != tradeID {
			trades = append(trades, t)
		}
	}
	w.Trades = trades
	return w
}
