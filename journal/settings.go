package journal

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Settings are the user's persisted preferences. All values are percents.
type Settings struct {
	TakerFeePercent   decimal.Decimal `json:"takerFee" yaml:"taker_fee"`
	MakerFeePercent   decimal.Decimal `json:"makerFee" yaml:"maker_fee"`
	TargetROIPercent  decimal.Decimal `json:"targetROI" yaml:"target_roi"`
	WithdrawalPercent decimal.Decimal `json:"withdrawalPercent" yaml:"withdrawal_percent"`
	CompoundPercent   decimal.Decimal `json:"compoundPercent" yaml:"compound_percent"`
}

func DefaultSettings() Settings {
	return Settings{
		TakerFeePercent:   decimal.RequireFromString("0.055"),
		MakerFeePercent:   decimal.RequireFromString("0.02"),
		TargetROIPercent:  decimal.NewFromInt(120),
		WithdrawalPercent: decimal.NewFromInt(67),
		CompoundPercent:   decimal.NewFromInt(33),
	}
}

// Validate is the input-edge check used by settings forms and commands.
func (s Settings) Validate() error {
	fields := []struct {
		name string
		v    decimal.Decimal
	}{
		{"takerFee", s.TakerFeePercent},
		{"makerFee", s.MakerFeePercent},
		{"targetROI", s.TargetROIPercent},
		{"withdrawalPercent", s.WithdrawalPercent},
		{"compoundPercent", s.CompoundPercent},
	}
	for _, f := range fields {
		if f.v.IsNegative() {
			return &InvalidInputError{Field: f.name, Reason: "must not be negative"}
		}
	}
	if !s.WithdrawalPercent.Add(s.CompoundPercent).Equal(hundred) {
		return &InvalidInputError{Field: "withdrawalPercent", Reason: "withdrawal and compound must sum to 100"}
	}
	return nil
}

// Split returns the withdrawal and compound percents used at month end,
// scaled so they sum to 100. A negative or empty split falls back to the
// default 67/33.
func (s Settings) Split() (withdraw, compound decimal.Decimal) {
	w, c := s.WithdrawalPercent, s.CompoundPercent
	sum := w.Add(c)
	if w.IsNegative() || c.IsNegative() || sum.IsZero() {
		def := DefaultSettings()
		return def.WithdrawalPercent, def.CompoundPercent
	}
	if sum.Equal(hundred) {
		return w, c
	}
	w = w.Mul(hundred).Div(sum)
	return w, hundred.Sub(w)
}

// WithSplit sets withdrawal to w and compound to the remainder of 100, the
// way the settings form pairs the two fields.
func (s Settings) WithSplit(w decimal.Decimal) Settings {
	s.WithdrawalPercent = w
	s.CompoundPercent = hundred.Sub(w)
	return s
}
