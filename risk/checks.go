package risk

import "fmt"

type Violation struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

// Decision is advisory: the journal records trades regardless, the
// violations are shown next to the preview.
type Decision struct {
	Allowed    bool        `json:"allowed"`
	Violations []Violation `json:"violations,omitempty"`

	PlannedRisk    float64 `json:"plannedRisk"`
	PlannedRiskPct float64 `json:"plannedRiskPct"`
	PlannedRR      float64 `json:"plannedRR"`
}

func (d *Decision) add(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.Allowed = false
}

func Evaluate(p Policy, in Intent) Decision {
	d := Decision{Allowed: true}

	if in.Entry <= 0 || in.Quantity <= 0 {
		d.add("NO_ENTRY_OR_QTY", "entry and quantity must be set")
		return d
	}
	if in.Stop <= 0 {
		d.add("NO_STOP", "no stop loss set, risk is unbounded")
		return d
	}

	d.PlannedRisk = PlannedRisk(in.Quantity, in.Entry, in.Stop)
	d.PlannedRiskPct = RiskPct(d.PlannedRisk, in.Wallet)
	if in.TakeProfit > 0 {
		d.PlannedRR = RR(in.Entry, in.Stop, in.TakeProfit)
	}

	if d.PlannedRiskPct > p.MaxRiskPercent {
		d.add("RISK_TOO_HIGH",
			fmt.Sprintf("planned risk %.2f%% exceeds %.2f%%", d.PlannedRiskPct, p.MaxRiskPercent))
	}
	if p.MaxLeverage > 0 && in.Leverage > p.MaxLeverage {
		d.add("LEVERAGE_TOO_HIGH",
			fmt.Sprintf("leverage %.0fx exceeds %.0fx", in.Leverage, p.MaxLeverage))
	}
	if in.TakeProfit > 0 && d.PlannedRR < p.MinRR {
		d.add("RR_TOO_LOW",
			fmt.Sprintf("RR %.2f below minimum %.2f", d.PlannedRR, p.MinRR))
	}

	return d
}
