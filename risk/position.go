package risk

// Inputs for sizing a position from a risk budget.
type Inputs struct {
	Wallet      float64
	RiskPercent float64 // 5 means 5% of the wallet
	EntryPrice  float64
	StopPrice   float64
	TakeProfit  float64 // optional, only used for RR
	Leverage    float64
}

type Result struct {
	Quantity     float64
	StopDistance float64
	RiskAmount   float64
	Notional     float64
	Margin       float64
	RR           float64
}

// SizePosition returns the quantity that loses exactly RiskPercent of the
// wallet when the stop is hit, plus the margin that quantity needs at the
// given leverage.
func SizePosition(in Inputs) Result {
	dist := abs(in.EntryPrice - in.StopPrice)
	riskAmt := in.Wallet * in.RiskPercent / 100

	res := Result{
		StopDistance: dist,
		RiskAmount:   riskAmt,
	}
	if dist == 0 || in.EntryPrice <= 0 || riskAmt <= 0 {
		return res
	}

	res.Quantity = riskAmt / dist
	res.Notional = res.Quantity * in.EntryPrice

	lev := in.Leverage
	if lev <= 0 {
		lev = 1
	}
	res.Margin = res.Notional / lev

	if in.TakeProfit > 0 {
		res.RR = RR(in.EntryPrice, in.StopPrice, in.TakeProfit)
	}
	return res
}
