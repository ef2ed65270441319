package risk

// Policy holds the limits a planned trade is checked against. The usual
// source is AdaptiveSizing for the current wallet.
type Policy struct {
	MaxRiskPercent float64 // max loss at stop as % of wallet
	MaxLeverage    float64
	MinRR          float64
}

// DefaultMinRR is the reward:risk below which a planned trade is flagged.
const DefaultMinRR = 1.0

// PolicyFor builds a policy from an adaptive sizing suggestion.
func PolicyFor(s Sizing, minRR float64) Policy {
	return Policy{
		MaxRiskPercent: s.RiskPercent,
		MaxLeverage:    float64(s.Leverage),
		MinRR:          minRR,
	}
}

// Intent is a trade about to be recorded, in float terms.
type Intent struct {
	Wallet     float64
	Entry      float64
	Stop       float64
	TakeProfit float64
	Quantity   float64
	Leverage   float64
}
