package risk

import "math"

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// PlannedRisk is the quote-currency loss if the stop is hit.
func PlannedRisk(qty, entry, stop float64) float64 {
	return abs(qty) * abs(entry-stop)
}

// RR is reward over risk measured in price distance; 0 when there is no stop.
func RR(entry, stop, takeProfit float64) float64 {
	risk := abs(entry - stop)
	reward := abs(takeProfit - entry)
	if risk == 0 {
		return 0
	}
	return reward / risk
}

// RiskPct expresses a risk amount as a percentage of the wallet.
func RiskPct(plannedRisk, wallet float64) float64 {
	if wallet <= 0 {
		return math.Inf(1)
	}
	return 100 * plannedRisk / wallet
}
