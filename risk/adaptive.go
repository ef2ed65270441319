package risk

import "math"

// Regime buckets 24h volatility.
type Regime string

const (
	RegimeLow     Regime = "Low"
	RegimeNormal  Regime = "Normal"
	RegimeHigh    Regime = "High"
	RegimeExtreme Regime = "Extreme"
)

const (
	MinRiskPercent = 3.0
	MaxRiskPercent = 20.0
	MinLeverage    = 2.0
	MaxLeverage    = 20.0
)

// Sizing is the suggested risk and leverage for a wallet.
type Sizing struct {
	RiskPercent  float64 `json:"riskPercent"`
	Leverage     int     `json:"leverage"`
	Regime       Regime  `json:"regime"`
	BaseRisk     float64 `json:"baseRisk"`
	BaseLeverage float64 `json:"baseLeverage"`
	RiskAmount   float64 `json:"riskAmount"`
}

// BaseRisk is the risk percentage before volatility: 15 at an empty wallet,
// 12 at 100, 8 at 1000, 5 at 5000, flooring at 3 from 50000.
func BaseRisk(wallet float64) float64 {
	w := math.Max(wallet, 0)
	switch {
	case w <= 100:
		return 15 - (w/100)*3
	case w <= 1000:
		return 12 - ((w-100)/900)*4
	case w <= 5000:
		return 8 - ((w-1000)/4000)*3
	default:
		return math.Max(3, 5-((w-5000)/45000)*2)
	}
}

// BaseLeverage follows the same bands: 20, 18, 12, 6, flooring at 3.
func BaseLeverage(wallet float64) float64 {
	w := math.Max(wallet, 0)
	switch {
	case w <= 100:
		return 20 - (w/100)*2
	case w <= 1000:
		return 18 - ((w-100)/900)*6
	case w <= 5000:
		return 12 - ((w-1000)/4000)*6
	default:
		return math.Max(3, 6-((w-5000)/45000)*3)
	}
}

// VolatilityRegime classifies a 24h change in percent and returns the risk
// and leverage multipliers. Missing data counts as Normal.
func VolatilityRegime(volatility *float64) (Regime, float64, float64) {
	if volatility == nil {
		return RegimeNormal, 1.0, 1.0
	}
	v := abs(*volatility)
	switch {
	case v < 2:
		return RegimeLow, 1.2, 1.1
	case v < 5:
		return RegimeNormal, 1.0, 1.0
	case v < 10:
		return RegimeHigh, 0.7, 0.6
	default:
		return RegimeExtreme, 0.4, 0.3
	}
}

// AdaptiveSizing suggests risk % and leverage from wallet size and market
// volatility. Risk is clamped to [3,20]; leverage to [2,20] and rounded.
func AdaptiveSizing(wallet float64, volatility *float64) Sizing {
	regime, riskMul, levMul := VolatilityRegime(volatility)

	s := Sizing{
		Regime:       regime,
		BaseRisk:     BaseRisk(wallet),
		BaseLeverage: BaseLeverage(wallet),
	}
	s.RiskPercent = clamp(s.BaseRisk*riskMul, MinRiskPercent, MaxRiskPercent)
	s.Leverage = int(math.Round(clamp(s.BaseLeverage*levMul, MinLeverage, MaxLeverage)))
	if wallet > 0 {
		s.RiskAmount = wallet * s.RiskPercent / 100
	}
	return s
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, x))
}
