package archive

import "github.com/shopspring/decimal"

// Point is one labelled value on a chart, labelled like "Jan 2026".
type Point struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// Charts holds every series the monthly dashboard draws.
type Charts struct {
	Equity     []Point `json:"equity"`
	WinRate    []Point `json:"winRate"`
	Withdrawn  []Point `json:"withdrawn"`
	Compounded []Point `json:"compounded"`
}

// EquityCurve is the running sum of actual profit, oldest month first.
func EquityCurve(l Ledger) []Point {
	var cum decimal.Decimal
	pts := make([]Point, 0, len(l))
	for _, a := range l.Chronological() {
		cum = cum.Add(a.ActualProfit)
		pts = append(pts, Point{Label: a.Key().Short(), Value: cum})
	}
	return pts
}

func WinRateSeries(l Ledger) []Point {
	pts := make([]Point, 0, len(l))
	for _, a := range l.Chronological() {
		pts = append(pts, Point{Label: a.Key().Short(), Value: a.Stats.WinRatePercent})
	}
	return pts
}

// SplitSeries returns the withdrawn and compounded amounts per month.
func SplitSeries(l Ledger) (withdrawn, compounded []Point) {
	sorted := l.Chronological()
	withdrawn = make([]Point, 0, len(sorted))
	compounded = make([]Point, 0, len(sorted))
	for _, a := range sorted {
		label := a.Key().Short()
		withdrawn = append(withdrawn, Point{Label: label, Value: a.WithdrawnAmount})
		compounded = append(compounded, Point{Label: label, Value: a.CompoundedAmount})
	}
	return withdrawn, compounded
}

func BuildCharts(l Ledger) Charts {
	c := Charts{
		Equity:  EquityCurve(l),
		WinRate: WinRateSeries(l),
	}
	c.Withdrawn, c.Compounded = SplitSeries(l)
	return c
}
