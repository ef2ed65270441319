package archive

import (
	"io"
	"text/template"
	"time"

	"github.com/rustyeddy/cryptojournal/journal"
	"github.com/shopspring/decimal"
)

var orgFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"pct":   func(d decimal.Decimal) string { return d.StringFixed(1) + "%" },
	"row":   func(t journal.TradeRecord) []string { return journal.CSVRow(t, time.UTC) },
}

var orgTemplate = template.Must(template.New("archive").Funcs(orgFuncs).Parse(ArchiveOrgTemplate))

// WriteOrg renders the monthly report for a as Org-mode text.
func WriteOrg(w io.Writer, a Archive) error {
	return orgTemplate.Execute(w, a)
}

const ArchiveOrgTemplate = `* MONTH: {{.MonthName}} {{.Year}}
:PROPERTIES:
:YEAR:         {{.Year}}
:MONTH:        {{printf "%02d" .Month}}
:ARCHIVED:     [{{.ArchivedAt.UTC.Format "2006-01-02 Mon 15:04"}}]
:START_BAL:    {{money .StartBalance}}
:TARGET:       {{money .TargetProfit}}
:ACTUAL:       {{money .ActualProfit}}
:WITHDRAWN:    {{money .WithdrawnAmount}}
:COMPOUNDED:   {{money .CompoundedAmount}}
:END_BAL:      {{money .EndBalance}}
:TRADES:       {{.Stats.TotalCount}}
:WIN_RATE:     {{pct .Stats.WinRatePercent}}
:PROFIT_FAC:   {{.Stats.ProfitFactor}}
:END:

** Performance Summary
- Net P/L:        *{{money .ActualProfit}}*
- Return:         *{{pct .ReturnPercent}}*
- Win Rate:       *{{pct .Stats.WinRatePercent}}*
- Profit Factor:  *{{.Stats.ProfitFactor}}*
- Avg R:R:        *1:{{money .Stats.AverageRiskReward}}*
- Best / Worst:   *{{money .Stats.BestTradePnL}}* / *{{money .Stats.WorstTradePnL}}*
{{- if .Stats.CurrentStreakType }}
- Closing Streak: *{{.Stats.CurrentStreakLength}}{{.Stats.CurrentStreakType}}*
{{- end }}

** Trade Distribution
| Outcome | Count |
|---------+-------|
| Wins    | {{.Stats.WinCount}} |
| Losses  | {{.Stats.LossCount}} |
| Total   | {{.Stats.TotalCount}} |

** Trades
| Date | Symbol | Type | Entry | Exit | Qty | Lev | P&L | R:R | Result |
|------+--------+------+-------+------+-----+-----+-----+-----+--------|
{{- range .Trades }}
|{{ range row . }} {{.}} |{{ end }}
{{- end }}
`
