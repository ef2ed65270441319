package journal

import (
	"fmt"
	"strings"
	"time"
)

// Period narrows the trade list shown to the user.
type Period string

const (
	PeriodAll   Period = "all"
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PeriodAll, nil
	case PeriodAll, PeriodToday, PeriodWeek, PeriodMonth:
		return p, nil
	default:
		return "", fmt.Errorf("unknown period %q (want all|today|week|month)", s)
	}
}

// Since is the cut-off instant for p relative to now; zero for PeriodAll.
// Week means the trailing seven days.
func (p Period) Since(now time.Time) time.Time {
	switch p {
	case PeriodToday:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case PeriodWeek:
		return now.Add(-7 * 24 * time.Hour)
	case PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Time{}
	}
}

// Filter keeps trades entered at or after the period cut-off, preserving
// order.
func Filter(trades []TradeRecord, p Period, now time.Time) []TradeRecord {
	since := p.Since(now)
	if since.IsZero() {
		return trades
	}

	out := make([]TradeRecord, 0, len(trades))
	for _, t := range trades {
		if !t.Timestamp.Before(since) {
			out = append(out, t)
		}
	}
	return out
}
