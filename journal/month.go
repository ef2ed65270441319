package journal

import (
	"fmt"
	"time"
)

const monthKeyLayout = "2006-01"

// MonthKey names an accounting period. The zero value means "not known yet".
type MonthKey struct {
	Year  int
	Month time.Month
}

func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// ParseMonthKey reads the YYYY-MM form.
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse(monthKeyLayout, s)
	if err != nil {
		return MonthKey{}, fmt.Errorf("month key %q: want YYYY-MM", s)
	}
	return MonthKeyOf(t), nil
}

// NewMonthKey validates a year/month pair.
func NewMonthKey(year, month int) (MonthKey, error) {
	if month < 1 || month > 12 {
		return MonthKey{}, fmt.Errorf("month %d out of range 1-12", month)
	}
	if year < 1 {
		return MonthKey{}, fmt.Errorf("year %d out of range", year)
	}
	return MonthKey{Year: year, Month: time.Month(month)}, nil
}

func (k MonthKey) IsZero() bool { return k.Year == 0 && k.Month == 0 }

func (k MonthKey) String() string {
	if k.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// Name is the English month name, e.g. "January".
func (k MonthKey) Name() string { return k.Month.String() }

// Label is "January 2026".
func (k MonthKey) Label() string { return fmt.Sprintf("%s %d", k.Name(), k.Year) }

// Short is "Jan 2026", used for chart labels.
func (k MonthKey) Short() string { return fmt.Sprintf("%.3s %d", k.Name(), k.Year) }

func (k MonthKey) Before(o MonthKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	return k.Month < o.Month
}

// Start is the first instant of the month in loc.
func (k MonthKey) Start(loc *time.Location) time.Time {
	return time.Date(k.Year, k.Month, 1, 0, 0, 0, 0, loc)
}

func (k MonthKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *MonthKey) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*k = MonthKey{}
		return nil
	}
	parsed, err := ParseMonthKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
