package date

import (
	"fmt"
	"time"
)

// MonthFormat is the format used to represent a calendar month as a string.
const MonthFormat = "2006-01"

// Month is a calendar month, the reporting granularity of the web and CLI
// surfaces. Begin is the first day of the month and End the first day of the
// next month, matching hledger's half-open -b/-e query convention.
type Month struct {
	year  int
	month time.Month
}

// CurrentMonth returns the month containing today.
func CurrentMonth() Month {
	t := time.Now()
	return Month{t.Year(), t.Month()}
}

// ParseMonth parses a "YYYY-MM" string. An empty string yields the current month.
func ParseMonth(str string) (Month, error) {
	if str == "" {
		return CurrentMonth(), nil
	}
	t, err := time.Parse(MonthFormat, str)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q want format %q: %w", str, MonthFormat, err)
	}
	return Month{t.Year(), t.Month()}, nil
}

// String formats the month as "YYYY-MM".
func (m Month) String() string {
	return time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.UTC).Format(MonthFormat)
}

// Begin returns the first day of the month.
func (m Month) Begin() Date { return New(m.year, m.month, 1) }

// End returns the first day of the following month (exclusive bound).
func (m Month) End() Date { return New(m.year, m.month+1, 1) }

// Prev returns the previous month.
func (m Month) Prev() Month {
	d := New(m.year, m.month-1, 1)
	return Month{d.Year(), d.Month()}
}

// Next returns the following month.
func (m Month) Next() Month {
	d := New(m.year, m.month+1, 1)
	return Month{d.Year(), d.Month()}
}

// Contains reports whether day d falls within the month.
func (m Month) Contains(d Date) bool {
	return !d.Before(m.Begin()) && d.Before(m.End())
}
