package metrics

import (
	"fmt"
	"time"
)

// Date is a calendar-day aggregation key. A value type rather than a
// truncated time.Time so it can key a map and order without location
// bookkeeping.
type Date struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// DateOf extracts the calendar date of a timestamp.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Before reports whether d is chronologically before o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// YearMonth is a calendar-month aggregation key. Carrying the year
// keeps months from different years distinct, so multi-year inputs
// never collide under the same label.
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// YearMonthOf extracts the year-month of a timestamp.
func YearMonthOf(t time.Time) YearMonth {
	y, m, _ := t.Date()
	return YearMonth{Year: y, Month: m}
}

// Before reports whether m is chronologically before o.
func (m YearMonth) Before(o YearMonth) bool {
	if m.Year != o.Year {
		return m.Year < o.Year
	}
	return m.Month < o.Month
}

func (m YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
