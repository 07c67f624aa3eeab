package util

import (
	"fmt"
	"time"
)

// YearMonth identifies a calendar month. Budget rows and transactions are
// scoped to a month; the day component of stored dates is informational only.
type YearMonth struct {
	Year  int
	Month time.Month
}

// ParseYearMonth parses a "YYYY-MM" string.
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

// YearMonthOf truncates a time to its calendar month.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// String formats as "YYYY-MM", the wire format used by the transactions
// collection.
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// FirstDay returns the first day of the month formatted "YYYY-MM-DD", the
// value stored on monthly budget rows.
func (ym YearMonth) FirstDay() string {
	return fmt.Sprintf("%04d-%02d-01", ym.Year, int(ym.Month))
}

// SameMonth reports whether the stored date string falls in this month.
// Stored values may be full dates ("2025-03-01") or bare months ("2025-03");
// only the year-month prefix is compared.
func (ym YearMonth) SameMonth(stored string) bool {
	if len(stored) < 7 {
		return false
	}
	return stored[:7] == ym.String()
}
