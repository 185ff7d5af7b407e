package core

import (
	"fmt"
	"time"
)

// YearMonth is a zero-padded YYYY-MM calendar month. Because the format is
// fixed-width, comparing two values as strings orders them chronologically.
type YearMonth string

const yearMonthLayout = "2006-01"

// ParseYearMonth accepts only the canonical zero-padded form, e.g. "2024-03".
func ParseYearMonth(s string) (YearMonth, error) {
	if len(s) != 7 {
		return "", fmt.Errorf("%w: %q (want YYYY-MM)", ErrInvalidYearMonth, s)
	}
	if _, err := time.Parse(yearMonthLayout, s); err != nil {
		return "", fmt.Errorf("%w: %q (want YYYY-MM)", ErrInvalidYearMonth, s)
	}
	return YearMonth(s), nil
}

// CurrentYearMonth formats t as YYYY-MM in t's location.
func CurrentYearMonth(t time.Time) YearMonth {
	return YearMonth(t.Format(yearMonthLayout))
}

func (ym YearMonth) String() string {
	return string(ym)
}

func (ym YearMonth) Before(other YearMonth) bool {
	return ym < other
}

// ValidateRange checks both bounds and that end is not earlier than start.
func ValidateRange(start, end YearMonth) error {
	if _, err := ParseYearMonth(string(start)); err != nil {
		return err
	}
	if _, err := ParseYearMonth(string(end)); err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("%w: %s > %s", ErrInvalidRange, start, end)
	}
	return nil
}
