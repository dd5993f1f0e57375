package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout   = "2006-01-02"
	PeriodLayout = "2006-01"
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidPeriod = errors.New("invalid competency period")
)

// ParseLocalDate parses a YYYY-MM-DD (or ISO timestamp) string into that
// calendar day at local noon. Only the date part before "T" is read, so the
// result never shifts a day because of the offset carried by the input.
func ParseLocalDate(s string) (time.Time, error) {
	datePart, _, _ := strings.Cut(strings.TrimSpace(s), "T")

	parsed, err := time.Parse(DateLayout, datePart)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	return NormalizeDate(parsed), nil
}

// NormalizeDate re-anchors a date value at 12:00 local time, keeping the
// calendar fields it already carries.
func NormalizeDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 12, 0, 0, 0, time.Local)
}

// FormatDateToString formats a date as YYYY-MM-DD
func FormatDateToString(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatCompetencyPeriod formats a date as a YYYY-MM competency period
func FormatCompetencyPeriod(t time.Time) string {
	return t.Format(PeriodLayout)
}

// ParseCompetencyPeriod validates a YYYY-MM period and returns its first day at local noon
func ParseCompetencyPeriod(s string) (time.Time, error) {
	if len(s) != len(PeriodLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}

	parsed, err := time.Parse(PeriodLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}

	return NormalizeDate(parsed), nil
}

// AddMonths adds calendar months to a date. Days past the end of the target
// month are clamped to its last day (Jan 31 + 1 month = Feb 28/29).
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	firstOfTarget := time.Date(year, month+time.Month(months), 1, 12, 0, 0, 0, time.Local)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}

	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 12, 0, 0, 0, time.Local)
}

// MonthBounds returns the first and last calendar day of the month, both at local noon
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 12, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// DaysBetween returns the number of calendar days from one date to another.
// Time of day and DST transitions are ignored.
func DaysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()

	start := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)

	return int(end.Sub(start).Hours() / 24)
}

// DaysUntilDue reports how many days remain until dueDate, counted from today.
// Both values are date-normalized first, so the result is 0 for a due date of
// today and negative once the date has passed.
func DaysUntilDue(dueDate, today time.Time) int {
	return DaysBetween(NormalizeDate(today), NormalizeDate(dueDate))
}

// IsBefore reports whether a falls on an earlier calendar day than b
func IsBefore(a, b time.Time) bool {
	return DaysBetween(a, b) > 0
}
