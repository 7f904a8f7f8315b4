package util

import "time"

// DayLayout formats a calendar day
const DayLayout = "2006-01-02"

// MonthLayout formats a calendar month
const MonthLayout = "2006-01"

// CivilDay returns midnight UTC of t's calendar day, read in t's own location.
// Results compare with == and work as map keys.
func CivilDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day
func SameDay(a, b time.Time) bool {
	return CivilDay(a).Equal(CivilDay(b))
}

// DaysBetween counts whole calendar days from one date to another, negative
// when to is earlier
func DaysBetween(from, to time.Time) int {
	return int(CivilDay(to).Sub(CivilDay(from)).Hours() / 24)
}

// MonthStart returns the first day of t's month in t's location
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
