package curve

import "time"

// DayCount maps a pair of dates to a year fraction. It is the only
// signature the core requires from a calendar collaborator.
type DayCount func(start, end time.Time) float64

const daysInYear = 365.25

// ActAct365 is the default day count, counting calendar days over an
// average year of 365.25 days.
func ActAct365(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24.0 / daysInYear
}

// YearFraction maps a pair of float time points to a year fraction.
// The default is plain subtraction, treating points as year fractions
// from a common origin already.
type YearFraction func(start, end float64) float64

// Diff is the default YearFraction
func Diff(start, end float64) float64 {
	return end - start
}
