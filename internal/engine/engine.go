// Package engine computes maintenance recommendations, schedules, and
// financial analytics for a single vehicle's records.
//
// Every function here is pure: inputs are read-only snapshots the caller
// already loaded and scoped to one user, evaluation time is an explicit
// argument, and insufficient input degrades to zero-valued output instead
// of an error. Nothing blocks, nothing is cached, nothing is mutated.
package engine

import "time"

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// wholeYears returns complete calendar years from a to b, fractions
// truncated. Negative spans count as zero.
func wholeYears(a, b time.Time) int {
	if !b.After(a) {
		return 0
	}
	years := b.Year() - a.Year()
	if a.AddDate(years, 0, 0).After(b) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// daySpan returns the days between a and b with a one-day floor, so that
// same-day histories still produce finite per-day rates.
func daySpan(a, b time.Time) float64 {
	days := b.Sub(a).Hours() / 24
	if days < 1 {
		return 1
	}
	return days
}
