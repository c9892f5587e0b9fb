// Package pricing converts rental durations into amounts.
package pricing

import (
	"math"
	"time"
)

// Price returns the cost of a rental of the given duration at an hourly rate,
// rounded half-up to two decimal places. Negative durations (clock skew)
// are treated as zero, so the result is never negative.
func Price(elapsed time.Duration, hourlyRate float64) float64 {
	if elapsed < 0 {
		elapsed = 0
	}
	hours := elapsed.Hours()
	return Round2(hours * hourlyRate)
}

// Round2 rounds half-up to two decimal places.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
