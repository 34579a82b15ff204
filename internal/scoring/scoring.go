// Package scoring holds the pure aggregation functions applied to a
// player's shot series. They are used by the store when building API
// responses and by the scoreboard when rendering locally, so both sides
// must agree on the numbers to the last decimal.
package scoring

import "math"

// MaxTargetRadius is the distance from the target center, in rings, at
// which a shot scores zero precision.
const MaxTargetRadius = 5.0

// Total returns the sum of all shot values.
func Total(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum
}

// Average returns the mean shot value, or 0 for an empty series.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Total(values) / float64(len(values))
}

// Best returns the highest shot value, or 0 for an empty series.
func Best(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	best := values[0]
	for _, v := range values[1:] {
		if v > best {
			best = v
		}
	}
	return best
}

// Worst returns the lowest shot value, or 0 for an empty series.
func Worst(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	worst := values[0]
	for _, v := range values[1:] {
		if v < worst {
			worst = v
		}
	}
	return worst
}

// Consistency returns the population standard deviation of the series.
// A single shot has no spread, so series of length <= 1 return 0.
func Consistency(values []float64) float64 {
	if len(values) <= 1 {
		return 0
	}
	mean := Average(values)
	var sumSquares float64
	for _, v := range values {
		d := v - mean
		sumSquares += d * d
	}
	return math.Sqrt(sumSquares / float64(len(values)))
}

// CompletionPercentage returns how far through a session a player is,
// rounded to the nearest whole percent. A zero total means 0, not a
// division by zero.
func CompletionPercentage(current, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(current) / float64(total)))
}

// Precision derives a percentage from the shot value alone: a 10 is
// 100%, a 0 is 0%.
func Precision(score float64) float64 {
	return (score / 10) * 100
}

// PrecisionAt derives a percentage from impact coordinates relative to
// the target center. A shot landing at or beyond MaxTargetRadius scores 0.
func PrecisionAt(x, y float64) float64 {
	distance := math.Sqrt(x*x + y*y)
	return math.Max(0, 100-(distance/MaxTargetRadius)*100)
}
