// Package chart holds the small numeric helpers behind the dashboard charts.
package chart

import (
	"fmt"
	"math"
	"math/rand"
)

// RandomColors returns n random colors formatted as #RRGGBB. Colors are regenerated on
// every call, so callers must not rely on them being stable across requests.
func RandomColors(n int) []string {
	colors := make([]string, n)
	for i := range colors {
		colors[i] = fmt.Sprintf("#%06X", rand.Intn(0x1000000))
	}
	return colors
}

// Percentages returns each count as a percentage of the sum, rounded to two decimals.
// Every entry is 0 when the sum is 0.
func Percentages(counts []int64) []float64 {
	var total int64
	for _, c := range counts {
		total += c
	}

	out := make([]float64, len(counts))
	if total == 0 {
		return out
	}
	for i, c := range counts {
		out[i] = Round2(float64(c) / float64(total) * 100)
	}
	return out
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Total sums counts.
func Total(counts []int64) int64 {
	var total int64
	for _, c := range counts {
		total += c
	}
	return total
}
