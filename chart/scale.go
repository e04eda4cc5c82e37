package chart

import (
	"fmt"
	"strconv"
)

// niceSteps is the rounding sequence: bounds are step * 10^k for the
// smallest fitting magnitude, giving 10, 20, 30, 50, 100, 200, ...
var niceSteps = []int{1, 2, 3, 5, 10}

// NiceRound returns the smallest nice number >= n. Zero or negative input
// maps to the minimum bound of 10.
func NiceRound(n int) int {
	if n <= 0 {
		return 10
	}

	magnitude := 1
	for m := n; m >= 10; m /= 10 {
		magnitude *= 10
	}

	for _, step := range niceSteps {
		if nice := step * magnitude; n <= nice {
			return nice
		}
	}
	return 10 * magnitude
}

// UpperBound picks the chart's top tick for a maximum observed value,
// escalating to the next nice number when the value would sit above 80% of
// the axis or exactly at the bound.
func UpperBound(max int) int {
	if max <= 0 {
		max = 100
	}
	ymax := NiceRound(max)
	if max == ymax || float64(max) > float64(ymax)*0.8 {
		ymax = NiceRound(int(float64(ymax)*1.1) + 1)
	}
	return ymax
}

// FormatValue renders a tick label: 999 -> "999", 1000 -> "1k",
// 1500 -> "1.5k", 1000000 -> "1M".
func FormatValue(n int) string {
	switch {
	case n >= 1000000:
		if n%1000000 == 0 {
			return fmt.Sprintf("%dM", n/1000000)
		}
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	case n >= 1000:
		if n%1000 == 0 {
			return fmt.Sprintf("%dk", n/1000)
		}
		return fmt.Sprintf("%.1fk", float64(n)/1000)
	}
	return strconv.Itoa(n)
}
