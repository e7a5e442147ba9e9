// core/stats/means.go
package stats

import "math"

// Mean averages the present values of cols in row, skipping absent
// columns. ok is false when no column is present.
func Mean(row map[string]float64, cols []string) (float64, bool) {
	sum, n := 0.0, 0
	for _, c := range cols {
		v, present := row[c]
		if !present || math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN(), false
	}
	return sum / float64(n), true
}

// Log2 transforms an intensity for reporting. Zero intensities become NaN
// rather than -Inf, matching the convention of treating unobserved as
// missing.
func Log2(v float64) float64 {
	if v <= 0 || math.IsNaN(v) {
		return math.NaN()
	}
	return math.Log2(v)
}
