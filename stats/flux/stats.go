// Package flux computes per-spectrum statistics of a flux vector. The
// normalize stage consumes Mean and StdDev; the run summary reports the
// negative-flux fraction.
package flux

import "math"

// Stats holds single-spectrum flux statistics.
type Stats struct {
	Length           int
	Mean             float64
	Variance         float64 // population variance
	StdDev           float64
	Min              float64
	MinPos           int
	Max              float64
	MaxPos           int
	NegativeCount    int
	NegativeFraction float64
}

// Calculate computes all statistics in a single pass using Welford's online
// algorithm for a numerically stable variance. NaN entries are skipped;
// Length counts only the values that contributed.
func Calculate(flux []float64) Stats {
	var (
		n      int
		mean   float64
		m2     float64
		minVal float64
		minPos int
		maxVal float64
		maxPos int
		neg    int
	)

	for i, x := range flux {
		if math.IsNaN(x) {
			continue
		}

		n++

		delta := x - mean
		mean += delta / float64(n)
		m2 += delta * (x - mean)

		if n == 1 || x < minVal {
			minVal = x
			minPos = i
		}

		if n == 1 || x > maxVal {
			maxVal = x
			maxPos = i
		}

		if x < 0 {
			neg++
		}
	}

	if n == 0 {
		return Stats{}
	}

	variance := m2 / float64(n)

	return Stats{
		Length:           n,
		Mean:             mean,
		Variance:         variance,
		StdDev:           math.Sqrt(variance),
		Min:              minVal,
		MinPos:           minPos,
		Max:              maxVal,
		MaxPos:           maxPos,
		NegativeCount:    neg,
		NegativeFraction: float64(neg) / float64(n),
	}
}
