// Package normalize provides per-spectrum flux normalization applied after
// resampling. Z-score normalization makes flux vectors comparable across
// observations before feature reduction; negative-flux clipping is a
// separate, explicitly opt-in step because negative flux near the noise
// floor is statistically legitimate.
package normalize

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/gcbellys/lamost-manifold-dr-cluster/stats/flux"
)

// ZScore normalizes f in place to zero mean and unit standard deviation.
// A constant spectrum (zero standard deviation) falls back to plain mean
// subtraction. Returns the statistics of the input that the transform used.
func ZScore(f []float64) flux.Stats {
	s := flux.Calculate(f)
	if s.Length == 0 {
		return s
	}

	for i := range f {
		f[i] -= s.Mean
	}

	if s.StdDev != 0 {
		vecmath.ScaleBlockInPlace(f, 1/s.StdDev)
	}

	return s
}

// ClipNegative zeroes every negative value of f in place and returns the
// number of values clipped.
func ClipNegative(f []float64) int {
	clipped := 0

	for i, v := range f {
		if v < 0 {
			f[i] = 0
			clipped++
		}
	}

	return clipped
}
