// Package noise masks low-precision samples ahead of resampling. A point
// whose inverse variance falls below a fraction of the spectrum's median
// inverse variance carries too little signal to interpolate through; masking
// it to NaN lets the resampler's sanitizer drop it.
package noise

import (
	"math"
	"sort"

	"github.com/gcbellys/lamost-manifold-dr-cluster/spectra"
)

// DefaultThresholdRatio is the default fraction of the median ivar below
// which a sample is masked.
const DefaultThresholdRatio = 0.2

// Mask blanks every sample of raw whose ivar is non-finite or below
// ratio*median(ivar), setting wavelength, flux, and ivar to NaN at that
// index. The median ignores NaN entries. Returns the number of samples
// masked. A non-positive ratio masks only non-finite ivar samples.
func Mask(raw *spectra.RawSpectrum, ratio float64) int {
	n := len(raw.Ivar)
	if len(raw.Flux) < n {
		n = len(raw.Flux)
	}

	if len(raw.Wavelength) < n {
		n = len(raw.Wavelength)
	}

	med, ok := median(raw.Ivar[:n])

	threshold := math.Inf(-1)
	if ok && ratio > 0 {
		threshold = med * ratio
	}

	masked := 0

	for i := 0; i < n; i++ {
		v := raw.Ivar[i]
		if !math.IsInf(v, 0) && !math.IsNaN(v) && v >= threshold {
			continue
		}

		raw.Wavelength[i] = math.NaN()
		raw.Flux[i] = math.NaN()
		raw.Ivar[i] = math.NaN()
		masked++
	}

	return masked
}

// median returns the median of the finite values in x. ok is false when x
// holds no finite value.
func median(x []float64) (med float64, ok bool) {
	vals := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			vals = append(vals, v)
		}
	}

	if len(vals) == 0 {
		return 0, false
	}

	sort.Float64s(vals)

	mid := len(vals) / 2
	if len(vals)%2 == 1 {
		return vals[mid], true
	}

	return 0.5 * (vals[mid-1] + vals[mid]), true
}
