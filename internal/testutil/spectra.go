// Package testutil provides deterministic spectrum fixtures and tolerance
// assertions shared by tests across the pipeline.
package testutil

import (
	"math"
	"math/rand"
	"strconv"

	"github.com/gcbellys/lamost-manifold-dr-cluster/spectra"
)

// SyntheticSpectrum generates a deterministic raw spectrum sampled at unit
// step over [lo, hi]: a smooth pseudo-continuum with a few absorption-like
// dips, constant ivar, no NaN entries.
func SyntheticSpectrum(obsID, label string, lo, hi float64) spectra.RawSpectrum {
	n := int(hi-lo) + 1
	w := make([]float64, n)
	f := make([]float64, n)
	iv := make([]float64, n)

	for i := range w {
		x := lo + float64(i)
		w[i] = x
		f[i] = 80 + 20*math.Sin(x/700) - 5*math.Exp(-((x-6563)*(x-6563))/800)
		iv[i] = 3
	}

	return spectra.RawSpectrum{ObsID: obsID, Type: label, Wavelength: w, Flux: f, Ivar: iv}
}

// NoisySpectrum is SyntheticSpectrum plus seeded white noise on flux and a
// seeded jitter on ivar, still strictly positive.
func NoisySpectrum(obsID, label string, lo, hi float64, seed int64) spectra.RawSpectrum {
	raw := SyntheticSpectrum(obsID, label, lo, hi)
	rng := rand.New(rand.NewSource(seed))

	for i := range raw.Flux {
		raw.Flux[i] += rng.NormFloat64()
		raw.Ivar[i] = 0.5 + 2*rng.Float64()
	}

	return raw
}

// Batch generates n full-coverage synthetic spectra cycling through the
// given labels, with obsid values "1".."n".
func Batch(n int, lo, hi float64, labels ...string) []spectra.RawSpectrum {
	if len(labels) == 0 {
		labels = []string{"A", "F", "G"}
	}

	out := make([]spectra.RawSpectrum, n)
	for i := range out {
		out[i] = NoisySpectrum(strconv.Itoa(i+1), labels[i%len(labels)], lo, hi, int64(i+1))
	}

	return out
}
