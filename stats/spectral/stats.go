// Package spectral computes frequency-domain descriptors of a resampled
// flux vector. High-frequency energy fraction and spectral flatness expose
// residual pixel-scale noise that survived the quality gate; the centroid
// summarizes where the variation lives. The descriptors feed matrix QA
// reports, not accept/reject decisions.
package spectral

import (
	"errors"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrTooShort indicates the flux vector has too few samples to analyze.
var ErrTooShort = errors.New("spectral: need at least 8 samples")

// Stats holds frequency-domain descriptors computed from the one-sided
// power spectrum of a mean-removed, Hann-windowed flux vector. The DC bin
// is excluded from every descriptor.
type Stats struct {
	BinCount int     // one-sided bins including DC
	Energy   float64 // total power excluding DC
	// HighFreqFraction is the share of energy above half the Nyquist bin;
	// white noise sits near 0.5, a smooth continuum near 0.
	HighFreqFraction float64
	// Flatness is the Wiener entropy of the power spectrum in [0, 1];
	// 1 means noise-like, 0 means a single dominant scale.
	Flatness float64
	// Centroid is the power-weighted mean bin position normalized to [0, 1].
	Centroid float64
}

// Calculate analyzes one flux vector. The vector is mean-removed, Hann
// windowed, and zero-padded to the next power of two before the FFT.
func Calculate(flux []float64) (Stats, error) {
	if len(flux) < 8 {
		return Stats{}, ErrTooShort
	}

	work := make([]float64, len(flux))
	copy(work, flux)

	removeMean(work)

	win := hann(len(work))
	vecmath.MulBlockInPlace(work, win)

	fftSize := nextPow2(len(work))

	in := make([]complex128, fftSize)
	for i, v := range work {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Stats{}, err
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Stats{}, err
	}

	binCount := fftSize/2 + 1

	re := make([]float64, binCount)
	im := make([]float64, binCount)
	for i := 0; i < binCount; i++ {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	power := make([]float64, binCount)
	vecmath.Power(power, re, im)

	return describe(power), nil
}

// describe reduces a one-sided power spectrum to descriptors, skipping the
// DC bin.
func describe(power []float64) Stats {
	s := Stats{BinCount: len(power)}

	bins := power[1:]
	if len(bins) == 0 {
		return s
	}

	var (
		total    float64
		high     float64
		logSum   float64
		weighted float64
	)

	halfway := len(bins) / 2

	for i, p := range bins {
		total += p
		weighted += float64(i) * p

		if i >= halfway {
			high += p
		}

		// Clamp for the geometric mean; a true zero bin would collapse
		// flatness to zero on an otherwise noisy spectrum.
		if p < 1e-300 {
			p = 1e-300
		}

		logSum += math.Log(p)
	}

	s.Energy = total
	if total == 0 {
		return s
	}

	s.HighFreqFraction = high / total
	s.Flatness = math.Exp(logSum/float64(len(bins))) / (total / float64(len(bins)))

	if len(bins) > 1 {
		s.Centroid = weighted / total / float64(len(bins)-1)
	}

	return s
}

func removeMean(x []float64) {
	var sum float64
	for _, v := range x {
		sum += v
	}

	mean := sum / float64(len(x))
	for i := range x {
		x[i] -= mean
	}
}

func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}

	return w
}

func nextPow2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}

	return size
}
