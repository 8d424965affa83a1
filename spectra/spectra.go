// Package spectra defines the core data types shared across the alignment
// pipeline: raw survey spectra, resampled spectra, and wavelength grids.
package spectra

import "strconv"

// RawSpectrum is one observation as read from the survey table: three
// parallel sequences sampled on the instrument's own wavelength grid.
// The sequences may be ragged and may contain NaN entries; the resampler's
// sanitizer is responsible for cleaning them up.
type RawSpectrum struct {
	ObsID      string
	Type       string // spectral-type label, e.g. "A", "F", "G"
	Wavelength []float64
	Flux       []float64
	Ivar       []float64
}

// ResampledSpectrum is one accepted observation aligned onto a target grid.
// Flux and Ivar have exactly Grid.Len entries and contain no NaN or Inf.
// NegativeFlux counts flux bins below zero after interpolation; negative
// flux is plausible near the noise floor and is retained, so the count is
// informational only.
type ResampledSpectrum struct {
	ObsID        string
	Type         string
	Grid         Grid
	Flux         []float64
	Ivar         []float64
	NegativeFlux int
}

// Grid is a uniform wavelength grid: Len points starting at Start,
// spaced Step apart.
type Grid struct {
	Start float64
	Step  float64
	Len   int
}

// NewGrid builds the grid covering [min, max] with the given step,
// endpoints inclusive. A 3700..9000 grid at step 1 has 5301 points.
func NewGrid(min, max, step float64) Grid {
	if step <= 0 || max < min {
		return Grid{}
	}

	n := int((max-min)/step) + 1

	return Grid{Start: min, Step: step, Len: n}
}

// At returns the wavelength of grid point i.
func (g Grid) At(i int) float64 {
	return g.Start + float64(i)*g.Step
}

// End returns the wavelength of the last grid point.
func (g Grid) End() float64 {
	if g.Len == 0 {
		return g.Start
	}

	return g.At(g.Len - 1)
}

// Values materializes the grid as a slice.
func (g Grid) Values() []float64 {
	out := make([]float64, g.Len)
	for i := range out {
		out[i] = g.At(i)
	}

	return out
}

// IsZero reports whether the grid is empty.
func (g Grid) IsZero() bool {
	return g.Len == 0
}

// String renders the grid as "start..end/step (n pts)".
func (g Grid) String() string {
	return strconv.FormatFloat(g.Start, 'g', -1, 64) + ".." +
		strconv.FormatFloat(g.End(), 'g', -1, 64) + "/" +
		strconv.FormatFloat(g.Step, 'g', -1, 64) +
		" (" + strconv.Itoa(g.Len) + " pts)"
}
