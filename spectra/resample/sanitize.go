package resample

import "math"

// sanitize truncates the three raw sequences to their shortest common length
// and drops every index where wavelength, flux, or ivar is NaN. Ordering is
// preserved and fresh slices are returned so the raw row is never aliased.
func sanitize(wavelength, flux, ivar []float64) (w, f, iv []float64) {
	n := len(wavelength)
	if len(flux) < n {
		n = len(flux)
	}

	if len(ivar) < n {
		n = len(ivar)
	}

	w = make([]float64, 0, n)
	f = make([]float64, 0, n)
	iv = make([]float64, 0, n)

	for i := 0; i < n; i++ {
		if math.IsNaN(wavelength[i]) || math.IsNaN(flux[i]) || math.IsNaN(ivar[i]) {
			continue
		}

		w = append(w, wavelength[i])
		f = append(f, flux[i])
		iv = append(iv, ivar[i])
	}

	return w, f, iv
}
