package resample

import "math"

// gate runs the post-interpolation quality checks, short-circuiting on the
// first failure:
//
//  1. no NaN or Inf in flux or ivar
//  2. no negative ivar (ivar is a precision weight, physically non-negative)
//
// Negative flux is plausible near the noise floor and is retained; the gate
// only counts it. Returns the negative-flux count on acceptance.
func gate(obsID string, flux, ivar []float64) (negFlux int, err error) {
	for _, v := range flux {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, reject(obsID, ReasonInterpInvalid)
		}
	}

	for _, v := range ivar {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, reject(obsID, ReasonInterpInvalid)
		}
	}

	for _, v := range ivar {
		if v < 0 {
			return 0, reject(obsID, ReasonNegativeIvar)
		}
	}

	for _, v := range flux {
		if v < 0 {
			negFlux++
		}
	}

	return negFlux, nil
}
