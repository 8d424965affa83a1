package resample

import (
	"errors"
	"math"

	"github.com/gcbellys/lamost-manifold-dr-cluster/spectra"
	"github.com/gcbellys/lamost-manifold-dr-cluster/spectra/interp"
)

// ErrInvalidRange indicates an invalid coverage-mode wavelength range.
var ErrInvalidRange = errors.New("resample: invalid wavelength range")

// Resampler aligns raw spectra onto a target wavelength grid. It is
// stateless after construction and safe for concurrent use.
type Resampler struct {
	cfg  config
	grid spectra.Grid // resolved once in coverage mode, zero in adaptive mode
}

// New creates a resampler. Options default to coverage mode over
// 3700..9000 at unit step with extrapolation disabled.
func New(opts ...Option) (*Resampler, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	cfg = cfg.finalized()

	r := &Resampler{cfg: cfg}

	if cfg.mode == ModeCoverage {
		r.grid = spectra.NewGrid(cfg.minWavelength, cfg.maxWavelength, cfg.step)
		if r.grid.IsZero() {
			return nil, ErrInvalidRange
		}
	}

	return r, nil
}

// Mode returns the configured grid-resolution policy.
func (r *Resampler) Mode() Mode {
	return r.cfg.mode
}

// Grid returns the fixed coverage-mode grid. In adaptive mode the grid is
// per-spectrum and the returned grid is zero.
func (r *Resampler) Grid() spectra.Grid {
	return r.grid
}

// Resample aligns one raw spectrum onto its target grid. A rejected
// spectrum returns a *RejectError carrying the classified reason; all other
// error paths are unreachable by construction.
func (r *Resampler) Resample(raw spectra.RawSpectrum) (spectra.ResampledSpectrum, error) {
	w, f, iv := sanitize(raw.Wavelength, raw.Flux, raw.Ivar)

	if len(w) < r.cfg.minValidPoints {
		return spectra.ResampledSpectrum{}, reject(raw.ObsID, ReasonInsufficientPoints)
	}

	fluxInt, err := interp.NewLinear(w, f)
	if err != nil {
		return spectra.ResampledSpectrum{}, reject(raw.ObsID, constructionReason(err))
	}

	ivarInt, err := interp.NewLinear(w, iv)
	if err != nil {
		return spectra.ResampledSpectrum{}, reject(raw.ObsID, constructionReason(err))
	}

	grid, err := r.resolveGrid(raw.ObsID, w)
	if err != nil {
		return spectra.ResampledSpectrum{}, err
	}

	flux, err := r.evaluate(raw.ObsID, fluxInt, grid)
	if err != nil {
		return spectra.ResampledSpectrum{}, err
	}

	ivar, err := r.evaluate(raw.ObsID, ivarInt, grid)
	if err != nil {
		return spectra.ResampledSpectrum{}, err
	}

	negFlux, err := gate(raw.ObsID, flux, ivar)
	if err != nil {
		return spectra.ResampledSpectrum{}, err
	}

	return spectra.ResampledSpectrum{
		ObsID:        raw.ObsID,
		Type:         raw.Type,
		Grid:         grid,
		Flux:         flux,
		Ivar:         ivar,
		NegativeFlux: negFlux,
	}, nil
}

// resolveGrid applies the range policy and returns the target grid for one
// sanitized spectrum. w is non-empty and strictly increasing.
func (r *Resampler) resolveGrid(obsID string, w []float64) (spectra.Grid, error) {
	obsMin, obsMax := w[0], w[len(w)-1]

	switch r.cfg.mode {
	case ModeAdaptive:
		start := math.Ceil(obsMin)
		stop := math.Floor(obsMax)

		if stop-start < r.cfg.minRangeWidth {
			return spectra.Grid{}, reject(obsID, ReasonRangeTooNarrow)
		}

		return spectra.Grid{Start: start, Step: 1, Len: int(stop-start) + 1}, nil

	default:
		// Coverage with extrapolation waives the coverage requirement; the
		// end segments are extended linearly instead.
		if !r.cfg.extrapolate && (obsMin > r.cfg.minWavelength || obsMax < r.cfg.maxWavelength) {
			return spectra.Grid{}, reject(obsID, ReasonRangeIncomplete)
		}

		return r.grid, nil
	}
}

// evaluate samples the interpolant at every grid point, honoring the
// extrapolation policy.
func (r *Resampler) evaluate(obsID string, l *interp.Linear, grid spectra.Grid) ([]float64, error) {
	out := make([]float64, grid.Len)

	if r.cfg.extrapolate {
		for i := range out {
			out[i] = l.Extrapolate(grid.At(i))
		}

		return out, nil
	}

	for i := range out {
		y, err := l.Eval(grid.At(i))
		if err != nil {
			return nil, reject(obsID, ReasonInterpInvalid)
		}

		out[i] = y
	}

	return out, nil
}

// constructionReason maps interpolant construction failures onto the
// rejection taxonomy.
func constructionReason(err error) Reason {
	if errors.Is(err, interp.ErrNotIncreasing) {
		return ReasonNonMonotonic
	}

	if errors.Is(err, interp.ErrTooFewPoints) {
		return ReasonInsufficientPoints
	}

	return ReasonInternal
}
