package resample

// Mode selects how the target wavelength grid is resolved.
type Mode int

const (
	// ModeCoverage uses one fixed global grid; spectra must cover it.
	ModeCoverage Mode = iota
	// ModeAdaptive derives a per-spectrum grid at unit step from the
	// spectrum's own observed range.
	ModeAdaptive
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeAdaptive:
		return "adaptive"
	default:
		return "coverage"
	}
}

type config struct {
	mode           Mode
	minWavelength  float64
	maxWavelength  float64
	step           float64
	minValidPoints int
	minRangeWidth  float64
	extrapolate    bool
}

// Option configures the resampler.
type Option func(*config)

// WithMode selects the grid-resolution policy.
func WithMode(m Mode) Option {
	return func(cfg *config) {
		cfg.mode = m
	}
}

// WithRange sets the fixed target wavelength range for coverage mode.
func WithRange(min, max float64) Option {
	return func(cfg *config) {
		cfg.minWavelength = min
		cfg.maxWavelength = max
	}
}

// WithStep sets the coverage-mode grid step.
func WithStep(step float64) Option {
	return func(cfg *config) {
		if step > 0 {
			cfg.step = step
		}
	}
}

// WithMinValidPoints sets the minimum number of valid samples a spectrum
// must retain after NaN removal. Defaults are mode-dependent: 2 in coverage
// mode, 3000 in adaptive mode.
func WithMinValidPoints(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.minValidPoints = n
		}
	}
}

// WithMinRangeWidth sets the minimum observed span (in wavelength units)
// required by adaptive mode. A span exactly equal to the minimum is
// accepted; only spans strictly below it are rejected.
func WithMinRangeWidth(w float64) Option {
	return func(cfg *config) {
		if w > 0 {
			cfg.minRangeWidth = w
		}
	}
}

// WithExtrapolation enables or disables linear extrapolation beyond the
// observed range in coverage mode. When enabled, the coverage requirement is
// waived and the end segments are linearly extended; when disabled (the
// default), spectra not covering the full range are rejected and any
// out-of-range evaluation is an error. Adaptive-mode grids always lie inside
// the observed range, so the setting has no effect there.
func WithExtrapolation(enabled bool) Option {
	return func(cfg *config) {
		cfg.extrapolate = enabled
	}
}

func defaultConfig() config {
	return config{
		mode:          ModeCoverage,
		minWavelength: 3700,
		maxWavelength: 9000,
		step:          1,
		minRangeWidth: 1000,
	}
}

func (c config) finalized() config {
	if c.minValidPoints <= 0 {
		switch c.mode {
		case ModeAdaptive:
			c.minValidPoints = 3000
		default:
			c.minValidPoints = 2
		}
	}

	// An interpolant needs at least two knots regardless of policy.
	if c.minValidPoints < 2 {
		c.minValidPoints = 2
	}

	if c.step <= 0 {
		c.step = 1
	}

	if c.minRangeWidth <= 0 {
		c.minRangeWidth = 1000
	}

	return c
}
