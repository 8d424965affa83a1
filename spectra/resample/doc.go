// Package resample aligns raw survey spectra, each sampled on its own
// irregular wavelength grid, onto a common target grid while preserving
// inverse-variance weights and rejecting spectra that cannot be resampled
// safely.
//
// Per-spectrum processing runs sanitize → range check → interpolate →
// quality gate; the first failing stage classifies the spectrum with a
// [Reason] and processing moves on to the next row. A rejection is never
// fatal to the batch.
//
// Grid-resolution policies:
//   - ModeCoverage: one fixed global grid (default 3700..9000 at step 1,
//     5301 points); spectra must cover the full range unless extrapolation
//     is enabled.
//   - ModeAdaptive: a per-spectrum unit-step grid from ceil(min observed)
//     to floor(max observed); spectra whose span is strictly below the
//     minimum width are rejected.
//
// The historical pipelines disagreed on extrapolation: one variant rejected
// any spectrum short of full coverage, another always extended linearly
// past the observed data. Here that is a single explicit switch,
// [WithExtrapolation], defaulting to the strict behavior.
//
// Common workflows:
//   - New(opts...) then Resample(raw) per row
//   - WithMode(ModeAdaptive), WithMinValidPoints, WithMinRangeWidth
//   - WithRange / WithStep for a custom coverage grid
package resample
