// Package interp provides piecewise-linear interpolation over an irregular,
// strictly increasing abscissa, the primitive behind wavelength-grid
// alignment.
//
// Construction validates the abscissa once; evaluation is then a binary
// search plus a two-point linear blend per query:
//
//   - [Linear.Eval]:        strict evaluation, errors outside the observed range
//   - [Linear.Extrapolate]: linear extension of the end segments beyond the range
//   - [Linear.EvalAll]:     strict bulk evaluation into a caller buffer
//
// The choice between strict evaluation and extrapolation is a policy decision
// owned by the caller (see the resample package's extrapolation option).
package interp
