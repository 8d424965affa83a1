package interp

import (
	"errors"
	"sort"
)

var (
	// ErrTooFewPoints indicates fewer than two sample points.
	ErrTooFewPoints = errors.New("interp: need at least two points")
	// ErrLengthMismatch indicates xs and ys differ in length.
	ErrLengthMismatch = errors.New("interp: xs and ys length mismatch")
	// ErrNotIncreasing indicates the abscissa is not strictly increasing.
	ErrNotIncreasing = errors.New("interp: abscissa not strictly increasing")
	// ErrOutOfDomain indicates a strict evaluation outside the observed range.
	ErrOutOfDomain = errors.New("interp: point outside observed range")
)

// Linear is a piecewise-linear interpolant over a strictly increasing,
// irregularly spaced abscissa. It keeps references to the slices passed to
// NewLinear; callers must not mutate them while the interpolant is in use.
type Linear struct {
	xs []float64
	ys []float64
}

// NewLinear builds an interpolant from parallel samples (xs[i], ys[i]).
// xs must be strictly increasing and both slices must hold at least two
// points.
func NewLinear(xs, ys []float64) (*Linear, error) {
	if len(xs) != len(ys) {
		return nil, ErrLengthMismatch
	}

	if len(xs) < 2 {
		return nil, ErrTooFewPoints
	}

	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, ErrNotIncreasing
		}
	}

	return &Linear{xs: xs, ys: ys}, nil
}

// Domain returns the observed abscissa range [min, max].
func (l *Linear) Domain() (min, max float64) {
	return l.xs[0], l.xs[len(l.xs)-1]
}

// Eval evaluates the interpolant at x. Points outside the observed range
// return ErrOutOfDomain; both endpoints are inside the range.
func (l *Linear) Eval(x float64) (float64, error) {
	if x < l.xs[0] || x > l.xs[len(l.xs)-1] {
		return 0, ErrOutOfDomain
	}

	return l.at(x), nil
}

// Extrapolate evaluates the interpolant at x, linearly extending the first
// and last segments for points outside the observed range.
func (l *Linear) Extrapolate(x float64) float64 {
	return l.at(x)
}

// EvalAll evaluates the interpolant at every point of xs into dst.
// dst and xs must have equal length. The first out-of-range point aborts
// with ErrOutOfDomain.
func (l *Linear) EvalAll(dst, xs []float64) error {
	if len(dst) != len(xs) {
		return ErrLengthMismatch
	}

	for i, x := range xs {
		y, err := l.Eval(x)
		if err != nil {
			return err
		}

		dst[i] = y
	}

	return nil
}

// at evaluates without domain checks. Queries left of the first knot use the
// first segment's slope, queries right of the last knot use the last
// segment's slope.
func (l *Linear) at(x float64) float64 {
	// Index of the segment [xs[j], xs[j+1]] containing x.
	j := sort.SearchFloat64s(l.xs, x) - 1
	if j < 0 {
		j = 0
	}

	if j > len(l.xs)-2 {
		j = len(l.xs) - 2
	}

	x0, x1 := l.xs[j], l.xs[j+1]
	y0, y1 := l.ys[j], l.ys[j+1]

	t := (x - x0) / (x1 - x0)

	return y0 + t*(y1-y0)
}
