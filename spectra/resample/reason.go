package resample

import "fmt"

// Reason classifies why a spectrum was rejected. Rejections are per-spectrum
// and never fatal: the batch continues and the reason is tallied.
type Reason int

const (
	// ReasonInsufficientPoints indicates too few valid samples after
	// NaN removal.
	ReasonInsufficientPoints Reason = iota
	// ReasonRangeIncomplete indicates the observed wavelengths do not cover
	// the fixed target range (coverage mode).
	ReasonRangeIncomplete
	// ReasonRangeTooNarrow indicates the observed span is below the minimum
	// width (adaptive mode).
	ReasonRangeTooNarrow
	// ReasonNonMonotonic indicates the sanitized wavelengths are not
	// strictly increasing.
	ReasonNonMonotonic
	// ReasonInterpInvalid indicates interpolation failed or produced
	// NaN/Inf values.
	ReasonInterpInvalid
	// ReasonNegativeIvar indicates a negative inverse-variance value after
	// interpolation.
	ReasonNegativeIvar
	// ReasonInternal indicates an unexpected per-spectrum failure that was
	// recovered and tallied instead of aborting the batch.
	ReasonInternal

	numReasons
)

var reasonNames = [numReasons]string{
	"insufficient points",
	"range incomplete",
	"range too narrow",
	"non-monotonic wavelengths",
	"invalid interpolation",
	"negative ivar",
	"internal error",
}

// String returns a human-readable name for the reason.
func (r Reason) String() string {
	if r < 0 || r >= numReasons {
		return fmt.Sprintf("reason(%d)", int(r))
	}

	return reasonNames[r]
}

// Reasons lists all rejection reasons in tally order.
func Reasons() []Reason {
	out := make([]Reason, numReasons)
	for i := range out {
		out[i] = Reason(i)
	}

	return out
}

// RejectError reports a per-spectrum rejection. It carries the observation
// identifier and the classified reason so callers can tally without parsing
// error text.
type RejectError struct {
	ObsID  string
	Reason Reason
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("resample: obsid %s rejected: %s", e.ObsID, e.Reason)
}

// reject builds a RejectError for the given observation.
func reject(obsID string, reason Reason) error {
	return &RejectError{ObsID: obsID, Reason: reason}
}
