package pipeline

import (
	"github.com/gcbellys/lamost-manifold-dr-cluster/spectra/resample"
)

// Rejection records one rejected spectrum.
type Rejection struct {
	ObsID  string
	Label  string
	Reason resample.Reason
}

// LabelStats accumulates per-spectral-type retention counts.
type LabelStats struct {
	Total    int
	Accepted int
}

// Retention returns the accepted fraction for a label, 0 for an empty label.
func (l LabelStats) Retention() float64 {
	if l.Total == 0 {
		return 0
	}

	return float64(l.Accepted) / float64(l.Total)
}

// QAStats aggregates spectral-noise descriptors over accepted spectra.
type QAStats struct {
	Spectra          int
	HighFreqFraction float64 // mean over accepted spectra
	Flatness         float64 // mean over accepted spectra
}

// Summary is the per-run aggregate returned by Run. All run statistics live
// here; the pipeline keeps no process-global state.
type Summary struct {
	Total      int
	Accepted   int
	ByReason   map[resample.Reason]int
	ByLabel    map[string]LabelStats
	Rejections []Rejection

	// NegativeFluxBins counts negative flux bins across accepted spectra
	// before any clipping; MaskedPoints counts samples blanked by the noise
	// stage; ClippedBins counts bins zeroed by the clip stage.
	NegativeFluxBins int
	MaskedPoints     int
	ClippedBins      int

	// MatrixWidth is the common vector length of the assembled matrix:
	// the grid length in coverage mode, the padded maximum in adaptive mode.
	MatrixWidth int

	QA *QAStats // nil unless spectral QA was enabled
}

// Rejected returns the total rejection count across all reasons.
func (s *Summary) Rejected() int {
	n := 0
	for _, c := range s.ByReason {
		n += c
	}

	return n
}

// Retention returns the overall accepted fraction.
func (s *Summary) Retention() float64 {
	if s.Total == 0 {
		return 0
	}

	return float64(s.Accepted) / float64(s.Total)
}

func newSummary() Summary {
	return Summary{
		ByReason: make(map[resample.Reason]int),
		ByLabel:  make(map[string]LabelStats),
	}
}

// record tallies one per-spectrum outcome into the summary.
func (s *Summary) record(label string, o outcome) {
	s.Total++

	ls := s.ByLabel[label]
	ls.Total++

	if o.err == nil {
		s.Accepted++
		ls.Accepted++
		s.ByLabel[label] = ls
		s.NegativeFluxBins += o.rsp.NegativeFlux
		s.MaskedPoints += o.masked
		s.ClippedBins += o.clipped

		return
	}

	s.ByLabel[label] = ls
	s.ByReason[o.reason]++
	s.Rejections = append(s.Rejections, Rejection{ObsID: o.obsID, Label: label, Reason: o.reason})
	s.MaskedPoints += o.masked
}
