// Package pipeline runs the batch alignment over a raw-spectrum table:
// optional noise masking, resampling onto the target grid, optional
// normalization, and aggregation into a fixed-width feature matrix with a
// per-run Summary. Rows are independent, so the batch is mapped across a
// worker pool and reduced sequentially in row order, which keeps the output
// deterministic for any worker count.
package pipeline

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/gcbellys/lamost-manifold-dr-cluster/spectra"
	"github.com/gcbellys/lamost-manifold-dr-cluster/spectra/noise"
	"github.com/gcbellys/lamost-manifold-dr-cluster/spectra/normalize"
	"github.com/gcbellys/lamost-manifold-dr-cluster/spectra/resample"
	"github.com/gcbellys/lamost-manifold-dr-cluster/stats/spectral"
)

// ErrEmptyBatch indicates Run was called with no input rows.
var ErrEmptyBatch = errors.New("pipeline: empty batch")

type config struct {
	workers      int
	noiseRatio   float64 // <= 0 disables the noise stage
	normalize    bool
	clipNegative bool
	spectralQA   bool
}

// Option configures a run.
type Option func(*config)

// WithWorkers sets the worker-pool size. Defaults to runtime.NumCPU.
func WithWorkers(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.workers = n
		}
	}
}

// WithNoiseMask enables ivar-median noise masking ahead of resampling,
// blanking samples whose ivar falls below ratio*median(ivar).
func WithNoiseMask(ratio float64) Option {
	return func(cfg *config) {
		cfg.noiseRatio = ratio
	}
}

// WithNormalize enables per-spectrum z-score flux normalization on accepted
// spectra.
func WithNormalize(enabled bool) Option {
	return func(cfg *config) {
		cfg.normalize = enabled
	}
}

// WithClipNegative enables zeroing of negative flux bins on accepted
// spectra. Clipping runs before normalization when both are enabled.
func WithClipNegative(enabled bool) Option {
	return func(cfg *config) {
		cfg.clipNegative = enabled
	}
}

// WithSpectralQA enables FFT-based noise descriptors averaged over accepted
// spectra, reported in Summary.QA.
func WithSpectralQA(enabled bool) Option {
	return func(cfg *config) {
		cfg.spectralQA = enabled
	}
}

func defaultConfig() config {
	return config{workers: runtime.NumCPU()}
}

// outcome is one row's terminal state: either an accepted spectrum or a
// classified rejection.
type outcome struct {
	obsID   string
	rsp     spectra.ResampledSpectrum
	err     error
	reason  resample.Reason
	masked  int
	clipped int
	qa      spectral.Stats
	qaOK    bool
}

// Result is the output of one run: accepted spectra in input order plus the
// run summary. In adaptive mode the flux/ivar vectors are right-padded with
// zeros to the run's maximum grid length so the matrix is rectangular.
type Result struct {
	Spectra []spectra.ResampledSpectrum
	Summary Summary
}

// Run processes all rows through the resampler and merges per-row outcomes
// into a Result. A rejected or failing row never aborts the batch; only an
// empty input does.
func Run(rows []spectra.RawSpectrum, rs *resample.Resampler, opts ...Option) (*Result, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyBatch
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	workers := cfg.workers
	if workers > len(rows) {
		workers = len(rows)
	}

	outcomes := make([]outcome, len(rows))

	var wg sync.WaitGroup

	// Contiguous shards: worker i owns rows [i*shard, min((i+1)*shard, n)).
	shard := (len(rows) + workers - 1) / workers

	for w := 0; w < workers; w++ {
		lo := w * shard
		hi := lo + shard

		if hi > len(rows) {
			hi = len(rows)
		}

		if lo >= hi {
			break
		}

		wg.Add(1)

		go func(lo, hi int) {
			defer wg.Done()

			for i := lo; i < hi; i++ {
				outcomes[i] = processRow(rows[i], rs, cfg)
			}
		}(lo, hi)
	}

	wg.Wait()

	return reduce(rows, outcomes, rs, cfg), nil
}

// processRow runs one spectrum through the per-row stages. Unexpected
// panics are recovered and classified as internal rejections so a single
// malformed row cannot take down the batch.
func processRow(raw spectra.RawSpectrum, rs *resample.Resampler, cfg config) (o outcome) {
	o.obsID = raw.ObsID

	defer func() {
		if r := recover(); r != nil {
			o.err = fmt.Errorf("pipeline: obsid %s: %v", raw.ObsID, r)
			o.reason = resample.ReasonInternal
		}
	}()

	if cfg.noiseRatio > 0 {
		raw = cloneRaw(raw)
		o.masked = noise.Mask(&raw, cfg.noiseRatio)
	}

	rsp, err := rs.Resample(raw)
	if err != nil {
		o.err = err
		o.reason = resample.ReasonInternal

		var rej *resample.RejectError
		if errors.As(err, &rej) {
			o.reason = rej.Reason
		}

		return o
	}

	if cfg.clipNegative {
		o.clipped = normalize.ClipNegative(rsp.Flux)
	}

	if cfg.normalize {
		normalize.ZScore(rsp.Flux)
	}

	if cfg.spectralQA {
		if qa, err := spectral.Calculate(rsp.Flux); err == nil {
			o.qa = qa
			o.qaOK = true
		}
	}

	o.rsp = rsp

	return o
}

// reduce merges outcomes in row order, pads adaptive-mode vectors to the run
// maximum, and finalizes the summary.
func reduce(rows []spectra.RawSpectrum, outcomes []outcome, rs *resample.Resampler, cfg config) *Result {
	res := &Result{Summary: newSummary()}

	var qaHF, qaFlat float64

	qaCount := 0

	for i := range outcomes {
		res.Summary.record(rows[i].Type, outcomes[i])

		if outcomes[i].err != nil {
			continue
		}

		res.Spectra = append(res.Spectra, outcomes[i].rsp)

		if outcomes[i].qaOK {
			qaHF += outcomes[i].qa.HighFreqFraction
			qaFlat += outcomes[i].qa.Flatness
			qaCount++
		}
	}

	res.Summary.MatrixWidth = matrixWidth(res.Spectra, rs)
	padSpectra(res.Spectra, res.Summary.MatrixWidth)

	if cfg.spectralQA && qaCount > 0 {
		res.Summary.QA = &QAStats{
			Spectra:          qaCount,
			HighFreqFraction: qaHF / float64(qaCount),
			Flatness:         qaFlat / float64(qaCount),
		}
	}

	return res
}

// matrixWidth is the common row width of the output matrix.
func matrixWidth(accepted []spectra.ResampledSpectrum, rs *resample.Resampler) int {
	if rs.Mode() == resample.ModeCoverage {
		return rs.Grid().Len
	}

	width := 0
	for i := range accepted {
		if accepted[i].Grid.Len > width {
			width = accepted[i].Grid.Len
		}
	}

	return width
}

// padSpectra right-pads flux and ivar with zeros up to width. Coverage-mode
// vectors already have the full width and are left untouched.
func padSpectra(accepted []spectra.ResampledSpectrum, width int) {
	for i := range accepted {
		for len(accepted[i].Flux) < width {
			accepted[i].Flux = append(accepted[i].Flux, 0)
		}

		for len(accepted[i].Ivar) < width {
			accepted[i].Ivar = append(accepted[i].Ivar, 0)
		}
	}
}

// cloneRaw deep-copies a raw spectrum so in-place stages never touch the
// caller's data.
func cloneRaw(raw spectra.RawSpectrum) spectra.RawSpectrum {
	clone := raw
	clone.Wavelength = append([]float64(nil), raw.Wavelength...)
	clone.Flux = append([]float64(nil), raw.Flux...)
	clone.Ivar = append([]float64(nil), raw.Ivar...)

	return clone
}
