// Command specalign aligns a raw-spectrum CSV table onto a common wavelength
// grid and writes the resulting feature matrix.
//
// Usage:
//
//	specalign -in raw.csv -out aligned.csv [flags]
//
// Examples:
//
//	specalign -in raw.csv -out aligned.csv
//	specalign -in raw.csv -out aligned.csv -min-wavelength 3700 -max-wavelength 9000 -step 1
//	specalign -in raw.csv -out aligned.csv -extrapolate
//	specalign -in raw.csv -out aligned.csv -mode adaptive -min-points 3000 -min-width 1000
//	specalign -in raw.csv -out aligned.csv -noise-ratio 0.2 -normalize -qa
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/gcbellys/lamost-manifold-dr-cluster/pipeline"
	"github.com/gcbellys/lamost-manifold-dr-cluster/spectra/resample"
	"github.com/gcbellys/lamost-manifold-dr-cluster/table"
)

func main() {
	var (
		inPath  = flag.String("in", "", "input raw-spectrum CSV (required)")
		outPath = flag.String("out", "", "output aligned CSV (required)")

		mode        = flag.String("mode", "coverage", "grid policy: coverage or adaptive")
		minWl       = flag.Float64("min-wavelength", 3700, "coverage-mode grid minimum")
		maxWl       = flag.Float64("max-wavelength", 9000, "coverage-mode grid maximum")
		step        = flag.Float64("step", 1, "coverage-mode grid step")
		extrapolate = flag.Bool("extrapolate", false, "coverage mode: extend linearly instead of rejecting incomplete ranges")
		minPoints   = flag.Int("min-points", 0, "minimum valid samples per spectrum (0 = mode default)")
		minWidth    = flag.Float64("min-width", 1000, "adaptive mode: minimum observed span")

		workers    = flag.Int("workers", 0, "worker count (0 = all CPUs)")
		noiseRatio = flag.Float64("noise-ratio", 0, "mask samples with ivar below ratio*median(ivar) (0 = off)")
		doNorm     = flag.Bool("normalize", false, "z-score flux per spectrum after alignment")
		doClip     = flag.Bool("clip-negative", false, "zero negative flux bins after alignment")
		doQA       = flag.Bool("qa", false, "report FFT-based noise descriptors over accepted spectra")
	)

	flag.Parse()

	if *inPath == "" || *outPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*inPath, *outPath, options{
		mode:        *mode,
		minWl:       *minWl,
		maxWl:       *maxWl,
		step:        *step,
		extrapolate: *extrapolate,
		minPoints:   *minPoints,
		minWidth:    *minWidth,
		workers:     *workers,
		noiseRatio:  *noiseRatio,
		normalize:   *doNorm,
		clip:        *doClip,
		qa:          *doQA,
	}); err != nil {
		fmt.Fprintln(os.Stderr, "specalign:", err)
		os.Exit(1)
	}
}

type options struct {
	mode        string
	minWl       float64
	maxWl       float64
	step        float64
	extrapolate bool
	minPoints   int
	minWidth    float64
	workers     int
	noiseRatio  float64
	normalize   bool
	clip        bool
	qa          bool
}

func run(inPath, outPath string, opt options) error {
	rs, err := newResampler(opt)
	if err != nil {
		return err
	}

	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	rows, err := table.ReadRaw(in)
	if err != nil {
		return err
	}

	var popts []pipeline.Option
	if opt.workers > 0 {
		popts = append(popts, pipeline.WithWorkers(opt.workers))
	}

	if opt.noiseRatio > 0 {
		popts = append(popts, pipeline.WithNoiseMask(opt.noiseRatio))
	}

	popts = append(popts,
		pipeline.WithClipNegative(opt.clip),
		pipeline.WithNormalize(opt.normalize),
		pipeline.WithSpectralQA(opt.qa),
	)

	res, err := pipeline.Run(rows, rs, popts...)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}

	if rs.Mode() == resample.ModeCoverage {
		err = table.WriteCoverage(out, rs.Grid(), res.Spectra)
	} else {
		err = table.WriteAdaptive(out, res.Summary.MatrixWidth, res.Spectra)
	}

	if err != nil {
		out.Close()
		return err
	}

	if err := out.Close(); err != nil {
		return err
	}

	printSummary(os.Stdout, rs, &res.Summary)

	return nil
}

func newResampler(opt options) (*resample.Resampler, error) {
	ropts := []resample.Option{
		resample.WithRange(opt.minWl, opt.maxWl),
		resample.WithStep(opt.step),
		resample.WithExtrapolation(opt.extrapolate),
		resample.WithMinRangeWidth(opt.minWidth),
	}

	switch opt.mode {
	case "coverage":
		ropts = append(ropts, resample.WithMode(resample.ModeCoverage))
	case "adaptive":
		ropts = append(ropts, resample.WithMode(resample.ModeAdaptive))
	default:
		return nil, fmt.Errorf("unknown mode %q (want coverage or adaptive)", opt.mode)
	}

	if opt.minPoints > 0 {
		ropts = append(ropts, resample.WithMinValidPoints(opt.minPoints))
	}

	return resample.New(ropts...)
}

func printSummary(w io.Writer, rs *resample.Resampler, s *pipeline.Summary) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "mode\t%s\n", rs.Mode())
	if rs.Mode() == resample.ModeCoverage {
		fmt.Fprintf(tw, "grid\t%s\n", rs.Grid())
	}

	fmt.Fprintf(tw, "total\t%d\n", s.Total)
	fmt.Fprintf(tw, "accepted\t%d (%.2f%%)\n", s.Accepted, 100*s.Retention())
	fmt.Fprintf(tw, "rejected\t%d\n", s.Rejected())

	for _, reason := range resample.Reasons() {
		if n := s.ByReason[reason]; n > 0 {
			fmt.Fprintf(tw, "  %s\t%d\n", reason, n)
		}
	}

	fmt.Fprintf(tw, "matrix width\t%d\n", s.MatrixWidth)

	if s.MaskedPoints > 0 {
		fmt.Fprintf(tw, "masked points\t%d\n", s.MaskedPoints)
	}

	if s.ClippedBins > 0 {
		fmt.Fprintf(tw, "clipped bins\t%d\n", s.ClippedBins)
	}

	fmt.Fprintf(tw, "negative flux bins\t%d\n", s.NegativeFluxBins)

	labels := make([]string, 0, len(s.ByLabel))
	for label := range s.ByLabel {
		labels = append(labels, label)
	}

	sort.Strings(labels)

	for _, label := range labels {
		ls := s.ByLabel[label]
		fmt.Fprintf(tw, "type %s\t%d/%d (%.2f%%)\n", label, ls.Accepted, ls.Total, 100*ls.Retention())
	}

	if s.QA != nil {
		fmt.Fprintf(tw, "qa: high-freq fraction\t%.4f\n", s.QA.HighFreqFraction)
		fmt.Fprintf(tw, "qa: spectral flatness\t%.4f\n", s.QA.Flatness)
	}

	tw.Flush()
}
