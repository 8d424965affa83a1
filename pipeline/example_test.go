package pipeline_test

import (
	"fmt"

	"github.com/gcbellys/lamost-manifold-dr-cluster/pipeline"
	"github.com/gcbellys/lamost-manifold-dr-cluster/spectra"
	"github.com/gcbellys/lamost-manifold-dr-cluster/spectra/resample"
)

func ExampleRun() {
	ramp := func(obsID, label string, lo, hi float64) spectra.RawSpectrum {
		raw := spectra.RawSpectrum{ObsID: obsID, Type: label}
		for x := lo; x <= hi; x++ {
			raw.Wavelength = append(raw.Wavelength, x)
			raw.Flux = append(raw.Flux, x/100)
			raw.Ivar = append(raw.Ivar, 1)
		}
		return raw
	}

	rows := []spectra.RawSpectrum{
		ramp("1", "A", 100, 200),
		ramp("2", "G", 120, 180), // does not cover the full range
	}

	rs, _ := resample.New(resample.WithRange(100, 200))
	res, _ := pipeline.Run(rows, rs, pipeline.WithWorkers(2))

	s := res.Summary
	fmt.Printf("total=%d accepted=%d rejected=%d width=%d\n",
		s.Total, s.Accepted, s.Rejected(), s.MatrixWidth)
	// Output:
	// total=2 accepted=1 rejected=1 width=101
}
