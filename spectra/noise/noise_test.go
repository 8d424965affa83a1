package noise

import (
	"math"
	"testing"

	"github.com/gcbellys/lamost-manifold-dr-cluster/spectra"
)

func TestMaskBlanksLowIvar(t *testing.T) {
	raw := spectra.RawSpectrum{
		ObsID:      "1",
		Wavelength: []float64{1, 2, 3, 4, 5},
		Flux:       []float64{10, 20, 30, 40, 50},
		// median = 10; threshold at ratio 0.2 is 2.
		Ivar: []float64{10, 1, 10, 10, 10},
	}

	masked := Mask(&raw, 0.2)
	if masked != 1 {
		t.Fatalf("masked = %d, want 1", masked)
	}
	if !math.IsNaN(raw.Wavelength[1]) || !math.IsNaN(raw.Flux[1]) || !math.IsNaN(raw.Ivar[1]) {
		t.Fatal("index 1 not fully masked")
	}
	for _, i := range []int{0, 2, 3, 4} {
		if math.IsNaN(raw.Flux[i]) {
			t.Fatalf("index %d masked, want kept", i)
		}
	}
}

func TestMaskNonFiniteIvarAlwaysMasked(t *testing.T) {
	raw := spectra.RawSpectrum{
		Wavelength: []float64{1, 2, 3},
		Flux:       []float64{1, 2, 3},
		Ivar:       []float64{1, math.Inf(1), math.NaN()},
	}

	if masked := Mask(&raw, 0); masked != 2 {
		t.Fatalf("masked = %d, want 2", masked)
	}
	if math.IsNaN(raw.Flux[0]) {
		t.Fatal("finite-ivar sample was masked")
	}
}

func TestMaskAllNaNIvar(t *testing.T) {
	raw := spectra.RawSpectrum{
		Wavelength: []float64{1, 2},
		Flux:       []float64{1, 2},
		Ivar:       []float64{math.NaN(), math.NaN()},
	}

	if masked := Mask(&raw, 0.2); masked != 2 {
		t.Fatalf("masked = %d, want 2", masked)
	}
}

func TestMaskNeverLowersMedian(t *testing.T) {
	raw := spectra.RawSpectrum{
		Wavelength: make([]float64, 100),
		Flux:       make([]float64, 100),
		Ivar:       make([]float64, 100),
	}
	for i := range raw.Ivar {
		raw.Wavelength[i] = float64(i)
		raw.Flux[i] = 1
		raw.Ivar[i] = float64(i%10) + 0.1
	}

	before, _ := median(raw.Ivar)
	Mask(&raw, 0.2)
	after, ok := median(raw.Ivar)
	if !ok {
		t.Fatal("no finite ivar left after masking")
	}
	if after < before {
		t.Fatalf("median dropped from %v to %v", before, after)
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want float64
		ok   bool
	}{
		{"odd", []float64{3, 1, 2}, 2, true},
		{"even", []float64{4, 1, 3, 2}, 2.5, true},
		{"ignores nan", []float64{math.NaN(), 5, 1}, 3, true},
		{"empty", nil, 0, false},
		{"all nan", []float64{math.NaN()}, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := median(tc.in)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("median(%v) = %v,%v, want %v,%v", tc.in, got, ok, tc.want, tc.ok)
			}
		})
	}
}
