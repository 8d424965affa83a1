package flux

import (
	"math"
	"testing"
)

func TestCalculateBasic(t *testing.T) {
	s := Calculate([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if s.Length != 8 {
		t.Fatalf("Length = %d, want 8", s.Length)
	}
	if math.Abs(s.Mean-5) > 1e-12 {
		t.Fatalf("Mean = %v, want 5", s.Mean)
	}
	if math.Abs(s.Variance-4) > 1e-12 {
		t.Fatalf("Variance = %v, want 4", s.Variance)
	}
	if math.Abs(s.StdDev-2) > 1e-12 {
		t.Fatalf("StdDev = %v, want 2", s.StdDev)
	}
	if s.Min != 2 || s.MinPos != 0 {
		t.Fatalf("Min = %v at %d, want 2 at 0", s.Min, s.MinPos)
	}
	if s.Max != 9 || s.MaxPos != 7 {
		t.Fatalf("Max = %v at %d, want 9 at 7", s.Max, s.MaxPos)
	}
}

func TestCalculateSkipsNaN(t *testing.T) {
	s := Calculate([]float64{math.NaN(), 1, math.NaN(), 3})
	if s.Length != 2 {
		t.Fatalf("Length = %d, want 2", s.Length)
	}
	if math.Abs(s.Mean-2) > 1e-12 {
		t.Fatalf("Mean = %v, want 2", s.Mean)
	}
	if s.MinPos != 1 || s.MaxPos != 3 {
		t.Fatalf("positions = %d,%d, want 1,3", s.MinPos, s.MaxPos)
	}
}

func TestCalculateNegativeFraction(t *testing.T) {
	s := Calculate([]float64{-1, 1, -2, 2})
	if s.NegativeCount != 2 {
		t.Fatalf("NegativeCount = %d, want 2", s.NegativeCount)
	}
	if math.Abs(s.NegativeFraction-0.5) > 1e-12 {
		t.Fatalf("NegativeFraction = %v, want 0.5", s.NegativeFraction)
	}
}

func TestCalculateEmpty(t *testing.T) {
	if s := Calculate(nil); s.Length != 0 || s.Mean != 0 {
		t.Fatalf("Calculate(nil) = %+v, want zero value", s)
	}
	if s := Calculate([]float64{math.NaN()}); s.Length != 0 {
		t.Fatalf("all-NaN Length = %d, want 0", s.Length)
	}
}

func TestCalculateConstant(t *testing.T) {
	s := Calculate([]float64{3, 3, 3})
	if s.Variance != 0 || s.StdDev != 0 {
		t.Fatalf("constant input: variance = %v, stddev = %v, want 0, 0", s.Variance, s.StdDev)
	}
}
