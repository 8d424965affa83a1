package table

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/gcbellys/lamost-manifold-dr-cluster/spectra"
)

const rawHeader = "obsid,type,wavelength_0,wavelength_1,wavelength_2,flux_0,flux_1,flux_2,ivar_0,ivar_1,ivar_2"

func TestReadRawBasic(t *testing.T) {
	in := rawHeader + "\n" +
		"101,A,3700,3701,3702,1.5,2.5,3.5,0.1,0.2,0.3\n" +
		"102,G,3700,3701,3702,4,5,6,1,1,1\n"

	rows, err := ReadRaw(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadRaw() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	r := rows[0]
	if r.ObsID != "101" || r.Type != "A" {
		t.Fatalf("row 0 = %s/%s, want 101/A", r.ObsID, r.Type)
	}
	if len(r.Wavelength) != 3 || len(r.Flux) != 3 || len(r.Ivar) != 3 {
		t.Fatalf("family lengths = %d,%d,%d, want 3,3,3", len(r.Wavelength), len(r.Flux), len(r.Ivar))
	}
	if r.Flux[1] != 2.5 || r.Ivar[2] != 0.3 {
		t.Fatalf("values misread: flux[1]=%v ivar[2]=%v", r.Flux[1], r.Ivar[2])
	}
}

func TestReadRawOrdersFamiliesBySuffix(t *testing.T) {
	// Columns deliberately shuffled: suffix order must win over file order.
	in := "obsid,type,flux_1,wavelength_1,ivar_0,flux_0,wavelength_0,ivar_1\n" +
		"7,F,20,3701,0.5,10,3700,0.6\n"

	rows, err := ReadRaw(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadRaw() error = %v", err)
	}
	r := rows[0]
	if r.Wavelength[0] != 3700 || r.Wavelength[1] != 3701 {
		t.Fatalf("wavelengths = %v, want [3700 3701]", r.Wavelength)
	}
	if r.Flux[0] != 10 || r.Flux[1] != 20 {
		t.Fatalf("flux = %v, want [10 20]", r.Flux)
	}
	if r.Ivar[0] != 0.5 || r.Ivar[1] != 0.6 {
		t.Fatalf("ivar = %v, want [0.5 0.6]", r.Ivar)
	}
}

func TestReadRawBadCellsBecomeNaN(t *testing.T) {
	in := rawHeader + "\n" +
		"1,A,3700,oops,3702,1,,3,0.1,0.2,0.3\n"

	rows, err := ReadRaw(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadRaw() error = %v", err)
	}
	r := rows[0]
	if !math.IsNaN(r.Wavelength[1]) {
		t.Fatalf("wavelength[1] = %v, want NaN", r.Wavelength[1])
	}
	if !math.IsNaN(r.Flux[1]) {
		t.Fatalf("flux[1] = %v, want NaN", r.Flux[1])
	}
}

func TestReadRawMissingColumns(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no obsid", "type,wavelength_0,flux_0,ivar_0"},
		{"no type", "obsid,wavelength_0,flux_0,ivar_0"},
		{"no wavelength family", "obsid,type,flux_0,ivar_0"},
		{"no flux family", "obsid,type,wavelength_0,ivar_0"},
		{"no ivar family", "obsid,type,wavelength_0,flux_0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := tc.header + "\n1,A,1,1,1,1\n"
			if _, err := ReadRaw(strings.NewReader(in)); !errors.Is(err, ErrMissingColumns) {
				t.Fatalf("error = %v, want ErrMissingColumns", err)
			}
		})
	}
}

func TestReadRawEmptyInput(t *testing.T) {
	if _, err := ReadRaw(strings.NewReader("")); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("no header: error = %v, want ErrEmptyInput", err)
	}
	if _, err := ReadRaw(strings.NewReader(rawHeader + "\n")); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("header only: error = %v, want ErrEmptyInput", err)
	}
}

func TestWriteCoverageHeaderAndRows(t *testing.T) {
	grid := spectra.NewGrid(3700, 3702, 1)
	rows := []spectra.ResampledSpectrum{
		{ObsID: "1", Type: "A", Grid: grid, Flux: []float64{1, 2, 3}, Ivar: []float64{0.5, 0.5, 0.5}},
	}

	var sb strings.Builder
	if err := WriteCoverage(&sb, grid, rows); err != nil {
		t.Fatalf("WriteCoverage() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	wantHeader := "obsid,type,flux_3700.0,flux_3701.0,flux_3702.0,ivar_3700.0,ivar_3701.0,ivar_3702.0"
	if lines[0] != wantHeader {
		t.Fatalf("header = %q, want %q", lines[0], wantHeader)
	}
	if lines[1] != "1,A,1,2,3,0.5,0.5,0.5" {
		t.Fatalf("row = %q", lines[1])
	}
}

func TestWriteCoverageWidthMismatch(t *testing.T) {
	grid := spectra.NewGrid(3700, 3702, 1)
	rows := []spectra.ResampledSpectrum{
		{ObsID: "1", Type: "A", Flux: []float64{1}, Ivar: []float64{1}},
	}

	var sb strings.Builder
	if err := WriteCoverage(&sb, grid, rows); err == nil {
		t.Fatal("WriteCoverage() error = nil, want width mismatch")
	}
}

func TestWriteAdaptiveHeaderAndGridStart(t *testing.T) {
	rows := []spectra.ResampledSpectrum{
		{
			ObsID: "9", Type: "G",
			Grid: spectra.Grid{Start: 4000, Step: 1, Len: 2},
			Flux: []float64{7, 8, 0}, Ivar: []float64{1, 1, 0},
		},
	}

	var sb strings.Builder
	if err := WriteAdaptive(&sb, 3, rows); err != nil {
		t.Fatalf("WriteAdaptive() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	wantHeader := "obsid,type,grid_start,flux_0,flux_1,flux_2,ivar_0,ivar_1,ivar_2"
	if lines[0] != wantHeader {
		t.Fatalf("header = %q, want %q", lines[0], wantHeader)
	}
	if lines[1] != "9,G,4000.0,7,8,0,1,1,0" {
		t.Fatalf("row = %q", lines[1])
	}
}

func TestRoundTripThroughResampledWidths(t *testing.T) {
	// Written coverage output must parse back as a valid raw table would:
	// obsid and type preserved, value counts matching the grid.
	grid := spectra.NewGrid(5000, 5004, 1)
	rows := []spectra.ResampledSpectrum{
		{ObsID: "42", Type: "F", Grid: grid,
			Flux: []float64{1, 2, 3, 4, 5}, Ivar: []float64{1, 1, 1, 1, 1}},
	}

	var sb strings.Builder
	if err := WriteCoverage(&sb, grid, rows); err != nil {
		t.Fatalf("WriteCoverage() error = %v", err)
	}

	fields := strings.Split(strings.Split(sb.String(), "\n")[1], ",")
	if len(fields) != 2+2*grid.Len {
		t.Fatalf("fields = %d, want %d", len(fields), 2+2*grid.Len)
	}
}
