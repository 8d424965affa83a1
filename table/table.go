// Package table reads and writes the pipeline's row-oriented CSV interfaces.
//
// The raw input table carries one observation per row: an obsid column, a
// type column, and three column families named wavelength_<i>, flux_<i>,
// ivar_<i>. The aligned output table preserves obsid and type and names the
// value columns after the resolved grid (coverage mode) or the bin index
// (adaptive mode, whose grids are per-spectrum).
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/gcbellys/lamost-manifold-dr-cluster/spectra"
)

var (
	// ErrMissingColumns indicates a required column or column family is
	// absent from the input header. This aborts the whole run.
	ErrMissingColumns = errors.New("table: missing required columns")
	// ErrEmptyInput indicates the input table has no data rows.
	ErrEmptyInput = errors.New("table: empty input table")
)

const (
	obsIDColumn = "obsid"
	typeColumn  = "type"
)

// family holds the column indices of one column family, ordered by the
// numeric suffix of the column name.
type family struct {
	name string
	cols []int
}

// ReadRaw parses a raw-spectrum table. Unparseable or empty numeric cells
// become NaN, mirroring how the survey archive encodes missing samples; the
// resampler's sanitizer drops them later. Malformed rows are skipped.
func ReadRaw(r io.Reader) ([]spectra.RawSpectrum, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyInput
		}

		return nil, fmt.Errorf("table: read header: %w", err)
	}

	obsCol, typeCol := -1, -1
	wl := family{name: "wavelength"}
	fl := family{name: "flux"}
	iv := family{name: "ivar"}

	type suffixed struct{ idx, col int }

	families := map[string][]suffixed{}

	for i, h := range header {
		h = strings.TrimSpace(h)

		switch h {
		case obsIDColumn:
			obsCol = i
			continue
		case typeColumn:
			typeCol = i
			continue
		}

		name, suffix, ok := strings.Cut(h, "_")
		if !ok {
			continue
		}

		idx, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}

		switch name {
		case wl.name, fl.name, iv.name:
			families[name] = append(families[name], suffixed{idx: idx, col: i})
		}
	}

	if obsCol < 0 || typeCol < 0 ||
		len(families[wl.name]) == 0 || len(families[fl.name]) == 0 || len(families[iv.name]) == 0 {
		return nil, fmt.Errorf("%w: need %s, %s, and wavelength_/flux_/ivar_ families",
			ErrMissingColumns, obsIDColumn, typeColumn)
	}

	for _, f := range []*family{&wl, &fl, &iv} {
		cols := families[f.name]
		sort.Slice(cols, func(a, b int) bool { return cols[a].idx < cols[b].idx })

		f.cols = make([]int, len(cols))
		for i, c := range cols {
			f.cols[i] = c.col
		}
	}

	var rows []spectra.RawSpectrum

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			// Malformed row: skip, never abort the batch.
			continue
		}

		raw := spectra.RawSpectrum{
			ObsID:      cell(record, obsCol),
			Type:       cell(record, typeCol),
			Wavelength: values(record, wl.cols),
			Flux:       values(record, fl.cols),
			Ivar:       values(record, iv.cols),
		}

		rows = append(rows, raw)
	}

	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}

	return rows, nil
}

// WriteCoverage writes spectra sharing one fixed grid, naming value columns
// after the grid wavelengths (flux_3700.0, ...). Every row must have exactly
// grid.Len values.
func WriteCoverage(w io.Writer, grid spectra.Grid, rows []spectra.ResampledSpectrum) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, 2+2*grid.Len)
	header = append(header, obsIDColumn, typeColumn)

	for i := 0; i < grid.Len; i++ {
		header = append(header, "flux_"+strconv.FormatFloat(grid.At(i), 'f', 1, 64))
	}

	for i := 0; i < grid.Len; i++ {
		header = append(header, "ivar_"+strconv.FormatFloat(grid.At(i), 'f', 1, 64))
	}

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("table: write header: %w", err)
	}

	for i := range rows {
		if len(rows[i].Flux) != grid.Len || len(rows[i].Ivar) != grid.Len {
			return fmt.Errorf("table: obsid %s: row width %d does not match grid length %d",
				rows[i].ObsID, len(rows[i].Flux), grid.Len)
		}

		if err := cw.Write(row(rows[i], nil)); err != nil {
			return fmt.Errorf("table: write row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteAdaptive writes spectra with per-row grids, right-padded to width.
// Value columns are named by bin index and each row carries a grid_start
// column giving the wavelength of its bin 0.
func WriteAdaptive(w io.Writer, width int, rows []spectra.ResampledSpectrum) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, 3+2*width)
	header = append(header, obsIDColumn, typeColumn, "grid_start")

	for i := 0; i < width; i++ {
		header = append(header, "flux_"+strconv.Itoa(i))
	}

	for i := 0; i < width; i++ {
		header = append(header, "ivar_"+strconv.Itoa(i))
	}

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("table: write header: %w", err)
	}

	for i := range rows {
		if len(rows[i].Flux) != width || len(rows[i].Ivar) != width {
			return fmt.Errorf("table: obsid %s: row width %d does not match matrix width %d",
				rows[i].ObsID, len(rows[i].Flux), width)
		}

		start := strconv.FormatFloat(rows[i].Grid.Start, 'f', 1, 64)
		if err := cw.Write(row(rows[i], []string{start})); err != nil {
			return fmt.Errorf("table: write row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// row renders one spectrum as a CSV record: obsid, type, extra columns,
// flux values, ivar values.
func row(sp spectra.ResampledSpectrum, extra []string) []string {
	out := make([]string, 0, 2+len(extra)+len(sp.Flux)+len(sp.Ivar))
	out = append(out, sp.ObsID, sp.Type)
	out = append(out, extra...)

	for _, v := range sp.Flux {
		out = append(out, strconv.FormatFloat(v, 'g', -1, 64))
	}

	for _, v := range sp.Ivar {
		out = append(out, strconv.FormatFloat(v, 'g', -1, 64))
	}

	return out
}

func cell(record []string, col int) string {
	if col < 0 || col >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[col])
}

// values extracts one family's cells as floats; missing or unparseable
// cells become NaN.
func values(record []string, cols []int) []float64 {
	out := make([]float64, len(cols))

	for i, col := range cols {
		s := cell(record, col)
		if s == "" {
			out[i] = math.NaN()
			continue
		}

		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			out[i] = math.NaN()
			continue
		}

		out[i] = v
	}

	return out
}
