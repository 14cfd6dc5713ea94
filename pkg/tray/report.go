package tray

import (
	"github.com/chazu/trayforge/pkg/dimension"
)

// Report holds the capacity of every cavity in milliliters, indexed
// [col][row] like the grid, plus the tray's outer dimensions.
type Report struct {
	Volumes [][]float64

	Width  float64
	Height float64
	Depth  float64
}

func newReport(cols, rows int) Report {
	vols := make([][]float64, cols)
	for c := range vols {
		vols[c] = make([]float64, rows)
	}
	return Report{Volumes: vols}
}

// Cols returns the number of report columns.
func (r *Report) Cols() int { return len(r.Volumes) }

// Rows returns the number of report rows.
func (r *Report) Rows() int {
	if len(r.Volumes) == 0 {
		return 0
	}
	return len(r.Volumes[0])
}

// Volume returns the capacity of the cavity at (col, row) in milliliters.
func (r *Report) Volume(col, row int) float64 {
	return r.Volumes[col][row]
}

// Total returns the combined capacity of every cavity in milliliters.
func (r *Report) Total() float64 {
	var sum float64
	for _, col := range r.Volumes {
		for _, v := range col {
			sum += v
		}
	}
	return sum
}

// Check fails with ErrShapeMismatch when r was not produced for a grid of
// len(widths) columns by len(heights) rows.
func (r *Report) Check(widths, heights []float64) error {
	if r.Cols() != len(widths) {
		return dimension.Mismatch("widths", r.Cols(), len(widths))
	}
	for _, col := range r.Volumes {
		if len(col) != len(heights) {
			return dimension.Mismatch("heights", len(col), len(heights))
		}
	}
	return nil
}
