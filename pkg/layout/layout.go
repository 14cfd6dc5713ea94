// Package layout positions the cells of a tray grid.
//
// Offsets are a prefix sum along each axis: the running offset starts at
// the wall thickness and advances by size+wall after each cell. The value
// left after the last cell is the tray's total extent on that axis; it is
// never recomputed by summation, so placement and footprint cannot drift.
package layout

import (
	"github.com/chazu/trayforge/pkg/dimension"
)

// Cell is one bin of the grid, addressed by column and row.
type Cell struct {
	Col, Row         int
	OffsetX, OffsetY float64 // min corner of the cavity
	Width, Height    float64
}

// Grid is the computed placement of every cell. It is immutable once
// returned by Compute.
type Grid struct {
	widths, heights []float64
	colOffsets      []float64
	rowOffsets      []float64
	wall            float64

	TotalWidth  float64
	TotalHeight float64
}

// Compute lays out a grid with one column per width and one row per
// height, in the given order. Widths run along X, heights along Y.
func Compute(widths, heights []float64, wall float64) (*Grid, error) {
	if err := dimension.List("widths", widths); err != nil {
		return nil, err
	}
	if err := dimension.List("heights", heights); err != nil {
		return nil, err
	}
	if err := dimension.NonNegative("wall", wall); err != nil {
		return nil, err
	}

	g := &Grid{
		widths:  append([]float64(nil), widths...),
		heights: append([]float64(nil), heights...),
		wall:    wall,
	}
	g.colOffsets, g.TotalWidth = offsets(g.widths, wall)
	g.rowOffsets, g.TotalHeight = offsets(g.heights, wall)
	return g, nil
}

// offsets walks sizes in order and returns each entry's start offset and
// the final running offset.
func offsets(sizes []float64, wall float64) ([]float64, float64) {
	out := make([]float64, len(sizes))
	off := wall
	for i, s := range sizes {
		out[i] = off
		off += s + wall
	}
	return out, off
}

// Cols returns the number of columns.
func (g *Grid) Cols() int { return len(g.widths) }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return len(g.heights) }

// Wall returns the wall thickness the grid was computed with.
func (g *Grid) Wall() float64 { return g.wall }

// Widths returns a copy of the column widths.
func (g *Grid) Widths() []float64 { return append([]float64(nil), g.widths...) }

// Heights returns a copy of the row heights.
func (g *Grid) Heights() []float64 { return append([]float64(nil), g.heights...) }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.widths) * len(g.heights) }

// Cell returns the cell at (col, row). It panics if either index is out
// of range.
func (g *Grid) Cell(col, row int) Cell {
	return Cell{
		Col:     col,
		Row:     row,
		OffsetX: g.colOffsets[col],
		OffsetY: g.rowOffsets[row],
		Width:   g.widths[col],
		Height:  g.heights[row],
	}
}

// Index returns the document-order position of (col, row): rows outer,
// columns inner.
func (g *Grid) Index(col, row int) int {
	return row*len(g.widths) + col
}

// Cells returns every cell in document order.
func (g *Grid) Cells() []Cell {
	cells := make([]Cell, 0, g.Len())
	for row := range g.heights {
		for col := range g.widths {
			cells = append(cells, g.Cell(col, row))
		}
	}
	return cells
}
