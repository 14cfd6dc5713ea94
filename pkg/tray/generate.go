package tray

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/chazu/trayforge/pkg/cavity"
	"github.com/chazu/trayforge/pkg/csg"
	"github.com/chazu/trayforge/pkg/layout"
	"github.com/chazu/trayforge/pkg/units"
	"github.com/chazu/trayforge/pkg/volume"
)

// Result is the output of one generation run.
type Result struct {
	Grid   *layout.Grid
	Scene  Scene
	Report Report
}

// Cavity returns the cavity spec for one cell of a tray described by p.
func (p Params) Cavity(c layout.Cell) cavity.Spec {
	return cavity.Spec{
		OffsetX:    c.OffsetX,
		OffsetY:    c.OffsetY,
		SizeX:      c.Width,
		SizeY:      c.Height,
		Depth:      p.Depth,
		RoundDepth: p.RoundDepth,
		Floor:      p.Floor,
	}
}

// Generate validates p, lays out the grid, builds every cavity and its
// volume, and assembles the tray scene.
//
// Cells are processed concurrently. Each result is written to the slot of
// its cell's document-order index, so the scene is identical to one built
// sequentially.
func Generate(p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	grid, err := p.Layout()
	if err != nil {
		return nil, err
	}

	cells := grid.Cells()
	cavities := make([]csg.Node, len(cells))
	report := newReport(grid.Cols(), grid.Rows())

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for _, c := range cells {
		eg.Go(func() error {
			spec := p.Cavity(c)
			n, err := cavity.Build(spec)
			if err != nil {
				return fmt.Errorf("cell (%d,%d): %w", c.Col, c.Row, err)
			}
			v, err := volume.Cavity(spec.SizeX, spec.SizeY, spec.Depth, spec.RoundDepth)
			if err != nil {
				return fmt.Errorf("cell (%d,%d): %w", c.Col, c.Row, err)
			}
			cavities[grid.Index(c.Col, c.Row)] = n
			report.Volumes[c.Col][c.Row] = units.CubicMMToML(v)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	scene := Assemble(grid, cavities, p.Floor, p.Depth)
	report.Width = scene.Width
	report.Height = scene.Height
	report.Depth = scene.Depth

	return &Result{Grid: grid, Scene: scene, Report: report}, nil
}

// Volumes computes only the volume report for p, without building the
// scene.
func Volumes(p Params) (Report, error) {
	if err := p.Validate(); err != nil {
		return Report{}, err
	}
	grid, err := p.Layout()
	if err != nil {
		return Report{}, err
	}
	report := newReport(grid.Cols(), grid.Rows())
	for _, c := range grid.Cells() {
		v, err := volume.Cavity(c.Width, c.Height, p.Depth, p.RoundDepth)
		if err != nil {
			return Report{}, fmt.Errorf("cell (%d,%d): %w", c.Col, c.Row, err)
		}
		report.Volumes[c.Col][c.Row] = units.CubicMMToML(v)
	}
	report.Width = grid.TotalWidth
	report.Height = grid.TotalHeight
	report.Depth = p.TotalDepth()
	return report, nil
}
