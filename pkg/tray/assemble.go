package tray

import (
	"github.com/chazu/trayforge/pkg/csg"
	"github.com/chazu/trayforge/pkg/layout"
)

// Scene is the root CSG tree of a tray and its outer dimensions.
type Scene struct {
	Root   csg.Node
	Width  float64
	Height float64
	Depth  float64 // floor + cavity depth
}

// Assemble subtracts the union of cavities from the tray block. Cavities
// must already be validated and in document order; Assemble does no
// checking of its own.
func Assemble(g *layout.Grid, cavities []csg.Node, floor, depth float64) Scene {
	total := floor + depth
	base := csg.NewBox(g.TotalWidth, g.TotalHeight, total)
	return Scene{
		Root:   csg.NewDifference(base, csg.NewUnion(cavities...)),
		Width:  g.TotalWidth,
		Height: g.TotalHeight,
		Depth:  total,
	}
}
