// Package tray assembles a full tray scene from a grid of rounded-bottom
// cavities and reports the capacity of every cavity.
package tray

import (
	"math"

	"github.com/chazu/trayforge/pkg/dimension"
	"github.com/chazu/trayforge/pkg/layout"
	"github.com/chazu/trayforge/pkg/units"
)

// Default dimensions in millimeters.
const (
	DefaultDepth = 32.0
	DefaultWall  = 1.8
	DefaultFloor = 1.8
	DefaultRound = 12.0
)

// Params describes one tray. All lengths share one unit (millimeters
// unless a caller converts them first).
type Params struct {
	Widths  []float64 `toml:"widths"`
	Heights []float64 `toml:"heights"`

	Wall       float64 `toml:"wall"`
	Floor      float64 `toml:"floor"`
	Depth      float64 `toml:"depth"`
	RoundDepth float64 `toml:"round"`

	// RoundMargin is the clearance RoundDepth must keep below Depth.
	// Zero allows a round depth equal to the full cavity depth.
	RoundMargin float64 `toml:"round_margin"`
}

// DefaultParams returns Params with the default wall, floor, depth and
// round depth and no cells.
func DefaultParams() Params {
	return Params{
		Wall:       DefaultWall,
		Floor:      DefaultFloor,
		Depth:      DefaultDepth,
		RoundDepth: DefaultRound,
	}
}

// RoundLimit returns the deepest valid round depth for p.
func (p Params) RoundLimit() float64 {
	return p.Depth - p.RoundMargin
}

// Validate checks every dimension of p. It never adjusts a value.
func (p Params) Validate() error {
	if err := dimension.List("widths", p.Widths); err != nil {
		return err
	}
	if err := dimension.List("heights", p.Heights); err != nil {
		return err
	}
	if err := dimension.NonNegative("wall", p.Wall); err != nil {
		return err
	}
	if err := dimension.NonNegative("floor", p.Floor); err != nil {
		return err
	}
	if err := dimension.NonNegative("depth", p.Depth); err != nil {
		return err
	}
	if err := dimension.NonNegative("roundMargin", p.RoundMargin); err != nil {
		return err
	}
	return dimension.Rounding(p.RoundDepth, p.RoundLimit())
}

// ShortenRound returns a copy of p with RoundDepth clamped to the round
// limit, and whether it changed. Generation never does this on its own.
func (p Params) ShortenRound() (Params, bool) {
	limit := math.Max(p.RoundLimit(), 0)
	if p.RoundDepth <= limit {
		return p, false
	}
	p.Widths = append([]float64(nil), p.Widths...)
	p.Heights = append([]float64(nil), p.Heights...)
	p.RoundDepth = limit
	return p, true
}

// TotalDepth returns the overall height of the tray.
func (p Params) TotalDepth() float64 {
	return p.Floor + p.Depth
}

// Layout computes the grid placement for p.
func (p Params) Layout() (*layout.Grid, error) {
	return layout.Compute(p.Widths, p.Heights, p.Wall)
}

// InUnits treats every length of p as given in l and returns the
// millimeter equivalent.
func (p Params) InUnits(l units.Length) Params {
	return Params{
		Widths:      l.ToMMs(p.Widths),
		Heights:     l.ToMMs(p.Heights),
		Wall:        l.ToMM(p.Wall),
		Floor:       l.ToMM(p.Floor),
		Depth:       l.ToMM(p.Depth),
		RoundDepth:  l.ToMM(p.RoundDepth),
		RoundMargin: l.ToMM(p.RoundMargin),
	}
}
