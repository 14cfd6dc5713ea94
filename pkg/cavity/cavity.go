// Package cavity builds the CSG subtree for one rounded-bottom bin cavity.
//
// The rounding primitive is only defined for a square footprint, so the
// cavity is built in a 1:1 space with SizeX as the unit and stretched along
// Y by SizeY/SizeX at the end.
package cavity

import (
	"math"

	"github.com/chazu/trayforge/pkg/csg"
	"github.com/chazu/trayforge/pkg/dimension"
)

// Overshoot scales the cavity height so the subtraction pierces the top
// face of the tray.
const Overshoot = 1.1

// Spec places and sizes one cavity. Offsets locate its min corner in the
// tray's XY plane; Floor lifts its bottom above the tray's outer bottom face.
type Spec struct {
	OffsetX, OffsetY float64
	SizeX, SizeY     float64
	Depth            float64
	RoundDepth       float64
	Floor            float64
}

// Validate checks the sizes and rounding of s.
func (s Spec) Validate() error {
	if err := dimension.Positive("sizeX", s.SizeX); err != nil {
		return err
	}
	if err := dimension.Positive("sizeY", s.SizeY); err != nil {
		return err
	}
	if err := dimension.NonNegative("depth", s.Depth); err != nil {
		return err
	}
	return dimension.Rounding(s.RoundDepth, s.Depth)
}

// SphereRadius returns the circumsphere radius of a square of side size,
// the radius used for the rounding solid before it is flattened.
func SphereRadius(size float64) float64 {
	return math.Sqrt2 * size / 2
}

// Build returns the cavity subtree for s.
func Build(s Spec) (csg.Node, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	height := s.Depth * Overshoot

	if s.RoundDepth <= 0 {
		return csg.Translated(
			csg.NewBox(s.SizeX, s.SizeY, height),
			s.OffsetX, s.OffsetY, s.Floor,
		), nil
	}

	full := csg.NewBox(s.SizeX, s.SizeX, height)
	raised := csg.Translated(csg.NewBox(s.SizeX, s.SizeX, height), 0, 0, s.RoundDepth)

	r := SphereRadius(s.SizeX)
	half := s.SizeX / 2
	bowl := csg.Translated(
		csg.Scaled(csg.NewSphere(r), 1, 1, s.RoundDepth/r),
		half, half, s.RoundDepth,
	)

	body := csg.NewIntersection(full, csg.NewUnion(raised, bowl))

	return csg.Translated(
		csg.Scaled(body, 1, s.SizeY/s.SizeX, 1),
		s.OffsetX, s.OffsetY, s.Floor,
	), nil
}
