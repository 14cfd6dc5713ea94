// Package volume computes the capacity of a rounded-bottom cavity.
//
// The cavity is a square prism of side sizeX whose bottom roundDepth is
// replaced by the lower half of its circumsphere, flattened along Z to
// roundDepth and clipped to the square; the whole solid is then stretched
// along Y by sizeY/sizeX. Cavity evaluates that solid in closed form.
//
// The sphere meets the square's four sides in spherical caps that do not
// overlap (a point beyond two adjacent sides lies outside the sphere), so
// the clipped sphere is the full sphere minus four caps, exactly.
package volume

import (
	"math"

	"github.com/chazu/trayforge/pkg/dimension"
)

func validate(sizeX, sizeY, depth, roundDepth float64) error {
	if err := dimension.Positive("sizeX", sizeX); err != nil {
		return err
	}
	if err := dimension.Positive("sizeY", sizeY); err != nil {
		return err
	}
	if err := dimension.NonNegative("depth", depth); err != nil {
		return err
	}
	return dimension.Rounding(roundDepth, depth)
}

// CapVolume returns the volume of a spherical cap of height h whose base
// circle has radius a.
func CapVolume(a, h float64) float64 {
	return math.Pi * h * (3*a*a + h*h) / 6
}

// SphereVolume returns the volume of a sphere of radius r.
func SphereVolume(r float64) float64 {
	return 4 * math.Pi * r * r * r / 3
}

// rounded is the bowl term without validation.
func rounded(sizeX, sizeY, roundDepth float64) float64 {
	r := math.Sqrt2 * sizeX / 2
	a := sizeX / 2
	h := r - a

	v := (SphereVolume(r) - 4*CapVolume(a, h)) / 2
	v *= sizeY / sizeX
	v *= roundDepth / r
	return v
}

// Rounded returns the volume of the rounded region alone: the part of the
// cavity below roundDepth.
func Rounded(sizeX, sizeY, roundDepth float64) (float64, error) {
	if err := validate(sizeX, sizeY, roundDepth, roundDepth); err != nil {
		return 0, err
	}
	return rounded(sizeX, sizeY, roundDepth), nil
}

// Cavity returns the exact volume of one cavity in cubic input units.
// A roundDepth of 0 yields the plain box sizeX·sizeY·depth; a roundDepth
// equal to depth leaves only the rounded region.
func Cavity(sizeX, sizeY, depth, roundDepth float64) (float64, error) {
	if err := validate(sizeX, sizeY, depth, roundDepth); err != nil {
		return 0, err
	}
	prism := (depth - roundDepth) * sizeX * sizeY
	return prism + rounded(sizeX, sizeY, roundDepth), nil
}
