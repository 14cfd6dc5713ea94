package volume

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// DefaultNodes is the Gauss-Legendre node count per axis used by Numeric
// when n <= 0.
const DefaultNodes = 256

// Numeric integrates the cavity volume with nested Gauss-Legendre rules,
// independently of the closed form in Cavity. It integrates the depth of
// the flattened bowl over the square footprint, so it converges to Cavity
// as n grows. At the default n the two agree to about 1e-12 relative.
func Numeric(sizeX, sizeY, depth, roundDepth float64, n int) (float64, error) {
	if err := validate(sizeX, sizeY, depth, roundDepth); err != nil {
		return 0, err
	}
	if n <= 0 {
		n = DefaultNodes
	}

	prism := (depth - roundDepth) * sizeX * sizeY
	if roundDepth == 0 {
		return prism, nil
	}

	r := math.Sqrt2 * sizeX / 2
	a := sizeX / 2

	// Depth of the flattened lower hemisphere below roundDepth at (x, y),
	// measured from the square's centre.
	bowl := func(x, y float64) float64 {
		d := 1 - (x*x+y*y)/(r*r)
		if d <= 0 {
			return 0
		}
		return roundDepth * math.Sqrt(d)
	}

	inner := func(x float64) float64 {
		return quad.Fixed(func(y float64) float64 { return bowl(x, y) }, -a, a, n, nil, 0)
	}
	v := quad.Fixed(inner, -a, a, n, nil, 0)

	return prism + v*sizeY/sizeX, nil
}
