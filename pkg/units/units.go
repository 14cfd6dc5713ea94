// Package units converts between the length and volume units the tray
// tools present. All geometry is computed in millimeters.
package units

import (
	"fmt"
	"strings"
)

const (
	// MMPerInch is the exact number of millimeters in one inch.
	MMPerInch = 25.4

	// CubicMMPerML is the number of cubic millimeters in one milliliter
	// (1 mL == 1 cm³).
	CubicMMPerML = 1000.0

	// CubicMMPerCup is the number of cubic millimeters in one US cup.
	CubicMMPerCup = 236588.0
)

// Length is a unit of length accepted on input.
type Length int

const (
	Millimeters Length = iota
	Inches
)

func (l Length) String() string {
	switch l {
	case Millimeters:
		return "mm"
	case Inches:
		return "in"
	default:
		return "unknown"
	}
}

// ParseLength accepts "mm", "in" and their long spellings.
func ParseLength(s string) (Length, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mm", "millimeter", "millimeters", "":
		return Millimeters, nil
	case "in", "inch", "inches":
		return Inches, nil
	}
	return Millimeters, fmt.Errorf("unknown length unit %q", s)
}

// Scale returns the factor that converts a value in l to millimeters.
func (l Length) Scale() float64 {
	if l == Inches {
		return MMPerInch
	}
	return 1
}

// ToMM converts v from l to millimeters.
func (l Length) ToMM(v float64) float64 {
	return v * l.Scale()
}

// ToMMs converts every entry of vs, returning a new slice.
func (l Length) ToMMs(vs []float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = l.ToMM(v)
	}
	return out
}

// MMToInches converts millimeters to inches.
func MMToInches(mm float64) float64 {
	return mm / MMPerInch
}

// CubicMMToML converts cubic millimeters to milliliters.
func CubicMMToML(mm3 float64) float64 {
	return mm3 / CubicMMPerML
}

// CubicMMToCups converts cubic millimeters to US cups.
func CubicMMToCups(mm3 float64) float64 {
	return mm3 / CubicMMPerCup
}

// MLToCups converts milliliters to US cups.
func MLToCups(ml float64) float64 {
	return CubicMMToCups(ml * CubicMMPerML)
}
