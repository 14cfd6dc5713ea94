package tray

import (
	"fmt"
	"math"
)

// Advisory limits. None of these make a tray invalid; they flag trays that
// are likely to print badly or be awkward to use.
const (
	MinPrintableWall  = 1.2 // three 0.4 mm perimeters
	MinPrintableFloor = 0.8
	// RecommendedRoundMargin is the clearance below the rim the rounded
	// bottom should keep so the bin has a straight lip.
	RecommendedRoundMargin = 3.0
	// MaxReachRatio is the largest depth to narrowest-side ratio a finger
	// can comfortably scoop from.
	MaxReachRatio = 2.0
)

// Warning is an advisory finding about a valid tray.
type Warning struct {
	Field   string
	Message string
}

func (w Warning) String() string {
	return w.Field + ": " + w.Message
}

// Lint returns advisory warnings for p. Validate must pass first; Lint
// never reports what Validate rejects.
func Lint(p Params) []Warning {
	var warnings []Warning
	warn := func(field, format string, args ...any) {
		warnings = append(warnings, Warning{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if p.Wall < MinPrintableWall {
		warn("wall", "%.2f mm is thinner than %.1f mm and may not print solid", p.Wall, MinPrintableWall)
	}
	if p.Floor < MinPrintableFloor {
		warn("floor", "%.2f mm is thinner than %.1f mm and may not print solid", p.Floor, MinPrintableFloor)
	}
	if p.RoundDepth > 0 && p.Depth-p.RoundDepth < RecommendedRoundMargin {
		warn("round", "%.1f mm leaves less than %.0f mm of straight wall below the rim", p.RoundDepth, RecommendedRoundMargin)
	}

	narrowest := math.Inf(1)
	for _, v := range p.Widths {
		narrowest = math.Min(narrowest, v)
	}
	for _, v := range p.Heights {
		narrowest = math.Min(narrowest, v)
	}
	if narrowest > 0 && !math.IsInf(narrowest, 1) && p.Depth/narrowest > MaxReachRatio {
		warn("depth", "%.1f mm is more than %.0fx the narrowest bin side (%.1f mm)", p.Depth, MaxReachRatio, narrowest)
	}
	return warnings
}
