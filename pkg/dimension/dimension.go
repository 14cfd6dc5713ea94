// Package dimension defines the error kinds shared by the geometry packages
// and the small set of checks that produce them.
package dimension

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidDimension reports an empty dimension list or a size that is
	// not a finite, strictly positive length.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrInvalidRounding reports a round depth that is negative or deeper
	// than the cavity it rounds.
	ErrInvalidRounding = errors.New("invalid rounding")

	// ErrShapeMismatch reports a volume report whose shape disagrees with
	// the dimension lists it is checked against.
	ErrShapeMismatch = errors.New("shape mismatch")
)

// Error describes which value failed a check. Kind is one of the sentinel
// errors above and is what errors.Is matches against.
type Error struct {
	Kind  error
	Field string
	Index int // position within a list, -1 for scalars
	Value float64
	Msg   string
}

func (e *Error) Error() string {
	field := e.Field
	if e.Index >= 0 {
		field = fmt.Sprintf("%s[%d]", e.Field, e.Index)
	}
	if e.Msg != "" {
		return fmt.Sprintf("%v: %s: %s", e.Kind, field, e.Msg)
	}
	return fmt.Sprintf("%v: %s = %g", e.Kind, field, e.Value)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Positive fails with ErrInvalidDimension unless v is finite and > 0.
func Positive(field string, v float64) error {
	if !finite(v) || v <= 0 {
		return &Error{Kind: ErrInvalidDimension, Field: field, Index: -1, Value: v}
	}
	return nil
}

// NonNegative fails with ErrInvalidDimension unless v is finite and >= 0.
func NonNegative(field string, v float64) error {
	if !finite(v) || v < 0 {
		return &Error{Kind: ErrInvalidDimension, Field: field, Index: -1, Value: v}
	}
	return nil
}

// List checks that vs is non-empty and every entry is Positive.
func List(field string, vs []float64) error {
	if len(vs) == 0 {
		return &Error{Kind: ErrInvalidDimension, Field: field, Index: -1, Msg: "empty list"}
	}
	for i, v := range vs {
		if !finite(v) || v <= 0 {
			return &Error{Kind: ErrInvalidDimension, Field: field, Index: i, Value: v}
		}
	}
	return nil
}

// Rounding checks 0 <= round <= limit. The bound is inclusive: a round
// depth equal to the limit is valid.
func Rounding(round, limit float64) error {
	if !finite(round) || round < 0 {
		return &Error{Kind: ErrInvalidRounding, Field: "roundDepth", Index: -1, Value: round}
	}
	if round > limit {
		return &Error{
			Kind:  ErrInvalidRounding,
			Field: "roundDepth",
			Index: -1,
			Msg:   fmt.Sprintf("%g exceeds limit %g", round, limit),
		}
	}
	return nil
}

// Mismatch builds an ErrShapeMismatch for a list whose length disagrees.
func Mismatch(field string, got, want int) error {
	return &Error{
		Kind:  ErrShapeMismatch,
		Field: field,
		Index: -1,
		Msg:   fmt.Sprintf("report has %d entries, layout has %d", got, want),
	}
}
