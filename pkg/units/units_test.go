package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLength(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "mm", Millimeters.String())
	assert.Equal(t, "in", Inches.String())
	assert.Equal(t, 12.0, Millimeters.ToMM(12))
	assert.InDelta(t, 50.8, Inches.ToMM(2), 1e-12)
	assert.Equal(t, []float64{25.4, 50.8}, Inches.ToMMs([]float64{1, 2}))
}

func TestVolumeConversions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 28.8, CubicMMToML(28800))
	assert.InDelta(t, 1.0, CubicMMToCups(236588), 1e-12)
	assert.InDelta(t, 1.0, MLToCups(236.588), 1e-12)
	assert.InDelta(t, 1.0, MMToInches(25.4), 1e-12)
}

func TestParseLength(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Length{
		"mm": Millimeters, "": Millimeters, "Inches": Inches, " in ": Inches, "inch": Inches,
	} {
		got, err := ParseLength(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLength("furlong")
	assert.ErrorContains(t, err, "furlong")
}
