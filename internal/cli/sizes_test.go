package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		widths  []float64
		heights []float64
	}{
		{"two args", []string{"[40,25,70]", "[30,100,60,60]"}, []float64{40, 25, 70}, []float64{30, 100, 60, 60}},
		{"split by shell", []string{"[10,", "20,30]", "[35,", "45,", "55]"}, []float64{10, 20, 30}, []float64{35, 45, 55}},
		{"glued", []string{"[1.5,2][3]"}, []float64{1.5, 2}, []float64{3}},
		{"comma between lists", []string{"[1],[2]"}, []float64{1}, []float64{2}},
		{"spaces inside", []string{"[ 1 , 2 ]", "[ 3 ]"}, []float64{1, 2}, []float64{3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w, h, err := parseSizes(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.widths, w)
			assert.Equal(t, tt.heights, h)
		})
	}
}

func TestParseSizesErrors(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{
		nil,
		{"[1,2]"},
		{"[1,2]", "[3]", "[4]"},
		{"1,2", "3"},
		{"[1,2", "[3]"},
		{"[1,x]", "[3]"},
		{"[1,,2]", "[3]"},
	} {
		_, _, err := parseSizes(args)
		assert.ErrorIs(t, err, errSizesUsage, "args %q", args)
	}
}

func TestParseSizesEmptyList(t *testing.T) {
	t.Parallel()

	w, h, err := parseSizes([]string{"[]", "[1]"})
	require.NoError(t, err)
	assert.Empty(t, w)
	assert.Equal(t, []float64{1}, h)
}
