package tray

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/trayforge/pkg/cavity"
	"github.com/chazu/trayforge/pkg/csg"
	"github.com/chazu/trayforge/pkg/dimension"
	"github.com/chazu/trayforge/pkg/units"
	"github.com/chazu/trayforge/pkg/volume"
)

func mixedTray() Params {
	p := DefaultParams()
	p.Widths = []float64{40, 25, 70}
	p.Heights = []float64{30, 100, 60, 60}
	p.Wall = 1.5
	return p
}

func TestGenerateMixedSizes(t *testing.T) {
	t.Parallel()

	res, err := Generate(mixedTray())
	require.NoError(t, err)

	assert.Equal(t, 141.0, res.Scene.Width)
	assert.Equal(t, 257.5, res.Scene.Height)
	assert.Equal(t, DefaultFloor+DefaultDepth, res.Scene.Depth)

	assert.Equal(t, 3, res.Report.Cols())
	assert.Equal(t, 4, res.Report.Rows())
	assert.Equal(t, res.Scene.Width, res.Report.Width)
	assert.Equal(t, res.Scene.Height, res.Report.Height)
	assert.Equal(t, res.Scene.Depth, res.Report.Depth)
}

func TestGenerateSceneShape(t *testing.T) {
	t.Parallel()

	p := mixedTray()
	res, err := Generate(p)
	require.NoError(t, err)

	diff, ok := res.Scene.Root.(csg.Difference)
	require.True(t, ok, "root is %T", res.Scene.Root)
	assert.Equal(t, csg.NewBox(141, 257.5, p.Floor+p.Depth), diff.Base)
	require.Len(t, diff.Subtrahends, 1)

	union, ok := diff.Subtrahends[0].(csg.Union)
	require.True(t, ok)
	require.Len(t, union.Children, 12)

	// Children follow document order: rows outer, columns inner.
	for i, c := range res.Grid.Cells() {
		want, err := cavity.Build(p.Cavity(c))
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(want, union.Children[i]), "cell %d", i)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	t.Parallel()

	p := mixedTray()
	a, err := Generate(p)
	require.NoError(t, err)
	for range 5 {
		b, err := Generate(p)
		require.NoError(t, err)
		require.Empty(t, cmp.Diff(a.Scene, b.Scene))
		require.Empty(t, cmp.Diff(a.Report, b.Report))
	}
}

func TestGenerateVolumes(t *testing.T) {
	t.Parallel()

	p := mixedTray()
	res, err := Generate(p)
	require.NoError(t, err)

	for _, c := range res.Grid.Cells() {
		mm3, err := volume.Cavity(c.Width, c.Height, p.Depth, p.RoundDepth)
		require.NoError(t, err)
		assert.InDelta(t, mm3/1000, res.Report.Volume(c.Col, c.Row), 1e-9)
	}

	vols, err := Volumes(p)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(res.Report, vols))
	assert.InDelta(t, res.Report.Total(), vols.Total(), 1e-9)
}

func TestGenerateFlatBins(t *testing.T) {
	t.Parallel()

	p := Params{Widths: []float64{30}, Heights: []float64{30}, Wall: 2, Floor: 2, Depth: 32}
	res, err := Generate(p)
	require.NoError(t, err)
	assert.Equal(t, 28.8, res.Report.Volume(0, 0))
	assert.Equal(t, 0, csg.Count(res.Scene.Root)[csg.KindSphere])
}

func TestGenerateRoundEqualsDepth(t *testing.T) {
	t.Parallel()

	p := mixedTray()
	p.RoundDepth = p.Depth
	_, err := Generate(p)
	assert.NoError(t, err)
}

func TestGenerateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Params)
		want   error
	}{
		{"empty widths", func(p *Params) { p.Widths = nil }, dimension.ErrInvalidDimension},
		{"zero height", func(p *Params) { p.Heights = []float64{10, 0} }, dimension.ErrInvalidDimension},
		{"negative wall", func(p *Params) { p.Wall = -1 }, dimension.ErrInvalidDimension},
		{"negative floor", func(p *Params) { p.Floor = -1 }, dimension.ErrInvalidDimension},
		{"round too deep", func(p *Params) { p.RoundDepth = p.Depth + 0.1 }, dimension.ErrInvalidRounding},
		{"round within margin", func(p *Params) { p.RoundMargin = 3; p.RoundDepth = p.Depth - 2 }, dimension.ErrInvalidRounding},
		{"negative round", func(p *Params) { p.RoundDepth = -1 }, dimension.ErrInvalidRounding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := mixedTray()
			tt.mutate(&p)

			res, err := Generate(p)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, res)

			_, err = Volumes(p)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestShortenRound(t *testing.T) {
	t.Parallel()

	p := mixedTray()
	p.RoundMargin = 3
	p.RoundDepth = 40

	short, changed := p.ShortenRound()
	assert.True(t, changed)
	assert.Equal(t, 29.0, short.RoundDepth)
	assert.Equal(t, 40.0, p.RoundDepth, "original untouched")
	assert.NoError(t, short.Validate())

	same, changed := short.ShortenRound()
	assert.False(t, changed)
	assert.Equal(t, short.RoundDepth, same.RoundDepth)

	shallow := Params{Widths: []float64{1}, Heights: []float64{1}, Depth: 2, RoundMargin: 3, RoundDepth: 1}
	shallow, changed = shallow.ShortenRound()
	assert.True(t, changed)
	assert.Equal(t, 0.0, shallow.RoundDepth)
}

func TestInUnits(t *testing.T) {
	t.Parallel()

	p := Params{Widths: []float64{1, 2}, Heights: []float64{0.5}, Wall: 0.25, Floor: 0.25, Depth: 1, RoundDepth: 0.5}
	mm := p.InUnits(units.Inches)
	assert.Equal(t, []float64{25.4, 50.8}, mm.Widths)
	assert.Equal(t, []float64{12.7}, mm.Heights)
	assert.Equal(t, 6.35, mm.Wall)
	assert.Equal(t, 25.4, mm.Depth)
	assert.Equal(t, 12.7, mm.RoundDepth)
	assert.Equal(t, 1.0, p.Depth, "original untouched")

	assert.Equal(t, p, p.InUnits(units.Millimeters))
}

func TestAssemble(t *testing.T) {
	t.Parallel()

	p := Params{Widths: []float64{10}, Heights: []float64{20}, Wall: 1, Floor: 2, Depth: 5}
	g, err := p.Layout()
	require.NoError(t, err)

	cav := csg.NewBox(1, 1, 1)
	s := Assemble(g, []csg.Node{cav}, p.Floor, p.Depth)

	want := csg.NewDifference(csg.NewBox(12, 22, 7), csg.NewUnion(cav))
	assert.Empty(t, cmp.Diff(want, s.Root))
	assert.Equal(t, Scene{Root: s.Root, Width: 12, Height: 22, Depth: 7}, s)
}

func TestReportCheck(t *testing.T) {
	t.Parallel()

	res, err := Generate(mixedTray())
	require.NoError(t, err)

	assert.NoError(t, res.Report.Check([]float64{1, 2, 3}, []float64{1, 2, 3, 4}))
	assert.ErrorIs(t, res.Report.Check([]float64{1, 2}, []float64{1, 2, 3, 4}), dimension.ErrShapeMismatch)
	assert.ErrorIs(t, res.Report.Check([]float64{1, 2, 3}, []float64{1}), dimension.ErrShapeMismatch)

	var empty Report
	assert.Equal(t, 0, empty.Rows())
	assert.ErrorIs(t, empty.Check([]float64{1}, []float64{1}), dimension.ErrShapeMismatch)
}

func TestID(t *testing.T) {
	t.Parallel()

	a := mixedTray()
	b := mixedTray()
	assert.Equal(t, ID(a), ID(b))
	assert.Equal(t, 5, int(ID(a).Version()))

	b.Heights = []float64{30, 100, 60}
	assert.NotEqual(t, ID(a), ID(b))

	c := mixedTray()
	c.RoundDepth = 11
	assert.NotEqual(t, ID(a), ID(c))
}

func TestFileStem(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "tray_40x25x70_by_30x100x60x60", FileStem(mixedTray()))

	p := Params{Widths: []float64{12.7, 50.8}, Heights: []float64{25.4}}
	assert.Equal(t, "tray_12x50_by_25", FileStem(p))
}

func TestLint(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Lint(mixedTray()))

	p := mixedTray()
	p.Wall = 0.8
	p.Floor = 0.4
	p.RoundDepth = 31
	p.Depth = 32
	p.Widths = []float64{10, 40}

	warnings := Lint(p)
	fields := make([]string, len(warnings))
	for i, w := range warnings {
		fields[i] = w.Field
	}
	assert.Equal(t, []string{"wall", "floor", "round", "depth"}, fields)
	assert.Contains(t, warnings[3].String(), "depth: 32.0 mm")
}

func TestLintFlatBins(t *testing.T) {
	t.Parallel()

	p := mixedTray()
	p.RoundDepth = 0
	p.Depth = 1
	assert.Empty(t, Lint(p), "no rounded bottom, no margin warning")
}
