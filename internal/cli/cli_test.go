package cli

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/trayforge/pkg/dimension"
	"github.com/chazu/trayforge/pkg/kernel/sdfx"
	"github.com/chazu/trayforge/pkg/tessellate"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestGenerateWritesScene(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tray.scad")
	stdout, stderr, err := execute(t, "generate", "[40,25,70]", "[30,100,60,60]", "--wall", "1.5", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	scene := string(data)
	assert.True(t, strings.HasPrefix(scene, "$fn = 64;\n\ndifference() {\n\tcube(size = [141, 257.5, 33.8]);\n"))
	assert.Equal(t, 12, strings.Count(scene, "sphere("))

	assert.Contains(t, stdout, "Bin capacities")
	assert.Contains(t, stdout, "141.00 mm")
	assert.Contains(t, stdout, "mL")
	assert.Contains(t, stderr, "Wrote OpenSCAD file")
}

func TestGenerateDefaultName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := writeFile(t, "c.toml", "[output]\ndir = \""+filepath.ToSlash(dir)+"\"\n")

	_, _, err := execute(t, "generate", "[40.7,25]", "[30]", "--config", cfg)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "tray_40x25_by_30.scad"))
}

func TestGenerateResolutionAndPrecision(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "t.scad")
	_, _, err := execute(t, "generate", "[10]", "[10]", "--round", "0", "--resolution", "32", "--precision", "0", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "$fn = 32;\n"))
	assert.NotContains(t, string(data), "sphere(")
	assert.Contains(t, string(data), "cube(size = [14, 14, 34]);")
}

func TestGenerateSTL(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "t.scad")
	_, stderr, err := execute(t, "generate", "[20]", "[20]", "--stl", "--stl-cells", "40", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(strings.TrimSuffix(path, ".scad") + ".stl")
	require.NoError(t, err)
	require.Greater(t, len(data), 84)
	n := binary.LittleEndian.Uint32(data[80:84])
	assert.Positive(t, n)
	assert.Equal(t, 84+50*int(n), len(data))
	assert.Contains(t, stderr, "Meshed tray")
}

func TestGenerateSTLZeroDepth(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "t.scad")
	_, _, err := execute(t, "generate", "[10]", "[10]", "--depth", "0", "--round", "0", "--stl", "--stl-cells", "20", "-o", path)
	require.ErrorIs(t, err, tessellate.ErrDegenerate)
	assert.FileExists(t, path)
}

func TestGenerateUnknownKernel(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "t.scad")
	_, _, err := execute(t, "generate", "[10]", "[10]", "--stl", "--kernel", "cgal", "-o", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown kernel "cgal"`)
	assert.NoFileExists(t, path)
}

func TestNewKernel(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", kernelSDFX} {
		k, err := newKernel(name, 30)
		require.NoError(t, err)
		sk, ok := k.(*sdfx.SdfxKernel)
		require.True(t, ok, "kernel %q is %T", name, k)
		assert.Equal(t, 30, sk.Cells())
	}
}

func TestGenerateInches(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "t.scad")
	stdout, _, err := execute(t, "generate", "[1,2]", "[1]", "--inches", "--depth", "1", "--round", "0.5", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "cups")
	assert.Contains(t, stdout, "mL")
	assert.Contains(t, stdout, "1.00 in")
	assert.Contains(t, stdout, "2.00 in")
}

func TestGenerateRoundTooDeep(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "t.scad")
	_, _, err := execute(t, "generate", "[10]", "[10]", "--depth", "10", "--round", "12", "-o", path)
	require.ErrorIs(t, err, dimension.ErrInvalidRounding)
	assert.NoFileExists(t, path)

	_, stderr, err := execute(t, "generate", "[10]", "[10]", "--depth", "10", "--round", "12", "--shorten", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Shortened round depth")
	assert.FileExists(t, path)
}

func TestGenerateBadSizes(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "generate", "[10]")
	assert.ErrorIs(t, err, errSizesUsage)

	_, _, err = execute(t, "generate", "[]", "[10]", "-o", filepath.Join(t.TempDir(), "t.scad"))
	assert.ErrorIs(t, err, dimension.ErrInvalidDimension)
}

func TestGenerateScript(t *testing.T) {
	t.Parallel()

	script := writeFile(t, "tray.lisp", `
; three columns, two rows
(def w [40 25 70])
(tray :widths w :heights [30 100] :wall 1.5)
`)
	path := filepath.Join(t.TempDir(), "t.scad")
	stdout, _, err := execute(t, "generate", "--script", script, "--depth", "20", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "141.00 mm")
	assert.Contains(t, stdout, "21.80 mm", "--depth overrides the script")

	_, _, err = execute(t, "generate", "[1]", "[1]", "--script", script)
	assert.Error(t, err)
}

func TestGenerateScriptErrors(t *testing.T) {
	t.Parallel()

	script := writeFile(t, "empty.lisp", "(def x 1)\n")
	_, _, err := execute(t, "generate", "--script", script)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not define a tray")
}

func TestVolumeCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "volume", "[30]", "[30]", "--round", "0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "28.8 mL")
	assert.Contains(t, stdout, "30.0 mm")
}

func TestVolumeCheck(t *testing.T) {
	t.Parallel()

	_, stderr, err := execute(t, "volume", "[30,45]", "[30,12]", "--check", "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Numeric check passed")
	assert.Contains(t, stderr, "Checked bin")
}

func TestVolumeUsesConfigSizes(t *testing.T) {
	t.Parallel()

	cfg := writeFile(t, "c.toml", "[defaults]\nwidths = [30]\nheights = [30]\nround = 0\n")
	stdout, _, err := execute(t, "volume", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, stdout, "28.8 mL")
}

func TestGenerateLogsWarnings(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "t.scad")
	_, stderr, err := execute(t, "generate", "[10]", "[10]", "--wall", "0.6", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "may not print solid")
	assert.Contains(t, stderr, "field=wall")
}
