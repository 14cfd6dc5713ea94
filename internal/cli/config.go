package cli

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/chazu/trayforge/pkg/kernel/sdfx"
	"github.com/chazu/trayforge/pkg/scad"
	"github.com/chazu/trayforge/pkg/tray"
)

// Config is the optional TOML configuration file. Lengths under
// [defaults] are always millimeters; --inches applies to the command line
// only.
//
//	inches = false
//
//	[defaults]
//	depth = 32
//	wall = 1.8
//	floor = 1.8
//	round = 12
//	round_margin = 0
//	widths = [40, 25, 70]     # used when no sizes are given
//	heights = [30, 100, 60, 60]
//
//	[output]
//	dir = "."
//	resolution = 64
//	precision = 6
//	stl_cells = 200
//	kernel = "sdfx"
type Config struct {
	Inches   bool         `toml:"inches"`
	Defaults tray.Params  `toml:"defaults"`
	Output   OutputConfig `toml:"output"`
}

// OutputConfig controls where and how scenes are written.
type OutputConfig struct {
	Dir        string `toml:"dir"`
	Resolution int    `toml:"resolution"`
	Precision  int    `toml:"precision"`
	STLCells   int    `toml:"stl_cells"`
	Kernel     string `toml:"kernel"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Defaults: tray.DefaultParams(),
		Output: OutputConfig{
			Dir:        ".",
			Resolution: scad.DefaultResolution,
			Precision:  scad.DefaultPrecision,
			STLCells:   sdfx.DefaultMeshCells,
			Kernel:     kernelSDFX,
		},
	}
}

// loadConfig reads path over DefaultConfig. An empty path returns the
// defaults. Unknown keys are an error so typos do not pass silently.
func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}
