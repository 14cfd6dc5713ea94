package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/trayforge/pkg/engine"
	"github.com/chazu/trayforge/pkg/tray"
	"github.com/chazu/trayforge/pkg/units"
)

// trayOpts holds the flags shared by every command that describes a tray.
type trayOpts struct {
	config string
	script string

	depth       float64
	floor       float64
	wall        float64
	round       float64
	roundMargin float64

	inches  bool
	shorten bool
}

func (o *trayOpts) bind(cmd *cobra.Command) {
	d := tray.DefaultParams()
	fs := cmd.Flags()
	fs.StringVar(&o.config, "config", "", "TOML configuration file")
	fs.StringVar(&o.script, "script", "", "tray script (Lisp) describing the tray instead of size lists")
	fs.Float64Var(&o.depth, "depth", d.Depth, "bin depth (mm)")
	fs.Float64Var(&o.floor, "floor", d.Floor, "floor thickness (mm)")
	fs.Float64Var(&o.wall, "wall", d.Wall, "wall thickness (mm)")
	fs.Float64Var(&o.round, "round", d.RoundDepth, "depth of the rounded bottom (mm)")
	fs.Float64Var(&o.roundMargin, "round-margin", d.RoundMargin, "clearance the rounded bottom keeps below the bin depth (mm)")
	fs.BoolVar(&o.inches, "inches", false, "interpret sizes and lengths given on the command line as inches")
	fs.BoolVar(&o.shorten, "shorten", false, "clamp an over-deep --round instead of failing")
}

// resolved is a tray description after config, script, arguments and
// flags have been merged. Params are in millimeters.
type resolved struct {
	params tray.Params
	unit   units.Length
	cfg    Config
}

// resolve merges, in increasing priority: built-in defaults, the config
// file, the script or size arguments, and explicitly set flags.
func (o *trayOpts) resolve(ctx context.Context, cmd *cobra.Command, args []string) (*resolved, error) {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(o.config)
	if err != nil {
		return nil, err
	}

	unit := units.Millimeters
	if cfg.Inches {
		unit = units.Inches
	}
	if cmd.Flags().Changed("inches") {
		unit = units.Millimeters
		if o.inches {
			unit = units.Inches
		}
	}

	var p tray.Params
	switch {
	case o.script != "":
		if len(args) > 0 {
			return nil, errors.New("give bin sizes either as arguments or with --script, not both")
		}
		sp, err := runScript(o.script)
		if err != nil {
			return nil, err
		}
		logger.Debug("Evaluated script", "path", o.script)
		p = sp

	case len(args) == 0 && len(cfg.Defaults.Widths) > 0:
		p = cfg.Defaults

	default:
		widths, heights, err := parseSizes(args)
		if err != nil {
			return nil, err
		}
		p = cfg.Defaults
		p.Widths = unit.ToMMs(widths)
		p.Heights = unit.ToMMs(heights)
	}

	o.override(cmd, &p, unit)

	if o.shorten {
		var changed bool
		before := p.RoundDepth
		if p, changed = p.ShortenRound(); changed {
			logger.Warn("Shortened round depth", "from", before, "to", p.RoundDepth)
		}
	}

	return &resolved{params: p, unit: unit, cfg: cfg}, nil
}

// override copies every explicitly set length flag into p.
func (o *trayOpts) override(cmd *cobra.Command, p *tray.Params, unit units.Length) {
	set := func(name string, dst *float64, v float64) {
		if cmd.Flags().Changed(name) {
			*dst = unit.ToMM(v)
		}
	}
	set("depth", &p.Depth, o.depth)
	set("floor", &p.Floor, o.floor)
	set("wall", &p.Wall, o.wall)
	set("round", &p.RoundDepth, o.round)
	set("round-margin", &p.RoundMargin, o.roundMargin)
}

// runScript evaluates a tray script file.
func runScript(path string) (tray.Params, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return tray.Params{}, fmt.Errorf("read script: %w", err)
	}
	p, evalErrs, err := engine.NewEngine().Evaluate(string(src))
	if err != nil {
		return tray.Params{}, fmt.Errorf("script %s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		errs := make([]error, len(evalErrs))
		for i, e := range evalErrs {
			errs[i] = e
		}
		return tray.Params{}, fmt.Errorf("script %s: %w", path, errors.Join(errs...))
	}
	return *p, nil
}
