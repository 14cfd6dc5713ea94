package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chazu/trayforge/pkg/kernel"
	"github.com/chazu/trayforge/pkg/kernel/manifold"
	"github.com/chazu/trayforge/pkg/kernel/sdfx"
	"github.com/chazu/trayforge/pkg/scad"
	"github.com/chazu/trayforge/pkg/tessellate"
	"github.com/chazu/trayforge/pkg/tray"
)

// generateOpts holds the output flags of the generate command.
type generateOpts struct {
	out        string
	stl        bool
	resolution int
	precision  int
	cells      int
	kernel     string
}

// Mesh backends selectable with --kernel.
const (
	kernelSDFX     = "sdfx"
	kernelManifold = "manifold"
)

// newKernel returns the mesh backend called name. The manifold backend
// reports manifold.ErrUnavailable unless built with -tags=manifold.
func newKernel(name string, cells int) (kernel.Kernel, error) {
	switch name {
	case "", kernelSDFX:
		return sdfx.NewWithCells(cells), nil
	case kernelManifold:
		k, err := manifold.New()
		if err != nil {
			return nil, fmt.Errorf("kernel %s: %w", name, err)
		}
		return k, nil
	default:
		return nil, fmt.Errorf("unknown kernel %q (want %s or %s)", name, kernelSDFX, kernelManifold)
	}
}

func newGenerateCmd() *cobra.Command {
	var opts trayOpts
	var gen generateOpts

	cmd := &cobra.Command{
		Use:   "generate [widths] [heights]",
		Short: "Write the tray as an OpenSCAD scene",
		Long: `Generate lays out a grid of rounded-bottom bins and writes the tray as an
OpenSCAD scene. Widths run along X, heights along Y:

  trayforge generate [40,25,70] [30,100,60,60] --wall 1.5

Without --out the file is named after the bin sizes, e.g.
tray_40x25x70_by_30x100x60x60.scad.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := opts.resolve(ctx, cmd, args)
			if err != nil {
				return err
			}
			gen.applyConfig(cmd, r.cfg.Output)
			return runGenerate(ctx, cmd, r, &gen)
		},
	}

	opts.bind(cmd)
	cmd.Flags().StringVarP(&gen.out, "out", "o", "", "output .scad file (default: named after the bin sizes)")
	cmd.Flags().BoolVar(&gen.stl, "stl", false, "also mesh the tray and write a binary STL next to the scene")
	cmd.Flags().IntVar(&gen.resolution, "resolution", scad.DefaultResolution, "$fn facet count written to the scene header")
	cmd.Flags().IntVar(&gen.precision, "precision", scad.DefaultPrecision, "decimal places for scene numbers")
	cmd.Flags().IntVar(&gen.cells, "stl-cells", sdfx.DefaultMeshCells, "marching cubes cells along the longest axis for --stl")
	cmd.Flags().StringVar(&gen.kernel, "kernel", kernelSDFX, "mesh backend for --stl: sdfx or manifold")

	return cmd
}

// applyConfig fills every output flag the user did not set from cfg.
func (g *generateOpts) applyConfig(cmd *cobra.Command, cfg OutputConfig) {
	if !cmd.Flags().Changed("resolution") && cfg.Resolution > 0 {
		g.resolution = cfg.Resolution
	}
	if !cmd.Flags().Changed("precision") && cfg.Precision >= 0 {
		g.precision = cfg.Precision
	}
	if !cmd.Flags().Changed("stl-cells") && cfg.STLCells > 0 {
		g.cells = cfg.STLCells
	}
	if !cmd.Flags().Changed("kernel") && cfg.Kernel != "" {
		g.kernel = cfg.Kernel
	}
}

func runGenerate(ctx context.Context, cmd *cobra.Command, r *resolved, gen *generateOpts) error {
	logger := loggerFromContext(ctx)
	p := r.params

	res, err := tray.Generate(p)
	if err != nil {
		return err
	}
	logger.Debug("Generated tray", "id", tray.ID(p), "cells", res.Grid.Len())
	logWarnings(ctx, p)

	var k kernel.Kernel
	if gen.stl {
		if k, err = newKernel(gen.kernel, gen.cells); err != nil {
			return err
		}
	}

	path := gen.out
	if path == "" {
		path = filepath.Join(r.cfg.Output.Dir, tray.FileStem(p)+".scad")
	}
	if err := writeScene(path, res.Scene, gen); err != nil {
		return err
	}
	logger.Info("Wrote OpenSCAD file", "path", path)

	if gen.stl {
		if err := ctx.Err(); err != nil {
			return err
		}
		stlPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".stl"
		if err := writeSTL(ctx, stlPath, res.Scene, tray.FileStem(p), k); err != nil {
			return err
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), renderSummary(p, res.Report, r.unit))
	return nil
}

func writeScene(path string, scene tray.Scene, gen *generateOpts) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return scad.Write(f, scene.Root,
		scad.WithResolution(gen.resolution),
		scad.WithPrecision(gen.precision),
	)
}

func writeSTL(ctx context.Context, path string, scene tray.Scene, name string, k kernel.Kernel) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	mesh, err := tessellate.Tessellate(scene.Root, k, name)
	if err != nil {
		return err
	}
	prog.done("Meshed tray", "triangles", mesh.TriangleCount())

	if err := mesh.SaveSTL(path); err != nil {
		return fmt.Errorf("write stl: %w", err)
	}
	logger.Info("Wrote STL file", "path", path)
	return nil
}

// logWarnings reports advisory findings about a valid tray.
func logWarnings(ctx context.Context, p tray.Params) {
	logger := loggerFromContext(ctx)
	for _, w := range tray.Lint(p) {
		logger.Warn(w.Message, "field", w.Field)
	}
}
