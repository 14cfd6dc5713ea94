package cli

import (
	"context"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/chazu/trayforge/pkg/tray"
	"github.com/chazu/trayforge/pkg/units"
	"github.com/chazu/trayforge/pkg/volume"
)

// checkTolerance is the largest relative gap between the closed form and
// quadrature that --check accepts.
const checkTolerance = 1e-8

func newVolumeCmd() *cobra.Command {
	var opts trayOpts
	var check bool

	cmd := &cobra.Command{
		Use:   "volume [widths] [heights]",
		Short: "Print the capacity of every bin",
		Long: `Volume computes the exact capacity of every bin without writing a scene.
With --check every capacity is also integrated numerically and compared.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := opts.resolve(ctx, cmd, args)
			if err != nil {
				return err
			}
			rep, err := tray.Volumes(r.params)
			if err != nil {
				return err
			}
			logWarnings(ctx, r.params)
			if check {
				if err := checkVolumes(ctx, r.params, rep); err != nil {
					return err
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), renderSummary(r.params, rep, r.unit))
			return nil
		},
	}

	opts.bind(cmd)
	cmd.Flags().BoolVar(&check, "check", false, "cross-check every capacity by numeric integration")

	return cmd
}

// checkVolumes recomputes every bin by quadrature and fails
// when any closed-form capacity disagrees beyond checkTolerance.
func checkVolumes(ctx context.Context, p tray.Params, rep tray.Report) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	var worst float64
	for c, w := range p.Widths {
		for r, h := range p.Heights {
			if err := ctx.Err(); err != nil {
				return err
			}
			num, err := volume.Numeric(w, h, p.Depth, p.RoundDepth, volume.DefaultNodes)
			if err != nil {
				return err
			}
			got := units.CubicMMToML(num)
			want := rep.Volume(c, r)
			rel := math.Abs(got-want) / math.Max(math.Abs(want), math.SmallestNonzeroFloat64)
			logger.Debug("Checked bin", "col", c, "row", r, "exact_ml", want, "numeric_ml", got)
			if rel > checkTolerance {
				return fmt.Errorf("bin (%d,%d): closed form %.6f mL, numeric %.6f mL", c, r, want, got)
			}
			worst = math.Max(worst, rel)
		}
	}
	prog.done("Numeric check passed", "max_rel_error", worst)
	return nil
}
