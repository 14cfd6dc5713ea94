// Package cli implements the trayforge command-line interface.
//
// Commands:
//   - generate: write an OpenSCAD scene (and optionally an STL) for a tray
//   - volume: print the capacity of every cavity
//
// Every command accepts --verbose (-v) for debug logging. The logger is
// passed to commands through context.Context.
package cli

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version reported by --version. main calls it with
// values injected through ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the trayforge CLI with ctx, which is cancelled on SIGINT.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "trayforge",
		Short: "Trayforge generates rounded-bottom bin trays for 3D printing",
		Long: `Trayforge lays out a grid of bins from column widths and row heights,
writes the tray as an OpenSCAD scene and reports the capacity of every bin.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("trayforge %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newVolumeCmd())

	return root
}
