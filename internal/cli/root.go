package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. Called
// by the main package with values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the coilwinder CLI and returns an error if any command
// fails. The root command wires the wind, wires and standards
// subcommands and configures logging from the --verbose flag; the
// logger is attached to the context for all commands.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "coilwinder",
		Short:        "Coilwinder places transformer windings into bobbin windows",
		Long:         `Coilwinder partitions a bobbin winding window into sections, layers and individual turn positions for a set of windings, checks the result against the window bounds and exports winding reports for production.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("coilwinder %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newWindCmd())
	root.AddCommand(newWiresCmd())
	root.AddCommand(newStandardsCmd())

	return root.ExecuteContext(context.Background())
}
