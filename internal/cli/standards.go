package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/opencoil/coilwinder/internal/model"
)

// newStandardsCmd creates the standards command listing the built-in
// insulation safety standards and their minimum builds.
func newStandardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "standards",
		Short: "List the supported insulation standards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "STANDARD\tMIN THICKNESS\tMIN LAYERS\tCREEPAGE\tCLEARANCE\tDESCRIPTION")
			for _, s := range model.InsulationStandards {
				fmt.Fprintf(tw, "%s\t%.2f mm\t%d\t%.1f mm\t%.1f mm\t%s\n",
					s.Name, s.MinThickness, s.MinLayers, s.Creepage, s.Clearance, s.Description)
			}
			return tw.Flush()
		},
	}
}
