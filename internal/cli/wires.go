package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/opencoil/coilwinder/internal/catalog"
	"github.com/opencoil/coilwinder/internal/model"
	"github.com/opencoil/coilwinder/internal/project"
)

// newWiresCmd creates the wires command group for inspecting the wire
// catalog and validating wire table imports.
func newWiresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wires",
		Short: "Inspect the wire catalog",
	}
	cmd.AddCommand(newWiresListCmd())
	cmd.AddCommand(newWiresImportCmd())
	return cmd
}

func newWiresListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the wire catalog, including saved custom wires",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.Builtin()
			custom, err := project.LoadCustomWires(project.DefaultWiresPath())
			if err != nil {
				loggerFromContext(cmd.Context()).Warn("Cannot read custom wire store", "err", err)
			} else if len(custom) > 0 {
				cat = cat.With(custom...)
			}
			return printWires(cat.Wires())
		},
	}
}

func newWiresImportCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Validate a wire table (CSV or XLSX), optionally saving it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			result := importWireTable(args[0])
			for _, w := range result.Warnings {
				logger.Warn(w)
			}
			for _, e := range result.Errors {
				logger.Error(e)
			}
			if len(result.Wires) == 0 {
				return fmt.Errorf("no usable wires in %s", args[0])
			}
			if err := printWires(result.Wires); err != nil {
				return err
			}
			if len(result.Errors) > 0 {
				return fmt.Errorf("%d row(s) could not be imported", len(result.Errors))
			}
			if save {
				path := project.DefaultWiresPath()
				if err := project.AddCustomWires(path, result.Wires); err != nil {
					return fmt.Errorf("cannot save custom wires: %w", err)
				}
				logger.Info("Saved custom wires", "file", path, "wires", len(result.Wires))
			}
			logger.Info("Wire table OK", "wires", len(result.Wires))
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "merge the imported wires into the custom wire store")

	return cmd
}

// printWires writes a wire table to stdout.
func printWires(wires []model.Wire) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tSPACING\tTHICKNESS\tSTRANDS\tGRADE")
	for _, w := range wires {
		spacing, thickness, err := w.OuterDimensions()
		if err != nil {
			return fmt.Errorf("wire %q: %w", w.Name, err)
		}
		strands := ""
		if w.Strands > 1 {
			strands = fmt.Sprintf("%d", w.Strands)
		}
		grade := ""
		if w.Grade > 0 {
			grade = fmt.Sprintf("%d", w.Grade)
		}
		fmt.Fprintf(tw, "%s\t%s\t%.3f mm\t%.3f mm\t%s\t%s\n",
			w.Name, w.Type, spacing, thickness, strands, grade)
	}
	return tw.Flush()
}
