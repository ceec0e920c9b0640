package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/opencoil/coilwinder/internal/catalog"
	"github.com/opencoil/coilwinder/internal/engine"
	"github.com/opencoil/coilwinder/internal/export"
	"github.com/opencoil/coilwinder/internal/model"
	"github.com/opencoil/coilwinder/internal/project"
)

// windOpts holds the command-line flags for the wind command.
type windOpts struct {
	wires            string // extra wire table (CSV or XLSX) merged into the catalog
	orientation      string // override the design's winding orientation
	pdfOut           string // winding report PDF
	xlsxOut          string // turn table workbook
	dxfOut           string // CAD cross-section
	labelsOut        string // QR label sheet PDF
	noCompact        bool   // disable delimit-and-compact
	windEvenIfNotFit bool   // keep a non-fitting layout instead of failing
}

// newWindCmd creates the wind command: load a design file, run the
// placement pipeline and print a per-winding summary. Export flags write
// additional report files.
func newWindCmd() *cobra.Command {
	var opts windOpts

	cmd := &cobra.Command{
		Use:   "wind [design.toml]",
		Short: "Place a design's windings into its bobbin window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWind(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.wires, "wires", "", "additional wire table (CSV or XLSX) merged into the built-in catalog")
	cmd.Flags().StringVar(&opts.orientation, "orientation", "", fmt.Sprintf("winding orientation override: %s", strings.Join(model.AvailableOrientations(), ", ")))
	cmd.Flags().StringVar(&opts.pdfOut, "pdf", "", "write a winding report PDF")
	cmd.Flags().StringVar(&opts.xlsxOut, "xlsx", "", "write the turn table as an XLSX workbook")
	cmd.Flags().StringVar(&opts.dxfOut, "dxf", "", "write the window cross-section as DXF")
	cmd.Flags().StringVar(&opts.labelsOut, "labels", "", "write a QR label sheet PDF")
	cmd.Flags().BoolVar(&opts.noCompact, "no-compact", false, "skip the compaction pass")
	cmd.Flags().BoolVar(&opts.windEvenIfNotFit, "wind-even-if-not-fit", false, "report a non-fitting layout instead of failing")

	return cmd
}

func runWind(ctx context.Context, path string, opts *windOpts) error {
	logger := loggerFromContext(ctx)

	design, err := model.LoadDesign(path)
	if err != nil {
		return err
	}
	logger.Debug("Loaded design", "name", design.Name, "windings", len(design.Windings))

	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		logger.Warn("Cannot read app config, using defaults", "err", err)
		cfg = project.DefaultAppConfig()
	}

	wireTable := opts.wires
	if wireTable == "" {
		wireTable = cfg.WireTablePath
	}
	cat, err := loadCatalog(ctx, wireTable)
	if err != nil {
		return err
	}

	windings, err := resolveWindings(design, cat)
	if err != nil {
		return err
	}

	coil, err := model.NewCoil(&design.Bobbin, windings)
	if err != nil {
		return err
	}

	settings := design.EffectiveSettings()
	if design.Settings == nil && cfg.DefaultStandard != "" {
		settings.InsulationStandard = cfg.DefaultStandard
	}
	if opts.orientation != "" {
		switch model.WindingOrientation(opts.orientation) {
		case model.OrientationContiguous, model.OrientationOverlapping:
			settings.Orientation = model.WindingOrientation(opts.orientation)
		default:
			return fmt.Errorf("unknown orientation %q, expected one of: %s",
				opts.orientation, strings.Join(model.AvailableOrientations(), ", "))
		}
	}
	if opts.noCompact {
		settings.DelimitAndCompact = false
	}
	if unknownStandard(settings.InsulationStandard) {
		logger.Warn("Unknown insulation standard, using Basic minimums",
			"standard", settings.InsulationStandard,
			"available", strings.Join(model.GetStandardNames(), ", "))
	}
	if opts.windEvenIfNotFit {
		settings.WindEvenIfNotFit = true
	}

	winder := engine.New(settings)
	if design.Insulation != nil {
		winder.Insulation = *design.Insulation
	}

	result, err := winder.Wind(coil, design.Wind.Repetitions, design.Proportions(), design.Wind.Pattern, design.MarginPairs())
	if err != nil {
		return err
	}
	logger.Info("Placed windings",
		"sections", len(coil.Sections), "layers", len(coil.Layers), "turns", len(coil.Turns))

	printSummary(os.Stdout, design.Name, result, settings)

	cfg.AddRecentDesign(path)
	if err := project.SaveAppConfig(project.DefaultConfigPath(), cfg); err != nil {
		logger.Debug("Cannot update app config", "err", err)
	}

	if !result.Fit.Fits {
		logger.Warn("Layout does not fit the window",
			"primary_overflow_mm", fmt.Sprintf("%.3f", result.Fit.PrimaryOverflow),
			"secondary_overflow_mm", fmt.Sprintf("%.3f", result.Fit.SecondaryOverflow))
	}

	if err := writeExports(logger, result, settings, opts); err != nil {
		return err
	}

	if !result.Fit.Fits && !settings.WindEvenIfNotFit {
		return fmt.Errorf("design %q does not fit its window (rerun with --wind-even-if-not-fit to keep the layout)", design.Name)
	}
	return nil
}

// loadCatalog returns the built-in wire catalog, merged with the user's
// custom wire store and, when given, an imported table.
func loadCatalog(ctx context.Context, path string) (*catalog.Catalog, error) {
	logger := loggerFromContext(ctx)

	cat := catalog.Builtin()
	custom, err := project.LoadCustomWires(project.DefaultWiresPath())
	if err != nil {
		logger.Warn("Cannot read custom wire store", "err", err)
	} else if len(custom) > 0 {
		cat = cat.With(custom...)
	}
	if path == "" {
		return cat, nil
	}

	imported := importWireTable(path)
	for _, w := range imported.Warnings {
		logger.Warn(w)
	}
	for _, e := range imported.Errors {
		logger.Error(e)
	}
	if len(imported.Wires) == 0 {
		return nil, fmt.Errorf("no usable wires in %s", path)
	}
	logger.Debug("Imported wire table", "file", path, "wires", len(imported.Wires))
	return cat.With(imported.Wires...), nil
}

// unknownStandard reports whether the named insulation standard is
// absent from the built-in table, in which case lookups fall back to
// the Basic standard's minimums.
func unknownStandard(name string) bool {
	return name != "" && !slices.Contains(model.GetStandardNames(), name)
}

// importWireTable dispatches on file extension.
func importWireTable(path string) catalog.ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return catalog.ImportExcel(path)
	default:
		return catalog.ImportCSV(path)
	}
}

// resolveWindings turns design winding entries into model windings,
// resolving catalog wire references. An inline wire spec wins over a
// catalog name.
func resolveWindings(design *model.Design, cat *catalog.Catalog) ([]model.Winding, error) {
	windings := make([]model.Winding, 0, len(design.Windings))
	for i, dw := range design.Windings {
		var wire model.Wire
		if dw.WireSpec != nil {
			wire = *dw.WireSpec
			if wire.Name == "" {
				wire.Name = fmt.Sprintf("%s wire", dw.Name)
			}
		} else {
			found, ok := cat.Find(dw.Wire)
			if !ok {
				return nil, fmt.Errorf("winding %q references unknown wire %q (see 'coilwinder wires list')", dw.Name, dw.Wire)
			}
			wire = found
		}

		w := model.NewWinding(dw.Name, i, dw.Turns, wire)
		if dw.Isolation != "" {
			w.Isolation = model.IsolationSide(dw.Isolation)
		}
		windings = append(windings, w)
	}
	return windings, nil
}

// printSummary writes the per-winding placement table to w.
func printSummary(w io.Writer, name string, result model.WindResult, settings model.WindSettings) {
	coil := result.Coil

	fmt.Fprintf(w, "\nDesign: %s\n", name)
	fmt.Fprintf(w, "Window: %.2f x %.2f mm (%s)\n\n",
		coil.Bobbin.PrimaryLength(settings.Orientation),
		coil.Bobbin.SecondaryLength(settings.Orientation),
		settings.Orientation)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WINDING\tWIRE\tTURNS\tSECTIONS\tLAYERS\tWIRE LENGTH")
	for i, winding := range coil.Windings {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%.0f mm\n",
			winding.Name,
			winding.Wire.Name,
			coil.PlacedTurns(i),
			len(coil.SectionsByWinding(i)),
			len(coil.LayersByWinding(i)),
			coil.TotalWireLength(i))
	}
	tw.Flush()

	if result.Fit.Fits {
		fmt.Fprintf(w, "\nFit: OK\n")
	} else {
		fmt.Fprintf(w, "\nFit: OVERFLOW primary %.3f mm, secondary %.3f mm\n",
			result.Fit.PrimaryOverflow, result.Fit.SecondaryOverflow)
	}
}

// writeExports writes each requested export file.
func writeExports(logger *charmlog.Logger, result model.WindResult, settings model.WindSettings, opts *windOpts) error {
	if opts.pdfOut != "" {
		if err := export.ExportPDF(opts.pdfOut, result, settings); err != nil {
			return fmt.Errorf("pdf export: %w", err)
		}
		logger.Info("Wrote winding report", "file", opts.pdfOut)
	}
	if opts.xlsxOut != "" {
		if err := export.ExportExcel(opts.xlsxOut, result); err != nil {
			return fmt.Errorf("xlsx export: %w", err)
		}
		logger.Info("Wrote turn table", "file", opts.xlsxOut)
	}
	if opts.dxfOut != "" {
		if err := export.ExportDXF(opts.dxfOut, result, settings); err != nil {
			return fmt.Errorf("dxf export: %w", err)
		}
		logger.Info("Wrote cross-section", "file", opts.dxfOut)
	}
	if opts.labelsOut != "" {
		if err := export.ExportLabels(opts.labelsOut, result); err != nil {
			return fmt.Errorf("labels export: %w", err)
		}
		logger.Info("Wrote label sheet", "file", opts.labelsOut)
	}
	return nil
}
