package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/plycut/internal/cutlist"
	"github.com/piwi3910/plycut/internal/engine"
	"github.com/piwi3910/plycut/internal/export"
	"github.com/piwi3910/plycut/internal/logger"
	"github.com/piwi3910/plycut/internal/model"
	"github.com/piwi3910/plycut/internal/project"
	"github.com/piwi3910/plycut/internal/render"
)

type optimizeFlags struct {
	sheetLength float64
	sheetWidth  float64
	kerf        float64
	maxSheets   int

	pdfOut     string
	csvOut     string
	xlsxOut    string
	dxfOut     string
	labelsOut  string
	pngOut     string
	projectOut string
}

func newOptimizeCmd() *cobra.Command {
	defaults := model.DefaultRunConfig()
	flags := optimizeFlags{}

	cmd := &cobra.Command{
		Use:   "optimize [cut-list-file]",
		Short: "Pack a cut list onto stock sheets",
		Long: `Reads a cut list and computes sheet layouts. The input file may be plain
text (one "[qty@]LxW [L|W]" entry per line), .csv, or .xlsx; with no
argument the text notation is read from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(cmd, args, flags)
		},
	}

	cmd.Flags().Float64Var(&flags.sheetLength, "sheet-length", defaults.Sheet.Length, "Sheet length in inches")
	cmd.Flags().Float64Var(&flags.sheetWidth, "sheet-width", defaults.Sheet.Width, "Sheet width in inches")
	cmd.Flags().Float64Var(&flags.kerf, "kerf", defaults.Kerf, "Blade kerf in inches")
	cmd.Flags().IntVar(&flags.maxSheets, "max-sheets", defaults.MaxSheets, "Maximum number of sheets")

	cmd.Flags().StringVar(&flags.pdfOut, "pdf", "", "Write layout drawings to a PDF file")
	cmd.Flags().StringVar(&flags.csvOut, "csv", "", "Write the placement summary to a CSV file")
	cmd.Flags().StringVar(&flags.xlsxOut, "xlsx", "", "Write the placement summary to an Excel workbook")
	cmd.Flags().StringVar(&flags.dxfOut, "dxf", "", "Write sheet outlines to DXF files (one per sheet)")
	cmd.Flags().StringVar(&flags.labelsOut, "labels", "", "Write QR-coded piece labels to a PDF file")
	cmd.Flags().StringVar(&flags.pngOut, "png", "", "Write sheet previews to PNG files (one per sheet)")
	cmd.Flags().StringVar(&flags.projectOut, "save-project", "", "Save the input and result as a project file")

	return cmd
}

func runOptimize(cmd *cobra.Command, args []string, flags optimizeFlags) error {
	parsed, err := readCutList(args)
	if err != nil {
		return err
	}
	for _, w := range parsed.Warnings {
		l := logger.Logger()
		l.Warn().Msg(w)
	}
	if len(parsed.Errors) > 0 {
		return fmt.Errorf("%s", parsed.Errors[0])
	}
	if len(parsed.Pieces) == 0 {
		return fmt.Errorf("no valid pieces in cut list")
	}

	cfg := model.RunConfig{
		Sheet:     model.SheetSpec{Length: flags.sheetLength, Width: flags.sheetWidth},
		Kerf:      flags.kerf,
		MaxSheets: flags.maxSheets,
	}

	run, err := engine.New(cfg).Optimize(parsed.Pieces)
	if err != nil {
		return err
	}

	printRunSummary(cmd, run)

	return writeOutputs(run, parsed.Pieces, flags)
}

// readCutList loads pieces from the argument file or stdin, dispatching on
// the file extension.
func readCutList(args []string) (cutlist.ParseResult, error) {
	if len(args) == 0 {
		return cutlist.ParseText(os.Stdin), nil
	}

	path := args[0]
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return cutlist.ImportCSV(path), nil
	case ".xlsx", ".xls":
		return cutlist.ImportExcel(path), nil
	default:
		f, err := os.Open(path)
		if err != nil {
			return cutlist.ParseResult{}, err
		}
		defer f.Close()
		return cutlist.ParseText(f), nil
	}
}

func printRunSummary(cmd *cobra.Command, run *model.PackingRun) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Run %s: %d piece(s) on %d sheet(s), %.1f%% efficiency\n",
		run.ID, run.PlacedCount(), len(run.Sheets), run.TotalEfficiency())

	for _, sheet := range run.Sheets {
		fmt.Fprintf(out, "\nSheet %d (%.4g x %.4g in, %.1f%% used):\n",
			sheet.Index+1, sheet.Sheet.Length, sheet.Sheet.Width, sheet.Efficiency())
		for _, p := range sheet.Placements {
			rotated := ""
			if p.Rotated {
				rotated = "  rotated"
			}
			fmt.Fprintf(out, "  #%-4d %8.4g x %-8.4g at (%.4g, %.4g)%s\n",
				p.PieceID, p.Height, p.Width, p.X, p.Y, rotated)
		}
	}

	if len(run.Unplaced) > 0 {
		fmt.Fprintf(out, "\nUnplaced pieces:\n")
		for _, u := range run.Unplaced {
			fmt.Fprintf(out, "  #%-4d %s\n", u.PieceID, u.Reason)
		}
	}
}

// writeOutputs produces every export the flags requested.
func writeOutputs(run *model.PackingRun, pieces []model.Piece, flags optimizeFlags) error {
	if flags.pdfOut != "" {
		if err := export.WritePDF(flags.pdfOut, run); err != nil {
			return fmt.Errorf("pdf export: %w", err)
		}
	}
	if flags.csvOut != "" {
		if err := export.WriteCSV(flags.csvOut, run, pieces); err != nil {
			return fmt.Errorf("csv export: %w", err)
		}
	}
	if flags.xlsxOut != "" {
		if err := export.WriteExcel(flags.xlsxOut, run, pieces); err != nil {
			return fmt.Errorf("excel export: %w", err)
		}
	}
	if flags.labelsOut != "" {
		if err := export.WriteLabels(flags.labelsOut, run, pieces); err != nil {
			return fmt.Errorf("labels export: %w", err)
		}
	}
	if flags.dxfOut != "" {
		for i := range run.Sheets {
			path := numberedPath(flags.dxfOut, i+1)
			if err := export.WriteDXF(path, run, i); err != nil {
				return fmt.Errorf("dxf export: %w", err)
			}
		}
	}
	if flags.pngOut != "" {
		for i := range run.Sheets {
			path := numberedPath(flags.pngOut, i+1)
			if err := render.WritePNG(path, run, i, 800); err != nil {
				return fmt.Errorf("png export: %w", err)
			}
		}
	}
	if flags.projectOut != "" {
		p := project.New(strings.TrimSuffix(filepath.Base(flags.projectOut), filepath.Ext(flags.projectOut)))
		p.Config = run.Config
		p.Pieces = pieces
		p.LastRun = run
		if err := project.Save(flags.projectOut, p); err != nil {
			return fmt.Errorf("save project: %w", err)
		}
	}
	return nil
}

// numberedPath inserts a 1-based sheet number before the extension, so
// "out.dxf" becomes "out-1.dxf".
func numberedPath(path string, n int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), n, ext)
}
