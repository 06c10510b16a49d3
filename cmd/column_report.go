package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gorcc/internal/diagram"
	"github.com/alexiusacademia/gorcc/internal/rebar"
	"github.com/alexiusacademia/gorcc/internal/report"
)

var (
	reportFile    string
	reportProject string
	reportAuthor  string
	reportLayout  bool
)

var columnReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a PDF calculation note",
	Long: `Write the column calculation as a PDF calculation note.

The note lists the materials, the column data, the buckling verification,
the steel areas and the suggested bar layouts. With --layout (or any
layout flag) the proposed layout is checked and drawn as well.

Examples:
  gorcc column report -l 3 -b 20 -H 40 -n 1 --pdf note.pdf --project "Block A"
  gorcc column report -l 3 -b 20 -H 40 -n 1 --pdf note.pdf --bars 8 -d 16`,
	RunE: runColumnReport,
}

func init() {
	columnCmd.AddCommand(columnReportCmd)

	columnReportCmd.Flags().StringVar(&reportFile, "pdf", "", "Output PDF file [required]")
	columnReportCmd.Flags().StringVar(&reportProject, "project", "", "Project name")
	columnReportCmd.Flags().StringVar(&reportAuthor, "author", "", "Author shown on the note (config key author)")
	columnReportCmd.Flags().BoolVar(&reportLayout, "layout", false, "Include the bar layout check")
	columnReportCmd.MarkFlagRequired("pdf")

	addLayoutFlags(columnReportCmd)
}

func runColumnReport(cmd *cobra.Command, args []string) error {
	calc, err := calculateColumn()
	if err != nil {
		return err
	}

	note := report.Note{
		Project:     reportProject,
		Author:      cfg.Author,
		Calculation: calc,
		Suggestions: suggestionsFor(calc),
	}

	if reportLayout || layoutRequested(cmd) {
		p, err := layoutProposal()
		if err != nil {
			return err
		}
		note.Proposal = &p
		note.Evaluation = rebar.Evaluate(p, calc.Buckling.AsVerif)

		tmp, err := os.MkdirTemp("", "gorcc-report-")
		if err != nil {
			return err
		}
		defer os.RemoveAll(tmp)

		png, err := diagram.ExportSectionDiagram(sectionDiagramData(calc, &p, note.Evaluation), filepath.Join(tmp, "section.png"))
		if err != nil {
			logger.Warn("section drawing skipped", zap.Error(err))
		} else {
			note.DiagramPNG = png
		}
	}

	ref, err := report.WriteFile(reportFile, note)
	if err != nil {
		return fmt.Errorf("writing calculation note: %w", err)
	}
	logger.Info("calculation note written", zap.String("file", reportFile), zap.String("ref", ref))

	fmt.Fprintf(cmd.OutOrStdout(), "  Calculation note written to: %s (ref. %s)\n", reportFile, ref)
	return nil
}

func layoutRequested(cmd *cobra.Command) bool {
	for _, name := range []string{"bars", "diameter", "stirrups", "ties", "face"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}
