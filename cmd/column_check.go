package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gorcc/internal/column"
	"github.com/alexiusacademia/gorcc/internal/diagram"
	"github.com/alexiusacademia/gorcc/internal/rebar"
)

var (
	checkShowDiagram bool
	checkExportFile  string
)

var columnCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a bar layout against the verified steel area",
	Long: `Check a proposed longitudinal bar layout for one face of the column.

The section provided by the bars is compared with the verified area
AsVerif (in cm², to 2 decimals). The clear spacing between bars is
computed from the face length, the cover and the bars and transverse
strands (two per stirrup and two per tie) crossing the face.

Examples:
  # 8 HA16 along the 40 cm face
  gorcc column check -l 3 -b 20 -H 40 -n 1 --bars 8 --diameter 16

  # Bars along the width, 3 cm cover, HA8 transverse
  gorcc column check -l 3 -b 30 -H 30 -n 0.5 --bars 4 -d 14 --face width --cover 3 --transverse 8

  # Show and export the section
  gorcc column check -l 3 -b 20 -H 40 -n 1 --bars 8 -d 16 --diagram -o section.png`,
	RunE: runColumnCheck,
}

func init() {
	columnCmd.AddCommand(columnCheckCmd)

	addLayoutFlags(columnCheckCmd)

	// Diagram options
	columnCheckCmd.Flags().BoolVar(&checkShowDiagram, "diagram", false, "Show ASCII section diagram")
	columnCheckCmd.Flags().StringVarP(&checkExportFile, "output", "o", "", "Export section diagram to file (png, svg, pdf)")
}

type checkOutput struct {
	Calculation *column.Calculation `json:"calculation" yaml:"calculation"`
	Proposal    rebar.Proposal      `json:"proposal" yaml:"proposal"`
	Evaluation  *rebar.Evaluation   `json:"evaluation" yaml:"evaluation"`
}

func runColumnCheck(cmd *cobra.Command, args []string) error {
	calc, err := calculateColumn()
	if err != nil {
		return err
	}
	p, err := layoutProposal()
	if err != nil {
		return err
	}
	ev := rebar.Evaluate(p, calc.Buckling.AsVerif)
	for _, warning := range ev.Warnings {
		logger.Debug("layout warning", zap.Error(warning))
	}

	out := cmd.OutOrStdout()
	if done, err := writeStructured(out, checkOutput{Calculation: calc, Proposal: p, Evaluation: ev}); done {
		return err
	}

	printHeading(out, "COLUMN BAR LAYOUT CHECK - EUROCODE 2")
	printCalculation(out, calc)
	printEvaluation(out, p, ev)

	data := sectionDiagramData(calc, &p, ev)
	if checkShowDiagram {
		fmt.Fprintln(out, diagram.DrawASCIISectionDiagram(data))
	}

	if checkExportFile != "" {
		path, err := diagram.ExportSectionDiagram(data, checkExportFile)
		if err != nil {
			return fmt.Errorf("exporting diagram: %w", err)
		}
		fmt.Fprintf(out, "  Diagram exported to: %s\n\n", path)
	}
	return nil
}

func printEvaluation(out io.Writer, p rebar.Proposal, ev *rebar.Evaluation) {
	printSection(out, "PROPOSED LAYOUT")
	w := newTabWriter(out)
	fmt.Fprintf(w, "  Longitudinal bars:\t%d HA%d\n", p.BarCount, p.BarDiameter)
	fmt.Fprintf(w, "  Transverse:\t%d stirrup(s) + %d tie(s), HA%d\n", p.Stirrups, p.Ties, p.TransverseDiameter)
	fmt.Fprintf(w, "  Cover:\t%.1f cm\n", p.Cover)
	fmt.Fprintf(w, "  Face length:\t%.1f cm\n", p.FaceDimension)
	w.Flush()
	fmt.Fprintln(out)

	printSection(out, "LAYOUT CHECK")
	w = newTabWriter(out)
	fmt.Fprintf(w, "  Unit section:\t%.2f cm²\n", ev.UnitSection)
	fmt.Fprintf(w, "  Provided:\t%.2f cm²\n", ev.AchievedArea)
	fmt.Fprintf(w, "  Required (AsVerif):\t%s\n", ev.RequiredArea.Text("%.2f cm²"))
	fmt.Fprintf(w, "  Transverse strands:\t%d\n", ev.TransverseStrands)
	fmt.Fprintf(w, "  Usable length:\t%.2f cm\n", ev.UsableLength)
	fmt.Fprintf(w, "  Bar spacing:\t%.2f cm\n", ev.Spacing)
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprint(out, diagram.DrawSummaryBox("LAYOUT VERDICT", []string{
		fmt.Sprintf("%.2f cm² provided / %s required", ev.AchievedArea, ev.RequiredArea.Text("%.2f cm²")),
	}))
	fmt.Fprintf(out, "  %s\n", renderVerdict(ev.Approved))
	for _, warning := range ev.Warnings {
		fmt.Fprintln(out, warnStyle.Render("  ⚠ "+warning.Error()))
	}
	fmt.Fprintln(out)
}
