package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorcc/internal/column"
	"github.com/alexiusacademia/gorcc/internal/diagram"
	"github.com/alexiusacademia/gorcc/internal/rebar"
)

var (
	analyzeShowDiagram bool
	analyzeExportFile  string
)

var columnAnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Buckling verification and required steel area",
	Long: `Calculate the design resistances, the buckling coefficients and the
longitudinal steel area of a rectangular column under centred compression.

The verified area AsVerif is the theoretical area As bounded by the
minimum and maximum areas Asmin and Asmax. Bar layouts covering it are
suggested for every diameter from HA10 up.

Examples:
  # 3 m column, 20x40 cm, pinned/fixed, Ned = 1 MN
  gorcc column analyze --length 3 --width 20 --height 40 --ned 1

  # Different materials, JSON output
  gorcc column analyze -l 3 -b 25 -H 25 --concrete C30/37 --steel A400 -n 0.8 --format json

  # Slenderness scale and alpha curve
  gorcc column analyze -l 3 -b 20 -H 40 -n 1 --diagram -o alpha.png`,
	RunE: runColumnAnalyze,
}

func init() {
	columnCmd.AddCommand(columnAnalyzeCmd)

	// Diagram options
	columnAnalyzeCmd.Flags().BoolVar(&analyzeShowDiagram, "diagram", false, "Show ASCII slenderness scale")
	columnAnalyzeCmd.Flags().StringVarP(&analyzeExportFile, "output", "o", "", "Export alpha curve to file (png, svg, pdf)")
}

type analysisOutput struct {
	Calculation *column.Calculation `json:"calculation" yaml:"calculation"`
	Suggestions []rebar.Suggestion  `json:"suggestions" yaml:"suggestions"`
}

func runColumnAnalyze(cmd *cobra.Command, args []string) error {
	calc, err := calculateColumn()
	if err != nil {
		return err
	}
	suggestions := suggestionsFor(calc)

	out := cmd.OutOrStdout()
	if done, err := writeStructured(out, analysisOutput{Calculation: calc, Suggestions: suggestions}); done {
		return err
	}

	printHeading(out, "COLUMN DESIGN - EUROCODE 2 (SIMPLIFIED METHOD)")
	printCalculation(out, calc)
	printSuggestions(out, suggestions)

	if analyzeShowDiagram {
		fmt.Fprintln(out, diagram.DrawSlendernessScale(calc.Buckling.Lambda, calc.Buckling.Alpha))
	}

	if analyzeExportFile != "" {
		path, err := diagram.ExportAlphaCurve(calc.Buckling.Lambda, analyzeExportFile)
		if err != nil {
			return fmt.Errorf("exporting alpha curve: %w", err)
		}
		fmt.Fprintf(out, "  Alpha curve exported to: %s\n\n", path)
	}
	return nil
}

func suggestionsFor(calc *column.Calculation) []rebar.Suggestion {
	if req, ok := calc.Buckling.AsVerifCm2().Get(); ok {
		return rebar.Suggest(req)
	}
	return nil
}

// printCalculation prints materials, column data, buckling, areas and the
// verified steel box.
func printCalculation(out io.Writer, calc *column.Calculation) {
	r := calc.Buckling

	printSection(out, "MATERIAL PROPERTIES")
	w := newTabWriter(out)
	fmt.Fprintf(w, "  Concrete:\t%s\n", calc.Concrete.Name)
	fmt.Fprintf(w, "  fck / γc:\t%.0f MPa / %.2f\n", calc.Concrete.Fck, calc.Concrete.GammaC)
	fmt.Fprintf(w, "  fcd:\t%.2f MPa\n", calc.Resistances.Fcd)
	fmt.Fprintf(w, "  Steel:\t%s\n", calc.Steel.Name)
	fmt.Fprintf(w, "  fyk / γs:\t%.0f MPa / %.2f\n", calc.Steel.Fyk, calc.Steel.GammaS)
	fmt.Fprintf(w, "  fyd:\t%.2f MPa\n", calc.Resistances.Fyd)
	w.Flush()
	fmt.Fprintln(out)

	printSection(out, "COLUMN")
	w = newTabWriter(out)
	fmt.Fprintf(w, "  Free length (l0):\t%.2f m\n", calc.Input.FreeLength)
	fmt.Fprintf(w, "  Section (b × h):\t%.0f × %.0f cm\n", calc.Input.SectionWidth, calc.Input.SectionHeight)
	fmt.Fprintf(w, "  Connection:\t%s (k = %.2f)\n", calc.Connection.Label, r.K)
	fmt.Fprintf(w, "  Design load (Ned):\t%.4f MN\n", calc.Input.Ned)
	w.Flush()
	if !calc.ConnectionKnown {
		fmt.Fprintln(out, warnStyle.Render(fmt.Sprintf("  ⚠ Unknown connection %q, k defaults to %.1f", calc.Input.ConnectionType, r.K)))
	}
	fmt.Fprintln(out)

	printSection(out, "BUCKLING")
	w = newTabWriter(out)
	fmt.Fprintf(w, "  Buckling length (lf):\t%.3f m\n", r.Lf)
	fmt.Fprintf(w, "  Slenderness (λ):\t%.2f\n", r.Lambda)
	fmt.Fprintf(w, "  Reduction (α):\t%s\t%s\n", r.Alpha.Text("%.4f"), r.AlphaCondition)
	fmt.Fprintf(w, "  Kh:\t%s\n", r.Kh.Text("%.4f"))
	fmt.Fprintf(w, "  Ks:\t%s\n", r.Ks.Text("%.2f"))
	w.Flush()
	fmt.Fprintln(out)

	printSection(out, "LONGITUDINAL REINFORCEMENT")
	w = newTabWriter(out)
	fmt.Fprintf(w, "  Gross area (Ac):\t%.6f m²\n", r.Ac)
	fmt.Fprintf(w, "  Theoretical (As):\t%s\t%s\n", r.As.Text("%.6f m²"), cm2(r.As))
	fmt.Fprintf(w, "  Minimum (Asmin):\t%s\t%s\n", r.Asmin.Text("%.6f m²"), cm2(r.Asmin))
	fmt.Fprintf(w, "  Maximum (Asmax):\t%s\t%s\n", r.Asmax.Text("%.6f m²"), cm2(r.Asmax))
	if r.Governing != "" {
		fmt.Fprintf(w, "  Governing:\t%s\n", r.Governing)
	}
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprint(out, diagram.DrawSummaryBox("VERIFIED STEEL AREA", []string{
		fmt.Sprintf("AsVerif = %s", r.AsVerif.Text("%.6f m²")),
		fmt.Sprintf("        = %s", cm2(r.AsVerif)),
	}))
	fmt.Fprintln(out)

	printSection(out, "STATUS")
	fmt.Fprintf(out, "  %s\n", r.Message)
	fmt.Fprintln(out)
}

func printSuggestions(out io.Writer, suggestions []rebar.Suggestion) {
	if len(suggestions) == 0 {
		return
	}
	printSection(out, "SUGGESTED LAYOUTS")
	w := newTabWriter(out)
	fmt.Fprintf(w, "  Bars\tArea (cm²)\tProvided/Required\n")
	fmt.Fprintf(w, "  ────\t──────────\t─────────────────\n")
	for _, s := range suggestions {
		fmt.Fprintf(w, "  %d HA%d\t%.2f\t%.2f\n", s.Count, s.Diameter, s.Area, s.Ratio)
	}
	w.Flush()
	fmt.Fprintln(out)
}
