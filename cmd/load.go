package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorcc/internal/diagram"
	"github.com/alexiusacademia/gorcc/internal/eurocode"
)

var (
	// Unfactored axial loads (kN)
	loadPermanent float64
	loadVariable  float64

	// Options
	loadShowAll bool
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Calculate the design axial load using EN 1990 combinations",
	Long: `Calculate the design axial load (Ned) from unfactored permanent and
variable loads with the EN 1990 combinations.

The governing ultimate combination gives Ned, printed in kN and in MN,
the unit 'gorcc column' expects.

Load Types:
  G  - Permanent load (self weight, finishes)
  Q  - Variable load (imposed loads)

Examples:
  gorcc load --permanent 500 --variable 300
  gorcc load -g 500 -q 300 --all`,
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)

	// Load flags
	loadCmd.Flags().Float64VarP(&loadPermanent, "permanent", "g", 0, "Permanent axial load G (kN)")
	loadCmd.Flags().Float64VarP(&loadVariable, "variable", "q", 0, "Variable axial load Q (kN)")

	// Options
	loadCmd.Flags().BoolVarP(&loadShowAll, "all", "a", false, "Show all load combination results")
}

type combinationResult struct {
	ID          string  `json:"id" yaml:"id"`
	Description string  `json:"description" yaml:"description"`
	Ultimate    bool    `json:"ultimate" yaml:"ultimate"`
	N           float64 `json:"n_kn" yaml:"n_kn"`
}

type loadOutput struct {
	Permanent    float64             `json:"permanent_kn" yaml:"permanent_kn"`
	Variable     float64             `json:"variable_kn" yaml:"variable_kn"`
	Combinations []combinationResult `json:"combinations" yaml:"combinations"`
	Governing    string              `json:"governing" yaml:"governing"`
	NedKN        float64             `json:"ned_kn" yaml:"ned_kn"`
	NedMN        float64             `json:"ned_mn" yaml:"ned_mn"`
}

func runLoad(cmd *cobra.Command, args []string) error {
	loads := eurocode.AxialLoads{
		Permanent: loadPermanent,
		Variable:  loadVariable,
	}

	if loads.Permanent == 0 && loads.Variable == 0 {
		return errors.New("provide at least one unfactored load, see 'gorcc load --help'")
	}

	ned, governing := eurocode.GoverningAxialLoad(loads, eurocode.LoadCombinations)

	out := cmd.OutOrStdout()
	result := loadOutput{
		Permanent: loads.Permanent,
		Variable:  loads.Variable,
		Governing: governing.ID,
		NedKN:     ned,
		NedMN:     eurocode.KNToMN(ned),
	}
	for _, combo := range eurocode.LoadCombinations {
		result.Combinations = append(result.Combinations, combinationResult{
			ID:          combo.ID,
			Description: combo.Description,
			Ultimate:    combo.Ultimate,
			N:           combo.Combine(loads),
		})
	}
	if done, err := writeStructured(out, result); done {
		return err
	}

	printHeading(out, "EN 1990 DESIGN AXIAL LOAD")

	printSection(out, "UNFACTORED LOADS (kN)")
	w := newTabWriter(out)
	if loads.Permanent != 0 {
		fmt.Fprintf(w, "  Permanent (G):\t%.2f\n", loads.Permanent)
	}
	if loads.Variable != 0 {
		fmt.Fprintf(w, "  Variable (Q):\t%.2f\n", loads.Variable)
	}
	w.Flush()
	fmt.Fprintln(out)

	if loadShowAll {
		printSection(out, "LOAD COMBINATIONS (EN 1990 6.4.3.2)")
		w = newTabWriter(out)
		fmt.Fprintf(w, "  #\tCombination\tN (kN)\n")
		fmt.Fprintf(w, "  ─\t───────────\t──────\n")
		for _, c := range result.Combinations {
			marker := ""
			switch {
			case c.ID == governing.ID:
				marker = " ← GOVERNS"
			case !c.Ultimate:
				marker = " (SLS)"
			}
			fmt.Fprintf(w, "  %s\t%s\t%.2f%s\n", c.ID, c.Description, c.N, marker)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	printSection(out, "RESULT")
	fmt.Fprintf(out, "  Governing Combination: %s (%s)\n", governing.ID, governing.Description)
	fmt.Fprintln(out)
	fmt.Fprint(out, diagram.DrawSummaryBox("DESIGN AXIAL LOAD", []string{
		fmt.Sprintf("Ned = %.2f kN", ned),
		fmt.Sprintf("    = %.4f MN", result.NedMN),
	}))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Use --ned %.4f with 'gorcc column'.\n\n", result.NedMN)
	return nil
}
