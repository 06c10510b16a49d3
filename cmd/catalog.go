package cmd

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorcc/internal/column"
	"github.com/alexiusacademia/gorcc/internal/eurocode"
	"github.com/alexiusacademia/gorcc/internal/rebar"
)

var catalogShowBars bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List concrete classes, steel types and connection types",
	Long: `List the material catalog used by the calculations.

The built-in catalog can be replaced table by table with a YAML file
named by the catalog config key (GORCC_CATALOG).

Examples:
  gorcc catalog
  gorcc catalog --bars
  gorcc catalog --format yaml > catalog.yaml`,
	RunE: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.Flags().BoolVar(&catalogShowBars, "bars", false, "Also list the bar section table (cm²)")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if done, err := writeStructured(out, catalog); done {
		return err
	}

	printHeading(out, "MATERIAL CATALOG - EUROCODE 2")

	printSection(out, "CONCRETE CLASSES")
	t := newTable(out)
	t.AppendHeader(table.Row{"Class", "fck (MPa)", "γc", "fcd (MPa)"})
	for _, c := range catalog.ConcreteClasses {
		t.AppendRow(table.Row{c.Name, c.Fck, c.GammaC, fmt.Sprintf("%.2f", eurocode.Round(c.Fck/c.GammaC, 2))})
	}
	t.Render()
	fmt.Fprintln(out)

	printSection(out, "STEEL TYPES")
	t = newTable(out)
	t.AppendHeader(table.Row{"Type", "fyk (MPa)", "γs", "fyd (MPa)", "Ks"})
	for _, s := range catalog.SteelTypes {
		t.AppendRow(table.Row{s.Name, s.Fyk, s.GammaS, fmt.Sprintf("%.2f", eurocode.Round(s.Fyk/s.GammaS, 2)), column.Ks(s.Fyk).Text("%.2f")})
	}
	t.Render()
	fmt.Fprintln(out)

	printSection(out, "CONNECTION TYPES")
	t = newTable(out)
	t.AppendHeader(table.Row{"ID", "Connection", "k"})
	for _, c := range catalog.ConnectionTypes {
		t.AppendRow(table.Row{c.ID, c.Label, c.K})
	}
	t.Render()
	fmt.Fprintln(out)

	if catalogShowBars {
		printBarTable(out)
	}
	return nil
}

func printBarTable(out io.Writer) {
	printSection(out, "BAR SECTIONS (cm²)")
	t := newTable(out)
	header := table.Row{"Ø (mm)"}
	for n := 1; n <= rebar.MaxTabulatedBars; n++ {
		header = append(header, n)
	}
	t.AppendHeader(header)
	for _, d := range rebar.Diameters() {
		row := table.Row{fmt.Sprintf("HA%d", d)}
		for n := 1; n <= rebar.MaxTabulatedBars; n++ {
			area, _ := rebar.Section(d, n)
			row = append(row, fmt.Sprintf("%.2f", area))
		}
		t.AppendRow(row)
	}
	t.Render()
	fmt.Fprintln(out)
}

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	return t
}
