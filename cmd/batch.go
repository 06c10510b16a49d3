package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gorcc/internal/batch"
)

var (
	batchFile     string
	batchOut      string
	batchWorkers  int
	batchTemplate string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Calculate a column schedule from a spreadsheet",
	Long: `Calculate every column listed in an .xlsx workbook and write the
results to a new workbook.

The first sheet holds one column per row, with a header row naming the
columns. Required columns: concrete, steel, length (m), width (cm),
height (cm), connection and ned (MN). Optional columns: name, bars,
diameter, stirrups, ties, transverse, cover and face describe a bar
layout to check. Decimal commas are accepted.

A failing row is reported in the results and does not stop the batch.

Examples:
  # Write an empty template, fill it, then run it
  gorcc batch --template cases.xlsx
  gorcc batch --file cases.xlsx --out results.xlsx --workers 4`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "Input workbook (.xlsx)")
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "results.xlsx", "Results workbook")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "Parallel workers, 0 for one per CPU")
	batchCmd.Flags().StringVar(&batchTemplate, "template", "", "Write an input template to this file and exit")
}

func runBatch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if batchTemplate != "" {
		if err := writeFile(batchTemplate, batch.WriteTemplate); err != nil {
			return fmt.Errorf("writing template: %w", err)
		}
		fmt.Fprintf(out, "  Template written to: %s\n", batchTemplate)
		return nil
	}
	if batchFile == "" {
		return errors.New("either --file or --template is required")
	}

	cases, err := batch.ReadFile(batchFile)
	if err != nil {
		return err
	}
	logger.Info("batch started", zap.String("file", batchFile), zap.Int("cases", len(cases)))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	outcomes, err := batch.Run(ctx, catalog, cases, batch.Options{Workers: cfg.Workers, Logger: logger})
	if err != nil {
		return fmt.Errorf("batch interrupted: %w", err)
	}

	if err := writeFile(batchOut, func(w io.Writer) error {
		return batch.WriteResults(w, outcomes)
	}); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	summary := batch.Summarize(outcomes)
	if done, err := writeStructured(out, summary); done {
		return err
	}

	printHeading(out, "BATCH CALCULATION")
	w := newTabWriter(out)
	fmt.Fprintf(w, "  Input:\t%s\n", batchFile)
	fmt.Fprintf(w, "  Results:\t%s\n", batchOut)
	fmt.Fprintf(w, "  Cases:\t%d\n", summary.Total)
	fmt.Fprintf(w, "  Failed:\t%d\n", summary.Failed)
	fmt.Fprintf(w, "  Layouts approved:\t%d\n", summary.Approved)
	fmt.Fprintf(w, "  Layouts not approved:\t%d\n", summary.Rejected)
	w.Flush()
	fmt.Fprintln(out)

	for _, o := range outcomes {
		if o.Err != nil {
			fmt.Fprintln(out, warnStyle.Render("  ⚠ "+o.Err.Error()))
		}
	}
	return nil
}

// writeFile creates path and hands it to write.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
