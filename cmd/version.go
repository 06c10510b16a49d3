package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorcc/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gorcc",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, version.String())
		fmt.Fprintln(out, "Reinforced Concrete Column Design Tool")
		fmt.Fprintln(out, "Based on Eurocode 2 (EN 1992-1-1), simplified method for centred compression")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
