package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alexiusacademia/gorcc/internal/config"
	"github.com/alexiusacademia/gorcc/internal/eurocode"
	"github.com/alexiusacademia/gorcc/internal/version"
)

var (
	// Global flags; --verbose and --format are read back from cfg
	cfgFile string

	// Resolved once per invocation in PersistentPreRunE
	logger  = zap.NewNop()
	cfg     *config.Config
	catalog *eurocode.Catalog
)

var rootCmd = &cobra.Command{
	Use:   "gorcc",
	Short: "Reinforced Concrete Column Design Tool",
	Long: `gorcc - Go Reinforced Concrete Column calculator

A CLI tool for sizing the longitudinal reinforcement of rectangular
reinforced concrete columns under centred axial compression, using the
simplified Eurocode 2 buckling method.

This tool helps structural engineers perform:
  - Design resistance calculation (fcd, fyd)
  - Buckling verification (lf, λ, α)
  - Longitudinal reinforcement sizing (As, Asmin, Asmax)
  - Bar layout checks against the verified section
  - Batch calculation of column schedules from spreadsheets

Settings are read from gorcc.yaml, .env, GORCC_* environment variables
and flags, in increasing order of precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(config.Options{File: cfgFile, Flags: cmd.Flags()})
		if err != nil {
			return err
		}

		logger, err = newLogger(cfg.Verbose)
		if err != nil {
			return err
		}
		if cfg.File != "" {
			logger.Debug("config loaded", zap.String("file", cfg.File))
		}

		catalog, err = cfg.LoadCatalog()
		if err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
		logger.Debug("catalog ready",
			zap.String("file", cfg.Catalog),
			zap.Int("concrete_classes", len(catalog.ConcreteClasses)),
			zap.Int("steel_types", len(catalog.SteelTypes)),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   gorcc v%-49s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go Reinforced Concrete Column Calculator                ║")
		fmt.Fprintf(out, "  ║   %s ©  %-36s║\n", version.Author, version.Year)
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  A CLI tool for the design of reinforced concrete columns")
		fmt.Fprintln(out, "  under centred compression (simplified Eurocode 2 method).")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Design resistances from the material catalog")
		fmt.Fprintln(out, "    • Buckling verification and reinforcement sizing")
		fmt.Fprintln(out, "    • Bar layout check with spacing")
		fmt.Fprintln(out, "    • EN 1990 axial load combinations")
		fmt.Fprintln(out, "    • PDF calculation notes and spreadsheet batches")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'gorcc --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Fprintln(out)
	},
}

// newLogger builds the production logger, at debug level when verbose.
func newLogger(verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default gorcc.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("format", config.DefaultFormat, "Output format: text, json or yaml")
}
