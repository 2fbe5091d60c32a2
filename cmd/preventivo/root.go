package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"preventivo/internal/catalog"
	"preventivo/internal/config"
	"preventivo/internal/core"
	"preventivo/internal/engine"
	"preventivo/internal/log"
)

var version = "1.0.0"

var (
	cfg    *config.Config
	logger *log.Logger

	flagFile    string
	flagStrict  bool
	flagNoCache bool
)

var rootCmd = &cobra.Command{
	Use:   "preventivo",
	Short: "preventivo computes remodeling estimate totals and payment schedules",
	Long: `preventivo reads a remodeling estimate document (categories of work
items with measured surfaces, plus tax/markup/fee settings) and computes
material, labor, waste, tax, and markup totals, per-category breakdowns,
payment reconciliation, and installment plans.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if flagFile != "" {
			cfg.EstimateFile = flagFile
		}
		if flagStrict {
			cfg.StrictValidation = true
		}
		if flagNoCache {
			cfg.EnableCaching = false
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		logger = log.New(log.Config{
			Level:     log.ParseLevel(cfg.LogLevel),
			Component: log.ComponentCLI,
		})
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "estimate document (JSON); defaults to ESTIMATE_FILE")
	rootCmd.PersistentFlags().BoolVar(&flagStrict, "strict", false, "treat catalog mismatches as errors")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable memoization of the aggregation pass")
}

// loadEstimate reads and normalizes the estimate document.
func loadEstimate() (core.Estimate, error) {
	f, err := os.Open(cfg.EstimateFile)
	if err != nil {
		return core.Estimate{}, fmt.Errorf("open estimate: %w", err)
	}
	defer f.Close()
	return core.DecodeEstimate(f)
}

// loadEngine builds an engine over the configured estimate document.
func loadEngine() (*engine.Engine, core.Estimate, error) {
	est, err := loadEstimate()
	if err != nil {
		return nil, core.Estimate{}, err
	}
	eng := engine.New(est.Categories, est.Settings, catalog.Default(), engine.Options{
		EnableCaching:    cfg.EnableCaching,
		StrictValidation: cfg.StrictValidation,
		Timeout:          cfg.CalcTimeout,
		CacheSize:        cfg.CacheSize,
		CacheTTL:         cfg.CacheTTL,
	}, logger)
	return eng, est, nil
}

// printDiagnostics renders collected errors and warnings after a result.
func printDiagnostics(errs, warns []string) {
	for _, w := range warns {
		fmt.Printf("  warning: %s\n", w)
	}
	for _, e := range errs {
		fmt.Printf("  error: %s\n", e)
	}
}
