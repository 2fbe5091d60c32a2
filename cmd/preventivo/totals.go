package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"preventivo/internal/log"
)

var flagCacheStats bool

var totalsCmd = &cobra.Command{
	Use:   "totals",
	Short: "Compute the estimate's cost totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := loadEngine()
		if err != nil {
			return err
		}

		t := eng.CalculateTotals()

		fmt.Printf("Material cost        %12s\n", t.MaterialCost)
		fmt.Printf("Labor (before disc.) %12s\n", t.LaborCostBeforeDiscount)
		fmt.Printf("Labor discount       %12s\n", t.LaborDiscount)
		fmt.Printf("Labor cost           %12s\n", t.LaborCost)
		fmt.Printf("Subtotal             %12s\n", t.Subtotal)
		fmt.Printf("Waste                %12s\n", t.WasteCost)
		fmt.Printf("Tax                  %12s\n", t.TaxAmount)
		fmt.Printf("Markup               %12s\n", t.MarkupAmount)
		fmt.Printf("Misc fees            %12s\n", t.MiscFeesTotal)
		fmt.Printf("Transportation       %12s\n", t.TransportationFee)
		fmt.Printf("Total                %12s\n", t.Total)
		printDiagnostics(t.Errors, t.Warnings)

		if flagCacheStats {
			s := eng.CacheStats()
			logger.Info("cache stats",
				log.FieldCacheHits, s.Hits,
				log.FieldCacheMisses, s.Misses,
				"entries", s.Entries)
		}
		return nil
	},
}

func init() {
	totalsCmd.Flags().BoolVar(&flagCacheStats, "cache-stats", false, "log memo cache hit/miss counters")
	rootCmd.AddCommand(totalsCmd)
}
