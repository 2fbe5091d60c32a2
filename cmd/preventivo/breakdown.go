package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var breakdownCmd = &cobra.Command{
	Use:   "breakdown",
	Short: "Show per-category subtotals",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, _, err := loadEngine()
		if err != nil {
			return err
		}

		b := eng.CalculateCategoryBreakdowns()

		fmt.Printf("%-24s %6s %12s %12s %12s\n", "Category", "Items", "Material", "Labor", "Subtotal")
		for _, c := range b.Breakdowns {
			fmt.Printf("%-24s %6d %12s %12s %12s\n", c.Name, c.ItemCount, c.MaterialCost, c.LaborCost, c.Subtotal)
		}
		fmt.Printf("%-24s %6d %38s\n", fmt.Sprintf("(%d categories)", b.Summary.CategoryCount), b.Summary.ItemCount, b.Summary.Subtotal)
		printDiagnostics(b.Errors, nil)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(breakdownCmd)
}
