package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Reconcile recorded payments against the estimate total",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, est, err := loadEngine()
		if err != nil {
			return err
		}

		d := eng.CalculatePaymentDetails()

		fmt.Printf("%-12s %-12s %10s %-8s %s\n", "Date", "Type", "Amount", "Paid", "Note")
		for _, p := range est.Settings.Payments {
			paid := "no"
			if p.IsPaid {
				paid = "yes"
			}
			fmt.Printf("%-12s %-12s %10s %-8s %s\n", p.Date, p.Type, p.Amount.StringFixed(2), paid, p.Note)
		}
		fmt.Println()
		fmt.Printf("Deposit     %12s\n", d.Deposit)
		fmt.Printf("Total paid  %12s  (%d of %d payments)\n", d.TotalPaid, d.Summary.PaidPayments, d.Summary.TotalPayments)
		fmt.Printf("Overdue     %12s  (%d payments)\n", d.OverduePayments, d.Summary.OverduePayments)
		fmt.Printf("Total due   %12s\n", d.TotalDue)
		printDiagnostics(d.Errors, d.Warnings)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(paymentsCmd)
}
