package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"preventivo/internal/core"
	"preventivo/internal/ledger"
)

var (
	flagPlanStart   string
	flagPlanBalance string
)

var planCmd = &cobra.Command{
	Use:   "plan <periods>",
	Short: "Generate a monthly installment schedule for the remaining balance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		periods, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("periods must be a number: %w", err)
		}

		eng, est, err := loadEngine()
		if err != nil {
			return err
		}

		led := ledger.New(est.Settings.Payments)
		balance := led.RemainingBalance(eng.GrandTotal())
		if flagPlanBalance != "" {
			balance, err = core.ParseAmount(flagPlanBalance)
			if err != nil {
				return fmt.Errorf("balance %q: %w", flagPlanBalance, err)
			}
		}

		start := core.Date{Time: time.Now().UTC().Truncate(24 * time.Hour)}
		if flagPlanStart != "" {
			t, err := time.Parse("2006-01-02", flagPlanStart)
			if err != nil {
				return fmt.Errorf("start date %q: %w", flagPlanStart, err)
			}
			start = core.Date{Time: t}
		}

		rec := ledger.NewReconciler(led, logger)
		plan, err := rec.Generate(periods, start, balance)
		if err != nil {
			return err
		}

		fmt.Printf("Remaining balance %s over %d monthly installments:\n", balance.StringFixed(2), periods)
		for _, p := range plan {
			fmt.Printf("  %2d  %s  %10s\n", p.InstallmentNumber, p.Date, p.Amount.StringFixed(2))
		}
		return nil
	},
}

func init() {
	planCmd.Flags().StringVar(&flagPlanStart, "start", "", "first installment date (YYYY-MM-DD, default today)")
	planCmd.Flags().StringVar(&flagPlanBalance, "balance", "", "override the computed remaining balance")
	rootCmd.AddCommand(planCmd)
}
