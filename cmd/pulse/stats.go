package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulseledger/pulse/internal/analytics"
	"github.com/pulseledger/pulse/internal/model"
	"github.com/pulseledger/pulse/internal/service"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Derived analytics over the transaction set",
		Long: `Aggregate the ledger into monthly income/expense totals, per-category
expense breakdowns, month-over-month trends, and the composite pulse
score. All figures are recomputed from the stored transactions.`,
	}

	cmd.AddCommand(statsMonthlyCmd())
	cmd.AddCommand(statsCategoriesCmd())
	cmd.AddCommand(statsTrendsCmd())
	cmd.AddCommand(statsPulseCmd())
	return cmd
}

// loadStatsInput fetches everything the stats subcommands share.
func loadStatsInput(cmd *cobra.Command) ([]model.Transaction, *model.Settings, func(), error) {
	ctx := cmd.Context()
	ldgr, store, err := initLedger(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	cleanup := func() { _ = store.Close() }

	txns, err := ldgr.Transactions(ctx, service.TransactionFilter{})
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	settings, err := store.GetSettings(ctx)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	return txns, settings, cleanup, nil
}

func statsMonthlyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "monthly",
		Short: "Monthly income, expenses, and balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			txns, settings, cleanup, err := loadStatsInput(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			stats := analytics.MonthlyStats(txns)
			if len(stats) == 0 {
				fmt.Fprintln(os.Stdout, "No transactions recorded.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MONTH\tINCOME\tEXPENSES\tBALANCE")
			for _, stat := range stats {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					stat.Month,
					formatAmount(stat.Income, settings.Currency),
					formatAmount(stat.Expenses, settings.Currency),
					formatAmount(stat.Balance, settings.Currency))
			}
			return w.Flush()
		},
	}
}

func statsCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Expense breakdown by category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			txns, settings, cleanup, err := loadStatsInput(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			stats := analytics.CategoryStats(txns)
			if len(stats) == 0 {
				fmt.Fprintln(os.Stdout, "No expenses recorded.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tAMOUNT\tCOUNT\tSHARE")
			for _, stat := range stats {
				fmt.Fprintf(w, "%s\t%s\t%d\t%.2f%%\n",
					stat.Category,
					formatAmount(stat.Amount, settings.Currency),
					stat.Count,
					stat.Percentage)
			}
			return w.Flush()
		},
	}
}

func statsTrendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trends",
		Short: "Month-over-month income and expense trends",
		RunE: func(cmd *cobra.Command, _ []string) error {
			txns, _, cleanup, err := loadStatsInput(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			trends := analytics.TrendStats(analytics.MonthlyStats(txns))
			if len(trends) == 0 {
				fmt.Fprintln(os.Stdout, "No transactions recorded.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MONTH\tINCOME\tEXPENSES")
			for _, trend := range trends {
				if !trend.HasTrend {
					fmt.Fprintf(w, "%s\t-\t-\n", trend.Month)
					continue
				}
				fmt.Fprintf(w, "%s\t%+.2f%%\t%+.2f%%\n",
					trend.Month, trend.IncomeTrend, trend.ExpenseTrend)
			}
			return w.Flush()
		},
	}
}

func statsPulseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pulse",
		Short: "Composite financial health score",
		RunE: func(cmd *cobra.Command, _ []string) error {
			txns, settings, cleanup, err := loadStatsInput(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			pulse := analytics.ComputePulse(txns, settings, time.Now())

			fmt.Fprintf(os.Stdout, "Pulse: %.0f/100 (%s)\n", pulse.Score, pulse.Status)
			fmt.Fprintf(os.Stdout, "  Income this month:   %s\n", formatAmount(pulse.MonthlyIncome, settings.Currency))
			fmt.Fprintf(os.Stdout, "  Expenses this month: %s\n", formatAmount(pulse.MonthlyExpenses, settings.Currency))
			fmt.Fprintf(os.Stdout, "  Remaining budget:    %s\n", formatAmount(pulse.RemainingBudget, settings.Currency))
			if pulse.DaysUntilNextIncome > 0 {
				fmt.Fprintf(os.Stdout, "  Next income in:      %d day(s)\n", pulse.DaysUntilNextIncome)
			}
			return nil
		},
	}
}
