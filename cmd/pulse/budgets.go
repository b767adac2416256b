package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pulseledger/pulse/internal/analytics"
	"github.com/pulseledger/pulse/internal/model"
	"github.com/pulseledger/pulse/internal/service"
)

func budgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Manage monthly category budgets",
	}
	cmd.AddCommand(budgetsListCmd())
	cmd.AddCommand(budgetsSetCmd())
	cmd.AddCommand(budgetsDeleteCmd())
	return cmd
}

func budgetsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List budgets with actual spending for the month",
		RunE:  runBudgetsList,
	}

	cmd.Flags().String("month", "", "month (YYYY-MM, default current)")
	return cmd
}

func runBudgetsList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	month, _ := cmd.Flags().GetString("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	budgets, err := store.GetBudgets(ctx, month)
	if err != nil {
		return err
	}
	if len(budgets) == 0 {
		fmt.Fprintf(os.Stdout, "No budgets for %s.\n", month)
		return nil
	}

	settings, err := store.GetSettings(ctx)
	if err != nil {
		return err
	}

	// Spending per category over the budget month.
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return fmt.Errorf("invalid month %q: %w", month, err)
	}
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	txns, err := store.GetTransactions(ctx, service.TransactionFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return err
	}
	spent := make(map[string]float64)
	for _, stat := range analytics.CategoryStats(txns) {
		spent[stat.Category] = stat.Amount
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tBUDGET\tSPENT\tREMAINING")
	for _, budget := range budgets {
		remaining := budget.Amount - spent[budget.Category]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			budget.Category,
			formatAmount(budget.Amount, settings.Currency),
			formatAmount(spent[budget.Category], settings.Currency),
			formatAmount(remaining, settings.Currency))
	}
	return w.Flush()
}

func budgetsSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set [category] [amount]",
		Short: "Set a category's budget for a month",
		Args:  cobra.ExactArgs(2),
		RunE:  runBudgetsSet,
	}

	cmd.Flags().String("month", "", "month (YYYY-MM, default current)")
	return cmd
}

func runBudgetsSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	month, _ := cmd.Flags().GetString("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}

	var amount float64
	if _, err := fmt.Sscanf(args[1], "%f", &amount); err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[1], err)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	// Reuse the existing row for this category+month when there is one.
	existing, err := store.GetBudgets(ctx, month)
	if err != nil {
		return err
	}
	budget := &model.Budget{ID: uuid.NewString(), Category: args[0], Month: month, Amount: amount}
	for i := range existing {
		if existing[i].Category == args[0] {
			budget.ID = existing[i].ID
			break
		}
	}

	if err := store.SaveBudget(ctx, budget); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Budget for %s in %s set to %s\n", budget.Category, month, args[1])
	return nil
}

func budgetsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [category]",
		Short: "Remove a category's budget for a month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			month, _ := cmd.Flags().GetString("month")
			if month == "" {
				month = time.Now().Format("2006-01")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			budgets, err := store.GetBudgets(ctx, month)
			if err != nil {
				return err
			}
			for i := range budgets {
				if budgets[i].Category == args[0] {
					if err := store.DeleteBudget(ctx, budgets[i].ID); err != nil {
						return err
					}
					fmt.Fprintf(os.Stdout, "Deleted budget for %s in %s\n", args[0], month)
					return nil
				}
			}
			return fmt.Errorf("no budget for %q in %s", args[0], month)
		},
	}

	cmd.Flags().String("month", "", "month (YYYY-MM, default current)")
	return cmd
}
