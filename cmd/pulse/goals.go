package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pulseledger/pulse/internal/importer"
	"github.com/pulseledger/pulse/internal/model"
)

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Manage savings goals",
	}
	cmd.AddCommand(goalsListCmd())
	cmd.AddCommand(goalsAddCmd())
	return cmd
}

func goalsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals with funding progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			ldgr, store, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			goals, err := ldgr.Goals(ctx)
			if err != nil {
				return err
			}
			settings, err := store.GetSettings(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTARGET\tCURRENT\tPROGRESS\tDEADLINE")
			for i := range goals {
				g := &goals[i]
				deadline := ""
				if !g.Deadline.IsZero() {
					deadline = g.Deadline.Format("2006-01-02")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%.0f%%\t%s\n",
					g.Name,
					formatAmount(g.TargetAmount, settings.Currency),
					formatAmount(g.CurrentAmount, settings.Currency),
					g.Progress()*100,
					deadline,
				)
			}
			return w.Flush()
		},
	}
}

func goalsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a savings goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			target, _ := cmd.Flags().GetFloat64("target")
			current, _ := cmd.Flags().GetFloat64("current")
			category, _ := cmd.Flags().GetString("category")
			description, _ := cmd.Flags().GetString("description")

			goal := &model.Goal{
				Name:          args[0],
				TargetAmount:  target,
				CurrentAmount: current,
				Category:      category,
				Description:   description,
			}
			if raw, _ := cmd.Flags().GetString("deadline"); raw != "" {
				deadline, err := importer.ParseDate(raw)
				if err != nil {
					return err
				}
				goal.Deadline = deadline
			}

			ldgr, store, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := ldgr.SaveGoal(ctx, goal); err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Added goal %q (%s)\n", goal.Name, goal.ID)
			return nil
		},
	}

	cmd.Flags().Float64("target", 0, "target amount")
	cmd.Flags().Float64("current", 0, "amount already saved")
	cmd.Flags().String("deadline", "", "deadline (DD/MM/YYYY or YYYY-MM-DD)")
	cmd.Flags().String("category", "", "linked category")
	cmd.Flags().String("description", "", "description")
	return cmd
}
