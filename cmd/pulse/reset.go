package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all data and reseed defaults",
		Long: `Delete every stored collection, then reinstall the default categories,
accounts, and settings. Two confirmations are required because the
erased data is unrecoverable without a backup.`,
		RunE: runReset,
	}

	cmd.Flags().BoolP("force", "f", false, "Skip confirmation prompts")
	return cmd
}

func runReset(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	force, _ := cmd.Flags().GetBool("force")

	if !force {
		fmt.Fprint(os.Stdout, "This erases ALL transactions, accounts, categories, goals, and budgets. Continue? [y/N]: ")
		var first string
		if _, err := fmt.Scanln(&first); err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if first != "y" && first != "Y" {
			fmt.Fprintln(os.Stdout, "Reset canceled.")
			return nil
		}

		fmt.Fprint(os.Stdout, "There is no undo. Really erase everything? [y/N]: ")
		var second string
		if _, err := fmt.Scanln(&second); err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if second != "y" && second != "Y" {
			fmt.Fprintln(os.Stdout, "Reset canceled.")
			return nil
		}
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}
	if err := store.InitializeDefaults(ctx); err != nil {
		return fmt.Errorf("failed to reseed defaults: %w", err)
	}

	fmt.Fprintln(os.Stdout, "All data erased; default categories, accounts, and settings reinstalled.")
	return nil
}
