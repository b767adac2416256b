package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulseledger/pulse/internal/model"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a full JSON backup of the ledger",
		Long: `Export every collection (transactions, categories, goals, accounts,
budgets, settings) into a single JSON snapshot. The default file name
carries the export date.`,
		RunE: runExport,
	}

	cmd.Flags().StringP("output", "o", "", "Output file (default finance-backup-<date>.json)")
	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = fmt.Sprintf("finance-backup-%s.json", time.Now().Format("2006-01-02"))
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	snapshot, err := store.ExportData(ctx)
	if err != nil {
		return fmt.Errorf("failed to export data: %w", err)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(output, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Fprintf(os.Stdout, "Exported %d transaction(s) to %s\n", len(snapshot.Transactions), output)
	return nil
}

func restoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore [file]",
		Short: "Replace the ledger with a JSON backup",
		Long: `Restore a snapshot produced by export. This REPLACES every stored
collection with the file's contents in a single transaction.`,
		Args: cobra.ExactArgs(1),
		RunE: runRestore,
	}

	cmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")
	return cmd
}

func runRestore(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	force, _ := cmd.Flags().GetBool("force")

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	var snapshot model.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}

	if !force {
		fmt.Fprintf(os.Stdout, "Replace ALL stored data with %s (%d transaction(s))? [y/N]: ", args[0], len(snapshot.Transactions))

		var response string
		if _, err := fmt.Scanln(&response); err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if response != "y" && response != "Y" {
			fmt.Fprintln(os.Stdout, "Restore canceled.")
			return nil
		}
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.ImportData(ctx, &snapshot); err != nil {
		return fmt.Errorf("failed to restore snapshot: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Restored %d transaction(s) from %s\n", len(snapshot.Transactions), args[0])
	return nil
}
