package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pulseledger/pulse/internal/importer"
	"github.com/pulseledger/pulse/internal/model"
)

func init() {
	importOFXCmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX (Quicken) files exported from your
bank. Credits become income, debits become expense.

Examples:
  # Import a single file
  pulse import-ofx ~/Downloads/releve_jan_2026.ofx

  # Import every QFX file in a directory
  pulse import-ofx ~/Downloads/*.qfx

  # Attach every statement to a named ledger account
  pulse import-ofx --account "Compte Courant" ~/Downloads/releve.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	importOFXCmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")
	importOFXCmd.Flags().String("account", "", "Ledger account to attach transactions to")

	rootCmd.AddCommand(importOFXCmd)
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	account, _ := cmd.Flags().GetString("account")

	var files []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, statErr := os.Stat(pattern); statErr == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			files = append(files, matches...)
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to import")
	}

	parser := &importer.OFXParser{Account: account}

	// Statements exported twice carry the same FITIDs; dedupe on ID
	// across files.
	seen := make(map[string]bool)
	var txns []model.Transaction

	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			slog.Error("Failed to open file", "file", path, "error", err)
			continue
		}

		parsed, err := parser.Parse(f)
		_ = f.Close()
		if err != nil {
			slog.Error("Failed to parse OFX file", "file", path, "error", err)
			continue
		}

		added := 0
		for _, txn := range parsed {
			if seen[txn.ID] {
				continue
			}
			seen[txn.ID] = true
			txns = append(txns, txn)
			added++
		}
		slog.Info("Parsed file", "file", filepath.Base(path), "transactions", added)
	}

	if len(txns) == 0 {
		return fmt.Errorf("no transactions found in %d file(s)", len(files))
	}

	if dryRun {
		fmt.Fprintf(os.Stdout, "Dry run: would import %d transaction(s) from %d file(s)\n", len(txns), len(files))
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveTransactions(ctx, txns); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Imported %d transaction(s) from %d file(s)\n", len(txns), len(files))
	return nil
}
