package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	progressbar "github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/pulseledger/pulse/internal/importer"
)

func init() {
	importCSVCmd := &cobra.Command{
		Use:   "import-csv [file]",
		Short: "Import transactions from a CSV bank export",
		Long: `Import transactions from a CSV file. Columns are mapped to transaction
fields by header name; use the column flags to override the guess. The
first 20 rows are previewed with per-row validation errors before
anything is written.

Examples:
  # Map columns automatically from the header row
  pulse import-csv ~/Downloads/releve.csv

  # Preview only, write nothing
  pulse import-csv --dry-run ~/Downloads/releve.csv

  # Override the guessed column mapping
  pulse import-csv --date-col 0 --description-col 2 --amount-col 3 --type-col 1 releve.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runImportCSV,
	}

	importCSVCmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")
	importCSVCmd.Flags().BoolP("yes", "y", false, "Skip the preview confirmation")
	importCSVCmd.Flags().Int("date-col", -1, "Column index of the date field")
	importCSVCmd.Flags().Int("description-col", -1, "Column index of the description field")
	importCSVCmd.Flags().Int("amount-col", -1, "Column index of the amount field")
	importCSVCmd.Flags().Int("type-col", -1, "Column index of the type field")
	importCSVCmd.Flags().Int("category-col", -1, "Column index of the category field")
	importCSVCmd.Flags().Int("account-col", -1, "Column index of the account field")

	rootCmd.AddCommand(importCSVCmd)
}

func runImportCSV(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	yes, _ := cmd.Flags().GetBool("yes")

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer func() { _ = f.Close() }()

	session, err := importer.NewSession(f)
	if err != nil {
		return err
	}

	mapping := csvMappingFromFlags(cmd, session.GuessMapping())
	if err := session.SetMapping(mapping); err != nil {
		return fmt.Errorf("%w: map date, description, amount, and type with the column flags", err)
	}

	preview, err := session.Preview()
	if err != nil {
		return err
	}
	printCSVPreview(preview)

	if dryRun {
		fmt.Fprintln(os.Stdout, "Dry run: nothing written.")
		return nil
	}
	if preview.ValidRows == 0 && len(preview.Errors) > 0 {
		return fmt.Errorf("no valid rows in preview; check the column mapping")
	}

	if !yes {
		fmt.Fprintf(os.Stdout, "Import %d row(s)? [y/N]: ", preview.TotalRows)
		var response string
		if _, err := fmt.Scanln(&response); err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if response != "y" && response != "Y" {
			fmt.Fprintln(os.Stdout, "Import canceled.")
			return nil
		}
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	bar := progressbar.NewOptions(preview.TotalRows,
		progressbar.OptionSetDescription("Importing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)
	result, err := session.Commit(ctx, store, func(done, _ int) {
		_ = bar.Set(done)
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Imported %d transaction(s)\n", result.Inserted)
	if len(result.Errors) > 0 {
		fmt.Fprintf(os.Stdout, "Skipped %d row(s):\n", len(result.Errors))
		for _, rowErr := range result.Errors {
			fmt.Fprintf(os.Stdout, "  %s\n", rowErr)
		}
	}
	return nil
}

// csvMappingFromFlags overlays explicit column flags on the guessed
// mapping.
func csvMappingFromFlags(cmd *cobra.Command, mapping importer.Mapping) importer.Mapping {
	overlay := func(flag string, target *int) {
		if idx, _ := cmd.Flags().GetInt(flag); idx >= 0 {
			*target = idx
		}
	}
	overlay("date-col", &mapping.Date)
	overlay("description-col", &mapping.Description)
	overlay("amount-col", &mapping.Amount)
	overlay("type-col", &mapping.Type)
	overlay("category-col", &mapping.Category)
	overlay("account-col", &mapping.Account)
	return mapping
}

func printCSVPreview(preview *importer.PreviewResult) {
	fmt.Fprintf(os.Stdout, "Preview: %d valid row(s), %d error(s), %d total in file\n",
		preview.ValidRows, len(preview.Errors), preview.TotalRows)

	if len(preview.Rows) > 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tTYPE\tDESCRIPTION\tAMOUNT")
		for _, txn := range preview.Rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\n",
				txn.Date.Format("2006-01-02"), txn.Type, txn.Description, txn.Amount)
		}
		_ = w.Flush()
	}

	for _, rowErr := range preview.Errors {
		fmt.Fprintf(os.Stdout, "  %s\n", rowErr)
	}
}
