package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulseledger/pulse/internal/importer"
	"github.com/pulseledger/pulse/internal/model"
	"github.com/pulseledger/pulse/internal/service"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Add, list, and delete ledger transactions",
	}
	cmd.AddCommand(txAddCmd())
	cmd.AddCommand(txListCmd())
	cmd.AddCommand(txDeleteCmd())
	return cmd
}

func txAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a transaction to the ledger",
		Long: `Add an income, expense, or transfer transaction.

Examples:
  pulse tx add --type income --amount 1000 --category Salaire --account "Compte Courant" --description "Salaire mai"
  pulse tx add --type transfer --amount 200 --from "Compte Courant" --to "Compte Épargne" --description "Épargne"`,
		RunE: runTxAdd,
	}

	cmd.Flags().String("type", "expense", "transaction type (income, expense, transfer)")
	cmd.Flags().Float64("amount", 0, "positive amount")
	cmd.Flags().String("date", "", "date (DD/MM/YYYY or YYYY-MM-DD, default today)")
	cmd.Flags().String("category", "", "category name (required for income/expense)")
	cmd.Flags().String("account", "", "account name")
	cmd.Flags().String("from", "", "source account (transfers)")
	cmd.Flags().String("to", "", "destination account (transfers)")
	cmd.Flags().String("description", "", "description")
	cmd.Flags().String("notes", "", "free-form notes")
	cmd.Flags().StringSlice("tags", nil, "comma-separated tags")

	return cmd
}

func runTxAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	date := time.Now()
	if raw, _ := cmd.Flags().GetString("date"); raw != "" {
		parsed, err := importer.ParseDate(raw)
		if err != nil {
			return err
		}
		date = parsed
	}

	txnType, _ := cmd.Flags().GetString("type")
	amount, _ := cmd.Flags().GetFloat64("amount")
	category, _ := cmd.Flags().GetString("category")
	account, _ := cmd.Flags().GetString("account")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	description, _ := cmd.Flags().GetString("description")
	notes, _ := cmd.Flags().GetString("notes")
	tags, _ := cmd.Flags().GetStringSlice("tags")

	txn := &model.Transaction{
		Date:        date,
		Type:        model.TransactionType(txnType),
		Amount:      amount,
		Category:    category,
		Account:     account,
		FromAccount: from,
		ToAccount:   to,
		Description: description,
		Notes:       notes,
		Tags:        tags,
	}

	ldgr, store, err := initLedger(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := ldgr.AddTransaction(ctx, txn); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Added %s transaction %s\n", txn.Type, txn.ID)
	return nil
}

func txListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ledger transactions",
		RunE:  runTxList,
	}

	cmd.Flags().String("account", "", "filter by account name")
	cmd.Flags().String("category", "", "filter by category name")
	cmd.Flags().String("type", "", "filter by type")
	cmd.Flags().String("from", "", "start date")
	cmd.Flags().String("to", "", "end date")

	return cmd
}

func runTxList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	filter := service.TransactionFilter{}
	filter.Account, _ = cmd.Flags().GetString("account")
	filter.Category, _ = cmd.Flags().GetString("category")
	if t, _ := cmd.Flags().GetString("type"); t != "" {
		filter.Type = model.TransactionType(t)
	}
	if raw, _ := cmd.Flags().GetString("from"); raw != "" {
		date, err := importer.ParseDate(raw)
		if err != nil {
			return err
		}
		filter.StartDate = &date
	}
	if raw, _ := cmd.Flags().GetString("to"); raw != "" {
		date, err := importer.ParseDate(raw)
		if err != nil {
			return err
		}
		filter.EndDate = &date
	}

	ldgr, store, err := initLedger(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	txns, err := ldgr.Transactions(ctx, filter)
	if err != nil {
		return err
	}

	settings, err := store.GetSettings(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTYPE\tAMOUNT\tCATEGORY\tACCOUNT\tDESCRIPTION\tID")
	for i := range txns {
		txn := &txns[i]
		account := txn.Account
		if txn.IsTransfer() {
			account = txn.FromAccount + " → " + txn.ToAccount
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			txn.Date.Format("2006-01-02"),
			txn.Type,
			formatAmount(txn.Amount, settings.Currency),
			txn.Category,
			account,
			txn.Description,
			txn.ID,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "\n%d transaction(s)\n", len(txns))
	return nil
}

func txDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id...]",
		Short: "Delete transactions by ID",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ldgr, store, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			for _, id := range args {
				if err := ldgr.DeleteTransaction(ctx, strings.TrimSpace(id)); err != nil {
					return err
				}
			}
			fmt.Fprintf(os.Stdout, "Deleted %d transaction(s)\n", len(args))
			return nil
		},
	}
}
