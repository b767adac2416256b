package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pulseledger/pulse/internal/importer"
	"github.com/pulseledger/pulse/internal/ledger"
	"github.com/pulseledger/pulse/internal/service"
)

func balanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show account balances derived from the ledger",
		Long: `Fold the transaction set into per-account balances. Income adds and
expense subtracts on the account; transfers subtract from their source
account and add to their destination.`,
		RunE: runBalance,
	}

	cmd.Flags().String("account", "", "show a single account")
	cmd.Flags().String("from", "", "start date")
	cmd.Flags().String("to", "", "end date")
	return cmd
}

func runBalance(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	opts := ledger.BalanceOptions{}
	opts.Account, _ = cmd.Flags().GetString("account")
	if raw, _ := cmd.Flags().GetString("from"); raw != "" {
		date, err := importer.ParseDate(raw)
		if err != nil {
			return err
		}
		opts.StartDate = &date
	}
	if raw, _ := cmd.Flags().GetString("to"); raw != "" {
		date, err := importer.ParseDate(raw)
		if err != nil {
			return err
		}
		opts.EndDate = &date
	}

	ldgr, store, err := initLedger(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	txns, err := ldgr.Transactions(ctx, service.TransactionFilter{})
	if err != nil {
		return err
	}
	settings, err := store.GetSettings(ctx)
	if err != nil {
		return err
	}

	if opts.Account != "" {
		balance := ledger.Balance(txns, opts)
		fmt.Fprintf(os.Stdout, "%s: %s\n", opts.Account, formatAmount(balance, settings.Currency))
		return nil
	}

	balances := ledger.AccountBalances(txns, opts)
	names := make([]string, 0, len(balances))
	for name := range balances {
		names = append(names, name)
	}
	sort.Strings(names)

	var total float64
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ACCOUNT\tBALANCE")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%s\n", name, formatAmount(balances[name], settings.Currency))
		total += balances[name]
	}
	fmt.Fprintf(w, "TOTAL\t%s\n", formatAmount(total, settings.Currency))
	return w.Flush()
}
