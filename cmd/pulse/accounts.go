package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pulseledger/pulse/internal/model"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage ledger accounts",
	}
	cmd.AddCommand(accountsListCmd())
	cmd.AddCommand(accountsAddCmd())
	cmd.AddCommand(accountsRenameCmd())
	return cmd
}

func accountsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			ldgr, store, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			accounts, err := ldgr.Accounts(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTYPE\tID")
			for _, acc := range accounts {
				fmt.Fprintf(w, "%s\t%s\t%s\n", acc.Name, acc.Type, acc.ID)
			}
			return w.Flush()
		},
	}
}

func accountsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			accType, _ := cmd.Flags().GetString("type")

			ldgr, store, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			account := &model.Account{
				Name: args[0],
				Type: model.AccountType(accType),
			}
			if err := ldgr.AddAccount(ctx, account); err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Added account %q (%s)\n", account.Name, account.ID)
			return nil
		},
	}

	cmd.Flags().String("type", "checking", "account type (checking, savings, cash, credit)")
	return cmd
}

func accountsRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename [old-name] [new-name]",
		Short: "Rename an account across all persisted transactions",
		Long: `Rewrite every transaction whose account, fromAccount, or toAccount
field still carries the old name. Only matching records are written;
re-running the command reports zero updates.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			oldName, newName := args[0], args[1]

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			// Update the account record itself first, when one exists.
			if account, err := store.GetAccountByName(ctx, oldName); err != nil {
				return err
			} else if account != nil {
				account.Name = newName
				if err := store.SaveAccount(ctx, account); err != nil {
					return err
				}
			}

			updated, err := store.RenameAccountRefs(ctx, oldName, newName)
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Updated %d transaction(s): %q → %q\n", updated, oldName, newName)
			return nil
		},
	}
}
