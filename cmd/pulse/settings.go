package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change ledger preferences",
	}
	cmd.AddCommand(settingsShowCmd())
	cmd.AddCommand(settingsSetCmd())
	return cmd
}

func settingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			settings, err := store.GetSettings(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "currency\t%s\n", settings.Currency)
			fmt.Fprintf(w, "language\t%s\n", settings.Language)
			fmt.Fprintf(w, "theme\t%s\n", settings.Theme)
			fmt.Fprintf(w, "date-format\t%s\n", settings.DateFormat)
			fmt.Fprintf(w, "week-starts-on\t%d\n", settings.WeekStartsOn)
			if settings.PaydayDay > 0 {
				fmt.Fprintf(w, "payday-day\t%d\n", settings.PaydayDay)
			} else {
				fmt.Fprintf(w, "payday-day\t(unset)\n")
			}
			fmt.Fprintf(w, "auto-backup\t%t\n", settings.AutoBackup)
			return w.Flush()
		},
	}
}

func settingsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Long: `Change a single preference. Keys: currency, language, theme,
date-format, week-starts-on, payday-day, auto-backup. The stored record
is validated as a whole before it is written.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			settings, err := store.GetSettings(ctx)
			if err != nil {
				return err
			}

			key, value := strings.ToLower(args[0]), args[1]
			switch key {
			case "currency":
				settings.Currency = strings.ToUpper(value)
			case "language":
				settings.Language = strings.ToLower(value)
			case "theme":
				settings.Theme = strings.ToLower(value)
			case "date-format":
				settings.DateFormat = strings.ToUpper(value)
			case "week-starts-on":
				day, convErr := strconv.Atoi(value)
				if convErr != nil {
					return fmt.Errorf("week-starts-on must be a number 0-6: %w", convErr)
				}
				settings.WeekStartsOn = day
			case "payday-day":
				day, convErr := strconv.Atoi(value)
				if convErr != nil {
					return fmt.Errorf("payday-day must be a number 0-31: %w", convErr)
				}
				settings.PaydayDay = day
			case "auto-backup":
				enabled, convErr := strconv.ParseBool(value)
				if convErr != nil {
					return fmt.Errorf("auto-backup must be true or false: %w", convErr)
				}
				settings.AutoBackup = enabled
			default:
				return fmt.Errorf("unknown setting %q", key)
			}

			if err := store.UpdateSettings(ctx, settings); err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Set %s to %s\n", key, value)
			return nil
		},
	}
}
