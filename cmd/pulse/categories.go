package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pulseledger/pulse/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage transaction categories",
	}
	cmd.AddCommand(categoriesListCmd())
	cmd.AddCommand(categoriesAddCmd())
	cmd.AddCommand(categoriesDeleteCmd())
	return cmd
}

func categoriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			ldgr, store, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			categories, err := ldgr.Categories(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTYPE\tCOLOR\tICON\tID")
			for _, cat := range categories {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", cat.Name, cat.Type, cat.Color, cat.Icon, cat.ID)
			}
			return w.Flush()
		},
	}
}

func categoriesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			catType, _ := cmd.Flags().GetString("type")
			color, _ := cmd.Flags().GetString("color")
			icon, _ := cmd.Flags().GetString("icon")

			ldgr, store, err := initLedger(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			category := &model.Category{
				Name:  args[0],
				Type:  model.CategoryType(catType),
				Color: color,
				Icon:  icon,
			}
			if err := ldgr.AddCategory(ctx, category); err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Added category %q (%s)\n", category.Name, category.ID)
			return nil
		},
	}

	cmd.Flags().String("type", "expense", "category type (income, expense)")
	cmd.Flags().String("color", "", "display color")
	cmd.Flags().String("icon", "", "display icon")
	return cmd
}

func categoriesDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a category",
		Long: `Delete a category by name. Transactions referencing the category keep
their category string and become orphaned; the command reports how many
and asks for confirmation first.`,
		Args: cobra.ExactArgs(1),
		RunE: runCategoriesDelete,
	}

	cmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")
	return cmd
}

func runCategoriesDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	force, _ := cmd.Flags().GetBool("force")
	name := args[0]

	ldgr, store, err := initLedger(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	category, err := store.GetCategoryByName(ctx, name)
	if err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("category %q not found", name)
	}

	orphans, err := store.CountTransactionsByCategory(ctx, name)
	if err != nil {
		return err
	}

	if !force {
		if orphans > 0 {
			fmt.Fprintf(os.Stdout, "%d transaction(s) reference %q and will be orphaned.\n", orphans, name)
		}
		fmt.Fprintf(os.Stdout, "Delete category %q? [y/N]: ", name)

		var response string
		if _, err := fmt.Scanln(&response); err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if response != "y" && response != "Y" {
			fmt.Fprintln(os.Stdout, "Delete canceled.")
			return nil
		}
	}

	orphaned, err := ldgr.DeleteCategory(ctx, category)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Deleted category %q; %d transaction(s) orphaned\n", name, orphaned)
	return nil
}
