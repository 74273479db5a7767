package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"presetdeck/internal/application/commands"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories or presets",
	Long: `List categories or presets of a catalog.

Examples:
  presetdeck-cli list categories
  presetdeck-cli list items Idle
  presetdeck-cli list items Mine --source user`,
}

var listCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories with their preset counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := selectedSource()
		if err != nil {
			return err
		}

		listCmd := commands.NewListCategoriesCommand(GetDeck().Engine, source)
		summaries, err := listCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, s := range summaries {
			fmt.Fprintf(out, "%-24s %d\n", s.Name, s.Count)
		}
		return nil
	},
}

var listItemsCmd = &cobra.Command{
	Use:   "items <category>",
	Short: "List the presets of a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := selectedSource()
		if err != nil {
			return err
		}

		listCmd := commands.NewListItemsCommand(GetDeck().Engine, source, args[0])
		items, err := listCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, item := range items {
			fmt.Fprintf(out, "%-36s %s\n", item.ID, item.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.AddCommand(listCategoriesCmd)
	listCmd.AddCommand(listItemsCmd)
}
