package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"presetdeck/internal/application/commands"
)

var addCmd = &cobra.Command{
	Use:   "add <category> <name>",
	Short: "Add a preset to the user catalog",
	Long: `Add a preset to the user catalog. The category is created on first use.

Example:
  presetdeck-cli add Mine "Slow Stretch"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		addCmd := commands.NewAddItemCommand(GetDeck().User, args[0], args[1])
		item, err := addCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", item, item.ID)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <category>",
	Short: "Remove a category and its presets from the user catalog",
	Long: `Remove a category and all its presets from the user catalog. Subjects
pointing at one of them keep it until they move.

Example:
  presetdeck-cli remove Mine`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		removeCmd := commands.NewRemoveCategoryCommand(GetDeck().User, args[0])
		if err := removeCmd.Execute(context.Background()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Reload the user catalog from the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := commands.NewRefreshCommand(GetDeck().User).Execute(context.Background()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "User catalog reloaded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(refreshCmd)
}
