package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"presetdeck/internal/application/commands"
	"presetdeck/internal/domain"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Display the catalog tree",
	Long: `Display every category of a catalog with its presets, in display order.

Example:
  presetdeck-cli tree
  presetdeck-cli tree --source user`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := selectedSource()
		if err != nil {
			return err
		}

		buildCmd := commands.NewBuildTreeCommand(GetDeck().Engine, source)
		tree, err := buildCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		printTree(cmd.OutOrStdout(), source, tree)
		return nil
	},
}

func printTree(w io.Writer, source domain.SourceTag, tree []domain.CategorySnapshot) {
	fmt.Fprintf(w, "%s catalog\n", source)
	for _, category := range tree {
		fmt.Fprintf(w, "  %s (%d)\n", category.Name, len(category.Items))
		for _, item := range category.Items {
			fmt.Fprintf(w, "    %s %s\n", item.ID, item.Name)
		}
	}
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
