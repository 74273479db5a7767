package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"presetdeck/internal/application"
	"presetdeck/internal/application/commands"
	"presetdeck/internal/domain"
)

var selectSubject string

var selectCmd = &cobra.Command{
	Use:   "select <query>",
	Short: "Point a subject at a preset",
	Long: `Point a subject directly at a preset. The query is a preset ID, a name,
or "Category/Name"; small typos are tolerated.

Examples:
  presetdeck-cli select --subject left "Cross Legged"
  presetdeck-cli select --subject left sit/chair`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.ValidateRequired("subjectID", selectSubject); err != nil {
			return err
		}
		ctx := context.Background()
		d := GetDeck()

		item, err := commands.NewFindItemCommand(d.Engine, args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		actor, err := d.Roster.Restore(ctx, selectSubject, domain.Item{})
		if err != nil {
			return err
		}

		cursor, err := commands.NewSelectItemCommand(d.Engine, actor, item).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s now at %s (%s)\n", selectSubject, cursor.Current, cursor.Current.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(selectCmd)
	selectCmd.Flags().StringVar(&selectSubject, "subject", "", "subject to move")
}
