package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"presetdeck/internal/application"
	"presetdeck/internal/application/commands"
	"presetdeck/internal/domain"
)

var (
	cycleSubject string
	cycleAll     bool
)

var cycleCmd = &cobra.Command{
	Use:   "cycle <next|prev>",
	Short: "Move a subject (or all subjects) to the next or previous preset",
	Long: `Move a subject to the next or previous preset. Empty categories are
skipped and the catalog wraps around at both ends.

A subject that does not exist yet is created with no preset; cycling it
forward starts at the first preset.

Examples:
  presetdeck-cli cycle next --subject left
  presetdeck-cli cycle prev --all`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := application.ParseDirection(args[0])
		if err != nil {
			return err
		}
		ctx := context.Background()
		d := GetDeck()

		var cycleCmd *commands.CycleCommand
		if cycleAll {
			cycleCmd = commands.NewCycleAllCommand(d.Engine, dir)
		} else {
			if err := application.ValidateRequired("subjectID", cycleSubject); err != nil {
				return err
			}
			if _, err := d.Roster.Restore(ctx, cycleSubject, domain.Item{}); err != nil {
				return err
			}
			cycleCmd = commands.NewCycleCommand(d.Engine, cycleSubject, dir)
		}

		result, err := cycleCmd.Execute(ctx)
		if err != nil {
			return err
		}
		printPositions(cmd.OutOrStdout(), result.Positions)
		return nil
	},
}

func printPositions(w io.Writer, positions []commands.SubjectPosition) {
	if len(positions) == 0 {
		fmt.Fprintln(w, "no subjects")
		return
	}
	for _, p := range positions {
		c := p.Cursor
		fmt.Fprintf(w, "%-20s %-8s %-30s [%d:%d]\n", p.SubjectID, c.Source(), c.Current, c.CategoryIndex, c.ItemIndex)
	}
}

func init() {
	rootCmd.AddCommand(cycleCmd)
	cycleCmd.Flags().StringVar(&cycleSubject, "subject", "", "subject to move")
	cycleCmd.Flags().BoolVar(&cycleAll, "all", false, "move every known subject")
	cycleCmd.MarkFlagsMutuallyExclusive("subject", "all")
}
