package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"presetdeck/internal/application/commands"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List known subjects and their presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := GetDeck()

		var positions []commands.SubjectPosition
		for _, id := range d.Engine.Subjects() {
			cursor, err := d.Engine.Cursor(id)
			if err != nil {
				return err
			}
			positions = append(positions, commands.SubjectPosition{SubjectID: id, Cursor: cursor})
		}
		printPositions(cmd.OutOrStdout(), positions)
		return nil
	},
}

var forgetCmd = &cobra.Command{
	Use:   "forget <subject>",
	Short: "Detach a subject and delete its stored preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return GetDeck().Roster.Detach(context.Background(), args[0], true)
	},
}

func init() {
	rootCmd.AddCommand(subjectsCmd)
	subjectsCmd.AddCommand(forgetCmd)
}
