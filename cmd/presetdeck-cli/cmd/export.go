package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"presetdeck/internal/adapters/editor"
	"presetdeck/internal/adapters/filesystem"
	"presetdeck/internal/application/commands"
)

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Write a catalog to a YAML file",
	Long: `Write a catalog, in display order, to a YAML file. The result can be used
as a built-in catalog with --builtin.

Examples:
  presetdeck-cli export ~/presets.yaml
  presetdeck-cli export mine.yaml --source user --open`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := selectedSource()
		if err != nil {
			return err
		}

		exportCmd := commands.NewExportCommand(GetDeck().Engine, filesystem.Exporter{}, source, args[0])
		result, err := exportCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)

		if openAfterExport {
			return editor.NewOpener().OpenFile(filesystem.ExpandHome(result.Path))
		}
		return nil
	},
}

var openAfterExport bool

func init() {
	exportCmd.Flags().BoolVar(&openAfterExport, "open", false, "open the written file in $EDITOR")
	rootCmd.AddCommand(exportCmd)
}
