package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"presetdeck/internal/application"
	"presetdeck/internal/bootstrap"
	"presetdeck/internal/config"
)

var (
	dbPath      string
	builtinPath string
	sourceName  string
	verbose     bool

	deck *bootstrap.Deck
)

var rootCmd = &cobra.Command{
	Use:   "presetdeck-cli",
	Short: "CLI for stepping subjects through preset catalogs",
	Long: `presetdeck-cli browses the built-in and user preset catalogs and moves
subjects (actors, rigs, channels) through them one preset at a time.

Subject selections are stored in the database, so a subject cycled in one
invocation continues from the same preset in the next.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return openDeck(cmd.Context())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if deck == nil {
			return nil
		}
		err := deck.Close()
		deck = nil
		return err
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the user catalog database")
	rootCmd.PersistentFlags().StringVar(&builtinPath, "builtin", "", "path to the built-in catalog YAML (default: embedded)")
	rootCmd.PersistentFlags().StringVarP(&sourceName, "source", "s", "builtin", "catalog to use: builtin or user")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log debug output to stderr")
}

func openDeck(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if builtinPath != "" {
		cfg.Catalog.BuiltinPath = builtinPath
	}

	logger, err := config.NewLogger(os.Stderr, cfg.Log.Level, verbose)
	if err != nil {
		return err
	}

	d, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if err := d.WaitReady(ctx); err != nil {
		d.Close()
		return err
	}
	if err := d.Roster.RestoreAll(ctx); err != nil {
		d.Close()
		return err
	}
	deck = d
	return nil
}

// GetDeck returns the initialized deck
func GetDeck() *bootstrap.Deck {
	return deck
}

func selectedSource() (application.SourceTag, error) {
	return application.ParseSourceTag(sourceName)
}
