package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"presetdeck/internal/adapters/tui"
	"presetdeck/internal/adapters/tui/views"
	"presetdeck/internal/bootstrap"
	"presetdeck/internal/config"
	"presetdeck/internal/domain"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dbFlag := flag.String("db", cfg.Database.Path, "path to the user catalog database")
	builtinFlag := flag.String("builtin", cfg.Catalog.BuiltinPath, "path to the built-in catalog YAML (default: embedded)")
	logFlag := flag.String("log", "", "write logs to this file")
	verbose := flag.Bool("verbose", false, "log debug output")
	flag.Parse()

	cfg.Database.Path = *dbFlag
	cfg.Catalog.BuiltinPath = *builtinFlag

	// the terminal belongs to the UI, so logs go to a file or nowhere
	var logOut io.Writer = io.Discard
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	logger, err := config.NewLogger(logOut, cfg.Log.Level, *verbose)
	if err != nil {
		return err
	}

	ctx := context.Background()
	deck, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deck.Close()

	if err := deck.Roster.RestoreAll(ctx); err != nil {
		return err
	}

	app := tui.NewApp(deck.Engine, deck.User, deck.Roster)
	p := tea.NewProgram(app, tea.WithAltScreen())

	// Send blocks until the program runs, and OnReady may fire right away
	changed := func() { go p.Send(views.CatalogChangedMsg{}) }
	defer deck.Builtin.OnReady(changed)()
	defer deck.User.OnRefreshed(changed)()
	defer deck.User.OnItemAdded(func(domain.Item) { changed() })()

	_, err = p.Run()
	return err
}
