package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"presetdeck/internal/adapters/filesystem"
	mcpadapter "presetdeck/internal/adapters/mcp"
	"presetdeck/internal/bootstrap"
	"presetdeck/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("presetdeck-mcp: %v", err)
	}

	dbFlag := flag.String("db", cfg.Database.Path, "path to the user catalog database")
	builtinFlag := flag.String("builtin", cfg.Catalog.BuiltinPath, "path to the built-in catalog YAML (default: embedded)")
	verbose := flag.Bool("verbose", false, "log debug output to stderr")
	flag.Parse()

	cfg.Database.Path = *dbFlag
	cfg.Catalog.BuiltinPath = *builtinFlag

	// stdout carries the protocol
	logger, err := config.NewLogger(os.Stderr, cfg.Log.Level, *verbose)
	if err != nil {
		log.Fatalf("presetdeck-mcp: %v", err)
	}

	ctx := context.Background()
	deck, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("presetdeck-mcp: %v", err)
	}
	defer deck.Close()

	if err := deck.WaitReady(ctx); err != nil {
		log.Fatalf("presetdeck-mcp: %v", err)
	}
	if err := deck.Roster.RestoreAll(ctx); err != nil {
		log.Fatalf("presetdeck-mcp: %v", err)
	}

	mcpServer := server.NewMCPServer(
		"presetdeck-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	deps := mcpadapter.Deps{
		Cycler: deck.Engine,
		User:   deck.User,
		Roster: deck.Roster,
		Export: filesystem.Exporter{},
	}
	mcpadapter.RegisterReadTools(mcpServer, deps)
	mcpadapter.RegisterWriteTools(mcpServer, deps)

	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error("server stopped", "error", err)
		deck.Close()
		os.Exit(1)
	}
}
