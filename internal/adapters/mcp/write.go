package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"presetdeck/internal/application"
	"presetdeck/internal/application/commands"
	"presetdeck/internal/domain"
)

// RegisterWriteTools adds all tools that move subjects or change catalogs.
func RegisterWriteTools(s *server.MCPServer, deps Deps) {
	s.AddTool(spawnSubjectTool(), spawnSubjectHandler(deps))
	s.AddTool(detachSubjectTool(), detachSubjectHandler(deps))
	s.AddTool(cycleTool(), cycleHandler(deps))
	s.AddTool(cycleAllTool(), cycleAllHandler(deps))
	s.AddTool(selectTool(), selectHandler(deps))
	s.AddTool(addPresetTool(), addPresetHandler(deps))
	s.AddTool(removeCategoryTool(), removeCategoryHandler(deps))
	s.AddTool(refreshTool(), refreshHandler(deps))
	s.AddTool(exportTool(), exportHandler(deps))
}

// --- spawn_subject ---

func spawnSubjectTool() mcp.Tool {
	return mcp.NewTool("spawn_subject",
		mcp.WithDescription("Create a new subject and attach it to the catalogs. Returns its ID."),
		mcp.WithString("label",
			mcp.Description("Display label for the subject"),
		),
		mcp.WithString("preset",
			mcp.Description("Starting preset (ID, name or Category/Name). Omit to start with no preset."),
		),
	)
}

func spawnSubjectHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var start domain.Item
		if query := req.GetString("preset", ""); query != "" {
			item, err := commands.NewFindItemCommand(deps.Cycler, query).Execute(ctx)
			if err != nil {
				return toolError(err)
			}
			start = item
		}

		actor, err := deps.Roster.Spawn(ctx, req.GetString("label", ""), start)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Spawned %s (%s) at %s", actor.ID(), actor.Label(), start)), nil
	}
}

// --- detach_subject ---

func detachSubjectTool() mcp.Tool {
	return mcp.NewTool("detach_subject",
		mcp.WithDescription("Detach a subject. With forget set, its stored preset is deleted too."),
		withSubject(),
		mcp.WithBoolean("forget",
			mcp.Description("Also delete the stored selection"),
		),
	)
}

func detachSubjectHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("subject_id", "")
		if err := application.ValidateRequired("subjectID", id); err != nil {
			return toolError(err)
		}
		if err := deps.Roster.Detach(ctx, id, req.GetBool("forget", false)); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Detached %s", id)), nil
	}
}

// --- cycle ---

func cycleTool() mcp.Tool {
	return mcp.NewTool("cycle",
		mcp.WithDescription("Move a subject to the next or previous preset. Empty categories are skipped; the catalog wraps around."),
		withSubject(),
		withDirection(),
	)
}

func cycleHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dir, err := domain.ParseDirection(req.GetString("direction", "next"))
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewCycleCommand(deps.Cycler, req.GetString("subject_id", ""), dir).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatCycleResult(result)
	}
}

// --- cycle_all ---

func cycleAllTool() mcp.Tool {
	return mcp.NewTool("cycle_all",
		mcp.WithDescription("Move every attached subject to its next or previous preset."),
		withDirection(),
	)
}

func cycleAllHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dir, err := domain.ParseDirection(req.GetString("direction", "next"))
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewCycleAllCommand(deps.Cycler, dir).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatCycleResult(result)
	}
}

// --- select ---

func selectTool() mcp.Tool {
	return mcp.NewTool("select",
		mcp.WithDescription("Point a subject directly at a preset. Small typos in the query are tolerated."),
		withSubject(),
		mcp.WithString("query",
			mcp.Description("Preset ID, name, or Category/Name"),
			mcp.Required(),
		),
	)
}

func selectHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("subject_id", "")
		actor, ok := deps.Roster.Get(id)
		if !ok {
			return toolError(&application.SubjectError{SubjectID: id})
		}

		item, err := commands.NewFindItemCommand(deps.Cycler, req.GetString("query", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		cursor, err := commands.NewSelectItemCommand(deps.Cycler, actor, item).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatPosition(id, cursor)), nil
	}
}

// --- add_preset ---

func addPresetTool() mcp.Tool {
	return mcp.NewTool("add_preset",
		mcp.WithDescription("Add a preset to the user catalog. The category is created on first use."),
		mcp.WithString("category",
			mcp.Description("Category name"),
			mcp.Required(),
		),
		mcp.WithString("name",
			mcp.Description("Preset name"),
			mcp.Required(),
		),
	)
}

func addPresetHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewAddItemCommand(deps.User, req.GetString("category", ""), req.GetString("name", ""))
		item, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Added %s (%s)", item, item.ID)), nil
	}
}

// --- remove_category ---

func removeCategoryTool() mcp.Tool {
	return mcp.NewTool("remove_category",
		mcp.WithDescription("Remove a category and all its presets from the user catalog."),
		mcp.WithString("category",
			mcp.Description("Category name"),
			mcp.Required(),
		),
	)
}

func removeCategoryHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		category := req.GetString("category", "")
		if err := commands.NewRemoveCategoryCommand(deps.User, category).Execute(ctx); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Removed %s", category)), nil
	}
}

// --- refresh ---

func refreshTool() mcp.Tool {
	return mcp.NewTool("refresh",
		mcp.WithDescription("Reload the user catalog from storage."),
	)
}

func refreshHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := commands.NewRefreshCommand(deps.User).Execute(ctx); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText("User catalog reloaded."), nil
	}
}

// --- export ---

func exportTool() mcp.Tool {
	return mcp.NewTool("export",
		mcp.WithDescription("Write a catalog to a YAML file."),
		withSource(),
		mcp.WithString("path",
			mcp.Description("Destination file"),
			mcp.Required(),
		),
	)
}

func exportHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		source, err := sourceArg(req)
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewExportCommand(deps.Cycler, deps.Export, source, req.GetString("path", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- helpers ---

func withDirection() mcp.ToolOption {
	return mcp.WithString("direction",
		mcp.Description("next (default) or previous"),
		mcp.Enum("next", "previous"),
	)
}

func formatCycleResult(result *commands.CycleResult) (*mcp.CallToolResult, error) {
	if len(result.Positions) == 0 {
		return mcp.NewToolResultText("No subjects."), nil
	}
	var sb strings.Builder
	for _, p := range result.Positions {
		sb.WriteString(formatPosition(p.SubjectID, p.Cursor))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}
