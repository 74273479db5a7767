package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"presetdeck/internal/adapters/subject"
	"presetdeck/internal/application"
	"presetdeck/internal/application/commands"
	"presetdeck/internal/domain"
	"presetdeck/internal/ports"
)

// Deps are the collaborators the tools operate on
type Deps struct {
	Cycler ports.Cycler
	User   ports.UserCatalog
	Roster *subject.Roster
	Export ports.CatalogExporter
}

// RegisterReadTools adds all read-only catalog tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, deps Deps) {
	s.AddTool(listCategoriesTool(), listCategoriesHandler(deps))
	s.AddTool(listItemsTool(), listItemsHandler(deps))
	s.AddTool(treeTool(), treeHandler(deps))
	s.AddTool(cursorTool(), cursorHandler(deps))
	s.AddTool(subjectsTool(), subjectsHandler(deps))
}

// --- list_categories ---

func listCategoriesTool() mcp.Tool {
	return mcp.NewTool("list_categories",
		mcp.WithDescription("List the categories of a preset catalog with the number of presets in each."),
		withSource(),
	)
}

func listCategoriesHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		source, err := sourceArg(req)
		if err != nil {
			return toolError(err)
		}

		summaries, err := commands.NewListCategoriesCommand(deps.Cycler, source).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(summaries, formatSummary)
	}
}

// --- list_items ---

func listItemsTool() mcp.Tool {
	return mcp.NewTool("list_items",
		mcp.WithDescription("List the presets of one category, in display order."),
		withSource(),
		mcp.WithString("category",
			mcp.Description("Category name (e.g. Idle)"),
			mcp.Required(),
		),
	)
}

func listItemsHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		source, err := sourceArg(req)
		if err != nil {
			return toolError(err)
		}

		items, err := commands.NewListItemsCommand(deps.Cycler, source, req.GetString("category", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(items, formatItem)
	}
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display a whole catalog as a tree of categories and presets."),
		withSource(),
	)
}

func treeHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		source, err := sourceArg(req)
		if err != nil {
			return toolError(err)
		}

		tree, err := commands.NewBuildTreeCommand(deps.Cycler, source).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		for _, category := range tree {
			fmt.Fprintf(&sb, "%s (%d)\n", category.Name, len(category.Items))
			for _, item := range category.Items {
				fmt.Fprintf(&sb, "  %s  %s\n", item.ID, item.Name)
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- cursor ---

func cursorTool() mcp.Tool {
	return mcp.NewTool("cursor",
		mcp.WithDescription("Show the current preset of a subject and its position in the catalog."),
		withSubject(),
	)
}

func cursorHandler(deps Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("subject_id", "")
		if err := application.ValidateRequired("subjectID", id); err != nil {
			return toolError(err)
		}

		cursor, err := deps.Cycler.Cursor(id)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatPosition(id, cursor)), nil
	}
}

// --- subjects ---

func subjectsTool() mcp.Tool {
	return mcp.NewTool("subjects",
		mcp.WithDescription("List every attached subject with its current preset."),
	)
}

func subjectsHandler(deps Deps) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ids := deps.Cycler.Subjects()
		if len(ids) == 0 {
			return mcp.NewToolResultText("No subjects."), nil
		}

		var sb strings.Builder
		for _, id := range ids {
			cursor, err := deps.Cycler.Cursor(id)
			if err != nil {
				return toolError(err)
			}
			sb.WriteString(formatPosition(id, cursor))
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func withSource() mcp.ToolOption {
	return mcp.WithString("source",
		mcp.Description("Catalog to use: builtin (default) or user"),
		mcp.Enum("builtin", "user"),
	)
}

func withSubject() mcp.ToolOption {
	return mcp.WithString("subject_id",
		mcp.Description("Subject ID as returned by spawn_subject"),
		mcp.Required(),
	)
}

func sourceArg(req mcp.CallToolRequest) (domain.SourceTag, error) {
	return domain.ParseSourceTag(req.GetString("source", "builtin"))
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatSummary(s domain.CategorySummary) string {
	return fmt.Sprintf("%s  %d", s.Name, s.Count)
}

func formatItem(i domain.Item) string {
	return fmt.Sprintf("%s  %s", i.ID, i.Name)
}

func formatPosition(id string, c domain.Cursor) string {
	return fmt.Sprintf("%s  %s  %s  %s  [%d:%d]", id, c.Source(), c.Current.ID, c.Current, c.CategoryIndex, c.ItemIndex)
}
