// Package mcp provides the stdio MCP server exposing the saved-command
// registry to coding agents. Only save-without-execute and read operations
// are exposed; nothing an agent calls here ever spawns a process.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/go-ports/see/internal/buildinfo"
	"github.com/go-ports/see/internal/config"
	"github.com/go-ports/see/internal/registry"
	"github.com/go-ports/see/internal/store"
)

const saveDescription = `Save a shell command for later reuse. The command is stored only; it is never executed by this tool. Give a short description and tags so the user can find it again.`

const searchDescription = `Search saved shell commands by keyword and tags. The keyword matches command text and descriptions case-insensitively; tags match exactly.`

const showDescription = `Show one saved command by its numeric id or alias, including usage statistics.`

// NewServer creates and registers the command tools on a new MCP server.
// It is separate from Serve so tests can drive the server in process
// without the stdio transport.
func NewServer(reg *registry.Registry) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer("see", buildinfo.Version)
	registerTools(s, reg)
	return s
}

// Serve starts the stdio MCP server over the store at dataHome, blocking
// until stdin closes.
func Serve(_ context.Context, dataHome string) error {
	if dataHome == "" {
		dataHome = config.GetDataHome()
	}
	reg := registry.New(store.New(dataHome))
	return mcpserver.ServeStdio(NewServer(reg))
}

func registerTools(s *mcpserver.MCPServer, reg *registry.Registry) {
	s.AddTool(mcp.NewTool("see_save",
		mcp.WithDescription(saveDescription),
		mcp.WithString("command",
			mcp.Description("The shell command text to save."),
			mcp.Required(),
		),
		mcp.WithString("description",
			mcp.Description("Short description of what the command does."),
		),
		mcp.WithArray("tags",
			mcp.Description("Tags for grouping and search."),
			mcp.WithStringItems(),
		),
		mcp.WithString("alias",
			mcp.Description("Optional short name for re-invocation."),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleSave(ctx, reg, req)
	})

	s.AddTool(mcp.NewTool("see_search",
		mcp.WithDescription(searchDescription),
		mcp.WithString("query",
			mcp.Description("Search terms."),
		),
		mcp.WithArray("tags",
			mcp.Description("Keep only commands carrying at least one of these tags."),
			mcp.WithStringItems(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max results (default 10)."),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleSearch(ctx, reg, req)
	})

	s.AddTool(mcp.NewTool("see_show",
		mcp.WithDescription(showDescription),
		mcp.WithString("ref",
			mcp.Description("Numeric id or alias of the saved command."),
			mcp.Required(),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleShow(ctx, reg, req)
	})
}

// ---------------------------------------------------------------------------
// Tool handlers
// ---------------------------------------------------------------------------

func handleSave(_ context.Context, reg *registry.Registry, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := reg.Add(registry.AddInput{
		Description: req.GetString("description", ""),
		Tags:        req.GetStringSlice("tags", make([]string, 0)),
		Alias:       req.GetString("alias", ""),
		Command:     req.GetString("command", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	action := "exists"
	switch {
	case res.Created:
		action = "created"
	case res.MergedTags:
		action = "merged_tags"
	}
	return jsonResult(map[string]any{
		"id":     res.Record.ID,
		"action": action,
	})
}

func handleSearch(_ context.Context, reg *registry.Registry, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	recs := reg.Search(
		req.GetString("query", ""),
		req.GetStringSlice("tags", nil),
	)
	if len(recs) > limit {
		recs = recs[:limit]
	}

	clean := make([]map[string]any, 0, len(recs))
	for _, rec := range recs {
		clean = append(clean, recordJSON(rec))
	}
	return jsonResult(clean)
}

func handleShow(_ context.Context, reg *registry.Registry, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, err := reg.Lookup(req.GetString("ref", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("show: %v", err)), nil
	}
	return jsonResult(recordJSON(rec))
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func recordJSON(rec *store.Record) map[string]any {
	tags := rec.Tags
	if tags == nil {
		tags = make([]string, 0)
	}
	out := map[string]any{
		"id":          rec.ID,
		"command":     rec.Command,
		"description": rec.Description,
		"alias":       rec.Alias,
		"tags":        tags,
		"usage_count": rec.UsageCount,
		"created_at":  rec.CreatedAt.Format(time.RFC3339),
	}
	if rec.LastUsedAt != nil {
		out["last_used_at"] = rec.LastUsedAt.Format(time.RFC3339)
	}
	return out
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
