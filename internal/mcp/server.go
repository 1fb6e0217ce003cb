package mcp

import (
	"context"
	"database/sql"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ndelgado/abasto/internal/config"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
// All tools are read-only: the catalog is loaded per call and never mutated
// through this surface.
var toolRegistry = map[string]toolEntry{
	"catalog_brands": {
		def:     brandsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleBrands },
	},
	"catalog_grouped": {
		def:     groupedToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGrouped },
	},
	"catalog_search": {
		def:     searchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSearch },
	},
	"catalog_sorted": {
		def:     sortedToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSorted },
	},
	"sales_history": {
		def:     historyToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleHistory },
	},
}

var brandsToolDef = mcp.NewTool("catalog_brands",
	mcp.WithDescription("Count supply records per brand, in first-occurrence order"),
	mcp.WithString("path", mcp.Description("Catalog CSV path (defaults to the configured catalog)")),
)

var groupedToolDef = mcp.NewTool("catalog_grouped",
	mcp.WithDescription("Project (brand, name, price) per record in catalog order"),
	mcp.WithString("path", mcp.Description("Catalog CSV path (defaults to the configured catalog)")),
)

var searchToolDef = mcp.NewTool("catalog_search",
	mcp.WithDescription("Find records whose feature tags contain the query (capitalized before matching)"),
	mcp.WithString("query", mcp.Required(), mcp.Description("Feature text to search for")),
	mcp.WithString("path", mcp.Description("Catalog CSV path (defaults to the configured catalog)")),
)

var sortedToolDef = mcp.NewTool("catalog_sorted",
	mcp.WithDescription("Return the catalog sorted by brand ascending, price descending within brand"),
	mcp.WithString("path", mcp.Description("Catalog CSV path (defaults to the configured catalog)")),
	mcp.WithBoolean("keep_tags", mcp.Description("Keep full feature tag lists instead of truncating to the first tag")),
)

var historyToolDef = mcp.NewTool("sales_history",
	mcp.WithDescription("List recorded checkout sessions, most recent first"),
	mcp.WithNumber("limit", mcp.Description("Maximum sales to return (default 20)")),
)

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with catalog tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(db *sql.DB, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"abasto",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(db, cfg)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(db *sql.DB, cfg *config.Config, version string) error {
	s := NewServer(db, cfg, version)
	return server.ServeStdio(s)
}

// ToolHandlerFunc is the signature for tool handlers.
type ToolHandlerFunc func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
