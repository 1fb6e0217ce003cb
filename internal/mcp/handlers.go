package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ndelgado/abasto/internal/catalog"
	"github.com/ndelgado/abasto/internal/config"
	"github.com/ndelgado/abasto/internal/db"
	"github.com/ndelgado/abasto/internal/errors"
	"github.com/ndelgado/abasto/internal/ops"
)

// DefaultHistoryLimit bounds sales_history when no limit is given.
const DefaultHistoryLimit = 20

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db  *sql.DB
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(database *sql.DB, cfg *config.Config) *Handlers {
	return &Handlers{db: database, cfg: cfg}
}

// Request types for each tool

// BrandsRequest represents the arguments for catalog_brands.
type BrandsRequest struct {
	Path string `json:"path,omitempty"`
}

// GroupedRequest represents the arguments for catalog_grouped.
type GroupedRequest struct {
	Path string `json:"path,omitempty"`
}

// SearchRequest represents the arguments for catalog_search.
type SearchRequest struct {
	Query string `json:"query"`
	Path  string `json:"path,omitempty"`
}

// SortedRequest represents the arguments for catalog_sorted.
type SortedRequest struct {
	Path     string `json:"path,omitempty"`
	KeepTags bool   `json:"keep_tags,omitempty"`
}

// HistoryRequest represents the arguments for sales_history.
type HistoryRequest struct {
	Limit int `json:"limit,omitempty"`
}

// loadCatalog loads the catalog at path, falling back to the configured one.
func (h *Handlers) loadCatalog(path string) ([]*catalog.Record, error) {
	if path == "" {
		path = h.cfg.CatalogPath
	}
	return catalog.LoadFile(path)
}

// HandleBrands handles the catalog_brands tool call.
func (h *Handlers) HandleBrands(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[BrandsRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	records, err := h.loadCatalog(input.Path)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{
		"brands": ops.CountByBrand(records),
		"total":  len(records),
	})
}

// HandleGrouped handles the catalog_grouped tool call.
func (h *Handlers) HandleGrouped(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GroupedRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	records, err := h.loadCatalog(input.Path)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{
		"items": ops.GroupedView(records),
	})
}

// HandleSearch handles the catalog_search tool call.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	records, err := h.loadCatalog(input.Path)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.FindByFeature(records, input.Query)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSorted handles the catalog_sorted tool call.
func (h *Handlers) HandleSorted(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SortedRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	records, err := h.loadCatalog(input.Path)
	if err != nil {
		return errorResult(err), nil
	}

	ops.Sort(records)
	if !input.KeepTags {
		ops.NormalizeFeatures(records)
	}

	return successResult(map[string]any{
		"items": records,
	})
}

// HandleHistory handles the sales_history tool call.
func (h *Handlers) HandleHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[HistoryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	sales, err := db.ListSales(h.db, limit)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{
		"sales": sales,
	})
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if cErr, ok := err.(*errors.CatalogError); ok {
		errorObj := map[string]any{
			"code":    cErr.Code,
			"message": cErr.Message,
			"status":  cErr.Status,
		}
		if cErr.Code != errors.ErrInternal && cErr.Details != nil {
			errorObj["details"] = cErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
