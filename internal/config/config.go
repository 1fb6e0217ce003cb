package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds application configuration.
type Config struct {
	// CatalogPath is the default delimited catalog file.
	CatalogPath string `json:"catalog_path"`

	// ExportPath is the fixed filename for the structured JSON export.
	// Import reads the same file.
	ExportPath string `json:"export_path"`

	// RevisedPath is the fixed filename the price revision re-exports to.
	RevisedPath string `json:"revised_path"`

	// ExportFilter selects records whose name contains this substring for
	// the JSON export.
	ExportFilter string `json:"export_filter"`

	// RevisionPercent is the default bulk price adjustment percentage.
	RevisionPercent float64 `json:"revision_percent"`

	// DBMaxOpenConns limits open sales-ledger connections.
	// 0 means use sql.DB default.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits idle sales-ledger connections.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		CatalogPath:     "insumos.csv",
		ExportPath:      "productos_alimento.json",
		RevisedPath:     "insumos_actualizados.csv",
		ExportFilter:    "Alimento",
		RevisionPercent: 8.4,
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.abasto.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.CatalogPath = overlay.CatalogPath
	if result.CatalogPath == "" {
		result.CatalogPath = base.CatalogPath
	}

	result.ExportPath = overlay.ExportPath
	if result.ExportPath == "" {
		result.ExportPath = base.ExportPath
	}

	result.RevisedPath = overlay.RevisedPath
	if result.RevisedPath == "" {
		result.RevisedPath = base.RevisedPath
	}

	result.ExportFilter = overlay.ExportFilter
	if result.ExportFilter == "" {
		result.ExportFilter = base.ExportFilter
	}

	result.RevisionPercent = overlay.RevisionPercent
	if result.RevisionPercent == 0 {
		result.RevisionPercent = base.RevisionPercent
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
