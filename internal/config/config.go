// Package config loads the run configuration file. Fields are pointers so
// a partial JSON file is safe: anything omitted falls back to the
// documented default through the Get* accessors.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults applied when a field is absent from the config file.
const (
	DefaultParallel   = false
	DefaultWorkers    = 0 // 0 = GOMAXPROCS when parallel
	DefaultVerbose    = false
	DefaultCatalogDB  = "" // empty = built-in catalog
	DefaultResultsDB  = ""
	DefaultMigrations = "migrations"
	DefaultListen     = ":8080"
)

// RunConfig is the root configuration for a feature computation run. The
// same JSON schema serves the CLI and the serve mode.
type RunConfig struct {
	Parallel   *bool   `json:"parallel,omitempty"`
	Workers    *int    `json:"workers,omitempty"`
	Verbose    *bool   `json:"verbose,omitempty"`
	CatalogDB  *string `json:"catalog_db,omitempty"`
	ResultsDB  *string `json:"results_db,omitempty"`
	Migrations *string `json:"migrations,omitempty"`
	Listen     *string `json:"listen,omitempty"`
}

// Load reads a RunConfig from a JSON file. The path must carry a .json
// extension and the file must be under 1MB; omitted fields keep their
// defaults, so partial configs are safe.
func Load(path string) (*RunConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &RunConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks field ranges. Called by Load; callers constructing a
// RunConfig in code should call it themselves.
func (c *RunConfig) Validate() error {
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", *c.Workers)
	}
	return nil
}

// GetParallel returns the parallel flag or its default.
func (c *RunConfig) GetParallel() bool {
	if c == nil || c.Parallel == nil {
		return DefaultParallel
	}
	return *c.Parallel
}

// GetWorkers returns the worker count or its default.
func (c *RunConfig) GetWorkers() int {
	if c == nil || c.Workers == nil {
		return DefaultWorkers
	}
	return *c.Workers
}

// GetVerbose returns the verbosity flag or its default.
func (c *RunConfig) GetVerbose() bool {
	if c == nil || c.Verbose == nil {
		return DefaultVerbose
	}
	return *c.Verbose
}

// GetCatalogDB returns the catalog database path, or empty for the
// built-in catalog.
func (c *RunConfig) GetCatalogDB() string {
	if c == nil || c.CatalogDB == nil {
		return DefaultCatalogDB
	}
	return *c.CatalogDB
}

// GetResultsDB returns the results database path, or empty to skip
// persistence.
func (c *RunConfig) GetResultsDB() string {
	if c == nil || c.ResultsDB == nil {
		return DefaultResultsDB
	}
	return *c.ResultsDB
}

// GetMigrations returns the migrations directory for the results database.
func (c *RunConfig) GetMigrations() string {
	if c == nil || c.Migrations == nil {
		return DefaultMigrations
	}
	return *c.Migrations
}

// GetListen returns the serve-mode listen address.
func (c *RunConfig) GetListen() string {
	if c == nil || c.Listen == nil {
		return DefaultListen
	}
	return *c.Listen
}
