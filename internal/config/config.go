// =============================================================================
// Catalog Order Mapper - Configuration Module
// =============================================================================
//
// This module loads the main application configuration. Settings come from
// three layers, later layers overriding earlier ones:
//
//   1. Built-in defaults
//   2. The YAML configuration file (config.yaml by default)
//   3. Environment variables (a .env file is honored via godotenv)
//
// ENVIRONMENT OVERRIDES:
//   CATALOG_PATH  -> catalog_path
//   ORDERS_DIR    -> orders_dir
//   OUTPUT_DIR    -> output_dir
//   ARCHIVE_DIR   -> archive_dir
//   LOG_LEVEL     -> log_level
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// CatalogPath is the location of the catalog JSON document.
	// Default: "./catalog/catalog.json"
	CatalogPath string `yaml:"catalog_path"`

	// OrdersDir is the directory scanned for customer order text files.
	// Default: "./orders"
	OrdersDir string `yaml:"orders_dir"`

	// OutputDir is the directory where generated order CSVs are placed.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir is the directory processed order files are moved to.
	// Files are only moved here after successful processing.
	// Default: "./orders_archive"
	ArchiveDir string `yaml:"archive_dir"`

	// OutputNameFormat defines the name of generated CSV files.
	// Placeholders:
	//   {order}     - Input file name without extension
	//   {date}      - Current date (YYYYMMDD)
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {uuid}      - A random UUID
	// Default: "{order}_{date}.csv"
	OutputNameFormat string `yaml:"output_name_format"`

	// IncludeCategory adds the Category column to generated CSVs.
	// Default: false
	IncludeCategory bool `yaml:"include_category"`

	// WriteErrorLog writes a per-run error log in the output directory when
	// any order line fails to map.
	// Default: false
	WriteErrorLog bool `yaml:"write_error_log"`

	// MaxConcurrency is the maximum number of order files to process
	// concurrently in batch mode. Set to 1 for sequential processing.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// LogLevel controls logging verbosity.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load loads the main configuration from a YAML file and applies defaults
// and environment overrides.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//
// RETURNS:
//   - The configuration.
//   - An error if the file cannot be read or parsed.
func Load(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg MainConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// LoadOrDefault behaves like Load, but falls back to the default
// configuration when the file does not exist. This keeps one-shot commands
// (find, stats) usable without a config file, relying on flags and
// environment variables instead.
func LoadOrDefault(configPath string) (*MainConfig, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(configPath)
}

// Default returns the built-in default configuration with environment
// overrides applied.
func Default() *MainConfig {
	cfg := &MainConfig{}
	applyDefaults(cfg)
	applyEnvOverrides(cfg)
	return cfg
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *MainConfig) {
	if cfg.CatalogPath == "" {
		cfg.CatalogPath = "./catalog/catalog.json"
	}
	if cfg.OrdersDir == "" {
		cfg.OrdersDir = "./orders"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = "./orders_archive"
	}
	if cfg.OutputNameFormat == "" {
		cfg.OutputNameFormat = "{order}_{date}.csv"
	}
	if cfg.MaxConcurrency == 0 {
		cfg.MaxConcurrency = 4
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// applyEnvOverrides applies environment variable overrides. A .env file in
// the working directory is loaded first; absence of one is not an error.
func applyEnvOverrides(cfg *MainConfig) {
	_ = godotenv.Load()

	if v := os.Getenv("CATALOG_PATH"); v != "" {
		cfg.CatalogPath = v
	}
	if v := os.Getenv("ORDERS_DIR"); v != "" {
		cfg.OrdersDir = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("ARCHIVE_DIR"); v != "" {
		cfg.ArchiveDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("INCLUDE_CATEGORY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.IncludeCategory = b
		}
	}
}
