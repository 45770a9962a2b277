// =============================================================================
// HTML Table to CSV Converter - Configuration Module
// =============================================================================
//
// This module loads the optional application configuration. Every setting
// has a default, so the tool runs with no configuration file at all; a YAML
// file only needs to name the settings it changes.
//
// CONFIGURATION SOURCES:
//   1. Built-in defaults (always applied first)
//   2. A YAML file passed via --config
//
// The key column names live here rather than as package constants so that
// exports keyed on other headers (for example "Reference No") can be merged
// without a rebuild.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// =========================================================================
	// KEY COLUMN SETTINGS
	// =========================================================================

	// ReferenceColumn is the name of the transaction reference column.
	// Together with TypeColumn it identifies a transaction across files.
	// Default: "Application Reference"
	ReferenceColumn string `yaml:"reference_column"`

	// TypeColumn is the name of the transaction type column.
	// Default: "Transaction Type"
	TypeColumn string `yaml:"type_column"`

	// SourceColumn is the name of the synthetic provenance column tagged
	// onto every row while processing. It never appears in written CSV.
	// Default: "_source_file"
	SourceColumn string `yaml:"source_column"`

	// =========================================================================
	// VALUE SETTINGS
	// =========================================================================

	// DateLayouts are the date formats tried, in order, when parsing the
	// date column. Layouts use Go reference-time notation and are day-first.
	// Default: see DefaultDateLayouts.
	DateLayouts []string `yaml:"date_layouts"`

	// MissingTokens are cell texts treated as missing values, compared
	// case-insensitively after trimming. Empty cells are always missing.
	// Default: see DefaultMissingTokens.
	MissingTokens []string `yaml:"missing_tokens"`

	// =========================================================================
	// INPUT SETTINGS
	// =========================================================================

	// InputExtensions are the file extensions picked up when scanning the
	// working directory. Add ".xlsx" to include spreadsheet exports.
	// Default: [".html", ".htm"]
	InputExtensions []string `yaml:"input_extensions"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// MergedOutput is the file name written in merge mode.
	// Default: "merged.csv"
	MergedOutput string `yaml:"merged_output"`

	// ArchiveDir is where inputs are moved when --archive is set.
	// Default: "processed"
	ArchiveDir string `yaml:"archive_dir"`

	// ReportFormat selects the discrepancy report rendering.
	// Valid values: "text", "table"
	// Default: "text"
	ReportFormat string `yaml:"report_format"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultDateLayouts cover the day-first forms seen in bank exports plus
// ISO dates. Single-digit layout elements also accept zero-padded values.
var DefaultDateLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2/1/06",
	"2006-01-02",
	"2/1/2006 15:04",
	"2/1/2006 15:04:05",
	"2006-01-02 15:04:05",
}

// DefaultMissingTokens are the NA spellings treated as missing values.
var DefaultMissingTokens = []string{"N/A", "NA", "NaN", "nan", "null", "NULL", "None"}

// Default returns the configuration used when no file is given.
func Default() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

// =============================================================================
// LOADING FUNCTIONS
// =============================================================================

// Load reads the configuration file at configPath. An empty path returns
// the defaults without touching the filesystem.
//
// PARAMETERS:
//   - configPath: the YAML file to read, or "" for defaults.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read, parsed, or validated.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}

	// Read the configuration file.
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse the YAML.
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply default values.
	applyDefaults(&config)

	// Validate the configuration.
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.ReferenceColumn == "" {
		config.ReferenceColumn = "Application Reference"
	}
	if config.TypeColumn == "" {
		config.TypeColumn = "Transaction Type"
	}
	if config.SourceColumn == "" {
		config.SourceColumn = "_source_file"
	}
	if len(config.DateLayouts) == 0 {
		config.DateLayouts = append([]string(nil), DefaultDateLayouts...)
	}
	if len(config.MissingTokens) == 0 {
		config.MissingTokens = append([]string(nil), DefaultMissingTokens...)
	}
	if len(config.InputExtensions) == 0 {
		config.InputExtensions = []string{".html", ".htm"}
	}
	if config.MergedOutput == "" {
		config.MergedOutput = "merged.csv"
	}
	if config.ArchiveDir == "" {
		config.ArchiveDir = "processed"
	}
	if config.ReportFormat == "" {
		config.ReportFormat = "text"
	}
}

// validate checks the configuration for values the pipeline cannot use.
func validate(config *Config) error {
	if config.ReferenceColumn == config.TypeColumn {
		return fmt.Errorf("reference_column and type_column must differ")
	}
	for _, ext := range config.InputExtensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("input extension %q must start with a dot", ext)
		}
	}
	switch config.ReportFormat {
	case "text", "table":
	default:
		return fmt.Errorf("invalid report_format %q (valid: \"text\", \"table\")", config.ReportFormat)
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// KeyColumns returns the configured key column names in comparison order.
func (c *Config) KeyColumns() []string {
	return []string{c.ReferenceColumn, c.TypeColumn}
}

// MissingTokenSet returns the missing tokens as a lowercased lookup set.
func (c *Config) MissingTokenSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.MissingTokens))
	for _, token := range c.MissingTokens {
		set[strings.ToLower(token)] = struct{}{}
	}
	return set
}

// HasInputExtension reports whether the path ends in one of the configured
// input extensions, case-insensitively.
func (c *Config) HasInputExtension(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range c.InputExtensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
