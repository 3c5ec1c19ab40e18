// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/jobad-parser/internal/matching"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	InputDir     string `json:"input_dir,omitempty"`    // Directory of saved advertisement pages
	OutputDir    string `json:"output_dir,omitempty"`   // Directory for cleaned record JSON
	Universities string `json:"universities,omitempty"` // University list, one name per line
	Postcodes    string `json:"postcodes,omitempty"`    // PROVIDER_NAME,POSTCODE CSV

	// Behavior
	Workers             int     `json:"workers,omitempty"`              // Documents parsed concurrently (0 = one per CPU)
	Enrich              bool    `json:"enrich,omitempty"`               // Add university, postcode, in_uk and not_student
	UniversityThreshold float64 `json:"university_threshold,omitempty"` // Minimum similarity for a university match
	PostcodeThreshold   float64 `json:"postcode_threshold,omitempty"`   // Minimum similarity for a postcode match
	Verbose             bool    `json:"verbose,omitempty"`              // Print detailed debug information
	DatabaseURL         string  `json:"database_url,omitempty"`         // PostgreSQL connection URL
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are checked by the commands after flags are merged.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("config error: 'workers' must be non-negative")
	}
	if c.UniversityThreshold < 0 || c.UniversityThreshold > 1 {
		return fmt.Errorf("config error: 'university_threshold' must be between 0 and 1")
	}
	if c.PostcodeThreshold < 0 || c.PostcodeThreshold > 1 {
		return fmt.Errorf("config error: 'postcode_threshold' must be between 0 and 1")
	}

	// Validate file paths exist (if specified)
	paths := []struct{ name, path string }{
		{"input directory", c.InputDir},
		{"university list", c.Universities},
		{"postcode table", c.Postcodes},
	}
	for _, p := range paths {
		if p.path == "" {
			continue
		}
		if _, err := os.Stat(p.path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s not found: %s", p.name, p.path)
		}
	}
	return nil
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		OutputDir:           "out",
		UniversityThreshold: matching.UniversityThreshold,
		PostcodeThreshold:   matching.PostcodeThreshold,
	}
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.InputDir == "" {
		result.InputDir = defaults.InputDir
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.Universities == "" {
		result.Universities = defaults.Universities
	}
	if result.Postcodes == "" {
		result.Postcodes = defaults.Postcodes
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}
	if result.UniversityThreshold == 0 {
		result.UniversityThreshold = defaults.UniversityThreshold
	}
	if result.PostcodeThreshold == 0 {
		result.PostcodeThreshold = defaults.PostcodeThreshold
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
