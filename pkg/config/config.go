package config

import (
	"strings"

	"github.com/sdejongh/diffnorris/pkg/models"
	"github.com/sdejongh/diffnorris/pkg/scan"
)

// Config represents the application configuration
type Config struct {
	Scan    ScanConfig    `yaml:"scan"`
	Cache   CacheConfig   `yaml:"cache"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// ScanConfig holds tree enumeration settings. Both lists are data, not
// code: adding another language ecosystem is a configuration change.
type ScanConfig struct {
	// Extensions is the allow-list of comparable file extensions
	Extensions []string `yaml:"extensions"`
	// SkipDirs is the denylist of directory names pruned from the walk
	// (hidden directories are always pruned)
	SkipDirs []string `yaml:"skip_dirs"`
}

// CacheConfig holds clone cache settings
type CacheConfig struct {
	// Dir is the cache root for cloned remote sources
	// (empty = per-user cache directory)
	Dir string `yaml:"dir"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show a progress bar during comparison
	Quiet    bool   `yaml:"quiet"`    // Suppress non-error output
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"` // "json" or "text"
	Level   string `yaml:"level"`  // "debug", "info", "warn", "error"
	File    string `yaml:"file"`   // Log file path (empty = logging disabled)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			Extensions: scan.DefaultExtensions(),
			SkipDirs:   scan.DefaultSkipDirs(),
		},
		Cache: CacheConfig{
			Dir: "",
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
			Quiet:    false,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Format:  "text",
			Level:   "info",
			File:    "",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if len(c.Scan.Extensions) == 0 {
		return &models.ValidationError{
			Field:   "scan.extensions",
			Message: "at least one extension is required",
		}
	}
	for _, ext := range c.Scan.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return &models.ValidationError{
				Field:   "scan.extensions",
				Message: "extension must start with a dot: " + ext,
			}
		}
	}

	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	return nil
}
