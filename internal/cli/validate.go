package cli

import (
	"time"

	"github.com/google/uuid"

	"github.com/sdejongh/diffnorris/pkg/config"
	"github.com/sdejongh/diffnorris/pkg/models"
)

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cfg *config.Config) {
	// Output format
	if compareFlags.Output != "" {
		cfg.Output.Format = compareFlags.Output
	}

	// Clone cache directory
	if compareFlags.CacheDir != "" {
		cfg.Cache.Dir = compareFlags.CacheDir
	}

	// Disable progress in quiet mode
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}

	// Enable progress in verbose mode
	if globalFlags.Verbose {
		cfg.Output.Progress = true
	}
}

// createCompareOperation creates a compare operation from the resolved sources
func createCompareOperation(leftSource, rightSource, leftPath, rightPath string) (*models.CompareOperation, error) {
	operation := &models.CompareOperation{
		ID:              uuid.New().String(),
		LeftSource:      leftSource,
		RightSource:     rightSource,
		LeftPath:        leftPath,
		RightPath:       rightPath,
		LeftSubdir:      compareFlags.SubdirLeft,
		RightSubdir:     compareFlags.SubdirRight,
		IncludePatterns: compareFlags.Include,
		ExcludePatterns: compareFlags.Exclude,
		CreatedAt:       time.Now(),
	}

	if err := operation.Validate(); err != nil {
		return nil, err
	}

	return operation, nil
}
