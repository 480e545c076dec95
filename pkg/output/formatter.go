package output

import (
	"io"

	"github.com/sdejongh/diffnorris/pkg/models"
)

// ProgressUpdate represents a progress notification during comparison
type ProgressUpdate struct {
	Type        string // "file_complete", "file_error"
	FilePath    string
	Status      models.ComparisonStatus
	CurrentFile int
	TotalFiles  int
	Error       error
}

// Formatter defines the interface for output formatting
// Implementations include human-readable, JSON, and progress-bar formatters
type Formatter interface {
	// Start initializes the formatter for a new comparison run
	Start(writer io.Writer, totalFiles int) error

	// Progress reports progress during comparison
	Progress(update ProgressUpdate) error

	// Complete finalizes output and renders the report
	Complete(report *models.CompareReport) error

	// Error reports an error during comparison
	Error(err error) error

	// Name returns the formatter name
	Name() string
}
