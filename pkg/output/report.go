package output

import (
	"fmt"
	"os"

	"github.com/sdejongh/diffnorris/pkg/models"
)

// WriteReportFile writes the comparison report to a file
// Format can be "human" or "json"
func WriteReportFile(report *models.CompareReport, path string, format string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	switch format {
	case "json":
		return WriteJSONReport(report, file)
	default: // "human"
		return WriteHumanReport(report, file)
	}
}
