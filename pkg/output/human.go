package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sdejongh/diffnorris/pkg/models"
)

// HumanFormatter renders the report as a terminal summary followed by
// ready-to-run diff commands for every modified file
type HumanFormatter struct {
	writer io.Writer
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// Start initializes the formatter
func (f *HumanFormatter) Start(writer io.Writer, totalFiles int) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	return nil
}

// Progress is silent in human mode; results are rendered at completion
func (f *HumanFormatter) Progress(update ProgressUpdate) error {
	return nil
}

// Complete renders the summary line, the per-file diff commands sorted
// by ascending similarity, and the side-only listings
func (f *HumanFormatter) Complete(report *models.CompareReport) error {
	if f.writer == nil {
		f.writer = os.Stdout
	}
	return WriteHumanReport(report, f.writer)
}

// Error reports an error
func (f *HumanFormatter) Error(err error) error {
	if f.writer != nil {
		fmt.Fprintf(f.writer, "Error: %v\n", err)
	}
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

// WriteHumanReport writes the human-readable rendition of a report
func WriteHumanReport(report *models.CompareReport, w io.Writer) error {
	stats := report.Stats

	fmt.Fprintf(w, "Total: %d, Identical: %d, Different: %d, Only in left: %d, Only in right: %d, Errors: %d, Avg similarity: %s\n",
		stats.TotalFiles, stats.Identical, stats.Different,
		stats.OnlyInLeft, stats.OnlyInRight, stats.Errors,
		formatRatio(stats.AvgSimilarity))

	fmt.Fprintf(w, "\n# To diff the whole trees:\n")
	fmt.Fprintf(w, "# git diff --no-index %s %s\n", report.LeftPath, report.RightPath)

	if stats.Different > 0 {
		fmt.Fprintf(w, "\n# Modified files (%d):\n", stats.Different)
		for _, rec := range report.ModifiedRecords() {
			fmt.Fprintf(w, "git diff --no-index '%s' '%s' (%s)\n",
				joinRoot(report.LeftPath, rec.RelativePath),
				joinRoot(report.RightPath, rec.RelativePath),
				formatRatio(rec.Similarity.Ratio))
		}
	}

	if stats.OnlyInLeft > 0 {
		fmt.Fprintf(w, "\n# Files only in left (%d):\n", stats.OnlyInLeft)
		for _, rec := range report.RecordsWithStatus(models.StatusOnlyInLeft) {
			fmt.Fprintf(w, "# Only in left: %s\n", rec.RelativePath)
		}
	}

	if stats.OnlyInRight > 0 {
		fmt.Fprintf(w, "\n# Files only in right (%d):\n", stats.OnlyInRight)
		for _, rec := range report.RecordsWithStatus(models.StatusOnlyInRight) {
			fmt.Fprintf(w, "# Only in right: %s\n", rec.RelativePath)
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintf(w, "\n# Unreadable files (%d):\n", stats.Errors)
		for _, rec := range report.RecordsWithStatus(models.StatusError) {
			fmt.Fprintf(w, "# Error: %s\n", rec.RelativePath)
		}
	}

	return nil
}

// formatRatio renders a similarity ratio as a percentage
func formatRatio(ratio float64) string {
	return fmt.Sprintf("%.2f%%", ratio*100)
}

// joinRoot appends a slash-relative path to a tree root using the
// platform separator
func joinRoot(root, relPath string) string {
	return filepath.Join(root, filepath.FromSlash(relPath))
}
