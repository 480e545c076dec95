package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/sdejongh/diffnorris/pkg/models"
)

// JSONFormatter renders the report as JSON for automation and scripting
type JSONFormatter struct {
	writer io.Writer
}

// JSONReport is the top-level JSON rendition of a comparison report
type JSONReport struct {
	OperationID string          `json:"operation_id"`
	LeftPath    string          `json:"left_path"`
	RightPath   string          `json:"right_path"`
	StartTime   string          `json:"start_time"`
	Duration    string          `json:"duration"`
	DurationMs  int64           `json:"duration_ms"`
	Status      string          `json:"status"`
	Stats       JSONStats       `json:"stats"`
	Files       []JSONFileEntry `json:"files"`
}

// JSONStats is the aggregate statistics section
type JSONStats struct {
	TotalFiles    int     `json:"total_files"`
	Identical     int     `json:"identical"`
	Different     int     `json:"different"`
	OnlyInLeft    int     `json:"only_in_left"`
	OnlyInRight   int     `json:"only_in_right"`
	Errors        int     `json:"errors"`
	Additions     int     `json:"additions"`
	Deletions     int     `json:"deletions"`
	AvgSimilarity float64 `json:"avg_similarity"`
}

// JSONFileEntry is a single file classification
type JSONFileEntry struct {
	Path       string          `json:"path"`
	Status     string          `json:"status"`
	Similarity *JSONSimilarity `json:"similarity,omitempty"`
}

// JSONSimilarity is the similarity measure of a compared pair
type JSONSimilarity struct {
	Ratio     float64 `json:"ratio"`
	Additions int     `json:"additions"`
	Deletions int     `json:"deletions"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(writer io.Writer, totalFiles int) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	return nil
}

// Progress produces no per-file output to keep the stream parseable
func (f *JSONFormatter) Progress(update ProgressUpdate) error {
	return nil
}

// Complete renders the full report as indented JSON
func (f *JSONFormatter) Complete(report *models.CompareReport) error {
	if f.writer == nil {
		f.writer = os.Stdout
	}
	return WriteJSONReport(report, f.writer)
}

// Error reports an error as a JSON object
func (f *JSONFormatter) Error(err error) error {
	if f.writer == nil {
		return nil
	}
	return json.NewEncoder(f.writer).Encode(map[string]string{"error": err.Error()})
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}

// WriteJSONReport writes the JSON rendition of a report
func WriteJSONReport(report *models.CompareReport, w io.Writer) error {
	files := make([]JSONFileEntry, 0, len(report.Records))
	for _, rec := range report.Records {
		entry := JSONFileEntry{
			Path:   rec.RelativePath,
			Status: string(rec.Status),
		}
		if rec.Similarity != nil {
			entry.Similarity = &JSONSimilarity{
				Ratio:     rec.Similarity.Ratio,
				Additions: rec.Similarity.Additions,
				Deletions: rec.Similarity.Deletions,
			}
		}
		files = append(files, entry)
	}

	out := JSONReport{
		OperationID: report.OperationID,
		LeftPath:    report.LeftPath,
		RightPath:   report.RightPath,
		StartTime:   report.StartTime.Format(time.RFC3339),
		Duration:    report.Duration.Round(time.Millisecond).String(),
		DurationMs:  report.Duration.Milliseconds(),
		Status:      string(report.Status),
		Stats: JSONStats{
			TotalFiles:    report.Stats.TotalFiles,
			Identical:     report.Stats.Identical,
			Different:     report.Stats.Different,
			OnlyInLeft:    report.Stats.OnlyInLeft,
			OnlyInRight:   report.Stats.OnlyInRight,
			Errors:        report.Stats.Errors,
			Additions:     report.Stats.Additions,
			Deletions:     report.Stats.Deletions,
			AvgSimilarity: report.Stats.AvgSimilarity,
		},
		Files: files,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
