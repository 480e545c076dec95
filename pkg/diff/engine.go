package diff

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/sdejongh/diffnorris/pkg/compare"
	"github.com/sdejongh/diffnorris/pkg/logging"
	"github.com/sdejongh/diffnorris/pkg/models"
	"github.com/sdejongh/diffnorris/pkg/output"
	"github.com/sdejongh/diffnorris/pkg/scan"
	"github.com/sdejongh/diffnorris/pkg/storage"
)

// Engine orchestrates a comparison run: it enumerates both trees,
// unions the eligible paths and classifies each one in turn. Execution
// is strictly sequential; determinism comes from processing the union
// in lexicographic order.
type Engine struct {
	left      storage.Backend
	right     storage.Backend
	scanner   *scan.Scanner
	analyzer  *compare.LineAnalyzer
	formatter output.Formatter
	logger    logging.Logger
	operation *models.CompareOperation
}

// NewEngine creates a new comparison engine
func NewEngine(
	left, right storage.Backend,
	scanner *scan.Scanner,
	analyzer *compare.LineAnalyzer,
	formatter output.Formatter,
	logger logging.Logger,
	operation *models.CompareOperation,
) *Engine {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Engine{
		left:      left,
		right:     right,
		scanner:   scanner,
		analyzer:  analyzer,
		formatter: formatter,
		logger:    logger,
		operation: operation,
	}
}

// Run executes the comparison and returns the aggregate report.
// Per-file read failures are absorbed into error records; only
// enumeration failures abort the run.
func (e *Engine) Run(ctx context.Context) (*models.CompareReport, error) {
	startTime := time.Now()

	leftSet, err := e.scanner.Enumerate(ctx, e.left)
	if err != nil {
		return nil, fmt.Errorf("failed to scan left tree: %w", err)
	}

	rightSet, err := e.scanner.Enumerate(ctx, e.right)
	if err != nil {
		return nil, fmt.Errorf("failed to scan right tree: %w", err)
	}

	paths := unionSorted(leftSet, rightSet)

	if e.formatter != nil {
		if err := e.formatter.Start(os.Stdout, len(paths)); err != nil {
			return nil, fmt.Errorf("failed to start formatter: %w", err)
		}
	}

	report := &models.CompareReport{
		OperationID: e.operation.ID,
		LeftPath:    e.left.Root(),
		RightPath:   e.right.Root(),
		StartTime:   startTime,
		Records:     make([]models.FileRecord, 0, len(paths)),
	}

	var ratioSum float64
	var ratioCount int

	for i, relPath := range paths {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		_, inLeft := leftSet[relPath]
		_, inRight := rightSet[relPath]

		record := e.classify(ctx, relPath, inLeft, inRight)
		report.Records = append(report.Records, record)

		switch record.Status {
		case models.StatusIdentical:
			report.Stats.Identical++
		case models.StatusDifferent:
			report.Stats.Different++
			report.Stats.Additions += record.Similarity.Additions
			report.Stats.Deletions += record.Similarity.Deletions
		case models.StatusOnlyInLeft:
			report.Stats.OnlyInLeft++
		case models.StatusOnlyInRight:
			report.Stats.OnlyInRight++
		case models.StatusError:
			report.Stats.Errors++
		}

		if record.Similarity != nil {
			ratioSum += record.Similarity.Ratio
			ratioCount++
		}

		if e.formatter != nil {
			update := output.ProgressUpdate{
				Type:        "file_complete",
				FilePath:    relPath,
				Status:      record.Status,
				CurrentFile: i + 1,
				TotalFiles:  len(paths),
			}
			if record.Status == models.StatusError {
				update.Type = "file_error"
			}
			e.formatter.Progress(update)
		}
	}

	report.Stats.TotalFiles = len(paths)
	if ratioCount > 0 {
		report.Stats.AvgSimilarity = ratioSum / float64(ratioCount)
	}

	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
	report.Status = reportStatus(&report.Stats)

	e.logger.Info(ctx, "comparison completed", logging.Fields{
		"operation":  e.operation.ID,
		"total":      report.Stats.TotalFiles,
		"identical":  report.Stats.Identical,
		"different":  report.Stats.Different,
		"only_left":  report.Stats.OnlyInLeft,
		"only_right": report.Stats.OnlyInRight,
		"errors":     report.Stats.Errors,
		"duration":   report.Duration.Round(time.Millisecond).String(),
	})

	if e.formatter != nil {
		if err := e.formatter.Complete(report); err != nil {
			return nil, fmt.Errorf("failed to render report: %w", err)
		}
	}

	return report, nil
}

// classify produces the terminal record for a single relative path
func (e *Engine) classify(ctx context.Context, relPath string, inLeft, inRight bool) models.FileRecord {
	record := models.FileRecord{RelativePath: relPath}

	switch {
	case inLeft && !inRight:
		record.Status = models.StatusOnlyInLeft
		return record
	case inRight && !inLeft:
		record.Status = models.StatusOnlyInRight
		return record
	}

	leftData, err := readAll(ctx, e.left, relPath)
	if err != nil {
		e.logger.Warn(ctx, "failed to read left file", logging.Fields{"path": relPath, "error": err.Error()})
		record.Status = models.StatusError
		return record
	}

	rightData, err := readAll(ctx, e.right, relPath)
	if err != nil {
		e.logger.Warn(ctx, "failed to read right file", logging.Fields{"path": relPath, "error": err.Error()})
		record.Status = models.StatusError
		return record
	}

	if bytes.Equal(leftData, rightData) {
		record.Status = models.StatusIdentical
		record.Similarity = &models.SimilarityMeasure{Ratio: 1.0}
		return record
	}

	measure, err := e.analyzer.Analyze(leftData, rightData)
	if err != nil {
		e.logger.Warn(ctx, "failed to analyze file pair", logging.Fields{"path": relPath, "error": err.Error()})
		record.Status = models.StatusError
		return record
	}

	record.Status = models.StatusDifferent
	record.Similarity = &models.SimilarityMeasure{
		Ratio:     measure.Ratio,
		Additions: measure.Additions,
		Deletions: measure.Deletions,
	}
	return record
}

// readAll reads the entire file at relPath from the backend
func readAll(ctx context.Context, backend storage.Backend, relPath string) ([]byte, error) {
	reader, err := backend.Read(ctx, relPath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

// unionSorted merges two path sets into a lexicographically sorted slice
func unionSorted(left, right map[string]struct{}) []string {
	union := make(map[string]struct{}, len(left)+len(right))
	for p := range left {
		union[p] = struct{}{}
	}
	for p := range right {
		union[p] = struct{}{}
	}

	paths := make([]string, 0, len(union))
	for p := range union {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// reportStatus derives the overall status from the statistics
func reportStatus(stats *models.Statistics) models.ReportStatus {
	if stats.Different+stats.OnlyInLeft+stats.OnlyInRight+stats.Errors > 0 {
		return models.StatusDrift
	}
	return models.StatusClean
}
