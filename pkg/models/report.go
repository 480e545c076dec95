package models

import (
	"time"
)

// CompareReport represents the results of a comparison run
type CompareReport struct {
	// Operation details
	OperationID string
	LeftPath    string
	RightPath   string

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Statistics
	Stats Statistics

	// Records holds one entry per path in the union of both filtered
	// trees, ordered lexicographically by relative path
	Records []FileRecord

	// Overall status
	Status ReportStatus
}

// Statistics holds comparison run metrics
type Statistics struct {
	// TotalFiles is the size of the union of both filtered trees
	TotalFiles  int
	Identical   int
	Different   int
	OnlyInLeft  int
	OnlyInRight int
	Errors      int

	// Line changes accumulated over all different records
	Additions int
	Deletions int

	// AvgSimilarity is the arithmetic mean of similarity ratios over
	// all records that have one (identical + different); 0 if none
	AvgSimilarity float64
}

// ReportStatus represents the overall outcome of a run
type ReportStatus string

const (
	// StatusClean indicates both trees are identical after filtering
	StatusClean ReportStatus = "clean"
	// StatusDrift indicates at least one non-identical record
	StatusDrift ReportStatus = "drift"
	// StatusFailed indicates the comparison could not run
	StatusFailed ReportStatus = "failed"
)

// ExitCode returns the appropriate process exit code for the status
func (s ReportStatus) ExitCode() int {
	switch s {
	case StatusClean:
		return 0
	case StatusDrift:
		return 1
	case StatusFailed:
		return 2
	default:
		return 2
	}
}

// ModifiedRecords returns the records with status different,
// sorted by ascending similarity ratio (least similar first)
func (r *CompareReport) ModifiedRecords() []FileRecord {
	modified := make([]FileRecord, 0, r.Stats.Different)
	for _, rec := range r.Records {
		if rec.Status == StatusDifferent {
			modified = append(modified, rec)
		}
	}
	// Insertion sort keeps equal-ratio records in path order
	for i := 1; i < len(modified); i++ {
		for j := i; j > 0 && ratioOf(&modified[j]) < ratioOf(&modified[j-1]); j-- {
			modified[j], modified[j-1] = modified[j-1], modified[j]
		}
	}
	return modified
}

// RecordsWithStatus returns the records carrying the given status, in report order
func (r *CompareReport) RecordsWithStatus(status ComparisonStatus) []FileRecord {
	var out []FileRecord
	for _, rec := range r.Records {
		if rec.Status == status {
			out = append(out, rec)
		}
	}
	return out
}

func ratioOf(rec *FileRecord) float64 {
	if rec.Similarity == nil {
		return 0
	}
	return rec.Similarity.Ratio
}
