package models

// ComparisonStatus classifies a relative path after both trees have been examined
type ComparisonStatus string

const (
	// StatusIdentical indicates byte-for-byte equal files
	StatusIdentical ComparisonStatus = "identical"
	// StatusDifferent indicates files whose content differs
	StatusDifferent ComparisonStatus = "different"
	// StatusOnlyInLeft indicates the file exists only in the left tree
	StatusOnlyInLeft ComparisonStatus = "only_in_left"
	// StatusOnlyInRight indicates the file exists only in the right tree
	StatusOnlyInRight ComparisonStatus = "only_in_right"
	// StatusError indicates the file could not be read or decoded as text
	StatusError ComparisonStatus = "error"
)

// SimilarityMeasure summarizes a line-level comparison of two files.
// Ratio is 2*M/T where M is the number of matched lines found by the
// sequence alignment and T is the combined line count of both files.
// Additions and Deletions are counted relative to the left file.
type SimilarityMeasure struct {
	Ratio     float64
	Additions int
	Deletions int
}

// FileRecord is the classification of a single relative path.
// A comparison run holds exactly one record per path in the union
// of both filtered trees. Classification is terminal: a record is
// never reclassified after creation.
type FileRecord struct {
	// RelativePath is forward-slash normalized, relative to the tree root
	RelativePath string

	// Status is the terminal classification
	Status ComparisonStatus

	// Similarity is set only for identical and different records
	Similarity *SimilarityMeasure
}

// HasSimilarity reports whether the record carries a similarity measure
func (r *FileRecord) HasSimilarity() bool {
	return r.Similarity != nil
}
