package compare

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
)

// ErrNotText indicates file content that cannot be decoded as UTF-8 text
var ErrNotText = errors.New("content is not valid UTF-8 text")

// Measure summarizes a line-level comparison of two files.
// Ratio is the Ratcliff/Obershelp similarity 2*M/T, where M is the
// total number of matched lines and T the combined line count of both
// sides. Additions and Deletions are counted relative to the left file.
type Measure struct {
	Ratio     float64
	Additions int
	Deletions int
}

// LineAnalyzer computes line-level similarity between two text files
// using a longest-common-subsequence alignment over their line lists.
type LineAnalyzer struct{}

// NewLineAnalyzer creates a new line analyzer
func NewLineAnalyzer() *LineAnalyzer {
	return &LineAnalyzer{}
}

// Analyze compares the raw content of two files line by line.
// It returns ErrNotText if either side is not valid UTF-8; the caller
// classifies such pairs as read/decode errors rather than aborting.
func (a *LineAnalyzer) Analyze(left, right []byte) (*Measure, error) {
	if !utf8.Valid(left) || !utf8.Valid(right) {
		return nil, ErrNotText
	}

	leftLines := SplitLines(string(left))
	rightLines := SplitLines(string(right))

	matcher := difflib.NewMatcher(leftLines, rightLines)

	measure := &Measure{}
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'd':
			measure.Deletions += op.I2 - op.I1
		case 'i':
			measure.Additions += op.J2 - op.J1
		case 'r':
			measure.Deletions += op.I2 - op.I1
			measure.Additions += op.J2 - op.J1
		}
	}

	measure.Ratio = matcher.Ratio()
	return measure, nil
}

// SplitLines splits text into lines keeping the line terminators.
// A trailing newline does not produce a phantom empty line, so
// "x\n" yields exactly one element.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
