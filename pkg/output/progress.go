package output

import (
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"

	"github.com/sdejongh/diffnorris/pkg/models"
)

// ProgressFormatter shows a progress bar while files are compared and
// falls back to the human rendition for the final report. The bar is
// drawn on stderr so the report itself stays pipeable.
type ProgressFormatter struct {
	human *HumanFormatter
	bar   *pb.ProgressBar
}

// NewProgressFormatter creates a new progress bar formatter
func NewProgressFormatter() *ProgressFormatter {
	return &ProgressFormatter{human: NewHumanFormatter()}
}

// Start initializes the formatter and the progress bar
func (f *ProgressFormatter) Start(writer io.Writer, totalFiles int) error {
	if err := f.human.Start(writer, totalFiles); err != nil {
		return err
	}
	if totalFiles > 0 {
		f.bar = pb.New(totalFiles)
		f.bar.SetWriter(os.Stderr)
		f.bar.Start()
	}
	return nil
}

// Progress advances the bar by one processed file
func (f *ProgressFormatter) Progress(update ProgressUpdate) error {
	if f.bar == nil {
		return nil
	}
	switch update.Type {
	case "file_complete", "file_error":
		f.bar.Increment()
	}
	return nil
}

// Complete finishes the bar and renders the human report
func (f *ProgressFormatter) Complete(report *models.CompareReport) error {
	if f.bar != nil {
		f.bar.Finish()
	}
	return f.human.Complete(report)
}

// Error reports an error
func (f *ProgressFormatter) Error(err error) error {
	if f.bar != nil {
		f.bar.Finish()
	}
	return f.human.Error(err)
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}
