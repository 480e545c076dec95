package diff

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sdejongh/diffnorris/pkg/compare"
	"github.com/sdejongh/diffnorris/pkg/models"
	"github.com/sdejongh/diffnorris/pkg/scan"
	"github.com/sdejongh/diffnorris/pkg/storage"
)

// testTrees builds two temporary trees and returns an engine over them
func testTrees(t *testing.T, left, right map[string][]byte) *Engine {
	t.Helper()

	leftDir := t.TempDir()
	rightDir := t.TempDir()

	write := func(root string, files map[string][]byte) {
		for path, content := range files {
			fullPath := filepath.Join(root, filepath.FromSlash(path))
			if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
				t.Fatalf("failed to create dir: %v", err)
			}
			if err := os.WriteFile(fullPath, content, 0644); err != nil {
				t.Fatalf("failed to create file: %v", err)
			}
		}
	}
	write(leftDir, left)
	write(rightDir, right)

	leftBackend, err := storage.NewLocal(leftDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	rightBackend, err := storage.NewLocal(rightDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}

	filter, err := scan.NewFilter(scan.DefaultExtensions(), scan.DefaultSkipDirs(), nil, nil)
	if err != nil {
		t.Fatalf("NewFilter() error = %v", err)
	}

	operation := &models.CompareOperation{
		ID:          "test-op",
		LeftSource:  leftDir,
		RightSource: rightDir,
		LeftPath:    leftDir,
		RightPath:   rightDir,
		CreatedAt:   time.Now(),
	}

	return NewEngine(
		leftBackend, rightBackend,
		scan.NewScanner(filter, nil),
		compare.NewLineAnalyzer(),
		nil, nil, operation,
	)
}

func findRecord(t *testing.T, report *models.CompareReport, path string) *models.FileRecord {
	t.Helper()
	for i := range report.Records {
		if report.Records[i].RelativePath == path {
			return &report.Records[i]
		}
	}
	t.Fatalf("report has no record for %q", path)
	return nil
}

func TestEngineIdenticalFiles(t *testing.T) {
	engine := testTrees(t,
		map[string][]byte{"a.py": []byte("x\n")},
		map[string][]byte{"a.py": []byte("x\n")},
	)

	report, err := engine.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	rec := findRecord(t, report, "a.py")
	if rec.Status != models.StatusIdentical {
		t.Errorf("Status = %s, want identical", rec.Status)
	}
	if rec.Similarity == nil || rec.Similarity.Ratio != 1.0 {
		t.Errorf("Similarity = %+v, want ratio 1.0", rec.Similarity)
	}
	if rec.Similarity.Additions != 0 || rec.Similarity.Deletions != 0 {
		t.Errorf("Additions/Deletions = %d/%d, want 0/0", rec.Similarity.Additions, rec.Similarity.Deletions)
	}
	if report.Stats.AvgSimilarity != 1.0 {
		t.Errorf("AvgSimilarity = %f, want 1.0", report.Stats.AvgSimilarity)
	}
	if report.Status != models.StatusClean {
		t.Errorf("report Status = %s, want clean", report.Status)
	}
}

func TestEngineModifiedFile(t *testing.T) {
	engine := testTrees(t,
		map[string][]byte{"a.py": []byte("x\n")},
		map[string][]byte{"a.py": []byte("x\ny\n")},
	)

	report, err := engine.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	rec := findRecord(t, report, "a.py")
	if rec.Status != models.StatusDifferent {
		t.Errorf("Status = %s, want different", rec.Status)
	}
	if rec.Similarity == nil {
		t.Fatal("Similarity is nil for a different record")
	}
	if rec.Similarity.Additions != 1 {
		t.Errorf("Additions = %d, want 1", rec.Similarity.Additions)
	}
	if rec.Similarity.Deletions != 0 {
		t.Errorf("Deletions = %d, want 0", rec.Similarity.Deletions)
	}
	if rec.Similarity.Ratio <= 0.5 {
		t.Errorf("Ratio = %f, want > 0.5", rec.Similarity.Ratio)
	}
	if report.Stats.Additions != 1 || report.Stats.Deletions != 0 {
		t.Errorf("aggregate Additions/Deletions = %d/%d, want 1/0", report.Stats.Additions, report.Stats.Deletions)
	}
	if report.Status != models.StatusDrift {
		t.Errorf("report Status = %s, want drift", report.Status)
	}
}

func TestEngineSideOnlyFiles(t *testing.T) {
	engine := testTrees(t,
		map[string][]byte{"a.c": []byte("int x;\n")},
		map[string][]byte{},
	)

	report, err := engine.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Stats.TotalFiles != 1 {
		t.Errorf("TotalFiles = %d, want 1", report.Stats.TotalFiles)
	}

	rec := findRecord(t, report, "a.c")
	if rec.Status != models.StatusOnlyInLeft {
		t.Errorf("Status = %s, want only_in_left", rec.Status)
	}
	if rec.Similarity != nil {
		t.Error("side-only record must not carry a similarity measure")
	}
	// Side-only records contribute nothing to the mean
	if report.Stats.AvgSimilarity != 0 {
		t.Errorf("AvgSimilarity = %f, want 0", report.Stats.AvgSimilarity)
	}
}

func TestEngineUnsupportedExtensionExcluded(t *testing.T) {
	engine := testTrees(t,
		map[string][]byte{"notes.md": []byte("same\n")},
		map[string][]byte{"notes.md": []byte("same\n")},
	)

	report, err := engine.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Stats.TotalFiles != 0 {
		t.Errorf("TotalFiles = %d, want 0 (unsupported extensions never enter the report)", report.Stats.TotalFiles)
	}
	if len(report.Records) != 0 {
		t.Errorf("Records = %d, want 0", len(report.Records))
	}
}

func TestEngineEmptyTrees(t *testing.T) {
	engine := testTrees(t, map[string][]byte{}, map[string][]byte{})

	report, err := engine.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	stats := report.Stats
	if stats.TotalFiles != 0 || stats.Identical != 0 || stats.Different != 0 ||
		stats.OnlyInLeft != 0 || stats.OnlyInRight != 0 || stats.Errors != 0 {
		t.Errorf("stats = %+v, want all zero", stats)
	}
	if stats.AvgSimilarity != 0 {
		t.Errorf("AvgSimilarity = %f, want 0", stats.AvgSimilarity)
	}
	if report.Status != models.StatusClean {
		t.Errorf("report Status = %s, want clean", report.Status)
	}
}

func TestEngineBinaryContentError(t *testing.T) {
	engine := testTrees(t,
		map[string][]byte{
			"blob.py": {0xff, 0xfe, 0x01, 0x02},
			"ok.py":   []byte("x\n"),
		},
		map[string][]byte{
			"blob.py": {0xff, 0xfe, 0x01, 0x03},
			"ok.py":   []byte("x\n"),
		},
	)

	report, err := engine.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	rec := findRecord(t, report, "blob.py")
	if rec.Status != models.StatusError {
		t.Errorf("Status = %s, want error", rec.Status)
	}
	if rec.Similarity != nil {
		t.Error("error record must not carry a similarity measure")
	}

	// The error record still counts toward the total but is excluded
	// from the mean, which covers only ok.py (identical, 1.0)
	if report.Stats.TotalFiles != 2 {
		t.Errorf("TotalFiles = %d, want 2", report.Stats.TotalFiles)
	}
	if report.Stats.Errors != 1 {
		t.Errorf("Errors = %d, want 1", report.Stats.Errors)
	}
	if report.Stats.AvgSimilarity != 1.0 {
		t.Errorf("AvgSimilarity = %f, want 1.0", report.Stats.AvgSimilarity)
	}
}

func TestEngineIdenticalBinaryShortCircuit(t *testing.T) {
	// Byte-for-byte equal files are identical even when they are not text
	content := []byte{0xff, 0xfe, 0x01, 0x02}
	engine := testTrees(t,
		map[string][]byte{"blob.py": content},
		map[string][]byte{"blob.py": content},
	)

	report, err := engine.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	rec := findRecord(t, report, "blob.py")
	if rec.Status != models.StatusIdentical {
		t.Errorf("Status = %s, want identical", rec.Status)
	}
	if rec.Similarity == nil || rec.Similarity.Ratio != 1.0 {
		t.Errorf("Similarity = %+v, want ratio 1.0", rec.Similarity)
	}
}

func TestEngineTotalInvariant(t *testing.T) {
	engine := testTrees(t,
		map[string][]byte{
			"same.c":   []byte("a\n"),
			"diff.c":   []byte("a\n"),
			"left.c":   []byte("l\n"),
			"sub/x.py": []byte("x\n"),
		},
		map[string][]byte{
			"same.c":   []byte("a\n"),
			"diff.c":   []byte("b\n"),
			"right.c":  []byte("r\n"),
			"sub/x.py": []byte("x\n"),
		},
	)

	report, err := engine.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	stats := report.Stats
	sum := stats.Identical + stats.Different + stats.OnlyInLeft + stats.OnlyInRight + stats.Errors
	if stats.TotalFiles != sum {
		t.Errorf("TotalFiles = %d, want sum of per-status counts = %d", stats.TotalFiles, sum)
	}
	if stats.TotalFiles != 5 {
		t.Errorf("TotalFiles = %d, want 5 (union size)", stats.TotalFiles)
	}
	if len(report.Records) != 5 {
		t.Errorf("Records = %d, want exactly one per union path", len(report.Records))
	}

	// Records are ordered lexicographically by relative path
	for i := 1; i < len(report.Records); i++ {
		if report.Records[i-1].RelativePath >= report.Records[i].RelativePath {
			t.Errorf("records out of order: %q before %q",
				report.Records[i-1].RelativePath, report.Records[i].RelativePath)
		}
	}
}
