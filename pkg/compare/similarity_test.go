package compare

import (
	"errors"
	"testing"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"Empty", "", nil},
		{"SingleLine", "x\n", []string{"x\n"}},
		{"NoTrailingNewline", "x\ny", []string{"x\n", "y"}},
		{"TwoLines", "x\ny\n", []string{"x\n", "y\n"}},
		{"BlankLine", "x\n\ny\n", []string{"x\n", "\n", "y\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitLines(%q) = %q, want %q", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SplitLines(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAnalyzeInsertion(t *testing.T) {
	analyzer := NewLineAnalyzer()

	measure, err := analyzer.Analyze([]byte("x\n"), []byte("x\ny\n"))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if measure.Additions != 1 {
		t.Errorf("Additions = %d, want 1", measure.Additions)
	}
	if measure.Deletions != 0 {
		t.Errorf("Deletions = %d, want 0", measure.Deletions)
	}
	// One matched line out of three total: ratio = 2*1/3
	if measure.Ratio <= 0.5 {
		t.Errorf("Ratio = %f, want > 0.5", measure.Ratio)
	}
	if diff := measure.Ratio - 2.0/3.0; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Ratio = %f, want 2/3", measure.Ratio)
	}
}

func TestAnalyzeReplacement(t *testing.T) {
	analyzer := NewLineAnalyzer()

	measure, err := analyzer.Analyze([]byte("a\nb\nc\n"), []byte("a\nx\nc\n"))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if measure.Additions != 1 {
		t.Errorf("Additions = %d, want 1", measure.Additions)
	}
	if measure.Deletions != 1 {
		t.Errorf("Deletions = %d, want 1", measure.Deletions)
	}
	// Two matched lines out of six total: ratio = 2*2/6
	if diff := measure.Ratio - 2.0/3.0; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Ratio = %f, want 2/3", measure.Ratio)
	}
}

func TestAnalyzeSwapSymmetry(t *testing.T) {
	analyzer := NewLineAnalyzer()

	left := []byte("a\nb\nc\nd\n")
	right := []byte("a\nd\n")

	forward, err := analyzer.Analyze(left, right)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	backward, err := analyzer.Analyze(right, left)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if forward.Ratio != backward.Ratio {
		t.Errorf("ratio not symmetric: %f vs %f", forward.Ratio, backward.Ratio)
	}
	if forward.Additions != backward.Deletions {
		t.Errorf("Additions(A,B) = %d, want Deletions(B,A) = %d", forward.Additions, backward.Deletions)
	}
	if forward.Deletions != backward.Additions {
		t.Errorf("Deletions(A,B) = %d, want Additions(B,A) = %d", forward.Deletions, backward.Additions)
	}
}

func TestAnalyzeDisjoint(t *testing.T) {
	analyzer := NewLineAnalyzer()

	measure, err := analyzer.Analyze([]byte("a\nb\n"), []byte("x\ny\nz\n"))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if measure.Ratio != 0 {
		t.Errorf("Ratio = %f, want 0", measure.Ratio)
	}
	if measure.Deletions != 2 {
		t.Errorf("Deletions = %d, want 2", measure.Deletions)
	}
	if measure.Additions != 3 {
		t.Errorf("Additions = %d, want 3", measure.Additions)
	}
}

func TestAnalyzeNotText(t *testing.T) {
	analyzer := NewLineAnalyzer()

	binary := []byte{0xff, 0xfe, 0x00, 0x01}

	t.Run("LeftBinary", func(t *testing.T) {
		_, err := analyzer.Analyze(binary, []byte("x\n"))
		if !errors.Is(err, ErrNotText) {
			t.Errorf("Analyze() error = %v, want ErrNotText", err)
		}
	})

	t.Run("RightBinary", func(t *testing.T) {
		_, err := analyzer.Analyze([]byte("x\n"), binary)
		if !errors.Is(err, ErrNotText) {
			t.Errorf("Analyze() error = %v, want ErrNotText", err)
		}
	})
}
