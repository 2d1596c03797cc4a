package report

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Filter", "Flagged", "Share"}
	rows := [][]string{
		{"url", "12", "97.50%"},
		{"low-letter", "3", "8.00%"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Filter     Flagged  Share" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "url             12 97.50%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "low-letter       3  8.00%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestDisplayWidthWideRunes(t *testing.T) {
	if got := displayWidth("日本"); got != 4 {
		t.Fatalf("expected width 4, got %d", got)
	}
	if got := padCell("日本", 6, false); got != "日本  " {
		t.Fatalf("unexpected padding: %q", got)
	}
}
