package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Difficulty", "Catches", "Unlocks"}
	rows := [][]string{
		{"easy", "12", "3"},
		{"medium", "4", "0"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Difficulty Catches Unlocks" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "easy            12       3" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "medium           4       0" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Icon", "Title"}, [][]string{{"🎯", "First"}}, nil)
	if lines[1] != "🎯   First" {
		t.Fatalf("expected emoji counted as two cells: %q", lines[1])
	}
}
