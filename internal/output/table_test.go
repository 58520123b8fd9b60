package output

import (
	"strings"
	"testing"
)

func TestTableAddRow(t *testing.T) {
	table := NewTable("Name", "Age")

	table.AddRow("Alice", "30")
	table.AddRow("Bob")
	table.AddRow("Charlie", "25", "Extra")

	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", table.Len())
	}
	if len(table.rows[1]) != 2 || table.rows[1][1] != "" {
		t.Errorf("short row not padded: %q", table.rows[1])
	}
	if len(table.rows[2]) != 2 {
		t.Errorf("long row not truncated: %q", table.rows[2])
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable("Name", "City")
	table.AddRow("Alice", "New York")
	table.AddRow("Bob", "LA")

	lines := strings.Split(strings.TrimSuffix(table.Render(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), lines)
	}
	if lines[0] != "Name   City" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "-----  --------" {
		t.Errorf("separator = %q", lines[1])
	}
	if lines[3] != "Bob    LA" {
		t.Errorf("row = %q", lines[3])
	}
}

func TestTableANSIWidth(t *testing.T) {
	table := NewTable("C", "Hex")
	table.AddRow("\x1b[48;2;1;2;3m    \x1b[0m", "#010203")
	table.AddRow("", "#ffffff")

	lines := strings.Split(table.Render(), "\n")
	if got := visibleWidth(lines[1]); got != len("----  -------") {
		t.Errorf("separator width = %d, escape sequences counted as visible", got)
	}
	if !strings.HasPrefix(lines[3], "      #ffffff") {
		t.Errorf("row not aligned to visible width: %q", lines[3])
	}
}

func TestTableEmpty(t *testing.T) {
	if got := NewTable().Render(); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits", "short", 10, []string{"short"}},
		{"no limit", "a long line of text", 0, []string{"a long line of text"}},
		{"words", "the quick brown fox", 10, []string{"the quick", "brown fox"}},
		{"long word", "abcdefghij xy", 4, []string{"abcd", "efgh", "ij", "xy"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(tt.text, tt.width)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("wrapText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestTableWrappedColumn(t *testing.T) {
	table := NewTable("Name", "Description")
	table.SetColumnMaxWidth(1, 12)
	table.AddRow("tonal_spot", "pastel tokens with a calm feel")

	lines := strings.Split(strings.TrimSuffix(table.Render(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected wrapped row over 3 lines, got %q", lines)
	}
	if !strings.HasPrefix(lines[3], "          ") {
		t.Errorf("continuation line should leave the first column blank: %q", lines[3])
	}
}
