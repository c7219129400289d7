package parser

import (
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	input := "\ufeff이름,연락처,날짜\n홍길동,,\"2025-08-05 10:00\"\n김철수,010-1234-5678\n"

	table, err := ReadCSV(strings.NewReader(input), ',')
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if table.Len() != 3 {
		t.Fatalf("Expected 3 rows, got %d", table.Len())
	}
	if got := table.Value(0, "A"); got != "이름" {
		t.Errorf("BOM not stripped: %q", got)
	}
	if table.Row(1).Has("B") {
		t.Error("Expected empty field to be omitted")
	}
	if got := table.Value(1, "C"); got != "2025-08-05 10:00" {
		t.Errorf("Expected quoted date, got %q", got)
	}
	if got := table.Value(2, "B"); got != "010-1234-5678" {
		t.Errorf("Expected phone in short record, got %q", got)
	}
}

func TestReadCSVTab(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("a\tb\n"), '\t')
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if got := table.Value(0, "B"); got != "b" {
		t.Errorf("Expected 'b', got %q", got)
	}
}
