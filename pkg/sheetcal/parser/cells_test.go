package parser

import (
	"path/filepath"
	"testing"

	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/models"
	"github.com/xuri/excelize/v2"
)

func TestReadSheet(t *testing.T) {
	// Create a temporary Excel file for testing
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "이름")
	f.SetCellValue(sheetName, "C1", "날짜")
	f.SetCellValue(sheetName, "A3", "홍길동")
	f.SetCellValue(sheetName, "C3", 45123)
	f.SetCellValue(sheetName, "AA3", "memo")

	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	f2, err := excelize.OpenFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer f2.Close()

	table, err := ReadSheet(f2, sheetName)
	if err != nil {
		t.Fatalf("ReadSheet failed: %v", err)
	}

	if table.Len() != 3 {
		t.Fatalf("Expected 3 rows, got %d", table.Len())
	}
	if got := table.Value(0, "A"); got != "이름" {
		t.Errorf("Expected '이름', got %q", got)
	}
	if len(table.Row(1)) != 0 {
		t.Errorf("Expected empty second row, got %v", table.Row(1))
	}
	if got := table.Value(2, "C"); got != "45123" {
		t.Errorf("Expected raw serial '45123', got %q", got)
	}
	if got := table.Value(2, "AA"); got != "memo" {
		t.Errorf("Expected 'memo' under AA, got %q", got)
	}
	if err := table.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestReadSheetMissing(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := ReadSheet(f, "NoSuchSheet"); err == nil {
		t.Error("Expected error for missing sheet")
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"123", "123"},
		{"45123.375", "45123.375"},
		{"1.012345678E10", "10123456780"},
		{"Event", "Event"},
		{"", ""},
	}

	for _, tt := range tests {
		result := parseValue(tt.input)
		if result != tt.expected {
			t.Errorf("parseValue(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestDetectTable(t *testing.T) {
	tests := []struct {
		name      string
		table     models.Table
		wantRange string
		wantDense bool
	}{
		{
			name:  "empty",
			table: models.NewTable(),
		},
		{
			name: "dense block",
			table: models.NewTable(
				map[string]string{"B": "이름", "C": "날짜"},
				map[string]string{"B": "홍길동", "C": "2025-08-05"},
			),
			wantRange: "B1:C2",
			wantDense: true,
		},
		{
			name: "too few cells",
			table: models.NewTable(
				map[string]string{"A": "memo"},
				nil,
				map[string]string{"D": "x"},
			),
			wantRange: "A1:D3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region, dense := DetectTable(tt.table, DefaultTableParams())
			if region.Range != tt.wantRange {
				t.Errorf("Range = %q, expected %q", region.Range, tt.wantRange)
			}
			if dense != tt.wantDense {
				t.Errorf("dense = %v, expected %v", dense, tt.wantDense)
			}
		})
	}
}

func TestDetectTableSparse(t *testing.T) {
	table := models.NewTable(
		map[string]string{"A": "a", "B": "b", "C": "c"},
	)
	rows := make([]models.Row, 100)
	table.Rows = append(table.Rows, rows...)
	table.Rows = append(table.Rows, models.NewRow(map[string]string{"Z": "z"}))

	region, dense := DetectTable(table, DefaultTableParams())
	if dense {
		t.Errorf("Expected sparse table, got density %f", region.Density)
	}
	if region.NonEmpty != 4 {
		t.Errorf("NonEmpty = %d, expected 4", region.NonEmpty)
	}
}
