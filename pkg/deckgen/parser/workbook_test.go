package parser

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ukaji3/deckgen-go/pkg/deckgen/models"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves a small survey table and returns its directory.
func writeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "Region")
	f.SetCellValue(sheetName, "B1", "2023")
	f.SetCellValue(sheetName, "C1", "2024")
	f.SetCellValue(sheetName, "A2", "North")
	f.SetCellValue(sheetName, "B2", 12)
	f.SetCellValue(sheetName, "C2", 15.5)
	f.SetCellValue(sheetName, "A3", "South")
	f.SetCellValue(sheetName, "B3", 9)
	f.SetCellValue(sheetName, "C3", "n/a")
	f.SetCellValue(sheetName, "A5", "West")
	f.SetCellValue(sheetName, "B5", 4)
	f.SetCellValue(sheetName, "C5", 6)

	if _, err := f.NewSheet("Scores"); err != nil {
		t.Fatalf("Failed to add sheet: %v", err)
	}
	f.SetCellValue("Scores", "D4", "Team")
	f.SetCellValue("Scores", "E4", "Score")
	f.SetCellValue("Scores", "D5", "Alpha")
	f.SetCellValue("Scores", "E5", 4.25)
	f.SetCellValue("Scores", "D6", "Beta")
	f.SetCellValue("Scores", "E6", 3.5)

	dir := t.TempDir()
	if err := f.SaveAs(filepath.Join(dir, "data.xlsx")); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return dir
}

func TestLoadWorkbookSource(t *testing.T) {
	dir := writeWorkbook(t)

	categories, series, err := LoadWorkbookSource(dir, models.DataSource{Workbook: "data.xlsx"})
	if err != nil {
		t.Fatalf("LoadWorkbookSource failed: %v", err)
	}

	// The blank fourth row is skipped.
	wantCats := []string{"North", "South", "West"}
	gotCats := models.Strings(categories)
	if len(gotCats) != len(wantCats) {
		t.Fatalf("Expected categories %q, got %q", wantCats, gotCats)
	}
	for i := range wantCats {
		if gotCats[i] != wantCats[i] {
			t.Errorf("category %d = %q, expected %q", i, gotCats[i], wantCats[i])
		}
	}

	if len(series) != 2 {
		t.Fatalf("Expected 2 series, got %d", len(series))
	}
	if series[0].Name != "2023" || series[1].Name != "2024" {
		t.Errorf("Unexpected series names %q, %q", series[0].Name, series[1].Name)
	}

	want := [][]float64{{12, 9, 4}, {15.5, 0, 6}}
	for i, s := range series {
		if len(s.Values) != len(want[i]) {
			t.Fatalf("series %d: expected %d values, got %d", i, len(want[i]), len(s.Values))
		}
		for j, v := range s.Values {
			if v != want[i][j] {
				t.Errorf("series %d value %d = %v, expected %v", i, j, v, want[i][j])
			}
		}
	}
}

func TestLoadWorkbookSourceRange(t *testing.T) {
	dir := writeWorkbook(t)

	categories, series, err := LoadWorkbookSource(dir, models.DataSource{
		Workbook: filepath.Join(dir, "data.xlsx"),
		Sheet:    "Scores",
		Range:    "$D$4:$E$6",
	})
	if err != nil {
		t.Fatalf("LoadWorkbookSource failed: %v", err)
	}
	if len(categories) != 2 || categories[0] != "Alpha" || categories[1] != "Beta" {
		t.Errorf("Unexpected categories %q", categories)
	}
	if len(series) != 1 || series[0].Name != "Score" {
		t.Fatalf("Unexpected series %+v", series)
	}
	if series[0].Values[0] != 4.25 || series[0].Values[1] != 3.5 {
		t.Errorf("Unexpected values %v", series[0].Values)
	}
}

func TestLoadWorkbookSourceErrors(t *testing.T) {
	dir := writeWorkbook(t)

	tests := []struct {
		name  string
		src   models.DataSource
		empty bool
	}{
		{"missing workbook", models.DataSource{Workbook: "nope.xlsx"}, false},
		{"no path", models.DataSource{}, false},
		{"missing sheet", models.DataSource{Workbook: "data.xlsx", Sheet: "Nope"}, false},
		{"bad range", models.DataSource{Workbook: "data.xlsx", Range: "A1"}, false},
		{"single column", models.DataSource{Workbook: "data.xlsx", Range: "A1:A5"}, true},
		{"header only", models.DataSource{Workbook: "data.xlsx", Range: "A1:C1"}, true},
	}

	for _, tt := range tests {
		_, _, err := LoadWorkbookSource(dir, tt.src)
		if err == nil {
			t.Errorf("%s: expected an error", tt.name)
			continue
		}
		if errors.Is(err, ErrEmptySource) != tt.empty {
			t.Errorf("%s: errors.Is(err, ErrEmptySource) = %v, expected %v (err: %v)",
				tt.name, !tt.empty, tt.empty, err)
		}
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		input    string
		expected cellRange
		ok       bool
	}{
		{"A1:C8", cellRange{R1: 1, C1: 1, R2: 8, C2: 3}, true},
		{"$B$2:$D$10", cellRange{R1: 2, C1: 2, R2: 10, C2: 4}, true},
		{"C8:A1", cellRange{R1: 1, C1: 1, R2: 8, C2: 3}, true},
		{"A1", cellRange{}, false},
		{"A1:??", cellRange{}, false},
	}

	for _, tt := range tests {
		result, ok := parseRange(tt.input)
		if ok != tt.ok || result != tt.expected {
			t.Errorf("parseRange(%q) = %+v, %v, expected %+v, %v",
				tt.input, result, ok, tt.expected, tt.ok)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"123", 123, true},
		{"123.45", 123.45, true},
		{"-100", -100, true},
		{" 7 ", 7, true},
		{"", 0, true},
		{"hello", 0, false},
		{"NaN", 0, false},
		{"inf", 0, false},
		{"-Infinity", 0, false},
		{"1e999", 0, false},
	}

	for _, tt := range tests {
		result, ok := parseNumber(tt.input)
		if result != tt.expected || ok != tt.ok {
			t.Errorf("parseNumber(%q) = %v, %v, expected %v, %v",
				tt.input, result, ok, tt.expected, tt.ok)
		}
	}
}
