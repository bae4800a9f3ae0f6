package parser

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ukaji3/deckgen-go/internal/logx"
	"github.com/ukaji3/deckgen-go/pkg/deckgen/models"
	"github.com/xuri/excelize/v2"
)

// ErrEmptySource indicates a workbook range holds no series or no categories.
var ErrEmptySource = errors.New("workbook range holds no chart data")

// cellRange is a 1-based inclusive block of cells.
type cellRange struct {
	R1, C1, R2, C2 int
}

// LoadWorkbookSource reads chart data from a worksheet. The header row gives
// the series names (its first cell is ignored) and the first column gives the
// categories. Relative workbook paths are resolved against baseDir.
func LoadWorkbookSource(baseDir string, src models.DataSource) ([]models.Label, []models.ChartSeries, error) {
	path := src.Workbook
	if path == "" {
		return nil, nil, fmt.Errorf("source: workbook path is empty")
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook %s: %w", src.Workbook, err)
	}
	defer f.Close()

	sheet := src.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, fmt.Errorf("workbook %s: %w", src.Workbook, ErrEmptySource)
		}
		sheet = sheets[0]
	}

	// Formatted values for labels, raw values for numbers so a cell shown
	// as "25%" still reads as 0.25.
	shown, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	area := usedRange(shown)
	if src.Range != "" {
		r, ok := parseRange(src.Range)
		if !ok {
			return nil, nil, fmt.Errorf("source range %q is not an A1 range", src.Range)
		}
		area = r
	}

	categories, series := readBlock(shown, raw, area, sheet)
	if len(series) == 0 || len(categories) == 0 {
		return nil, nil, fmt.Errorf("sheet %q range %s: %w", sheet, formatRange(area), ErrEmptySource)
	}
	return categories, series, nil
}

// readBlock extracts categories and series from the cells of area.
func readBlock(shown, raw [][]string, area cellRange, sheet string) ([]models.Label, []models.ChartSeries) {
	var series []models.ChartSeries
	for c := area.C1 + 1; c <= area.C2; c++ {
		name := strings.TrimSpace(cellAt(shown, area.R1, c))
		if name == "" {
			name = fmt.Sprintf("Series %d", c-area.C1)
		}
		series = append(series, models.ChartSeries{Name: name})
	}

	var categories []models.Label
	for r := area.R1 + 1; r <= area.R2; r++ {
		if rowEmpty(shown, r, area.C1, area.C2) {
			continue
		}
		categories = append(categories, models.Label(strings.TrimSpace(cellAt(shown, r, area.C1))))
		for i := range series {
			c := area.C1 + 1 + i
			v, ok := parseNumber(cellAt(raw, r, c))
			if !ok {
				cell, _ := excelize.CoordinatesToCellName(c, r)
				logx.Logger().Warn("non-numeric chart value read as 0",
					"sheet", sheet, "cell", cell, "value", cellAt(shown, r, c))
			}
			series[i].Values = append(series[i].Values, v)
		}
	}
	return categories, series
}

// cellAt returns the value at 1-based (row, col), or "" outside the data.
func cellAt(rows [][]string, r, c int) string {
	if r < 1 || r > len(rows) {
		return ""
	}
	row := rows[r-1]
	if c < 1 || c > len(row) {
		return ""
	}
	return row[c-1]
}

func rowEmpty(rows [][]string, r, c1, c2 int) bool {
	for c := c1; c <= c2; c++ {
		if strings.TrimSpace(cellAt(rows, r, c)) != "" {
			return false
		}
	}
	return true
}

// usedRange covers every row returned by GetRows and the widest of them.
func usedRange(rows [][]string) cellRange {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return cellRange{R1: 1, C1: 1, R2: len(rows), C2: width}
}

// parseNumber parses a raw cell value. Empty cells are 0 without complaint;
// anything else that is not a number is 0 and reported as not ok.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return float64(i), true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f, true
	}
	return 0, false
}

// parseRange parses a range string like $A$1:$D$10.
func parseRange(rangeStr string) (cellRange, bool) {
	rangeStr = strings.ReplaceAll(strings.TrimSpace(rangeStr), "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) != 2 {
		return cellRange{}, false
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return cellRange{}, false
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return cellRange{}, false
	}

	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}
	return cellRange{R1: startRow, C1: startCol, R2: endRow, C2: endCol}, true
}

func formatRange(r cellRange) string {
	from, err := excelize.CoordinatesToCellName(max(r.C1, 1), max(r.R1, 1))
	if err != nil {
		return "?"
	}
	to, err := excelize.CoordinatesToCellName(max(r.C2, 1), max(r.R2, 1))
	if err != nil {
		return "?"
	}
	return from + ":" + to
}
