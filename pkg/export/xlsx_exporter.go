package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	defaultSheet = "Sheet1"
	maxSheetName = 31
	minColWidth  = 12
	maxColWidth  = 40
)

// XLSXExporter renders datasets into a single-sheet workbook with a bold,
// filterable header row.
type XLSXExporter struct{}

// NewXLSXExporter constructs an XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Render writes data into a sheet named after title.
func (e *XLSXExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("xlsx requires at least one header")
	}
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	sheet := sheetName(title)
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return nil, fmt.Errorf("rename sheet: %w", err)
		}
	}

	widths := make([]int, len(data.Headers))
	for col, header := range data.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStr(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("set cell %s: %w", cell, err)
		}
		widths[col] = len(header)
	}

	for r, row := range data.Rows {
		for col, value := range data.record(row) {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellStr(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
			if len(value) > widths[col] {
				widths[col] = len(value)
			}
		}
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(data.Headers), 1)
	if err != nil {
		return nil, err
	}
	if bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(sheet, "A1", lastHeader, bold)
	}
	_ = f.AutoFilter(sheet, "A1:"+lastHeader, nil)

	for col, w := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		_ = f.SetColWidth(sheet, name, name, clampWidth(w))
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func sheetName(title string) string {
	if title == "" {
		return defaultSheet
	}
	name := []rune(invalidSheetChars.Replace(title))
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	return string(name)
}

func clampWidth(chars int) float64 {
	w := float64(chars) * 1.1
	if w < minColWidth {
		return minColWidth
	}
	if w > maxColWidth {
		return maxColWidth
	}
	return w
}
