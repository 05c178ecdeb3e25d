package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// excelStatusFill is the fill and font colour of each status tag.
var excelStatusFill = map[Status][2]string{
	StatusValid:   {"#D4EDDA", "#155724"},
	StatusInvalid: {"#F8D7DA", "#721C24"},
	StatusWarning: {"#FFF3CD", "#856404"},
}

// GenerateExcel renders a brand report into a single-sheet workbook: a title
// block, then per file a heading, the summary line and the check table.
func GenerateExcel(model BrandReportModel) ([]byte, error) {
	if len(model.Headers) == 0 {
		return nil, fmt.Errorf("report has no columns")
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Validation Report"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(model.Headers))
	if err != nil {
		return nil, fmt.Errorf("last column: %w", err)
	}

	// Widths are maroto grid units; scale them to character widths.
	for i, w := range model.Widths {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheetName, name, name, float64(w)*9); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", name, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	fileStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
	})
	if err != nil {
		return nil, fmt.Errorf("create file style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	// One plain and one bold style per status, bold for check rows.
	cellStyles := make(map[Status][2]int)
	for _, s := range []Status{StatusNormal, StatusValid, StatusInvalid, StatusWarning} {
		var ids [2]int
		for i, bold := range []bool{false, true} {
			style := &excelize.Style{
				Font:   &excelize.Font{Size: 10, Bold: bold},
				Border: thinBorders(),
			}
			if colors, ok := excelStatusFill[s]; ok {
				style.Fill = excelize.Fill{Type: "pattern", Color: []string{colors[0]}, Pattern: 1}
				style.Font.Color = colors[1]
			}
			id, err := f.NewStyle(style)
			if err != nil {
				return nil, fmt.Errorf("create %s style: %w", s, err)
			}
			ids[i] = id
		}
		cellStyles[s] = ids
	}

	// ── Title block ─────────────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(model.Title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if model.CreatedDate != "" {
		f.SetCellValue(sheetName, "A2", "Date: "+model.CreatedDate)
		f.SetCellStyle(sheetName, "A2", "A2", subtitleStyle)
	}

	// ── Files ───────────────────────────────────────────────────────────

	row := 4
	for _, fr := range model.Files {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(FileHeading(fr)))
		f.SetCellStyle(sheetName, "A"+rowStr, "A"+rowStr, fileStyle)
		row++

		rowStr = fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(fr.SummaryLine))
		f.SetCellStyle(sheetName, "A"+rowStr, "A"+rowStr, subtitleStyle)
		row++

		if fr.Error != "" {
			row++
			continue
		}

		for i, h := range model.Headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheetName, cell, sanitizeExcelCell(h))
		}
		rowStr = fmt.Sprintf("%d", row)
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, headerStyle)
		row++

		for _, r := range fr.Rows {
			bold := 0
			if r.Level == LevelCheck {
				bold = 1
			}
			for i, value := range r.Cells {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				if i == 0 && r.Level > LevelCheck {
					value = indentFor(r.Level) + value
				}
				f.SetCellValue(sheetName, cell, sanitizeExcelCell(value))
				f.SetCellStyle(sheetName, cell, cell, cellStyles[r.Statuses[i]][bold])
			}
			row++
		}

		// Blank row between files.
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

func indentFor(level int) string {
	switch level {
	case LevelEntry:
		return "  "
	case LevelCell:
		return "    "
	}
	return ""
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Cell values come from uploaded files, so a
// vendor could otherwise smuggle a formula into the exported report.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
