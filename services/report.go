package services

import (
	"fmt"
	"strconv"

	"bcbdcheck/engine"
	"bcbdcheck/rules"
	"bcbdcheck/sheet"
)

// Status is the colour tag of a report cell.
type Status string

const (
	StatusValid   Status = "valid"
	StatusInvalid Status = "invalid"
	StatusWarning Status = "warning"
	StatusNormal  Status = "normal"
)

// Row levels. A check row may be followed by its group entries, and a
// special-case entry by its cell checks.
const (
	LevelCheck = 0
	LevelEntry = 1
	LevelCell  = 2
)

// ReportRow is one rendered table row. Cells and Statuses line up with the
// layout columns.
type ReportRow struct {
	Level    int
	Cells    []string
	Statuses []Status
	Status   Status
}

// FileReport is the projected view of one FileResult.
type FileReport struct {
	FileName    string
	SheetName   string
	Size        int64
	Summary     engine.Summary
	SummaryLine string
	Error       string
	Rows        []ReportRow
}

// Passed reports whether the file was read and every row is valid.
func (f FileReport) Passed() bool {
	if f.Error != "" {
		return false
	}
	return f.Summary.Valid == f.Summary.Total
}

// BrandReportModel is everything the HTML, PDF and Excel renderers need.
type BrandReportModel struct {
	Title          string
	FilenamePrefix string
	CreatedDate    string
	Headers        []string
	Widths         []int
	Fields         []rules.Field
	Files          []FileReport
}

// SummaryLine formats the per-file summary shown above each report table.
func SummaryLine(s engine.Summary) string {
	return fmt.Sprintf("%d out of %d found checks are valid (%d total rules)", s.Valid, s.Found, s.Total)
}

// Project maps validation results onto a brand layout. Every check yields at
// least one row; groups add one row per entry and special-case entries add
// one row per validated cell.
func Project(layout rules.Layout, files []engine.FileResult) BrandReportModel {
	columns := layout.Columns
	if len(columns) == 0 {
		columns = rules.DefaultColumns()
	}

	model := BrandReportModel{
		Title:          layout.Title,
		FilenamePrefix: layout.FilenamePrefix,
		Files:          make([]FileReport, 0, len(files)),
	}
	for _, c := range columns {
		model.Headers = append(model.Headers, c.Header)
		model.Widths = append(model.Widths, c.Width)
		model.Fields = append(model.Fields, c.Field)
	}

	p := projector{fields: model.Fields, bands: layout.WarningBands}
	for _, f := range files {
		model.Files = append(model.Files, p.file(f))
	}
	return model
}

// ProjectBatch projects a batch and stamps the report date.
func ProjectBatch(layout rules.Layout, b *engine.Batch) BrandReportModel {
	model := Project(layout, b.Files)
	model.CreatedDate = b.CreatedAt.Format("2006-01-02")
	return model
}

type projector struct {
	fields []rules.Field
	bands  map[string]float64
}

func (p projector) file(f engine.FileResult) FileReport {
	out := FileReport{
		FileName:  f.FileName,
		SheetName: f.SheetName,
		Size:      f.Size,
		Error:     f.Error,
	}
	if f.Failed() {
		out.SummaryLine = "Could not read file: " + f.Error
		return out
	}

	out.Summary = engine.Summarize(f)
	out.SummaryLine = SummaryLine(out.Summary)
	for _, c := range f.Checks {
		out.Rows = append(out.Rows, p.check(c)...)
	}
	return out
}

// cellValues holds the field values of one row before layout ordering.
type cellValues struct {
	check, row, location, actual, expected string
	status                                 Status
	missing                                bool
}

func (p projector) check(c engine.CheckResult) []ReportRow {
	status := p.status(c)
	rows := []ReportRow{p.row(LevelCheck, cellValues{
		check:    c.Name,
		row:      rowLabel(c.RowNumber),
		location: c.Location,
		actual:   c.Actual,
		expected: c.Expected,
		status:   status,
		missing:  !c.Found,
	})}

	for _, e := range c.Entries {
		label := "Seq " + e.Sequence
		if e.Sequence == "" {
			label = "Row " + strconv.Itoa(e.RowNumber)
		}
		if e.Branch != "" {
			label += " (" + e.Branch + ")"
		}
		expected := ""
		if len(e.Cells) == 0 {
			expected = c.Expected
		}
		location := ""
		if c.CheckColumn >= 0 && len(e.Cells) == 0 {
			location = sheet.CellRef(e.RowNumber, c.CheckColumn)
		}
		rows = append(rows, p.row(LevelEntry, cellValues{
			check:    label,
			row:      rowLabel(e.RowNumber),
			location: location,
			actual:   e.Value,
			expected: expected,
			status:   validity(e.Valid),
		}))

		for _, cell := range e.Cells {
			rows = append(rows, p.row(LevelCell, cellValues{
				check:    cell.Label,
				row:      rowLabel(e.RowNumber),
				location: cell.Column + strconv.Itoa(e.RowNumber),
				actual:   cell.Actual,
				expected: cell.Expected,
				status:   validity(cell.Valid),
			}))
		}
	}
	return rows
}

func (p projector) row(level int, v cellValues) ReportRow {
	r := ReportRow{
		Level:    level,
		Cells:    make([]string, len(p.fields)),
		Statuses: make([]Status, len(p.fields)),
		Status:   v.status,
	}
	for i, f := range p.fields {
		r.Statuses[i] = StatusNormal
		switch f {
		case rules.FieldCheck:
			r.Cells[i] = v.check
		case rules.FieldRow:
			r.Cells[i] = v.row
		case rules.FieldLocation:
			r.Cells[i] = v.location
		case rules.FieldActual:
			r.Cells[i] = v.actual
			r.Statuses[i] = v.status
		case rules.FieldExpected:
			r.Cells[i] = v.expected
		case rules.FieldStatus:
			r.Cells[i] = StatusLabel(v.status, v.missing)
			r.Statuses[i] = v.status
		}
	}
	return r
}

// status grades a check. A found but failing range check that sits within
// the brand's warning band of a bound is a warning rather than invalid.
func (p projector) status(c engine.CheckResult) Status {
	switch {
	case c.Valid:
		return StatusValid
	case !c.Found:
		return StatusInvalid
	}

	band, ok := p.bands[c.Name]
	if !ok || c.Numeric == nil || c.Range == nil {
		return StatusInvalid
	}
	d := *c.Numeric
	if d >= c.Range.Min-band && d <= c.Range.Max+band {
		return StatusWarning
	}
	return StatusInvalid
}

func validity(ok bool) Status {
	if ok {
		return StatusValid
	}
	return StatusInvalid
}

func rowLabel(n int) string {
	if n <= 0 {
		return "-"
	}
	return strconv.Itoa(n)
}
