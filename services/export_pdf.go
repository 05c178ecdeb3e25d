package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"bcbdcheck/rules"
)

// statusPalette is the background and text colour of each status tag.
var statusPalette = map[Status]struct{ bg, fg *props.Color }{
	StatusValid:   {&props.Color{Red: 212, Green: 237, Blue: 218}, &props.Color{Red: 21, Green: 87, Blue: 36}},
	StatusInvalid: {&props.Color{Red: 248, Green: 215, Blue: 218}, &props.Color{Red: 114, Green: 28, Blue: 36}},
	StatusWarning: {&props.Color{Red: 255, Green: 243, Blue: 205}, &props.Color{Red: 133, Green: 100, Blue: 4}},
}

// GeneratePDF renders a brand report with maroto/v2: one section per file,
// each with its summary line and a colour-coded check table.
func GeneratePDF(model BrandReportModel) ([]byte, error) {
	if len(model.Widths) == 0 {
		return nil, fmt.Errorf("report has no columns")
	}

	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, model)
	for _, f := range model.Files {
		addFileSection(m, model, f)
	}
	addFooter(m, model)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addHeader adds the report title and date.
func addHeader(m core.Maroto, model BrandReportModel) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(model.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	if model.CreatedDate != "" {
		m.AddRows(
			row.New(8).Add(
				col.New(12).Add(
					text.New(fmt.Sprintf("Date: %s", model.CreatedDate), props.Text{
						Size:  9,
						Align: align.Right,
						Color: &props.Color{Red: 80, Green: 80, Blue: 80},
					}),
				),
			),
		)
	}

	m.AddRows(row.New(4))
}

// addFileSection adds one file's heading, summary and table.
func addFileSection(m core.Maroto, model BrandReportModel, f FileReport) {
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(FileHeading(f), props.Text{
					Size:  11,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
	)

	summaryText := props.Text{Size: 9, Align: align.Left}
	if f.Error != "" {
		summaryText.Color = statusPalette[StatusInvalid].fg
	}
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New(f.SummaryLine, summaryText)),
		),
	)

	if f.Error == "" {
		addTableHeader(m, model)
		for _, r := range f.Rows {
			addTableRow(m, model, r)
		}
	}

	m.AddRows(row.New(6))
}

// addTableHeader adds the brand's column headers.
func addTableHeader(m core.Maroto, model BrandReportModel) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerCell := props.Cell{BackgroundColor: headerBg}

	cols := make([]core.Col, 0, len(model.Headers))
	for i, h := range model.Headers {
		cols = append(cols, col.New(model.Widths[i]).Add(text.New(h, headerText)).WithStyle(&headerCell))
	}
	m.AddRows(row.New(8).Add(cols...))
}

// addTableRow adds a single result row. Check rows are bold; entry and cell
// rows are indented under their check.
func addTableRow(m core.Maroto, model BrandReportModel, r ReportRow) {
	var textSize float64 = 7
	textStyle := fontstyle.Normal
	indent := ""

	switch r.Level {
	case LevelCheck:
		textStyle = fontstyle.Bold
		textSize = 8
	case LevelEntry:
		indent = "  "
	case LevelCell:
		indent = "    "
	}

	cols := make([]core.Col, 0, len(r.Cells))
	for i, value := range r.Cells {
		t := props.Text{Size: textSize, Style: textStyle, Align: align.Left}
		if model.Fields[i] == rules.FieldCheck {
			value = indent + value
		}
		if model.Fields[i] == rules.FieldRow || model.Fields[i] == rules.FieldStatus {
			t.Align = align.Center
		}

		c := col.New(model.Widths[i])
		if pal, ok := statusPalette[r.Statuses[i]]; ok {
			t.Color = pal.fg
			c = c.WithStyle(&props.Cell{BackgroundColor: pal.bg})
		}
		cols = append(cols, c.Add(text.New(value, t)))
	}

	m.AddRows(row.New(7).Add(cols...))
}

// addFooter adds the generated-date line at the bottom.
func addFooter(m core.Maroto, model BrandReportModel) {
	if model.CreatedDate == "" {
		return
	}
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", model.CreatedDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}
