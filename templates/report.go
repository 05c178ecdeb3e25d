package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"bcbdcheck/services"
)

// ReportData is a projected batch plus the export links offered for it.
type ReportData struct {
	BatchID string
	Model   services.BrandReportModel
	Formats []string
}

// ReportContent renders the report fragment: one summary line and table per
// file, with valid/invalid/warning cells colour coded.
func ReportContent(data ReportData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		m := data.Model

		h.raw(`<div class="report" data-batch="`)
		h.text(data.BatchID)
		h.raw(`"><h2>`)
		h.text(m.Title)
		h.raw(`</h2>`)

		if len(data.Formats) > 0 {
			h.raw(`<p class="exports">`)
			for _, f := range data.Formats {
				h.raw(`<a href="/export/`)
				h.text(f)
				h.raw(`" hx-boost="false">Export `)
				h.text(f)
				h.raw(`</a> `)
			}
			h.raw(`</p>`)
		}

		for _, f := range m.Files {
			h.raw(`<section class="file"><h3>`)
			h.text(services.FileHeading(f))
			h.raw(`</h3>`)
			if f.Error != "" {
				h.raw(`<p class="summary file-error">`)
				h.text(f.SummaryLine)
				h.raw(`</p></section>`)
				continue
			}
			h.raw(`<p class="summary">`)
			h.text(f.SummaryLine)
			h.raw(`</p>`)
			writeTable(h, m, f)
			h.raw(`</section>`)
		}

		h.raw(`</div>`)
		return h.err
	})
}

func writeTable(h *htmlWriter, m services.BrandReportModel, f services.FileReport) {
	h.raw(`<table><thead><tr>`)
	for i, hd := range m.Headers {
		h.raw(`<th data-width="`)
		h.raw(strconv.Itoa(m.Widths[i]))
		h.raw(`">`)
		h.text(hd)
		h.raw(`</th>`)
	}
	h.raw(`</tr></thead><tbody>`)
	for _, r := range f.Rows {
		h.raw(`<tr class="level-`)
		h.raw(strconv.Itoa(r.Level))
		h.raw(`">`)
		for i, c := range r.Cells {
			h.raw(`<td class="status-`)
			h.text(string(r.Statuses[i]))
			h.raw(`">`)
			h.text(c)
			h.raw(`</td>`)
		}
		h.raw(`</tr>`)
	}
	h.raw(`</tbody></table>`)
}

// ReportPage is the full page shown after a non-HTMX form post.
func ReportPage(upload UploadData, data ReportData) templ.Component {
	upload.Report = ReportContent(data)
	return Page(data.Model.Title, UploadForm(upload))
}
