package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// BrandOption is one entry of the brand selector.
type BrandOption struct {
	Brand string
	Name  string
	Rules int
}

// UploadData feeds the upload form.
type UploadData struct {
	Brands   []BrandOption
	Selected string
	// Report, when set, is rendered inside the report target.
	Report templ.Component
}

// UploadForm renders the brand selector, the multi-file input and the empty
// report target the form swaps into.
func UploadForm(data UploadData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<h1>BCBD Validation</h1>`)
		h.raw(`<form id="upload-form" method="post" action="/validate" enctype="multipart/form-data" hx-post="/validate" hx-target="#report" hx-encoding="multipart/form-data">`)
		h.raw(`<label for="brand">Brand</label> <select id="brand" name="brand" required>`)
		for _, b := range data.Brands {
			h.raw(`<option value="`)
			h.text(b.Brand)
			h.raw(`"`)
			if b.Brand == data.Selected {
				h.raw(` selected`)
			}
			h.raw(`>`)
			h.text(b.Name)
			h.raw(`</option>`)
		}
		h.raw(`</select> `)
		h.raw(`<input type="file" name="files" multiple accept=".xlsx,.xlsm,.csv" required> `)
		h.raw(`<button type="submit">Generate</button></form>`)
		h.raw(`<section id="report">`)
		h.component(ctx, data.Report)
		h.raw(`</section>`)
		return h.err
	})
}

// UploadPage is the full landing page.
func UploadPage(data UploadData) templ.Component {
	return Page("BCBD Validation", UploadForm(data))
}
