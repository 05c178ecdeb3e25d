package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bcbdcheck/engine"
	"bcbdcheck/rules"
	"bcbdcheck/services"
	"bcbdcheck/templates"
)

const (
	maxUploadMemory = 32 << 20
	maxFileSize     = 25 << 20
)

var errNoFiles = errors.New("please select at least one spreadsheet")

// uploadData builds the brand selector from the registry.
func uploadData(reg *rules.Registry, selected string) templates.UploadData {
	data := templates.UploadData{Selected: strings.ToLower(strings.TrimSpace(selected))}
	for _, b := range reg.Brands() {
		data.Brands = append(data.Brands, templates.BrandOption{Brand: b.Brand, Name: b.Name, Rules: b.Rules})
	}
	return data
}

// readUploads parses the multipart form and reads every "files" part into
// memory, in form order.
func readUploads(e *core.RequestEvent) ([]engine.Upload, error) {
	if err := e.Request.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, fmt.Errorf("invalid form data: %w", err)
	}
	if e.Request.MultipartForm == nil {
		return nil, errNoFiles
	}

	headers := e.Request.MultipartForm.File["files"]
	if len(headers) == 0 {
		return nil, errNoFiles
	}

	uploads := make([]engine.Upload, 0, len(headers))
	for _, fh := range headers {
		if fh.Size > maxFileSize {
			return nil, fmt.Errorf("%s is larger than %d MB", fh.Filename, maxFileSize>>20)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
		}
		uploads = append(uploads, engine.Upload{Name: fh.Filename, Data: data})
	}
	return uploads, nil
}

// HandleUploadPage renders the upload form. A full page load also shows the
// caller's last report, if one is still held.
// Route: GET /
func HandleUploadPage(app *pocketbase.PocketBase, reg *rules.Registry, exporters services.Exporters) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		selected := e.Request.URL.Query().Get("brand")
		active := GetActiveBatch(e.Request)
		if selected == "" && active != nil {
			selected = active.Batch.Brand
		}
		data := uploadData(reg, selected)

		if e.Request.Header.Get("HX-Request") == "true" {
			return templates.UploadForm(data).Render(e.Request.Context(), e.Response)
		}
		if active != nil {
			return templates.ReportPage(data, reportData(active, exporters)).Render(e.Request.Context(), e.Response)
		}
		return templates.UploadPage(data).Render(e.Request.Context(), e.Response)
	}
}

func reportData(sb *storedBatch, exporters services.Exporters) templates.ReportData {
	return templates.ReportData{
		BatchID: sb.Batch.ID,
		Model:   services.ProjectBatch(sb.Layout, sb.Batch),
		Formats: exporters.Formats(),
	}
}

// HandleValidate validates the uploaded files against the selected brand,
// keeps the batch for export and renders the report.
// Route: POST /validate
func HandleValidate(app *pocketbase.PocketBase, reg *rules.Registry, exporters services.Exporters) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		uploads, err := readUploads(e)
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, capitalize(err.Error()))
		}

		brand := e.Request.FormValue("brand")
		catalog, err := reg.Get(brand)
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, fmt.Sprintf("Unknown brand %q", brand))
		}

		batch, err := engine.Run(e.Request.Context(), engine.New(catalog), uploads)
		if err != nil {
			log.Printf("validate: %v", err)
			return ErrorToast(e, http.StatusServiceUnavailable, "Validation was cancelled. Please try again.")
		}
		sum := batch.Summary()
		log.Printf("validate: brand=%s batch=%s files=%d errored=%d valid=%d/%d",
			catalog.Brand, batch.ID, sum.Files, sum.Errored, sum.Valid, sum.Found)

		saveBatch(app, e.Response, e.Request, batch, catalog.Layout)

		data := reportData(&storedBatch{Batch: batch, Layout: catalog.Layout}, exporters)

		if e.Request.Header.Get("HX-Request") == "true" {
			if sum.Errored > 0 {
				SetToast(e, "error", fmt.Sprintf("%d of %d files could not be read", sum.Errored, sum.Files))
			}
			return templates.ReportContent(data).Render(e.Request.Context(), e.Response)
		}
		return templates.ReportPage(uploadData(reg, catalog.Brand), data).Render(e.Request.Context(), e.Response)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
