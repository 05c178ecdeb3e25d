package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bcbdcheck/services"
)

// HandleExport downloads the caller's last batch in the requested format.
// It relies on ActiveBatchMiddleware having loaded the batch.
// Route: GET /export/{format}
func HandleExport(app *pocketbase.PocketBase, exporters services.Exporters) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		format := e.Request.PathValue("format")

		stored := GetActiveBatch(e.Request)
		if stored == nil {
			return ErrorToast(e, http.StatusNotFound, "No report to export. Generate a report first.")
		}

		model := services.ProjectBatch(stored.Layout, stored.Batch)
		filename, ex, data, err := exporters.Export(format, model)
		if errors.Is(err, services.ErrRendererUnavailable) {
			log.Printf("export: %v", err)
			return ErrorToast(e, http.StatusNotImplemented, fmt.Sprintf("Export to %q is not available", format))
		}
		if err != nil {
			log.Printf("export: batch %s: %v", stored.Batch.ID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		e.Response.Header().Set("Content-Type", ex.ContentType)
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(data)
		return nil
	}
}
