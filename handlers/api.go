package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bcbdcheck/engine"
	"bcbdcheck/rules"
)

type apiError struct {
	Error string `json:"error"`
}

// validateResponse is the JSON body of POST /api/validate.
type validateResponse struct {
	*engine.Batch
	Summary engine.BatchSummary `json:"summary"`
}

// HandleBrandList lists the loaded brand catalogs.
// Route: GET /api/brands
func HandleBrandList(reg *rules.Registry) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, reg.Brands())
	}
}

// HandleBrandDetail returns one catalog with its rules and layout.
// Route: GET /api/brands/{brand}
func HandleBrandDetail(reg *rules.Registry) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		c, err := reg.Get(e.Request.PathValue("brand"))
		if errors.Is(err, rules.ErrUnknownBrand) {
			return e.JSON(http.StatusNotFound, apiError{Error: err.Error()})
		}
		if err != nil {
			log.Printf("api_brand: %v", err)
			return e.JSON(http.StatusInternalServerError, apiError{Error: "internal error"})
		}
		return e.JSON(http.StatusOK, c)
	}
}

// HandleAPIValidate validates uploads like HandleValidate but answers with
// the batch as JSON and keeps nothing in memory.
// Route: POST /api/validate
func HandleAPIValidate(app *pocketbase.PocketBase, reg *rules.Registry) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		uploads, err := readUploads(e)
		if err != nil {
			return e.JSON(http.StatusBadRequest, apiError{Error: err.Error()})
		}

		catalog, err := reg.Get(e.Request.FormValue("brand"))
		if err != nil {
			return e.JSON(http.StatusBadRequest, apiError{Error: err.Error()})
		}

		batch, err := engine.Run(e.Request.Context(), engine.New(catalog), uploads)
		if err != nil {
			log.Printf("api_validate: %v", err)
			return e.JSON(http.StatusServiceUnavailable, apiError{Error: err.Error()})
		}
		return e.JSON(http.StatusOK, validateResponse{Batch: batch, Summary: batch.Summary()})
	}
}
