package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type contextKey string

const ActiveBatchKey contextKey = "activeBatch"

// GetActiveBatch extracts the caller's last validated batch from the request
// context.
func GetActiveBatch(r *http.Request) *storedBatch {
	if val, ok := r.Context().Value(ActiveBatchKey).(*storedBatch); ok {
		return val
	}
	return nil
}

// ActiveBatchMiddleware reads the batch cookie, looks the batch up in the app
// store and puts it in the request context. A cookie naming a batch that is
// no longer held is cleared.
func ActiveBatchMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var active *storedBatch

		cookie, err := e.Request.Cookie(batchCookie)
		if err == nil && cookie.Value != "" {
			if sb, ok := loadBatch(app, e.Request); ok {
				active = &sb
			} else {
				log.Printf("middleware: batch %s not found, clearing cookie", cookie.Value)
				http.SetCookie(e.Response, &http.Cookie{
					Name:   batchCookie,
					Value:  "",
					Path:   "/",
					MaxAge: -1,
				})
			}
		}

		ctx := context.WithValue(e.Request.Context(), ActiveBatchKey, active)
		e.Request = e.Request.WithContext(ctx)

		return e.Next()
	}
}
