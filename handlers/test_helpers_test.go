package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bcbdcheck/rules"
	"bcbdcheck/services"
	"bcbdcheck/testhelpers"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// handlerEnv bundles the app, the built-in brand catalogs and the default
// exporters every handler under test is built from.
type handlerEnv struct {
	app       *pocketbase.PocketBase
	reg       *rules.Registry
	exporters services.Exporters
}

func newHandlerEnv(t *testing.T) *handlerEnv {
	t.Helper()
	reg, err := rules.LoadBuiltin()
	if err != nil {
		t.Fatalf("LoadBuiltin() error = %v", err)
	}
	return &handlerEnv{
		app:       testhelpers.NewTestApp(t),
		reg:       reg,
		exporters: services.DefaultExporters(),
	}
}
