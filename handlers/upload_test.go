package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bcbdcheck/testhelpers"
)

const validCSV = `CATEGORY,SEQ,DESCRIPTION
,,,,,,Agent Commission,0.07
,,,VENDOR NAME,Madison 88
,,,CURRENCY,USD
,,,INCOTERM,FOB
FABRIC,1,Shell,,,,,,,,,5%
TRIM,1,Zipper,,,,,,,,,0.03
PACKAGING,1,Hangtag,,,,,,,,,3
`

func batchCookieFrom(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == batchCookie {
			return c
		}
	}
	return nil
}

// validate posts files to HandleValidate and returns the recorder.
func validate(t *testing.T, env *handlerEnv, brand string, htmx bool, files ...testhelpers.UploadFile) *httptest.ResponseRecorder {
	t.Helper()
	req := testhelpers.NewMultipartRequest(t, "/validate", map[string]string{"brand": brand}, "files", files...)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(env.app, req, rec)
	if err := HandleValidate(env.app, env.reg, env.exporters)(e); err != nil {
		t.Fatalf("HandleValidate returned error: %v", err)
	}
	return rec
}

func TestHandleUploadPage(t *testing.T) {
	env := newHandlerEnv(t)

	t.Run("full page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?brand=Burton", nil)
		rec := httptest.NewRecorder()
		e := newTestRequestEvent(env.app, req, rec)

		if err := HandleUploadPage(env.app, env.reg, env.exporters)(e); err != nil {
			t.Fatalf("HandleUploadPage returned error: %v", err)
		}
		testhelpers.AssertHTMLContains(t, rec.Body.String(),
			"<!DOCTYPE html>",
			`<option value="burton" selected>Burton</option>`,
			`<option value="rossignol">Rossignol</option>`,
			`name="files" multiple`,
		)
	})

	t.Run("htmx partial", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		e := newTestRequestEvent(env.app, req, rec)

		if err := HandleUploadPage(env.app, env.reg, env.exporters)(e); err != nil {
			t.Fatalf("HandleUploadPage returned error: %v", err)
		}
		body := rec.Body.String()
		testhelpers.AssertHTMLContains(t, body, `id="upload-form"`, `<section id="report">`)
		testhelpers.AssertHTMLNotContains(t, body, "<!DOCTYPE html>")
	})
}

func TestHandleValidate_HTMX(t *testing.T) {
	env := newHandlerEnv(t)

	rec := validate(t, env, "rossignol", true,
		testhelpers.UploadFile{Name: "vendor.csv", Data: []byte(validCSV)})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body,
		"Rossignol BCBD Validation Report",
		"vendor.csv",
		"7 out of 7 found checks are valid (7 total rules)",
		`href="/export/excel"`,
		`href="/export/pdf"`,
		"Madison 88",
	)
	testhelpers.AssertHTMLNotContains(t, body, "<!DOCTYPE html>", "status-invalid")
	if rec.Header().Get("HX-Trigger") != "" {
		t.Errorf("unexpected toast for a clean batch: %s", rec.Header().Get("HX-Trigger"))
	}

	c := batchCookieFrom(rec)
	if c == nil || c.Value == "" {
		t.Fatal("expected batch cookie")
	}
	if !strings.Contains(body, `data-batch="`+c.Value+`"`) {
		t.Errorf("report does not carry batch id %s", c.Value)
	}
	if _, ok := env.app.Store().GetOk(batchKeyPrefix + c.Value); !ok {
		t.Error("batch not kept in the store")
	}
}

func TestHandleValidate_FullPage(t *testing.T) {
	env := newHandlerEnv(t)

	workbook := testhelpers.BuildWorkbook(t, [][]any{
		{"CATEGORY", "SEQ", "DESCRIPTION"},
		{nil, nil, nil, nil, nil, nil, "Agent Commission", 0.12},
		{nil, nil, nil, "VENDOR NAME", "Madison 88"},
	})
	rec := validate(t, env, "rossignol", false,
		testhelpers.UploadFile{Name: "vendor.xlsx", Data: workbook})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"<!DOCTYPE html>",
		`<option value="rossignol" selected>`,
		"12.00%",
		"status-invalid",
		"Not Found",
	)
}

func TestHandleValidate_UnreadableFile(t *testing.T) {
	env := newHandlerEnv(t)

	rec := validate(t, env, "rossignol", true,
		testhelpers.UploadFile{Name: "vendor.csv", Data: []byte(validCSV)},
		testhelpers.UploadFile{Name: "logo.png", Data: []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")},
	)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"vendor.csv", "logo.png", "Could not read file: ", `class="summary file-error"`)
	toast := toastFrom(t, rec)
	if toast.Message != "1 of 2 files could not be read" {
		t.Errorf("toast = %q", toast.Message)
	}
}

func TestHandleValidate_BadRequests(t *testing.T) {
	env := newHandlerEnv(t)

	t.Run("unknown brand", func(t *testing.T) {
		rec := validate(t, env, "patagonia", true,
			testhelpers.UploadFile{Name: "vendor.csv", Data: []byte(validCSV)})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		if rec.Body.String() != `Unknown brand "patagonia"` {
			t.Errorf("body = %q", rec.Body.String())
		}
		if batchCookieFrom(rec) != nil {
			t.Error("no batch should be stored for a rejected request")
		}
	})

	t.Run("no files", func(t *testing.T) {
		rec := validate(t, env, "rossignol", true)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		if rec.Body.String() != "Please select at least one spreadsheet" {
			t.Errorf("body = %q", rec.Body.String())
		}
	})
}

func TestHandleValidate_ReplacesPreviousBatch(t *testing.T) {
	env := newHandlerEnv(t)

	first := validate(t, env, "rossignol", true,
		testhelpers.UploadFile{Name: "a.csv", Data: []byte(validCSV)})
	firstCookie := batchCookieFrom(first)

	req := testhelpers.NewMultipartRequest(t, "/validate", map[string]string{"brand": "rossignol"}, "files",
		testhelpers.UploadFile{Name: "b.csv", Data: []byte(validCSV)})
	req.Header.Set("HX-Request", "true")
	req.AddCookie(firstCookie)
	rec := httptest.NewRecorder()
	if err := HandleValidate(env.app, env.reg, env.exporters)(newTestRequestEvent(env.app, req, rec)); err != nil {
		t.Fatalf("HandleValidate returned error: %v", err)
	}

	second := batchCookieFrom(rec)
	if second == nil || second.Value == firstCookie.Value {
		t.Fatalf("expected a new batch id, got %+v", second)
	}
	if _, ok := env.app.Store().GetOk(batchKeyPrefix + firstCookie.Value); ok {
		t.Error("previous batch should have been removed")
	}
	if _, ok := env.app.Store().GetOk(batchKeyPrefix + second.Value); !ok {
		t.Error("new batch missing from store")
	}
}

func TestCapitalize(t *testing.T) {
	tests := map[string]string{
		"":                  "",
		"a":                 "A",
		"invalid form data": "Invalid form data",
		"Already":           "Already",
	}
	for in, want := range tests {
		if got := capitalize(in); got != want {
			t.Errorf("capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}
