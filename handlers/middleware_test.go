package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bcbdcheck/engine"
	"bcbdcheck/testhelpers"
)

func TestGetActiveBatch_FromContext(t *testing.T) {
	expected := &storedBatch{Batch: &engine.Batch{ID: "b-123"}}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), ActiveBatchKey, expected)
	req = req.WithContext(ctx)

	got := GetActiveBatch(req)
	if got == nil {
		t.Fatal("expected active batch, got nil")
	}
	if got.Batch.ID != "b-123" {
		t.Errorf("expected ID %q, got %q", "b-123", got.Batch.ID)
	}
}

func TestGetActiveBatch_NotInContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetActiveBatch(req); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestActiveBatchMiddleware(t *testing.T) {
	env := newHandlerEnv(t)
	stored := validatedCookie(t, env)

	tests := []struct {
		name        string
		cookie      *http.Cookie
		wantBatch   bool
		wantCleared bool
	}{
		{"no cookie", nil, false, false},
		{"stored batch", stored, true, false},
		{"stale batch", &http.Cookie{Name: batchCookie, Value: "expired"}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()
			e := newTestRequestEvent(env.app, req, rec)

			if err := ActiveBatchMiddleware(env.app)(e); err != nil {
				t.Fatalf("middleware returned error: %v", err)
			}

			got := GetActiveBatch(e.Request)
			if (got != nil) != tt.wantBatch {
				t.Fatalf("active batch = %v, want present=%v", got, tt.wantBatch)
			}
			if got != nil && got.Batch.ID != stored.Value {
				t.Errorf("batch id = %q, want %q", got.Batch.ID, stored.Value)
			}

			cleared := false
			for _, c := range rec.Result().Cookies() {
				if c.Name == batchCookie && c.MaxAge < 0 {
					cleared = true
				}
			}
			if cleared != tt.wantCleared {
				t.Errorf("cookie cleared = %v, want %v", cleared, tt.wantCleared)
			}
		})
	}
}

func TestHandleUploadPage_RestoresLastReport(t *testing.T) {
	env := newHandlerEnv(t)
	cookie := validatedCookie(t, env)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(env.app, req, rec)

	if err := ActiveBatchMiddleware(env.app)(e); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if err := HandleUploadPage(env.app, env.reg, env.exporters)(e); err != nil {
		t.Fatalf("HandleUploadPage returned error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		`<option value="rossignol" selected>`,
		`data-batch="`+cookie.Value+`"`,
		"7 out of 7 found checks are valid",
	)
}
