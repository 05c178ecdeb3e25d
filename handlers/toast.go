package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"

	"github.com/pocketbase/pocketbase/core"
)

const flashCookie = "flash_toast"

type toastPayload struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// SetToast fires a showToast event on the client through the HX-Trigger
// header, merging with any trigger already set. A short-lived flash cookie
// carries the same toast across full page loads, where HX-Trigger is lost.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	payload := toastPayload{Message: message, Type: toastType}

	trigger, err := mergeTrigger(e.Response.Header().Get("HX-Trigger"), "showToast", payload)
	if err != nil {
		log.Printf("toast: failed to marshal HX-Trigger JSON: %v", err)
		return
	}
	e.Response.Header().Set("HX-Trigger", trigger)

	cookieVal, err := json.Marshal(payload)
	if err == nil {
		http.SetCookie(e.Response, &http.Cookie{
			Name:     flashCookie,
			Value:    url.QueryEscape(string(cookieVal)),
			Path:     "/",
			MaxAge:   10,
			HttpOnly: false, // read by the page script
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// mergeTrigger adds event to an HX-Trigger JSON object. An existing value that
// is not a JSON object is replaced.
func mergeTrigger(existing, event string, payload any) (string, error) {
	merged := map[string]any{}
	if existing != "" {
		if err := json.Unmarshal([]byte(existing), &merged); err != nil || merged == nil {
			log.Printf("toast: existing HX-Trigger is not valid JSON, overwriting: %v", err)
			merged = map[string]any{}
		}
	}
	merged[event] = payload

	data, err := json.Marshal(merged)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ErrorToast shows an error toast and answers with statusCode. HX-Reswap:
// none keeps HTMX from swapping the error text into the report area; the
// page script turns error toasts into a blocking alert.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, "error", message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(statusCode, message)
}
