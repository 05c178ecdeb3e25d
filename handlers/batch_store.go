package handlers

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/pocketbase/pocketbase"

	"bcbdcheck/engine"
	"bcbdcheck/rules"
)

const (
	batchCookie    = "bcbd_batch"
	batchKeyPrefix = "bcbd_batch:"

	// maxStoredBatches caps the batches held in the app store. Other keys of
	// the store do not count against it.
	maxStoredBatches = 1000
	batchTTL         = 24 * time.Hour
)

// saveMu serializes sweep, eviction and insert so the cap holds under
// concurrent uploads.
var saveMu sync.Mutex

// storedBatch is a validated batch plus the layout it was validated with, so
// exports match the on-screen report even if the catalog reloads meanwhile.
type storedBatch struct {
	Batch   *engine.Batch
	Layout  rules.Layout
	SavedAt time.Time
}

func (sb storedBatch) expired(now time.Time) bool {
	return now.Sub(sb.SavedAt) >= batchTTL
}

// saveBatch stores b, points the batch cookie at it and then drops the
// caller's previous batch (last write wins). Expired batches are swept first;
// when the store is still full the oldest batch is evicted.
func saveBatch(app *pocketbase.PocketBase, w http.ResponseWriter, r *http.Request, b *engine.Batch, layout rules.Layout) {
	now := time.Now()
	store := app.Store()

	saveMu.Lock()
	held := sweepBatches(app, now)
	for len(held) >= maxStoredBatches {
		oldest := 0
		for i := range held {
			if held[i].SavedAt.Before(held[oldest].SavedAt) {
				oldest = i
			}
		}
		store.Remove(batchKeyPrefix + held[oldest].Batch.ID)
		held = append(held[:oldest], held[oldest+1:]...)
	}
	store.Set(batchKeyPrefix+b.ID, storedBatch{Batch: b, Layout: layout, SavedAt: now})
	saveMu.Unlock()

	if c, err := r.Cookie(batchCookie); err == nil && c.Value != "" && c.Value != b.ID {
		store.Remove(batchKeyPrefix + c.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     batchCookie,
		Value:    b.ID,
		Path:     "/",
		MaxAge:   int(batchTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// sweepBatches removes expired batches and returns the ones still held.
func sweepBatches(app *pocketbase.PocketBase, now time.Time) []storedBatch {
	store := app.Store()
	var held []storedBatch
	for k, v := range store.GetAll() {
		if !strings.HasPrefix(k, batchKeyPrefix) {
			continue
		}
		sb, ok := v.(storedBatch)
		if !ok || sb.expired(now) {
			store.Remove(k)
			continue
		}
		held = append(held, sb)
	}
	return held
}

// loadBatch returns the unexpired batch named by the caller's cookie.
func loadBatch(app *pocketbase.PocketBase, r *http.Request) (storedBatch, bool) {
	c, err := r.Cookie(batchCookie)
	if err != nil || c.Value == "" {
		return storedBatch{}, false
	}
	key := batchKeyPrefix + c.Value
	v, ok := app.Store().GetOk(key)
	if !ok {
		return storedBatch{}, false
	}
	sb, ok := v.(storedBatch)
	if !ok || sb.expired(time.Now()) {
		app.Store().Remove(key)
		return storedBatch{}, false
	}
	return sb, true
}
