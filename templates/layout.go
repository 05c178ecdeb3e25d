// Package templates holds the templ components of the web UI.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter stops writing after the first error so components can emit
// markup without checking every write.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) component(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

const pageStyle = `
body { font-family: system-ui, sans-serif; margin: 2rem; color: #212529; }
table { border-collapse: collapse; width: 100%; margin-bottom: 1.5rem; }
th, td { border: 1px solid #dee2e6; padding: 4px 8px; text-align: left; font-size: 14px; }
th { background: #212529; color: #fff; }
tr.level-0 td { font-weight: 600; }
tr.level-1 td:first-child { padding-left: 1.5rem; }
tr.level-2 td:first-child { padding-left: 3rem; }
td.status-valid { background: #d4edda; color: #155724; }
td.status-invalid { background: #f8d7da; color: #721c24; }
td.status-warning { background: #fff3cd; color: #856404; }
.summary { margin: 0.25rem 0 0.75rem; }
.file-error { color: #721c24; }
#toast { position: fixed; top: 1rem; right: 1rem; padding: 0.75rem 1rem; border-radius: 4px; display: none; }
#toast.error { display: block; background: #f8d7da; color: #721c24; }
#toast.success { display: block; background: #d4edda; color: #155724; }
`

// toastScript shows the showToast HX-Trigger event and the flash_toast cookie.
const toastScript = `
function showToast(d) {
  var t = document.getElementById("toast");
  t.textContent = d.message; t.className = d.type;
  if (d.type === "error") { alert(d.message); }
  setTimeout(function () { t.className = ""; }, 4000);
}
document.body.addEventListener("showToast", function (e) { showToast(e.detail); });
(function () {
  var m = document.cookie.match(/(?:^|; )flash_toast=([^;]*)/);
  if (m) { showToast(JSON.parse(decodeURIComponent(m[1]))); document.cookie = "flash_toast=; Max-Age=0; path=/"; }
})();
`

// Page wraps content in the full HTML document.
func Page(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		h.text(title)
		h.raw(`</title><script src="https://unpkg.com/htmx.org@1.9.12"></script><style>`)
		h.raw(pageStyle)
		h.raw(`</style></head><body><div id="toast"></div><main id="content">`)
		h.component(ctx, content)
		h.raw(`</main><script>`)
		h.raw(toastScript)
		h.raw(`</script></body></html>`)
		return h.err
	})
}
