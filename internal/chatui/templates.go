package chatui

import (
	_ "embed"
	"net/http"
)

//go:embed index.html
var indexHTML []byte

// ServeIndex serves the embedded chat page.
func (u *UI) ServeIndex(w http.ResponseWriter, r *http.Request) {
	u.sessionForRequest(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}
