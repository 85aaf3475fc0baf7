// Package webapp serves the Telegram Mini App bundle.
package webapp

import (
	"net/http"
	"path/filepath"
)

const Path = "/webapp"

// Register mounts the bundle at /webapp and redirects / to it.
func Register(mux *http.ServeMux, dir string) {
	files := http.StripPrefix(Path+"/", http.FileServer(http.Dir(dir)))
	index := filepath.Join(dir, "index.html")

	mux.HandleFunc("GET "+Path, func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, index)
	})
	mux.Handle("GET "+Path+"/", files)
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, Path, http.StatusFound)
	})
}
