package main

import (
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"
)

// staticHandler serves the storefront from staticDir. Unknown paths fall back to
// index.html so client-side routes survive a reload.
func (app *application) staticHandler() http.HandlerFunc {
	root := http.Dir(app.config.staticDir)
	files := http.FileServer(root)

	return func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + r.URL.Path)

		f, err := root.Open(name)
		if err == nil {
			f.Close()
			files.ServeHTTP(w, r)
			return
		}

		index := filepath.Join(app.config.staticDir, "index.html")
		if _, err := os.Stat(index); err != nil {
			app.notFoundResponse(w, r, errors.New("static file not found"))
			return
		}

		w.Header().Set("Cache-Control", "no-cache")
		http.ServeFile(w, r, index)
	}
}
