// Package ui serves the static assets of the status page
package ui

import (
	"embed"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

//go:embed all:static
var staticFiles embed.FS

// Prefix is the URL path the assets are mounted under
const Prefix = "/static/"

// FS returns the embedded asset filesystem
func FS() fs.FS {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return staticFiles
	}
	return staticFS
}

// Handler returns an HTTP handler for the embedded assets under Prefix
func Handler() http.Handler {
	staticFS := FS()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		// Remove prefix and leading slash for embed FS
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), strings.TrimSuffix(Prefix, "/"))
		name = strings.TrimPrefix(name, "/")
		if name == "" || !hasExtension(name) {
			http.NotFound(w, r)
			return
		}

		file, err := staticFS.Open(name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer file.Close()

		stat, err := file.Stat()
		if err != nil || stat.IsDir() {
			http.NotFound(w, r)
			return
		}

		seeker, ok := file.(io.ReadSeeker)
		if !ok {
			http.Error(w, "File not seekable", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Cache-Control", "public, max-age=3600")
		http.ServeContent(w, r, name, stat.ModTime(), seeker)
	})
}

// hasExtension checks if a path has a file extension
func hasExtension(p string) bool {
	return path.Ext(p) != ""
}
