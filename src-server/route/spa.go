package route

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"calendarcorp/src-server/utils"
)

// SPA serves the static web client, falling back to index.html for unknown
// paths. Nothing is mounted when no directory is configured.
func SPA(muxer *http.ServeMux, as *utils.AppState) {
	dir := as.Config.GetStaticWebClientDir()
	if dir == "" {
		return
	}
	files := http.FS(os.DirFS(dir))
	if _, err := os.Stat(filepath.Join(dir, "index.html")); err != nil {
		slog.Error("Can't find index.html", "err", err)
		return
	}

	serveIndex := func(w http.ResponseWriter, r *http.Request) {
		indexFile, err := files.Open("index.html")
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer indexFile.Close()
		indexFileStat, err := indexFile.Stat()
		if err != nil {
			http.NotFound(w, r)
			return
		}
		http.ServeContent(w, r, indexFileStat.Name(), indexFileStat.ModTime(), indexFile)
	}

	muxer.HandleFunc("GET /{filepath...}", func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Clean(r.PathValue("filepath"))
		switch name {
		case ".":
			name = "index.html"
		case "admin":
			name = "admin/index.html"
		case "404":
			name = "404.html"
		}

		file, err := files.Open(name)
		if err != nil {
			serveIndex(w, r)
			return
		}
		defer file.Close()

		stat, err := file.Stat()
		if err != nil || stat.IsDir() {
			serveIndex(w, r)
			return
		}

		http.ServeContent(w, r, stat.Name(), stat.ModTime(), file)
	})
}
