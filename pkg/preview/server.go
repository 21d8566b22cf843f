// Package preview serves rendered worksheet previews over HTTP so they can
// be inspected in a browser during offline development.
package preview

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	log "github.com/sirupsen/logrus"
)

// GetRouter initialises a new http router serving the preview directory
func GetRouter(dir string) http.Handler {
	r := chi.NewRouter()
	return applyRoutes(r, dir)
}

func applyRoutes(r chi.Router, dir string) chi.Router {
	r.Route("/", func(r chi.Router) {
		r.Get("/", getIndex(dir))
		r.Get("/previews/{file}", getPreview(dir))
	})

	return r
}

// getIndex lists the rendered preview files as links.
func getIndex(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		entries, err := os.ReadDir(dir)
		if err != nil && !os.IsNotExist(err) {
			log.Errorf("Failed to read preview dir: %v", err)
			http.Error(w, "cannot read preview directory", http.StatusInternalServerError)
			return
		}

		var files []string
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), "_preview.html") {
				files = append(files, e.Name())
			}
		}
		sort.Strings(files)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintln(w, "<html><body><h1>Sheet Previews</h1><ul>")
		if len(files) == 0 {
			fmt.Fprintln(w, "<li>No previews rendered yet</li>")
		}
		for _, f := range files {
			fmt.Fprintf(w, "<li><a href=\"/previews/%s\">%s</a></li>\n", f, f)
		}
		fmt.Fprintln(w, "</ul></body></html>")
	}
}

// getPreview serves one rendered preview file.
func getPreview(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		// filepath.Base strips any traversal components from the URL param.
		name := filepath.Base(chi.URLParam(req, "file"))
		if !strings.HasSuffix(name, "_preview.html") {
			http.NotFound(w, req)
			return
		}
		http.ServeFile(w, req, filepath.Join(dir, name))
	}
}

// StartServer blocks serving previews on the given address.
func StartServer(addr, dir string) error {
	server := http.Server{
		Addr:              addr,
		Handler:           GetRouter(dir),
		ReadHeaderTimeout: 2 * time.Second,
	}
	log.Infof("listening for HTTP on: %s", server.Addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
