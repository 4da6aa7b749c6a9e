package ui

import (
	"io/fs"
	"net/http"

	"github.com/johnwards/portaldiff/internal/portal"
	"github.com/johnwards/portaldiff/web"
)

// RegisterRoutes registers the HTML pages and static assets on the mux.
func RegisterRoutes(mux *http.ServeMux, svc *portal.Service) {
	h := NewHandler(svc)

	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /compare/{sessionID}/{objectType}", h.CompareProperties)
	mux.HandleFunc("GET /compare-custom/{sessionID}/{objectTypeA}/{objectTypeB}", h.CompareCustom)
	mux.HandleFunc("GET /custom-object-matching/{sessionID}", h.CustomObjectMatching)
	mux.HandleFunc("GET /compare-associations/{sessionID}", h.CompareAssociations)

	staticFS, err := fs.Sub(web.AssetsFS, "static")
	if err != nil {
		panic("static assets subtree: " + err.Error())
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
}
