package exports

import (
	"net/http"

	"github.com/johnwards/portaldiff/internal/portal"
)

// RegisterRoutes registers the comparison export endpoints on the mux.
func RegisterRoutes(mux *http.ServeMux, svc *portal.Service) {
	h := &Handler{service: svc}

	mux.HandleFunc("GET /export/{sessionID}/{objectType}", h.Properties)
	mux.HandleFunc("GET /export-associations/{sessionID}", h.Associations)
}
