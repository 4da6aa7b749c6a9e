package objects

import (
	"net/http"

	"github.com/johnwards/portaldiff/internal/portal"
)

// RegisterRoutes registers the schema browsing endpoints on the mux.
func RegisterRoutes(mux *http.ServeMux, svc *portal.Service) {
	h := &Handler{service: svc}

	mux.HandleFunc("GET /objects/{sessionID}", h.List)
	mux.HandleFunc("GET /properties/{sessionID}/{objectType}", h.Properties)
}
