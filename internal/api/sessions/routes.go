package sessions

import (
	"net/http"

	"github.com/johnwards/portaldiff/internal/portal"
)

// RegisterRoutes registers the session lifecycle endpoints on the mux.
func RegisterRoutes(mux *http.ServeMux, svc *portal.Service) {
	h := &Handler{service: svc}

	mux.HandleFunc("POST /validate-tokens", h.ValidateTokens)
	mux.HandleFunc("POST /refresh-cache/{sessionID}", h.RefreshCache)
	mux.HandleFunc("GET /cache-status/{sessionID}", h.CacheStatus)
}
