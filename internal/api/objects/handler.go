// Package objects serves the schema browsing endpoints: the object catalog
// for both portals and the raw property definitions for one object type.
package objects

import (
	"net/http"

	"github.com/johnwards/portaldiff/internal/api"
	"github.com/johnwards/portaldiff/internal/portal"
)

// Handler serves object catalog and property listing endpoints.
type Handler struct {
	service *portal.Service
}

// List returns the standard object catalog and both portals' custom objects.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Objects(r.Context(), r.PathValue("sessionID"))
	if err != nil {
		api.HandleServiceError(w, r, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, overview)
}

// Properties returns both portals' property definitions for an object type.
func (h *Handler) Properties(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	objectType := r.PathValue("objectType")

	sets, err := h.service.Properties(r.Context(), sessionID, objectType)
	if err != nil {
		api.HandleServiceError(w, r, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, sets)
}
