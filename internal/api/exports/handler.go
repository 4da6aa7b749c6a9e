// Package exports serves comparison results as downloadable JSON documents.
package exports

import (
	"fmt"
	"net/http"

	"github.com/johnwards/portaldiff/internal/api"
	"github.com/johnwards/portaldiff/internal/portal"
)

// Handler serves comparison export endpoints.
type Handler struct {
	service *portal.Service
}

// Properties exports the property comparison for one object type.
func (h *Handler) Properties(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	objectType := r.PathValue("objectType")

	result, err := h.service.CompareProperties(r.Context(), sessionID, objectType)
	if err != nil {
		api.HandleServiceError(w, r, err)
		return
	}

	api.WriteJSONAttachment(w, fmt.Sprintf("%s_comparison.json", objectType), result)
}

// Associations exports the association comparison.
func (h *Handler) Associations(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.CompareAssociations(r.Context(), r.PathValue("sessionID"))
	if err != nil {
		api.HandleServiceError(w, r, err)
		return
	}

	api.WriteJSONAttachment(w, "associations_comparison.json", result)
}
