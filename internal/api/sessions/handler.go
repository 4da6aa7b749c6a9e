// Package sessions serves the session lifecycle endpoints: validating a pair
// of portal tokens into a comparison session and managing that session's
// response cache.
package sessions

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/johnwards/portaldiff/internal/api"
	"github.com/johnwards/portaldiff/internal/domain"
	"github.com/johnwards/portaldiff/internal/portal"
)

// Handler serves token validation and cache management endpoints.
type Handler struct {
	service *portal.Service
}

type validateTokensResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ValidateTokens checks both portal tokens against the live API and creates a
// comparison session from them.
func (h *Handler) ValidateTokens(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	if err := r.ParseForm(); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid form data", corrID, nil))
		return
	}

	portalAName := r.PostFormValue("portal_a_name")
	portalAToken := r.PostFormValue("portal_a_token")
	portalBName := r.PostFormValue("portal_b_name")
	portalBToken := r.PostFormValue("portal_b_token")

	var details []api.ErrorDetail
	if portalAToken == "" {
		details = append(details, api.ErrorDetail{
			Message: "portal_a_token is required", Code: "REQUIRED_FIELD", In: "portal_a_token",
		})
	}
	if portalBToken == "" {
		details = append(details, api.ErrorDetail{
			Message: "portal_b_token is required", Code: "REQUIRED_FIELD", In: "portal_b_token",
		})
	}
	if len(details) > 0 {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			"Both portal tokens are required", corrID, details))
		return
	}

	if portalAName == "" {
		portalAName = "Portal A"
	}
	if portalBName == "" {
		portalBName = "Portal B"
	}

	sess, err := h.service.ValidateTokens(r.Context(), portalAName, portalAToken, portalBName, portalBToken)
	if err != nil {
		var tokenErr *portal.TokenError
		if errors.As(err, &tokenErr) {
			field := "portal_a_token"
			if tokenErr.Portal == "B" {
				field = "portal_b_token"
			}
			api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
				fmt.Sprintf("Token validation failed: %v", tokenErr), corrID,
				[]api.ErrorDetail{{Message: tokenErr.Error(), Code: "INVALID_TOKEN", In: field}}))
			return
		}
		api.HandleServiceError(w, r, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, validateTokensResponse{
		Success:   true,
		SessionID: sess.ID,
		Message:   "Tokens validated successfully",
	})
}

type refreshCacheResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RefreshCache clears the session's cached responses, scoped to one object
// type when the object_type query parameter is set.
func (h *Handler) RefreshCache(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	objectType := r.URL.Query().Get("object_type")

	if _, err := h.service.RefreshCache(r.Context(), sessionID, objectType); err != nil {
		api.HandleServiceError(w, r, err)
		return
	}

	message := "All cache refreshed"
	if objectType != "" {
		message = fmt.Sprintf("Cache refreshed for %s", objectType)
	}
	api.WriteJSON(w, http.StatusOK, refreshCacheResponse{Success: true, Message: message})
}

type cacheStatusResponse struct {
	Entries []domain.CacheEntry `json:"entries"`
}

// CacheStatus reports what the session has cached and whether each entry is
// still fresh.
func (h *Handler) CacheStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	entries, err := h.service.CacheStatus(r.Context(), sessionID)
	if err != nil {
		api.HandleServiceError(w, r, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, cacheStatusResponse{Entries: entries})
}
