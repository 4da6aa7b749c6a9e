package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// WriteJSON marshals v as JSON and writes it to w with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

// WriteJSONAttachment writes v as a downloadable, indented JSON document.
func WriteJSONAttachment(w http.ResponseWriter, filename string, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		slog.Error("failed to write JSON attachment", "error", err)
	}
}
