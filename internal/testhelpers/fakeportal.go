package testhelpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

// FakePortal serves canned CRM API responses so tests can exercise fetching,
// parsing, and comparison against a controlled upstream.
type FakePortal struct {
	// Token, when set, must match the request's bearer token or the fake
	// responds 401.
	Token string

	// PropertyPages holds pages of property payloads per object type. The
	// fake emits a paging cursor whenever more pages remain.
	PropertyPages map[string][][]any

	// Validations holds property validation payloads per object type id.
	Validations map[string][]any

	// Schemas holds custom object schema payloads.
	Schemas []any

	// Labels holds association label payloads keyed by "from/to". Pairs
	// without an entry respond 404.
	Labels map[string][]any

	// Fail429 makes the next n requests respond 429 before serving
	// normally.
	Fail429 int
}

// Server starts an httptest server emulating the CRM API. It is shut down
// when the test completes.
func (f *FakePortal) Server(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(f.Handler())
	t.Cleanup(server.Close)
	return server
}

// Handler returns the emulated CRM API as a plain handler, for tests that
// serve several portals behind one listener.
func (f *FakePortal) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /crm/v3/properties/{objectType}", func(w http.ResponseWriter, r *http.Request) {
		pages, ok := f.PropertyPages[r.PathValue("objectType")]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"status": "error", "message": "Unable to infer object type"})
			return
		}
		idx := 0
		if after := r.URL.Query().Get("after"); after != "" {
			idx, _ = strconv.Atoi(after)
		}
		if idx >= len(pages) {
			writeJSON(w, http.StatusOK, map[string]any{"results": []any{}})
			return
		}
		body := map[string]any{"results": pages[idx]}
		if idx+1 < len(pages) {
			body["paging"] = map[string]any{"next": map[string]any{"after": strconv.Itoa(idx + 1)}}
		}
		writeJSON(w, http.StatusOK, body)
	})

	mux.HandleFunc("GET /crm/v3/property-validations/{objectTypeId}", func(w http.ResponseWriter, r *http.Request) {
		results, ok := f.Validations[r.PathValue("objectTypeId")]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"status": "error", "message": "Not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"results": results})
	})

	mux.HandleFunc("GET /crm/v3/schemas", func(w http.ResponseWriter, r *http.Request) {
		results := f.Schemas
		if results == nil {
			results = []any{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"results": results})
	})

	mux.HandleFunc("GET /crm/v4/associations/{from}/{to}/labels", func(w http.ResponseWriter, r *http.Request) {
		results, ok := f.Labels[r.PathValue("from")+"/"+r.PathValue("to")]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"status": "error", "message": "Not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"results": results})
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f.Fail429 > 0 {
			f.Fail429--
			writeJSON(w, http.StatusTooManyRequests, map[string]any{"status": "error", "message": "Rate limited"})
			return
		}
		if f.Token != "" && r.Header.Get("Authorization") != "Bearer "+f.Token {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"status": "error", "message": "Invalid credentials"})
			return
		}
		mux.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
