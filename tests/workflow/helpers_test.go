package workflow_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

// doGet makes a GET request to the running server. The caller is responsible
// for closing the response body.
func doGet(t *testing.T, path string) *http.Response {
	t.Helper()

	resp, err := http.Get(serverURL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

// doPost makes a bodyless POST request to the running server.
func doPost(t *testing.T, path string) *http.Response {
	t.Helper()

	resp, err := http.Post(serverURL+path, "", nil)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

// postForm posts form values the way the token form submits them.
func postForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()

	resp, err := http.PostForm(serverURL+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

// newSession validates the fixture tokens and returns the created session id.
// Each test creates its own session so tests stay independent of each other's
// cache state.
func newSession(t *testing.T) string {
	t.Helper()

	resp := postForm(t, "/validate-tokens", url.Values{
		"portal_a_name":  {"Production"},
		"portal_a_token": {tokenA},
		"portal_b_name":  {"Sandbox"},
		"portal_b_token": {tokenB},
	})
	mustStatus(t, resp, http.StatusOK)
	body := readJSON(t, resp)

	id := assertIsString(t, body, "session_id")
	if id == "" {
		t.Fatal("expected a session id")
	}
	return id
}

// readJSON reads the response body and unmarshals it into a map.
func readJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(b, &result); err != nil {
		t.Fatalf("unmarshal response (status %d): body=%s err=%v", resp.StatusCode, string(b), err)
	}
	return result
}

// readBody reads the response body as a string, for HTML pages.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return string(b)
}

// mustStatus asserts the HTTP response has the expected status code.
func mustStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d; body=%s", expected, resp.StatusCode, string(b))
	}
}

// assertErrorEnvelope validates the response matches the JSON error envelope.
func assertErrorEnvelope(t *testing.T, body map[string]any, expectedCategory string) {
	t.Helper()
	assertStringField(t, body, "status", "error")
	assertFieldPresent(t, body, "message")
	assertFieldPresent(t, body, "correlationId")
	if expectedCategory != "" {
		assertStringField(t, body, "category", expectedCategory)
	}
}

// assertFieldPresent checks that a key exists in the map.
func assertFieldPresent(t *testing.T, m map[string]any, key string) {
	t.Helper()
	if _, ok := m[key]; !ok {
		t.Errorf("expected field %q to be present, got keys: %v", key, mapKeys(m))
	}
}

// assertStringField checks that a key exists and has the expected string value.
func assertStringField(t *testing.T, m map[string]any, key, expected string) {
	t.Helper()
	v, ok := m[key]
	if !ok {
		t.Errorf("expected field %q to be present", key)
		return
	}
	s, ok := v.(string)
	if !ok {
		t.Errorf("expected field %q to be string, got %T", key, v)
		return
	}
	if s != expected {
		t.Errorf("field %q: expected %q, got %q", key, expected, s)
	}
}

// assertBoolField checks that a key exists and has the expected boolean value.
func assertBoolField(t *testing.T, m map[string]any, key string, expected bool) {
	t.Helper()
	v, ok := m[key]
	if !ok {
		t.Errorf("expected field %q to be present", key)
		return
	}
	b, ok := v.(bool)
	if !ok {
		t.Errorf("expected field %q to be bool, got %T", key, v)
		return
	}
	if b != expected {
		t.Errorf("field %q: expected %v, got %v", key, expected, b)
	}
}

// assertIntField checks that a key exists and has the expected numeric value.
func assertIntField(t *testing.T, m map[string]any, key string, expected int) {
	t.Helper()
	v, ok := m[key]
	if !ok {
		t.Errorf("expected field %q to be present", key)
		return
	}
	f, ok := v.(float64)
	if !ok {
		t.Errorf("expected field %q to be a number, got %T", key, v)
		return
	}
	if int(f) != expected {
		t.Errorf("field %q: expected %d, got %d", key, expected, int(f))
	}
}

// assertIsString checks that a field is a string and returns its value.
func assertIsString(t *testing.T, m map[string]any, key string) string {
	t.Helper()
	v, ok := m[key]
	if !ok {
		t.Errorf("expected field %q to be present", key)
		return ""
	}
	s, ok := v.(string)
	if !ok {
		t.Errorf("expected field %q to be string, got %T", key, v)
		return ""
	}
	return s
}

// assertIsArray checks that a field is a JSON array and returns it.
func assertIsArray(t *testing.T, m map[string]any, key string) []any {
	t.Helper()
	v, ok := m[key]
	if !ok {
		t.Errorf("expected field %q to be present", key)
		return nil
	}
	a, ok := v.([]any)
	if !ok {
		t.Errorf("expected field %q to be array, got %T", key, v)
		return nil
	}
	return a
}

// assertIsObject checks that a field is a JSON object and returns it.
func assertIsObject(t *testing.T, m map[string]any, key string) map[string]any {
	t.Helper()
	v, ok := m[key]
	if !ok {
		t.Errorf("expected field %q to be present", key)
		return nil
	}
	o, ok := v.(map[string]any)
	if !ok {
		t.Errorf("expected field %q to be object, got %T", key, v)
		return nil
	}
	return o
}

// toObject converts a slice element to a map.
func toObject(t *testing.T, v any) map[string]any {
	t.Helper()
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", v)
	}
	return m
}

// findComparison returns the comparison entry whose field matches value, for
// scanning result lists keyed by property_name or match_key.
func findComparison(t *testing.T, comparisons []any, field, value string) map[string]any {
	t.Helper()
	for _, c := range comparisons {
		obj := toObject(t, c)
		if s, _ := obj[field].(string); s == value {
			return obj
		}
	}
	t.Fatalf("no comparison with %s=%q", field, value)
	return nil
}

// findByName returns the list entry whose "name" field matches.
func findByName(t *testing.T, items []any, name string) map[string]any {
	t.Helper()
	for _, item := range items {
		obj := toObject(t, item)
		if s, _ := obj["name"].(string); s == name {
			return obj
		}
	}
	t.Fatalf("no entry named %q", name)
	return nil
}

// assertContains checks that an HTML page contains the wanted fragment.
func assertContains(t *testing.T, body, want string) {
	t.Helper()
	if !strings.Contains(body, want) {
		t.Errorf("expected body to contain %q", want)
	}
}

// mapKeys returns the keys of a map for diagnostic output.
func mapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
