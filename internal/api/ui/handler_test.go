package ui_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/johnwards/portaldiff/internal/api"
	"github.com/johnwards/portaldiff/internal/api/ui"
	"github.com/johnwards/portaldiff/internal/database"
	"github.com/johnwards/portaldiff/internal/hubspot"
	"github.com/johnwards/portaldiff/internal/portal"
	"github.com/johnwards/portaldiff/internal/store"
	"github.com/johnwards/portaldiff/internal/testhelpers"
)

const (
	tokenA = "pat-na1-portal-a"
	tokenB = "pat-na1-portal-b"
)

func prop(name, label string) map[string]any {
	return map[string]any{
		"name": name, "label": label, "type": "string",
		"fieldType": "text", "groupName": "contactinformation",
	}
}

func contactFake(props ...any) *testhelpers.FakePortal {
	return &testhelpers.FakePortal{
		PropertyPages: map[string][][]any{"contacts": {props}},
	}
}

// setupServer wires the UI pages over a service that routes each token to its
// own fake portal.
func setupServer(t *testing.T, fakeA, fakeB *testhelpers.FakePortal) (*httptest.Server, *portal.Service) {
	t.Helper()

	fakeA.Token = tokenA
	fakeB.Token = tokenB
	upstreams := map[string]*httptest.Server{
		tokenA: fakeA.Server(t),
		tokenB: fakeB.Server(t),
	}

	db := testhelpers.NewTestDB(t)
	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	st := store.New(db, time.Hour, time.Hour, time.Hour)
	svc := portal.NewService(st, portal.WithClientFactory(func(token string) *hubspot.Client {
		upstream, ok := upstreams[token]
		if !ok {
			t.Errorf("no fake portal registered for token %q", token)
			upstream = upstreams[tokenA]
		}
		return hubspot.New(token,
			hubspot.WithBaseURL(upstream.URL),
			hubspot.WithRetryInterval(time.Millisecond),
		)
	}))

	mux := http.NewServeMux()
	ui.RegisterRoutes(mux, svc)
	srv := httptest.NewServer(api.Chain(mux, api.RequestID()))
	t.Cleanup(srv.Close)
	return srv, svc
}

func createSession(t *testing.T, svc *portal.Service) string {
	t.Helper()
	sess, err := svc.ValidateTokens(context.Background(), "Production", tokenA, "Sandbox", tokenB)
	if err != nil {
		t.Fatalf("ValidateTokens() error = %v", err)
	}
	return sess.ID
}

func getPage(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	return resp.StatusCode, string(body)
}

func mustContain(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("page is missing %q", want)
		}
	}
}

func TestIndexPage(t *testing.T) {
	srv, _ := setupServer(t, contactFake(prop("email", "Email")), contactFake(prop("email", "Email")))

	status, body := getPage(t, srv.URL+"/")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	mustContain(t, body, "Compare two HubSpot portals", "portal_a_token", "portal_b_token", "/validate-tokens")
}

func TestIndexPageResumesSession(t *testing.T) {
	srv, svc := setupServer(t, contactFake(prop("email", "Email")), contactFake(prop("email", "Email")))
	sessionID := createSession(t, svc)

	status, body := getPage(t, srv.URL+"/?session_id="+sessionID)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	mustContain(t, body,
		"Production vs Sandbox",
		"/compare/"+sessionID+"/contacts",
		"/custom-object-matching/"+sessionID,
		"/compare-associations/"+sessionID,
	)
}

func TestIndexPageIgnoresDeadSession(t *testing.T) {
	srv, _ := setupServer(t, contactFake(prop("email", "Email")), contactFake(prop("email", "Email")))

	status, body := getPage(t, srv.URL+"/?session_id=no-such-session")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if strings.Contains(body, "no-such-session") {
		t.Error("dead session id leaked into the page")
	}
	mustContain(t, body, "Compare two HubSpot portals")
}

func TestComparePage(t *testing.T) {
	fakeA := contactFake(prop("email", "Email"), prop("legacy_id", "Legacy ID"))
	fakeB := contactFake(prop("email", "Email Address"))
	srv, svc := setupServer(t, fakeA, fakeB)
	sessionID := createSession(t, svc)

	status, body := getPage(t, srv.URL+"/compare/"+sessionID+"/contacts")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	mustContain(t, body,
		"Production vs Sandbox",
		"email",
		"Email Address",
		"Label",
		"legacy_id",
		"status-different",
		"status-only-in-a",
		"/export/"+sessionID+"/contacts",
	)
}

func TestComparePageUnknownSession(t *testing.T) {
	srv, _ := setupServer(t, contactFake(prop("email", "Email")), contactFake(prop("email", "Email")))

	status, body := getPage(t, srv.URL+"/compare/no-such-session/contacts")
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
	mustContain(t, body, "Session not found")
}

func TestCompareCustomPage(t *testing.T) {
	fakeA := contactFake(prop("email", "Email"))
	fakeA.PropertyPages["2-111"] = [][]any{{
		map[string]any{"name": "serial", "label": "Serial", "type": "string", "fieldType": "text", "groupName": "machines"},
	}}
	fakeB := contactFake(prop("email", "Email"))
	fakeB.PropertyPages["2-222"] = [][]any{{
		map[string]any{"name": "serial", "label": "Serial", "type": "string", "fieldType": "text", "groupName": "p9_machines"},
	}}
	srv, svc := setupServer(t, fakeA, fakeB)
	sessionID := createSession(t, svc)

	status, body := getPage(t, srv.URL+"/compare-custom/"+sessionID+"/2-111/2-222")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	mustContain(t, body, "Custom Object (2-111 vs 2-222)", "serial vs serial", "status-identical")
	if strings.Contains(body, "/export/") {
		t.Error("cross-object page should not offer a property export link")
	}
}

func TestCustomObjectMatchingPage(t *testing.T) {
	fakeA := contactFake(prop("email", "Email"))
	fakeA.Schemas = []any{map[string]any{
		"name": "machines", "objectTypeId": "2-111", "fullyQualifiedName": "p1_machines",
	}}
	fakeB := contactFake(prop("email", "Email"))
	fakeB.Schemas = []any{
		map[string]any{"name": "machines", "objectTypeId": "2-222", "fullyQualifiedName": "p2_machines"},
		map[string]any{"name": "gadgets", "objectTypeId": "2-333", "fullyQualifiedName": "p2_gadgets"},
	}
	srv, svc := setupServer(t, fakeA, fakeB)
	sessionID := createSession(t, svc)

	status, body := getPage(t, srv.URL+"/custom-object-matching/"+sessionID)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	mustContain(t, body,
		"machines",
		"/compare-custom/"+sessionID+"/2-111/2-222",
		"gadgets",
		"Only in Sandbox",
	)
}

func TestCompareAssociationsPage(t *testing.T) {
	fakeA := contactFake(prop("email", "Email"))
	fakeA.Labels = map[string][]any{
		"0-1/0-2": {map[string]any{"category": "HUBSPOT_DEFINED", "typeId": 1, "label": nil}},
	}
	fakeB := contactFake(prop("email", "Email"))
	fakeB.Labels = map[string][]any{
		"0-1/0-2": {map[string]any{"category": "HUBSPOT_DEFINED", "typeId": 1, "label": nil}},
		"0-2/0-3": {map[string]any{"category": "HUBSPOT_DEFINED", "typeId": 5, "label": nil}},
	}
	srv, svc := setupServer(t, fakeA, fakeB)
	sessionID := createSession(t, svc)

	status, body := getPage(t, srv.URL+"/compare-associations/"+sessionID)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	mustContain(t, body,
		"Association definitions",
		"Unlabeled (0-1 → 0-2)",
		"status-identical",
		"status-only-in-b",
		"/export-associations/"+sessionID,
	)
}

func TestStaticAssets(t *testing.T) {
	srv, _ := setupServer(t, contactFake(prop("email", "Email")), contactFake(prop("email", "Email")))

	resp, err := http.Get(srv.URL + "/static/style.css")
	if err != nil {
		t.Fatalf("get style.css: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/css") {
		t.Errorf("Content-Type = %q, want text/css", ct)
	}
}
