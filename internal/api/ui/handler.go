// Package ui serves the server-rendered web pages: the token form, the
// comparison views, and the embedded static assets.
package ui

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/johnwards/portaldiff/internal/domain"
	"github.com/johnwards/portaldiff/internal/hubspot"
	"github.com/johnwards/portaldiff/internal/portal"
	"github.com/johnwards/portaldiff/internal/store"
	"github.com/johnwards/portaldiff/web"
)

// Handler renders the web UI pages.
type Handler struct {
	service   *portal.Service
	templates map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"statusClass": statusClass,
	"statusLabel": statusLabel,
}

func statusClass(s domain.ComparisonStatus) string {
	switch s {
	case domain.StatusIdentical:
		return "status-identical"
	case domain.StatusDifferent:
		return "status-different"
	case domain.StatusOnlyInA:
		return "status-only-in-a"
	case domain.StatusOnlyInB:
		return "status-only-in-b"
	default:
		return "status-unknown"
	}
}

func statusLabel(s domain.ComparisonStatus) string {
	switch s {
	case domain.StatusIdentical:
		return "Identical"
	case domain.StatusDifferent:
		return "Different"
	case domain.StatusOnlyInA:
		return "Only in A"
	case domain.StatusOnlyInB:
		return "Only in B"
	default:
		return string(s)
	}
}

// pageNames lists every page template under web/templates; each is parsed
// together with the shared base layout.
var pageNames = []string{"index", "comparison", "associations", "custom_objects", "error"}

// NewHandler parses the page templates from the embedded assets. A template
// that fails to parse is a build defect, so parse errors panic at startup.
func NewHandler(svc *portal.Service) *Handler {
	templates := make(map[string]*template.Template, len(pageNames))
	for _, page := range pageNames {
		t, err := template.New(page).Funcs(templateFuncs).ParseFS(web.AssetsFS,
			"templates/base.html", "templates/"+page+".html")
		if err != nil {
			panic("parse template " + page + ": " + err.Error())
		}
		templates[page] = t
	}
	return &Handler{service: svc, templates: templates}
}

func (h *Handler) render(w http.ResponseWriter, status int, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates[page].ExecuteTemplate(w, "base", data); err != nil {
		slog.Error("render page failed", "page", page, "error", err)
	}
}

type errorData struct {
	Title   string
	Message string
}

// renderError maps service errors onto HTML error pages with the same status
// codes the JSON surface uses.
func (h *Handler) renderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		h.render(w, http.StatusNotFound, "error", errorData{
			Title:   "Session not found",
			Message: "This comparison session does not exist or has expired.",
		})
	case hubspot.IsUpstream(err):
		h.render(w, http.StatusBadGateway, "error", errorData{
			Title:   "HubSpot request failed",
			Message: err.Error(),
		})
	default:
		slog.Error("page request failed", "error", err)
		h.render(w, http.StatusInternalServerError, "error", errorData{
			Title:   "Something went wrong",
			Message: "An internal error occurred. Check the server logs for details.",
		})
	}
}

type indexData struct {
	SessionID string
	Overview  *portal.ObjectsOverview
}

// Index serves the token form. With a session_id query parameter for a live
// session it also shows the object picker for that session; a dead session
// falls back to the plain form.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	var data indexData
	if sessionID := r.URL.Query().Get("session_id"); sessionID != "" {
		overview, err := h.service.Objects(r.Context(), sessionID)
		if err != nil {
			slog.Warn("session resume failed", "sessionId", sessionID, "error", err)
		} else {
			data.SessionID = sessionID
			data.Overview = overview
		}
	}
	h.render(w, http.StatusOK, "index", data)
}

type comparisonData struct {
	SessionID   string
	ObjectType  string // empty on cross-object pages, which have no export link
	Title       string
	PortalAName string
	PortalBName string
	Result      *domain.ComparisonResult
}

// CompareProperties renders the property comparison for one object type.
func (h *Handler) CompareProperties(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	objectType := r.PathValue("objectType")

	sess, err := h.service.Session(r.Context(), sessionID)
	if err != nil {
		h.renderError(w, err)
		return
	}
	result, err := h.service.CompareProperties(r.Context(), sessionID, objectType)
	if err != nil {
		h.renderError(w, err)
		return
	}

	h.render(w, http.StatusOK, "comparison", comparisonData{
		SessionID:   sessionID,
		ObjectType:  objectType,
		Title:       objectType,
		PortalAName: sess.PortalAName,
		PortalBName: sess.PortalBName,
		Result:      result,
	})
}

// CompareCustom renders a cross-object comparison between one custom object
// type from each portal, ignoring group names.
func (h *Handler) CompareCustom(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	objectTypeA := r.PathValue("objectTypeA")
	objectTypeB := r.PathValue("objectTypeB")

	sess, err := h.service.Session(r.Context(), sessionID)
	if err != nil {
		h.renderError(w, err)
		return
	}
	result, err := h.service.CompareCustomObjects(r.Context(), sessionID, objectTypeA, objectTypeB)
	if err != nil {
		h.renderError(w, err)
		return
	}

	h.render(w, http.StatusOK, "comparison", comparisonData{
		SessionID:   sessionID,
		Title:       result.ObjectType,
		PortalAName: sess.PortalAName,
		PortalBName: sess.PortalBName,
		Result:      result,
	})
}

type customMatch struct {
	Name string
	AID  string
	BID  string
}

type customObjectsData struct {
	SessionID   string
	PortalAName string
	PortalBName string
	Matched     []customMatch
	OnlyA       []domain.ObjectInfo
	OnlyB       []domain.ObjectInfo
}

// CustomObjectMatching lists both portals' custom objects, paired by schema
// name, with compare links for the pairs that exist on both sides.
func (h *Handler) CustomObjectMatching(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	overview, err := h.service.Objects(r.Context(), sessionID)
	if err != nil {
		h.renderError(w, err)
		return
	}

	data := customObjectsData{
		SessionID:   sessionID,
		PortalAName: overview.PortalA.Name,
		PortalBName: overview.PortalB.Name,
	}

	byNameB := make(map[string]domain.ObjectInfo, len(overview.PortalB.Custom))
	for _, obj := range overview.PortalB.Custom {
		byNameB[obj.Name] = obj
	}
	for _, objA := range overview.PortalA.Custom {
		if objB, ok := byNameB[objA.Name]; ok {
			data.Matched = append(data.Matched, customMatch{
				Name: objA.Name,
				AID:  objA.ObjectTypeID,
				BID:  objB.ObjectTypeID,
			})
			delete(byNameB, objA.Name)
		} else {
			data.OnlyA = append(data.OnlyA, objA)
		}
	}
	for _, objB := range overview.PortalB.Custom {
		if _, stillUnmatched := byNameB[objB.Name]; stillUnmatched {
			data.OnlyB = append(data.OnlyB, objB)
		}
	}

	slices.SortFunc(data.Matched, func(a, b customMatch) int { return strings.Compare(a.Name, b.Name) })
	slices.SortFunc(data.OnlyA, func(a, b domain.ObjectInfo) int { return strings.Compare(a.Name, b.Name) })
	slices.SortFunc(data.OnlyB, func(a, b domain.ObjectInfo) int { return strings.Compare(a.Name, b.Name) })

	h.render(w, http.StatusOK, "custom_objects", data)
}

type associationsData struct {
	SessionID   string
	PortalAName string
	PortalBName string
	Result      *domain.AssociationComparisonResult
}

// CompareAssociations renders the association definition comparison.
func (h *Handler) CompareAssociations(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	sess, err := h.service.Session(r.Context(), sessionID)
	if err != nil {
		h.renderError(w, err)
		return
	}
	result, err := h.service.CompareAssociations(r.Context(), sessionID)
	if err != nil {
		h.renderError(w, err)
		return
	}

	h.render(w, http.StatusOK, "associations", associationsData{
		SessionID:   sessionID,
		PortalAName: sess.PortalAName,
		PortalBName: sess.PortalBName,
		Result:      result,
	})
}
