package hubspot

import (
	"slices"
	"strings"

	"github.com/johnwards/portaldiff/internal/domain"
)

// ObjectTypeIDs maps standard object type names to their fixed ids. Standard
// ids are stable across portals.
var ObjectTypeIDs = map[string]string{
	"contacts":             "0-1",
	"companies":            "0-2",
	"deals":                "0-3",
	"tickets":              "0-5",
	"appointments":         "0-421",
	"calls":                "0-48",
	"communications":       "0-18",
	"courses":              "0-410",
	"emails":               "0-49",
	"feedback_submissions": "0-19",
	"invoices":             "0-53",
	"leads":                "0-136",
	"line_items":           "0-8",
	"listings":             "0-420",
	"marketing_events":     "0-54",
	"meetings":             "0-47",
	"notes":                "0-46",
	"orders":               "0-123",
	"payments":             "0-101",
	"postal_mail":          "0-116",
	"products":             "0-7",
	"quotes":               "0-14",
	"services":             "0-162",
	"subscriptions":        "0-69",
	"tasks":                "0-27",
	"users":                "0-115",
}

// StandardObjects are the standard object types offered for comparison.
var StandardObjects = []string{
	"contacts", "companies", "deals", "tickets",
	"products", "line_items", "quotes", "calls",
	"emails", "meetings", "notes", "tasks",
}

// ObjectTypeID resolves an object type name or id to the id form used by the
// validations and associations APIs. Custom ("2-<n>") and raw standard ("0-<n>")
// ids pass through; unknown names resolve to "".
func ObjectTypeID(objectType string) string {
	if id, ok := ObjectTypeIDs[objectType]; ok {
		return id
	}
	if strings.HasPrefix(objectType, "2-") || strings.HasPrefix(objectType, "0-") {
		return objectType
	}
	return ""
}

// standardAssociationPairs are the ordered pairs of core CRM objects that
// commonly carry association labels, both directions.
var standardAssociationPairs = [][2]string{
	{"0-1", "0-2"}, {"0-2", "0-1"},
	{"0-1", "0-3"}, {"0-3", "0-1"},
	{"0-1", "0-5"}, {"0-5", "0-1"},
	{"0-2", "0-3"}, {"0-3", "0-2"},
	{"0-2", "0-5"}, {"0-5", "0-2"},
	{"0-3", "0-5"}, {"0-5", "0-3"},
}

// primaryStandardIDs are the standard objects custom objects are probed
// against when enumerating associations.
var primaryStandardIDs = []string{"0-1", "0-2", "0-3", "0-5"}

// associationPairs builds the candidate (from, to) pairs to ask the labels
// API about: the standard core pairs, every custom object against the primary
// standard objects in both directions, and every ordered custom-to-custom
// pair.
func associationPairs(customObjects []domain.ObjectInfo) [][2]string {
	pairs := slices.Clone(standardAssociationPairs)
	for _, obj := range customObjects {
		if obj.ObjectTypeID == "" {
			continue
		}
		for _, std := range primaryStandardIDs {
			pairs = append(pairs, [2]string{obj.ObjectTypeID, std}, [2]string{std, obj.ObjectTypeID})
		}
	}
	for i := range customObjects {
		for j := range customObjects {
			if i == j || customObjects[i].ObjectTypeID == "" || customObjects[j].ObjectTypeID == "" {
				continue
			}
			pairs = append(pairs, [2]string{customObjects[i].ObjectTypeID, customObjects[j].ObjectTypeID})
		}
	}
	return pairs
}
