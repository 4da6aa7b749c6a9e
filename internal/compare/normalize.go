// Package compare implements the schema comparison core: pairing properties
// and associations by identity across two portals and producing field-level
// diffs with deterministic ordering. It performs no I/O and never mutates its
// inputs, so it is safe to invoke concurrently on disjoint data.
package compare

import (
	"strings"

	"github.com/johnwards/portaldiff/internal/domain"
)

// customIDPrefix marks the portal-assigned custom object id space ("2-<n>").
const customIDPrefix = "2-"

// IsCustomObjectType reports whether objectType is a portal-assigned custom
// object identifier.
func IsCustomObjectType(objectType string) bool {
	return strings.HasPrefix(objectType, customIDPrefix)
}

// BuildObjectNameMapping maps custom object type ids from both portals to a
// comparison-stable "custom_<name>" key. Later entries overwrite earlier ones
// on id collision; standard object ids are never recorded.
func BuildObjectNameMapping(objectsA, objectsB []domain.ObjectInfo) map[string]string {
	mapping := make(map[string]string)
	for _, obj := range objectsA {
		if IsCustomObjectType(obj.ObjectTypeID) {
			mapping[obj.ObjectTypeID] = "custom_" + obj.Name
		}
	}
	for _, obj := range objectsB {
		if IsCustomObjectType(obj.ObjectTypeID) {
			mapping[obj.ObjectTypeID] = "custom_" + obj.Name
		}
	}
	return mapping
}

// NormalizeObjectType maps an object type identifier to a comparison-stable
// key. Custom ids resolve through idToName; unmapped custom ids fall back to
// "custom_<id>", so unmapped custom objects from different portals never
// compare equal. Standard identifiers pass through unchanged.
func NormalizeObjectType(objectType string, idToName map[string]string) string {
	if !IsCustomObjectType(objectType) {
		return objectType
	}
	if name, ok := idToName[objectType]; ok {
		return name
	}
	return "custom_" + objectType
}
