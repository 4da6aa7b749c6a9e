package domain

// ObjectInfo identifies an object type available in a portal. For custom
// objects ObjectTypeID carries the portal-assigned "2-<n>" identifier used to
// build the cross-portal name mapping; ObjectInfo values are never compared
// directly.
type ObjectInfo struct {
	Name                   string            `json:"name"`
	ObjectTypeID           string            `json:"objectTypeId,omitempty"`
	Labels                 map[string]string `json:"labels,omitempty"`
	RequiredProperties     []string          `json:"requiredProperties,omitempty"`
	SearchableProperties   []string          `json:"searchableProperties,omitempty"`
	PrimaryDisplayProperty string            `json:"primaryDisplayProperty,omitempty"`
}
