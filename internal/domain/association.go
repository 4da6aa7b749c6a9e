package domain

// AssociationConfiguration is one association definition between two object
// types in a portal. An empty Label means the default, unlabeled relationship.
// TypeID is portal-assigned and is expected to differ across portals, so it
// never participates in matching or diffing.
type AssociationConfiguration struct {
	Label          string `json:"label,omitempty"`
	FromObjectType string `json:"fromObjectType"`
	ToObjectType   string `json:"toObjectType"`
	Category       string `json:"category"`
	TypeID         int    `json:"typeId"`
}
