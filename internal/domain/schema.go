package domain

// ObjectSchema is a custom object schema definition as returned by the CRM
// schemas API. Custom schemas carry an ObjectTypeID in the "2-<n>" space and a
// FullyQualifiedName with a "p" prefix.
type ObjectSchema struct {
	ID                     string       `json:"id"`
	Name                   string       `json:"name"`
	ObjectTypeID           string       `json:"objectTypeId"`
	Labels                 SchemaLabels `json:"labels"`
	PrimaryDisplayProperty string       `json:"primaryDisplayProperty,omitempty"`
	RequiredProperties     []string     `json:"requiredProperties,omitempty"`
	SearchableProperties   []string     `json:"searchableProperties,omitempty"`
	FullyQualifiedName     string       `json:"fullyQualifiedName"`
	Archived               bool         `json:"archived"`
	CreatedAt              string       `json:"createdAt,omitempty"`
	UpdatedAt              string       `json:"updatedAt,omitempty"`
}

// SchemaLabels holds the singular and plural display labels for a schema.
type SchemaLabels struct {
	Singular string `json:"singular"`
	Plural   string `json:"plural"`
}

// Info converts a schema into the ObjectInfo used for object listings and
// endpoint normalization.
func (s *ObjectSchema) Info() ObjectInfo {
	labels := map[string]string{}
	if s.Labels.Singular != "" {
		labels["singular"] = s.Labels.Singular
	}
	if s.Labels.Plural != "" {
		labels["plural"] = s.Labels.Plural
	}
	return ObjectInfo{
		Name:                   s.Name,
		ObjectTypeID:           s.ObjectTypeID,
		Labels:                 labels,
		RequiredProperties:     s.RequiredProperties,
		SearchableProperties:   s.SearchableProperties,
		PrimaryDisplayProperty: s.PrimaryDisplayProperty,
	}
}
