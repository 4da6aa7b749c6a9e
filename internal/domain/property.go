package domain

// PropertyType is the data type of a property.
type PropertyType string

// Property data types as returned by the CRM API.
const (
	TypeString      PropertyType = "string"
	TypeNumber      PropertyType = "number"
	TypeDate        PropertyType = "date"
	TypeDateTime    PropertyType = "datetime"
	TypeEnumeration PropertyType = "enumeration"
	TypeBool        PropertyType = "bool"
	TypePhoneNumber PropertyType = "phone_number"
	TypeJSON        PropertyType = "json"
)

// FieldType is the form control used to edit a property.
type FieldType string

// Property field types as returned by the CRM API.
const (
	FieldText            FieldType = "text"
	FieldTextarea        FieldType = "textarea"
	FieldNumber          FieldType = "number"
	FieldDate            FieldType = "date"
	FieldDateTime        FieldType = "datetime"
	FieldSelect          FieldType = "select"
	FieldRadio           FieldType = "radio"
	FieldCheckbox        FieldType = "checkbox"
	FieldBooleanCheckbox FieldType = "booleancheckbox"
	FieldFile            FieldType = "file"
)

// Property is a HubSpot CRM property definition as fetched from one portal.
// Name is the identity key within an object type; everything else is
// comparison payload.
type Property struct {
	Name                     string           `json:"name"`
	Label                    string           `json:"label"`
	Description              *string          `json:"description,omitempty"`
	GroupName                *string          `json:"groupName,omitempty"`
	Type                     PropertyType     `json:"type"`
	FieldType                FieldType        `json:"fieldType"`
	Options                  []Option         `json:"options,omitempty"`
	Required                 bool             `json:"required"`
	SearchableInGlobalSearch bool             `json:"searchableInGlobalSearch"`
	HasUniqueValue           bool             `json:"hasUniqueValue"`
	Hidden                   bool             `json:"hidden"`
	DisplayOrder             *int             `json:"displayOrder,omitempty"`
	Calculated               bool             `json:"calculated"`
	ExternalOptions          bool             `json:"externalOptions"`
	HubspotDefined           bool             `json:"hubspotDefined"`
	ShowCurrencySymbol       *bool            `json:"showCurrencySymbol,omitempty"`
	CreatedAt                string           `json:"createdAt,omitempty"`
	UpdatedAt                string           `json:"updatedAt,omitempty"`
	Archived                 bool             `json:"archived"`
	ValidationRules          []ValidationRule `json:"validationRules,omitempty"`
}

// Option is a selectable option for enumeration properties. Value is the
// identity key within a property's option set.
type Option struct {
	Label        string  `json:"label"`
	Value        string  `json:"value"`
	Description  *string `json:"description,omitempty"`
	Hidden       bool    `json:"hidden"`
	DisplayOrder *int    `json:"displayOrder,omitempty"`
}

// ValidationRule is a validation constraint on a property. Name is derived
// from the upstream rule type (for example "MIN_LENGTH") and is the identity
// key within a property's rule set; only the parameters relevant to the rule
// type are populated.
type ValidationRule struct {
	Name                string   `json:"name"`
	Enabled             bool     `json:"enabled"`
	Blocker             bool     `json:"blocker"`
	Message             *string  `json:"message,omitempty"`
	MinLength           *int     `json:"minLength,omitempty"`
	MaxLength           *int     `json:"maxLength,omitempty"`
	Min                 *float64 `json:"min,omitempty"`
	Max                 *float64 `json:"max,omitempty"`
	Pattern             *string  `json:"pattern,omitempty"`
	UseDefaultBlockList *bool    `json:"useDefaultBlockList,omitempty"`
	DomainBlockList     []string `json:"domainBlockList,omitempty"`
}
