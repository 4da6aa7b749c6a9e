package testhelpers

import "slices"

// PropertySpec describes one property definition served by FakePortal.
// Tests start from the standard catalogs, tweak individual fields, and
// render the result with Payload or Pages.
type PropertySpec struct {
	Name           string
	Label          string
	Type           string
	FieldType      string
	GroupName      string
	Description    string
	HasUniqueValue bool
	HubspotDefined bool
	Options        []OptionSpec
}

// OptionSpec is one selectable option on an enumeration property.
type OptionSpec struct {
	Value        string
	Label        string
	DisplayOrder int
}

// Payload renders the definition in the wire shape the properties API
// returns. Optional fields are emitted only when set, so both portals must
// carry the same fields for a property to compare identical.
func (p PropertySpec) Payload() map[string]any {
	m := map[string]any{
		"name":      p.Name,
		"label":     p.Label,
		"type":      p.Type,
		"fieldType": p.FieldType,
		"groupName": p.GroupName,
	}
	if p.Description != "" {
		m["description"] = p.Description
	}
	if p.HasUniqueValue {
		m["hasUniqueValue"] = true
	}
	if p.HubspotDefined {
		m["hubspotDefined"] = true
	}
	if len(p.Options) > 0 {
		options := make([]any, len(p.Options))
		for i, o := range p.Options {
			options[i] = map[string]any{
				"value":        o.Value,
				"label":        o.Label,
				"displayOrder": o.DisplayOrder,
			}
		}
		m["options"] = options
	}
	return m
}

// Payloads renders a list of specs.
func Payloads(specs []PropertySpec) []any {
	out := make([]any, len(specs))
	for i, s := range specs {
		out[i] = s.Payload()
	}
	return out
}

// Pages splits specs into pages of at most size payloads each, the shape
// FakePortal.PropertyPages expects.
func Pages(specs []PropertySpec, size int) [][]any {
	payloads := Payloads(specs)
	var pages [][]any
	for len(payloads) > size {
		pages = append(pages, payloads[:size])
		payloads = payloads[size:]
	}
	return append(pages, payloads)
}

// bookkeepingProperties are the definitions every object type carries.
func bookkeepingProperties(group string) []PropertySpec {
	return []PropertySpec{
		{Name: "hs_object_id", Label: "Object ID", Type: "number", FieldType: "number", GroupName: group, HubspotDefined: true},
		{Name: "hs_createdate", Label: "Create date", Type: "datetime", FieldType: "date", GroupName: group, HubspotDefined: true},
		{Name: "hs_lastmodifieddate", Label: "Last modified date", Type: "datetime", FieldType: "date", GroupName: group, HubspotDefined: true},
	}
}

// lifecycleStages are the default contact funnel stages, in funnel order.
var lifecycleStages = []OptionSpec{
	{Value: "subscriber", Label: "Subscriber", DisplayOrder: 0},
	{Value: "lead", Label: "Lead", DisplayOrder: 1},
	{Value: "marketingqualifiedlead", Label: "Marketing Qualified Lead", DisplayOrder: 2},
	{Value: "salesqualifiedlead", Label: "Sales Qualified Lead", DisplayOrder: 3},
	{Value: "opportunity", Label: "Opportunity", DisplayOrder: 4},
	{Value: "customer", Label: "Customer", DisplayOrder: 5},
	{Value: "evangelist", Label: "Evangelist", DisplayOrder: 6},
	{Value: "other", Label: "Other", DisplayOrder: 7},
}

// dealStages mirror the default sales pipeline, in pipeline order.
var dealStages = []OptionSpec{
	{Value: "appointmentscheduled", Label: "Appointment Scheduled", DisplayOrder: 0},
	{Value: "qualifiedtobuy", Label: "Qualified To Buy", DisplayOrder: 1},
	{Value: "presentationscheduled", Label: "Presentation Scheduled", DisplayOrder: 2},
	{Value: "decisionmakerboughtin", Label: "Decision Maker Bought-In", DisplayOrder: 3},
	{Value: "contractsent", Label: "Contract Sent", DisplayOrder: 4},
	{Value: "closedwon", Label: "Closed Won", DisplayOrder: 5},
	{Value: "closedlost", Label: "Closed Lost", DisplayOrder: 6},
}

// ContactProperties returns the default contact property catalog: the
// bookkeeping properties plus the standard contact fields. Each call builds
// fresh specs, so callers may mutate them freely.
func ContactProperties() []PropertySpec {
	props := bookkeepingProperties("contactinformation")
	return append(props,
		PropertySpec{Name: "email", Label: "Email", Type: "string", FieldType: "text", GroupName: "contactinformation", HasUniqueValue: true, HubspotDefined: true},
		PropertySpec{Name: "firstname", Label: "First Name", Type: "string", FieldType: "text", GroupName: "contactinformation", HubspotDefined: true},
		PropertySpec{Name: "lastname", Label: "Last Name", Type: "string", FieldType: "text", GroupName: "contactinformation", HubspotDefined: true},
		PropertySpec{Name: "phone", Label: "Phone Number", Type: "string", FieldType: "phonenumber", GroupName: "contactinformation", HubspotDefined: true},
		PropertySpec{Name: "company", Label: "Company Name", Type: "string", FieldType: "text", GroupName: "contactinformation", HubspotDefined: true},
		PropertySpec{Name: "lifecyclestage", Label: "Lifecycle Stage", Type: "enumeration", FieldType: "radio", GroupName: "contactinformation", HubspotDefined: true, Options: slices.Clone(lifecycleStages)},
		PropertySpec{Name: "hubspot_owner_id", Label: "Owner", Type: "string", FieldType: "text", GroupName: "contactinformation", HubspotDefined: true},
	)
}

// DealProperties returns the default deal property catalog. The dealstage
// options mirror the default sales pipeline.
func DealProperties() []PropertySpec {
	props := bookkeepingProperties("dealinformation")
	return append(props,
		PropertySpec{Name: "dealname", Label: "Deal Name", Type: "string", FieldType: "text", GroupName: "dealinformation", HubspotDefined: true},
		PropertySpec{Name: "dealstage", Label: "Deal Stage", Type: "enumeration", FieldType: "radio", GroupName: "dealinformation", HubspotDefined: true, Options: slices.Clone(dealStages)},
		PropertySpec{Name: "pipeline", Label: "Pipeline", Type: "enumeration", FieldType: "radio", GroupName: "dealinformation", HubspotDefined: true, Options: []OptionSpec{{Value: "default", Label: "Sales Pipeline", DisplayOrder: 0}}},
		PropertySpec{Name: "amount", Label: "Amount", Type: "number", FieldType: "number", GroupName: "dealinformation", HubspotDefined: true},
		PropertySpec{Name: "closedate", Label: "Close Date", Type: "date", FieldType: "date", GroupName: "dealinformation", HubspotDefined: true},
		PropertySpec{Name: "hubspot_owner_id", Label: "Owner", Type: "string", FieldType: "text", GroupName: "dealinformation", HubspotDefined: true},
	)
}

// standardLabelDef defines one HubSpot-defined association label between two
// standard objects.
type standardLabelDef struct {
	from   string
	to     string
	typeID int
	label  string // empty for the unlabeled default
}

// standardLabels are the HubSpot-defined association types between the core
// CRM objects: the unlabeled defaults in both directions plus the Primary
// contact-company pair.
var standardLabels = []standardLabelDef{
	{from: "0-1", to: "0-2", typeID: 1},
	{from: "0-2", to: "0-1", typeID: 2},
	{from: "0-1", to: "0-2", typeID: 279, label: "Primary"},
	{from: "0-2", to: "0-1", typeID: 280, label: "Primary"},
	{from: "0-1", to: "0-3", typeID: 3},
	{from: "0-3", to: "0-1", typeID: 4},
	{from: "0-2", to: "0-3", typeID: 5},
	{from: "0-3", to: "0-2", typeID: 6},
	{from: "0-1", to: "0-5", typeID: 15},
	{from: "0-5", to: "0-1", typeID: 16},
	{from: "0-2", to: "0-5", typeID: 25},
	{from: "0-5", to: "0-2", typeID: 26},
}

// AssociationLabel renders one labels API result entry. A nil label is the
// unlabeled default.
func AssociationLabel(category string, typeID int, label any) map[string]any {
	return map[string]any{"category": category, "typeId": typeID, "label": label}
}

// StandardAssociationLabels returns the HubSpot-defined association labels
// between the core CRM objects, keyed "from/to" the way FakePortal.Labels
// expects. Each call returns a fresh map, so tests can add portal-specific
// entries.
func StandardAssociationLabels() map[string][]any {
	labels := make(map[string][]any)
	for _, def := range standardLabels {
		var label any
		if def.label != "" {
			label = def.label
		}
		key := def.from + "/" + def.to
		labels[key] = append(labels[key], AssociationLabel("HUBSPOT_DEFINED", def.typeID, label))
	}
	return labels
}
