package compare

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/johnwards/portaldiff/internal/domain"
)

// propertyField pairs a display label with an accessor over a property. The
// table order fixes the order in which diffs are emitted.
type propertyField struct {
	display string
	value   func(*domain.Property) domain.Value
}

var propertyFields = []propertyField{
	{"Label", func(p *domain.Property) domain.Value { return domain.StringValue(p.Label) }},
	{"Description", func(p *domain.Property) domain.Value { return domain.StringPtr(p.Description) }},
	{"Group Name", func(p *domain.Property) domain.Value { return domain.StringPtr(p.GroupName) }},
	{"Type", func(p *domain.Property) domain.Value { return domain.StringValue(string(p.Type)) }},
	{"Field Type", func(p *domain.Property) domain.Value { return domain.StringValue(string(p.FieldType)) }},
	{"Required", func(p *domain.Property) domain.Value { return domain.BoolValue(p.Required) }},
	{"Searchable in Global Search", func(p *domain.Property) domain.Value { return domain.BoolValue(p.SearchableInGlobalSearch) }},
	{"Has Unique Value", func(p *domain.Property) domain.Value { return domain.BoolValue(p.HasUniqueValue) }},
	{"Hidden", func(p *domain.Property) domain.Value { return domain.BoolValue(p.Hidden) }},
	{"Display Order", func(p *domain.Property) domain.Value { return domain.IntPtr(p.DisplayOrder) }},
	{"Calculated", func(p *domain.Property) domain.Value { return domain.BoolValue(p.Calculated) }},
	{"External Options", func(p *domain.Property) domain.Value { return domain.BoolValue(p.ExternalOptions) }},
	{"HubSpot Defined", func(p *domain.Property) domain.Value { return domain.BoolValue(p.HubspotDefined) }},
	{"Show Currency Symbol", func(p *domain.Property) domain.Value { return domain.BoolPtr(p.ShowCurrencySymbol) }},
}

var propertyFieldsExcludeGroup = withoutGroupField(propertyFields)

func withoutGroupField(fields []propertyField) []propertyField {
	out := make([]propertyField, 0, len(fields)-1)
	for _, f := range fields {
		if f.display != "Group Name" {
			out = append(out, f)
		}
	}
	return out
}

// optionField accessors; option descriptions collapse absent to empty before
// comparison, unlike property descriptions.
type optionField struct {
	display string
	value   func(*domain.Option) domain.Value
}

var optionFields = []optionField{
	{"Label", func(o *domain.Option) domain.Value { return domain.StringValue(o.Label) }},
	{"Description", func(o *domain.Option) domain.Value { return domain.StringValue(optionDescription(o)) }},
	{"Hidden", func(o *domain.Option) domain.Value { return domain.BoolValue(o.Hidden) }},
	{"Display Order", func(o *domain.Option) domain.Value { return domain.IntPtr(o.DisplayOrder) }},
}

func optionDescription(o *domain.Option) string {
	if o.Description == nil {
		return ""
	}
	return *o.Description
}

// ruleField accessors, compared for rules present on both sides.
type ruleField struct {
	display string
	value   func(*domain.ValidationRule) domain.Value
}

var ruleFields = []ruleField{
	{"Enabled", func(r *domain.ValidationRule) domain.Value { return domain.BoolValue(r.Enabled) }},
	{"Blocker", func(r *domain.ValidationRule) domain.Value { return domain.BoolValue(r.Blocker) }},
	{"Message", func(r *domain.ValidationRule) domain.Value { return domain.StringPtr(r.Message) }},
	{"Min Length", func(r *domain.ValidationRule) domain.Value { return domain.IntPtr(r.MinLength) }},
	{"Max Length", func(r *domain.ValidationRule) domain.Value { return domain.IntPtr(r.MaxLength) }},
	{"Min Value", func(r *domain.ValidationRule) domain.Value { return domain.FloatPtr(r.Min) }},
	{"Max Value", func(r *domain.ValidationRule) domain.Value { return domain.FloatPtr(r.Max) }},
	{"Regex Pattern", func(r *domain.ValidationRule) domain.Value { return domain.StringPtr(r.Pattern) }},
	{"Use Default Block List", func(r *domain.ValidationRule) domain.Value { return domain.BoolPtr(r.UseDefaultBlockList) }},
	{"Domain Block List", func(r *domain.ValidationRule) domain.Value { return domain.StringListValue(r.DomainBlockList) }},
}

// CompareProperties diffs two portals' property lists for one object type.
// Properties pair by name; the result lists every name from either side in
// lexicographic order. ObjectType on the result is left for the caller to
// stamp.
func CompareProperties(propertiesA, propertiesB []domain.Property) *domain.ComparisonResult {
	return compareProperties(propertiesA, propertiesB, propertyFields, sameNameKey)
}

// ComparePropertiesExcludeGroup is CompareProperties without the Group Name
// field, for callers pairing properties that may legitimately live in
// different groups (cross-object comparison). Matched pairs are keyed as
// "<nameA> vs <nameB>".
func ComparePropertiesExcludeGroup(propertiesA, propertiesB []domain.Property) *domain.ComparisonResult {
	return compareProperties(propertiesA, propertiesB, propertyFieldsExcludeGroup, pairNameKey)
}

func sameNameKey(a, _ *domain.Property) string {
	return a.Name
}

func pairNameKey(a, b *domain.Property) string {
	return fmt.Sprintf("%s vs %s", a.Name, b.Name)
}

func compareProperties(propertiesA, propertiesB []domain.Property, fields []propertyField, matchedKey func(a, b *domain.Property) string) *domain.ComparisonResult {
	byNameA := propertyIndex(propertiesA)
	byNameB := propertyIndex(propertiesB)
	names := unionKeys(byNameA, byNameB)

	result := &domain.ComparisonResult{
		ObjectType:       "unknown",
		TotalPropertiesA: len(propertiesA),
		TotalPropertiesB: len(propertiesB),
		Comparisons:      make([]domain.PropertyComparison, 0, len(names)),
	}

	for _, name := range names {
		propA, inA := byNameA[name]
		propB, inB := byNameB[name]

		var cmp domain.PropertyComparison
		switch {
		case inA && inB:
			cmp = comparePropertyPair(propA, propB, fields, matchedKey(propA, propB))
			if cmp.Status == domain.StatusIdentical {
				result.IdenticalCount++
			} else {
				result.DifferentCount++
			}
		case inA:
			cmp = domain.PropertyComparison{
				PropertyName: name,
				Status:       domain.StatusOnlyInA,
				PropertyA:    propA,
				Differences:  []domain.Diff{},
			}
			result.OnlyInACount++
		default:
			cmp = domain.PropertyComparison{
				PropertyName: name,
				Status:       domain.StatusOnlyInB,
				PropertyB:    propB,
				Differences:  []domain.Diff{},
			}
			result.OnlyInBCount++
		}
		result.Comparisons = append(result.Comparisons, cmp)
	}
	return result
}

// propertyIndex builds the name lookup; on duplicate names the last entry
// wins, silently.
func propertyIndex(properties []domain.Property) map[string]*domain.Property {
	index := make(map[string]*domain.Property, len(properties))
	for i := range properties {
		index[properties[i].Name] = &properties[i]
	}
	return index
}

func comparePropertyPair(a, b *domain.Property, fields []propertyField, key string) domain.PropertyComparison {
	diffs := []domain.Diff{}

	for _, f := range fields {
		valueA, valueB := f.value(a), f.value(b)
		if !valueA.Equal(valueB) {
			diffs = append(diffs, domain.Diff{
				FieldName:    f.display,
				PortalAValue: valueA,
				PortalBValue: valueB,
				Status:       domain.StatusDifferent,
			})
		}
	}

	if len(a.Options) > 0 || len(b.Options) > 0 {
		diffs = append(diffs, compareOptions(a.Options, b.Options)...)
	}
	if len(a.ValidationRules) > 0 || len(b.ValidationRules) > 0 {
		diffs = append(diffs, compareValidationRules(a.ValidationRules, b.ValidationRules)...)
	}

	status := domain.StatusIdentical
	if len(diffs) > 0 {
		status = domain.StatusDifferent
	}
	return domain.PropertyComparison{
		PropertyName: key,
		Status:       status,
		PropertyA:    a,
		PropertyB:    b,
		Differences:  diffs,
	}
}

func compareOptions(optionsA, optionsB []domain.Option) []domain.Diff {
	byValueA := optionIndex(optionsA)
	byValueB := optionIndex(optionsB)

	var diffs []domain.Diff
	for _, value := range unionKeys(byValueA, byValueB) {
		optA, inA := byValueA[value]
		optB, inB := byValueB[value]

		switch {
		case inA && inB:
			for _, f := range optionFields {
				valueA, valueB := f.value(optA), f.value(optB)
				if !valueA.Equal(valueB) {
					diffs = append(diffs, domain.Diff{
						FieldName:    fmt.Sprintf("Option '%s' %s", value, f.display),
						PortalAValue: valueA,
						PortalBValue: valueB,
						Status:       domain.StatusDifferent,
					})
				}
			}
		case inA:
			diffs = append(diffs, domain.Diff{
				FieldName:    fmt.Sprintf("Option '%s'", value),
				PortalAValue: domain.StringValue(fmt.Sprintf("%s (%s)", optA.Label, optA.Value)),
				PortalBValue: domain.AbsentValue(),
				Status:       domain.StatusOnlyInA,
			})
		default:
			diffs = append(diffs, domain.Diff{
				FieldName:    fmt.Sprintf("Option '%s'", value),
				PortalAValue: domain.AbsentValue(),
				PortalBValue: domain.StringValue(fmt.Sprintf("%s (%s)", optB.Label, optB.Value)),
				Status:       domain.StatusOnlyInB,
			})
		}
	}
	return diffs
}

func optionIndex(options []domain.Option) map[string]*domain.Option {
	index := make(map[string]*domain.Option, len(options))
	for i := range options {
		index[options[i].Value] = &options[i]
	}
	return index
}

func compareValidationRules(rulesA, rulesB []domain.ValidationRule) []domain.Diff {
	byNameA := ruleIndex(rulesA)
	byNameB := ruleIndex(rulesB)

	var diffs []domain.Diff
	for _, name := range unionKeys(byNameA, byNameB) {
		ruleA, inA := byNameA[name]
		ruleB, inB := byNameB[name]

		switch {
		case inA && inB:
			for _, f := range ruleFields {
				valueA, valueB := f.value(ruleA), f.value(ruleB)
				if !valueA.Equal(valueB) {
					diffs = append(diffs, domain.Diff{
						FieldName:    fmt.Sprintf("Validation '%s' %s", name, f.display),
						PortalAValue: valueA,
						PortalBValue: valueB,
						Status:       domain.StatusDifferent,
					})
				}
			}
		case inA:
			diffs = append(diffs, domain.Diff{
				FieldName:    fmt.Sprintf("Validation Rule '%s'", name),
				PortalAValue: domain.StringValue(FormatValidationRule(*ruleA)),
				PortalBValue: domain.AbsentValue(),
				Status:       domain.StatusOnlyInA,
			})
		default:
			diffs = append(diffs, domain.Diff{
				FieldName:    fmt.Sprintf("Validation Rule '%s'", name),
				PortalAValue: domain.AbsentValue(),
				PortalBValue: domain.StringValue(FormatValidationRule(*ruleB)),
				Status:       domain.StatusOnlyInB,
			})
		}
	}
	return diffs
}

func ruleIndex(rules []domain.ValidationRule) map[string]*domain.ValidationRule {
	index := make(map[string]*domain.ValidationRule, len(rules))
	for i := range rules {
		index[rules[i].Name] = &rules[i]
	}
	return index
}

// FormatValidationRule summarizes a rule's constraints for display, for
// example "Min: 2, Max: 50, Blocker". Rules with no displayable constraints
// render as "Rule exists".
func FormatValidationRule(r domain.ValidationRule) string {
	var parts []string
	if r.MinLength != nil {
		parts = append(parts, fmt.Sprintf("Min: %d", *r.MinLength))
	}
	if r.MaxLength != nil {
		parts = append(parts, fmt.Sprintf("Max: %d", *r.MaxLength))
	}
	if r.Pattern != nil && *r.Pattern != "" {
		parts = append(parts, "Pattern: "+*r.Pattern)
	}
	if r.Min != nil {
		parts = append(parts, "Min: "+strconv.FormatFloat(*r.Min, 'f', -1, 64))
	}
	if r.Max != nil {
		parts = append(parts, "Max: "+strconv.FormatFloat(*r.Max, 'f', -1, 64))
	}
	if !r.Enabled {
		parts = append(parts, "Disabled")
	}
	if r.Blocker {
		parts = append(parts, "Blocker")
	}
	if len(parts) == 0 {
		return "Rule exists"
	}
	return strings.Join(parts, ", ")
}

// unionKeys returns every key from either map, sorted, so result ordering is
// deterministic across runs.
func unionKeys[V any](a, b map[string]V) []string {
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		keys = append(keys, k)
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}
