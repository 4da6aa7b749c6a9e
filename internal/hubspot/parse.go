package hubspot

import (
	"slices"
	"strconv"
	"strings"

	"github.com/johnwards/portaldiff/internal/domain"
)

var propertyTypes = map[string]domain.PropertyType{
	"string":       domain.TypeString,
	"number":       domain.TypeNumber,
	"date":         domain.TypeDate,
	"datetime":     domain.TypeDateTime,
	"enumeration":  domain.TypeEnumeration,
	"bool":         domain.TypeBool,
	"phone_number": domain.TypePhoneNumber,
	"json":         domain.TypeJSON,
}

var fieldTypes = map[string]domain.FieldType{
	"text":            domain.FieldText,
	"textarea":        domain.FieldTextarea,
	"number":          domain.FieldNumber,
	"date":            domain.FieldDate,
	"datetime":        domain.FieldDateTime,
	"select":          domain.FieldSelect,
	"radio":           domain.FieldRadio,
	"checkbox":        domain.FieldCheckbox,
	"booleancheckbox": domain.FieldBooleanCheckbox,
	"file":            domain.FieldFile,
}

func mapPropertyType(raw string) domain.PropertyType {
	if t, ok := propertyTypes[strings.ToLower(raw)]; ok {
		return t
	}
	return domain.TypeString
}

func mapFieldType(raw string) domain.FieldType {
	if t, ok := fieldTypes[strings.ToLower(raw)]; ok {
		return t
	}
	return domain.FieldText
}

// normalizeProperty post-processes a decoded property record. Records with no
// name are rejected, a missing label falls back to the name, and the type
// fields are folded onto the known values.
func normalizeProperty(p *domain.Property) bool {
	if p.Name == "" {
		return false
	}
	if p.Label == "" {
		p.Label = p.Name
	}
	p.Type = mapPropertyType(string(p.Type))
	p.FieldType = mapFieldType(string(p.FieldType))
	return true
}

// parseValidationRule converts a raw rule definition into its normalized
// form. The bulk endpoint reports neither enablement nor severity, so rules
// default to enabled blockers. Unknown rule types are kept by name alone.
func parseValidationRule(def validationRuleDef) (domain.ValidationRule, bool) {
	if def.RuleType == "" {
		return domain.ValidationRule{}, false
	}
	rule := domain.ValidationRule{Name: def.RuleType, Enabled: true, Blocker: true}
	switch def.RuleType {
	case "MIN_LENGTH":
		if n, ok := firstInt(def.RuleArguments); ok {
			rule.MinLength = &n
		}
	case "MAX_LENGTH":
		if n, ok := firstInt(def.RuleArguments); ok {
			rule.MaxLength = &n
		}
	case "MIN_NUMBER":
		if f, ok := firstFloat(def.RuleArguments); ok {
			rule.Min = &f
		}
	case "MAX_NUMBER":
		if f, ok := firstFloat(def.RuleArguments); ok {
			rule.Max = &f
		}
	case "REGEX":
		if len(def.RuleArguments) > 0 {
			pattern := def.RuleArguments[0]
			rule.Pattern = &pattern
		}
	case "ALPHANUMERIC":
		if slices.Contains(def.RuleArguments, "NUMERIC_ONLY") {
			pattern := `^\d+$`
			rule.Pattern = &pattern
			rule.Name = "NUMERIC_ONLY"
		}
	}
	return rule, true
}

func firstInt(args []string) (int, bool) {
	if len(args) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, false
	}
	return n, true
}

func firstFloat(args []string) (float64, bool) {
	if len(args) == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
