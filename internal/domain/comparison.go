package domain

import (
	"encoding/json"
	"slices"
	"strconv"
)

// ComparisonStatus classifies a compared item or field.
type ComparisonStatus string

// Comparison statuses.
const (
	StatusIdentical ComparisonStatus = "identical"
	StatusDifferent ComparisonStatus = "different"
	StatusOnlyInA   ComparisonStatus = "only_in_a"
	StatusOnlyInB   ComparisonStatus = "only_in_b"
	// StatusModified is part of the status vocabulary for API compatibility
	// but is not produced by the current comparers.
	StatusModified ComparisonStatus = "modified"
)

// ValueKind discriminates the shapes a compared field value can take.
type ValueKind int

// Value kinds.
const (
	KindAbsent ValueKind = iota
	KindString
	KindNumber
	KindBool
	KindStringList
)

// Value is one side of a field-level diff: a string, a number, a bool, a list
// of strings, or absent. Absent marshals as JSON null and displays as "N/A".
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
	List []string
}

// AbsentValue returns the absent Value.
func AbsentValue() Value {
	return Value{Kind: KindAbsent}
}

// StringValue wraps a string.
func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// StringPtr wraps a string pointer, mapping nil to absent.
func StringPtr(p *string) Value {
	if p == nil {
		return AbsentValue()
	}
	return StringValue(*p)
}

// NumberValue wraps a number.
func NumberValue(f float64) Value {
	return Value{Kind: KindNumber, Num: f}
}

// IntPtr wraps an int pointer, mapping nil to absent.
func IntPtr(p *int) Value {
	if p == nil {
		return AbsentValue()
	}
	return NumberValue(float64(*p))
}

// FloatPtr wraps a float pointer, mapping nil to absent.
func FloatPtr(p *float64) Value {
	if p == nil {
		return AbsentValue()
	}
	return NumberValue(*p)
}

// BoolValue wraps a bool.
func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// BoolPtr wraps a bool pointer, mapping nil to absent.
func BoolPtr(p *bool) Value {
	if p == nil {
		return AbsentValue()
	}
	return BoolValue(*p)
}

// StringListValue wraps a string slice, mapping nil to absent.
func StringListValue(items []string) Value {
	if items == nil {
		return AbsentValue()
	}
	return Value{Kind: KindStringList, List: items}
}

// IsAbsent reports whether the value is absent.
func (v Value) IsAbsent() bool {
	return v.Kind == KindAbsent
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == o.Str
	case KindNumber:
		return v.Num == o.Num
	case KindBool:
		return v.Bool == o.Bool
	case KindStringList:
		return slices.Equal(v.List, o.List)
	default:
		return true
	}
}

// MarshalJSON renders the value in its natural JSON form.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindString:
		return json.Marshal(v.Str)
	case KindNumber:
		return json.Marshal(v.Num)
	case KindBool:
		return json.Marshal(v.Bool)
	case KindStringList:
		return json.Marshal(v.List)
	default:
		return []byte("null"), nil
	}
}

// Display renders the value for human-readable output.
func (v Value) Display() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		if v.Bool {
			return "Yes"
		}
		return "No"
	case KindStringList:
		b, err := json.Marshal(v.List)
		if err != nil {
			return "N/A"
		}
		return string(b)
	default:
		return "N/A"
	}
}

// Diff records one field-level difference between the two portals.
type Diff struct {
	FieldName    string           `json:"field_name"`
	PortalAValue Value            `json:"portal_a_value"`
	PortalBValue Value            `json:"portal_b_value"`
	Status       ComparisonStatus `json:"status"`
}

// PropertyComparison is the comparison outcome for one property name.
// Differences is empty iff Status is identical; for one-sided properties the
// absent side's Property pointer is nil.
type PropertyComparison struct {
	PropertyName string           `json:"property_name"`
	Status       ComparisonStatus `json:"status"`
	PropertyA    *Property        `json:"property_a,omitempty"`
	PropertyB    *Property        `json:"property_b,omitempty"`
	Differences  []Diff           `json:"differences"`
}

// ComparisonResult aggregates a property comparison across two portals.
// Totals are the input list lengths, not the union size. ObjectType is left
// for the caller to stamp.
type ComparisonResult struct {
	ObjectType       string               `json:"object_type"`
	TotalPropertiesA int                  `json:"total_properties_a"`
	TotalPropertiesB int                  `json:"total_properties_b"`
	IdenticalCount   int                  `json:"identical_count"`
	DifferentCount   int                  `json:"different_count"`
	OnlyInACount     int                  `json:"only_in_a_count"`
	OnlyInBCount     int                  `json:"only_in_b_count"`
	Comparisons      []PropertyComparison `json:"comparisons"`
}

// AssociationComparison is the comparison outcome for one association
// matching key.
type AssociationComparison struct {
	MatchKey     string                    `json:"match_key"`
	DisplayName  string                    `json:"display_name"`
	Status       ComparisonStatus          `json:"status"`
	AssociationA *AssociationConfiguration `json:"association_a,omitempty"`
	AssociationB *AssociationConfiguration `json:"association_b,omitempty"`
	Differences  []Diff                    `json:"differences"`
}

// AssociationComparisonResult aggregates an association comparison across two
// portals.
type AssociationComparisonResult struct {
	TotalAssociationsA int                     `json:"total_associations_a"`
	TotalAssociationsB int                     `json:"total_associations_b"`
	IdenticalCount     int                     `json:"identical_count"`
	DifferentCount     int                     `json:"different_count"`
	OnlyInACount       int                     `json:"only_in_a_count"`
	OnlyInBCount       int                     `json:"only_in_b_count"`
	Comparisons        []AssociationComparison `json:"comparisons"`
}
