package compare_test

import (
	"testing"

	"github.com/johnwards/portaldiff/internal/compare"
	"github.com/johnwards/portaldiff/internal/domain"
)

func TestIsCustomObjectType(t *testing.T) {
	tests := []struct {
		objectType string
		want       bool
	}{
		{"2-123456", true},
		{"2-1", true},
		{"0-1", false},
		{"contacts", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := compare.IsCustomObjectType(tc.objectType); got != tc.want {
			t.Errorf("IsCustomObjectType(%q) = %v, want %v", tc.objectType, got, tc.want)
		}
	}
}

func TestNormalizeObjectTypeStandard(t *testing.T) {
	got := compare.NormalizeObjectType("contacts", map[string]string{})
	if got != "contacts" {
		t.Errorf("NormalizeObjectType = %q, want %q", got, "contacts")
	}

	got = compare.NormalizeObjectType("0-1", nil)
	if got != "0-1" {
		t.Errorf("NormalizeObjectType = %q, want %q", got, "0-1")
	}
}

func TestNormalizeObjectTypeMapped(t *testing.T) {
	mapping := map[string]string{"2-123": "custom_machines"}

	got := compare.NormalizeObjectType("2-123", mapping)
	if got != "custom_machines" {
		t.Errorf("NormalizeObjectType = %q, want %q", got, "custom_machines")
	}
}

func TestNormalizeObjectTypeUnmapped(t *testing.T) {
	got := compare.NormalizeObjectType("2-999", map[string]string{"2-123": "custom_machines"})
	if got != "custom_2-999" {
		t.Errorf("NormalizeObjectType = %q, want %q", got, "custom_2-999")
	}
}

func TestBuildObjectNameMapping(t *testing.T) {
	objectsA := []domain.ObjectInfo{
		{Name: "machines", ObjectTypeID: "2-123"},
		{Name: "contacts", ObjectTypeID: "0-1"},
	}
	objectsB := []domain.ObjectInfo{
		{Name: "machines", ObjectTypeID: "2-999"},
	}

	mapping := compare.BuildObjectNameMapping(objectsA, objectsB)

	if len(mapping) != 2 {
		t.Fatalf("len(mapping) = %d, want 2", len(mapping))
	}
	if mapping["2-123"] != "custom_machines" {
		t.Errorf("mapping[2-123] = %q, want %q", mapping["2-123"], "custom_machines")
	}
	if mapping["2-999"] != "custom_machines" {
		t.Errorf("mapping[2-999] = %q, want %q", mapping["2-999"], "custom_machines")
	}
	if _, ok := mapping["0-1"]; ok {
		t.Error("standard object id should not be mapped")
	}
}

func TestBuildObjectNameMappingCollision(t *testing.T) {
	objectsA := []domain.ObjectInfo{{Name: "first", ObjectTypeID: "2-5"}}
	objectsB := []domain.ObjectInfo{{Name: "second", ObjectTypeID: "2-5"}}

	mapping := compare.BuildObjectNameMapping(objectsA, objectsB)

	// Later entries win on id collision.
	if mapping["2-5"] != "custom_second" {
		t.Errorf("mapping[2-5] = %q, want %q", mapping["2-5"], "custom_second")
	}
}

func TestBuildObjectNameMappingEmpty(t *testing.T) {
	mapping := compare.BuildObjectNameMapping(nil, nil)
	if len(mapping) != 0 {
		t.Errorf("len(mapping) = %d, want 0", len(mapping))
	}
}
