package compare

import (
	"fmt"
	"strings"

	"github.com/johnwards/portaldiff/internal/domain"
)

// CompareAssociations diffs two portals' association definitions. There is no
// stable cross-portal association id, so associations pair on a synthetic key
// built from the label and the normalized endpoint types (plus category when
// unlabeled). Custom object lists, when supplied, drive endpoint
// normalization so that custom objects matched by name compare equal despite
// differing raw ids; either list may be nil.
func CompareAssociations(associationsA, associationsB []domain.AssociationConfiguration, objectsA, objectsB []domain.ObjectInfo) *domain.AssociationComparisonResult {
	idToName := BuildObjectNameMapping(objectsA, objectsB)

	byKeyA := associationIndex(associationsA, idToName)
	byKeyB := associationIndex(associationsB, idToName)
	keys := unionKeys(byKeyA, byKeyB)

	result := &domain.AssociationComparisonResult{
		TotalAssociationsA: len(associationsA),
		TotalAssociationsB: len(associationsB),
		Comparisons:        make([]domain.AssociationComparison, 0, len(keys)),
	}

	for _, key := range keys {
		assocA, inA := byKeyA[key]
		assocB, inB := byKeyB[key]

		var cmp domain.AssociationComparison
		switch {
		case inA && inB:
			diffs := diffAssociationPair(assocA, assocB, idToName)
			status := domain.StatusIdentical
			if len(diffs) > 0 {
				status = domain.StatusDifferent
			}
			cmp = domain.AssociationComparison{
				MatchKey:     key,
				DisplayName:  FormatAssociationDisplayName(*assocA, idToName),
				Status:       status,
				AssociationA: assocA,
				AssociationB: assocB,
				Differences:  diffs,
			}
			if status == domain.StatusIdentical {
				result.IdenticalCount++
			} else {
				result.DifferentCount++
			}
		case inA:
			cmp = domain.AssociationComparison{
				MatchKey:     key,
				DisplayName:  FormatAssociationDisplayName(*assocA, idToName),
				Status:       domain.StatusOnlyInA,
				AssociationA: assocA,
				Differences:  []domain.Diff{},
			}
			result.OnlyInACount++
		default:
			cmp = domain.AssociationComparison{
				MatchKey:     key,
				DisplayName:  FormatAssociationDisplayName(*assocB, idToName),
				Status:       domain.StatusOnlyInB,
				AssociationB: assocB,
				Differences:  []domain.Diff{},
			}
			result.OnlyInBCount++
		}
		result.Comparisons = append(result.Comparisons, cmp)
	}
	return result
}

// associationIndex keys associations by their synthetic matching key; on key
// collision the last entry wins, silently.
func associationIndex(associations []domain.AssociationConfiguration, idToName map[string]string) map[string]*domain.AssociationConfiguration {
	index := make(map[string]*domain.AssociationConfiguration, len(associations))
	for i := range associations {
		index[associationKey(&associations[i], idToName)] = &associations[i]
	}
	return index
}

// associationKey builds the matching key. Labeled associations match on
// (label, from, to); unlabeled ones on (from, to, category). TypeID never
// participates.
func associationKey(assoc *domain.AssociationConfiguration, idToName map[string]string) string {
	from := NormalizeObjectType(assoc.FromObjectType, idToName)
	to := NormalizeObjectType(assoc.ToObjectType, idToName)
	if assoc.Label != "" {
		return fmt.Sprintf("%s_%s_to_%s", assoc.Label, from, to)
	}
	return fmt.Sprintf("unlabeled_%s_to_%s_%s", from, to, assoc.Category)
}

// diffAssociationPair compares category exactly and endpoint types after
// normalization. Endpoint diffs display the raw portal values, not the
// normalized keys.
func diffAssociationPair(a, b *domain.AssociationConfiguration, idToName map[string]string) []domain.Diff {
	diffs := []domain.Diff{}

	if a.Category != b.Category {
		diffs = append(diffs, domain.Diff{
			FieldName:    "Category",
			PortalAValue: domain.StringValue(a.Category),
			PortalBValue: domain.StringValue(b.Category),
			Status:       domain.StatusDifferent,
		})
	}
	if NormalizeObjectType(a.FromObjectType, idToName) != NormalizeObjectType(b.FromObjectType, idToName) {
		diffs = append(diffs, domain.Diff{
			FieldName:    "From Object Type",
			PortalAValue: domain.StringValue(a.FromObjectType),
			PortalBValue: domain.StringValue(b.FromObjectType),
			Status:       domain.StatusDifferent,
		})
	}
	if NormalizeObjectType(a.ToObjectType, idToName) != NormalizeObjectType(b.ToObjectType, idToName) {
		diffs = append(diffs, domain.Diff{
			FieldName:    "To Object Type",
			PortalAValue: domain.StringValue(a.ToObjectType),
			PortalBValue: domain.StringValue(b.ToObjectType),
			Status:       domain.StatusDifferent,
		})
	}
	return diffs
}

// FormatAssociationDisplayName renders an association as
// "<label> (<from> → <to>)", substituting "Unlabeled" when no label is set.
// Mapped custom endpoints display by name with the "custom_" prefix stripped;
// unmapped endpoints display their raw id.
func FormatAssociationDisplayName(assoc domain.AssociationConfiguration, idToName map[string]string) string {
	label := assoc.Label
	if label == "" {
		label = "Unlabeled"
	}
	from := displayObjectType(assoc.FromObjectType, idToName)
	to := displayObjectType(assoc.ToObjectType, idToName)
	return fmt.Sprintf("%s (%s → %s)", label, from, to)
}

func displayObjectType(objectType string, idToName map[string]string) string {
	if name, ok := idToName[objectType]; ok {
		return strings.TrimPrefix(name, "custom_")
	}
	return objectType
}
