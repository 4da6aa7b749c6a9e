package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/johnwards/portaldiff/internal/compare"
	"github.com/johnwards/portaldiff/internal/domain"
	"github.com/johnwards/portaldiff/internal/hubspot"
	"github.com/johnwards/portaldiff/internal/store"
)

// PortalObjects lists what one portal offers for comparison.
type PortalObjects struct {
	Name     string              `json:"name"`
	Standard []string            `json:"standard"`
	Custom   []domain.ObjectInfo `json:"custom"`
}

// ObjectsOverview pairs both portals' object lists.
type ObjectsOverview struct {
	PortalA PortalObjects `json:"portal_a"`
	PortalB PortalObjects `json:"portal_b"`
}

// PropertySets carries both portals' raw property definitions for one object
// type.
type PropertySets struct {
	ObjectType string            `json:"object_type"`
	PortalA    []domain.Property `json:"portal_a"`
	PortalB    []domain.Property `json:"portal_b"`
}

// cachedFetch returns the cached value for key, fetching and caching on a
// miss. Cache failures degrade to direct fetches.
func cachedFetch[T any](ctx context.Context, s *Service, sessionID, portal, key string, fetch func(context.Context) (T, error)) (T, error) {
	payload, ok, err := s.store.Cache.Get(ctx, sessionID, portal, key)
	if err != nil {
		slog.Warn("cache read failed", "portal", portal, "key", key, "error", err)
	} else if ok {
		var v T
		if err := json.Unmarshal(payload, &v); err == nil {
			return v, nil
		}
		slog.Warn("discarding unreadable cache entry", "portal", portal, "key", key)
	}

	v, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	if payload, err := json.Marshal(v); err == nil {
		if err := s.store.Cache.Put(ctx, sessionID, portal, key, payload); err != nil {
			slog.Warn("cache write failed", "portal", portal, "key", key, "error", err)
		}
	}
	return v, nil
}

func (s *Service) cachedProperties(ctx context.Context, sessionID, portal string, client *hubspot.Client, objectType string) ([]domain.Property, error) {
	return cachedFetch(ctx, s, sessionID, portal, store.PropertiesKey(objectType), func(ctx context.Context) ([]domain.Property, error) {
		return client.Properties(ctx, objectType)
	})
}

func (s *Service) cachedCustomObjects(ctx context.Context, sessionID, portal string, client *hubspot.Client) ([]domain.ObjectInfo, error) {
	return cachedFetch(ctx, s, sessionID, portal, store.ObjectsKey, func(ctx context.Context) ([]domain.ObjectInfo, error) {
		return client.CustomObjects(ctx)
	})
}

func (s *Service) cachedAssociations(ctx context.Context, sessionID, portal string, client *hubspot.Client, customObjects []domain.ObjectInfo) ([]domain.AssociationConfiguration, error) {
	return cachedFetch(ctx, s, sessionID, portal, store.AssociationsKey, func(ctx context.Context) ([]domain.AssociationConfiguration, error) {
		return client.Associations(ctx, customObjects)
	})
}

// Objects returns both portals' standard catalog and custom object lists. A
// portal whose custom schemas cannot be fetched is reported with an empty
// custom list rather than failing the whole call.
func (s *Service) Objects(ctx context.Context, sessionID string) (*ObjectsOverview, error) {
	sess, err := s.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	clientA := s.client(sess.PortalAToken)
	clientB := s.client(sess.PortalBToken)

	lenientCustoms := func(portal string, client *hubspot.Client) func(context.Context) ([]domain.ObjectInfo, error) {
		return func(ctx context.Context) ([]domain.ObjectInfo, error) {
			objects, err := s.cachedCustomObjects(ctx, sess.ID, portal, client)
			if err != nil {
				slog.Warn("custom object fetch failed", "portal", portal, "error", err)
				return []domain.ObjectInfo{}, nil
			}
			return objects, nil
		}
	}
	customA, customB, err := both(ctx,
		lenientCustoms(store.PortalA, clientA),
		lenientCustoms(store.PortalB, clientB),
	)
	if err != nil {
		return nil, err
	}
	if customA == nil {
		customA = []domain.ObjectInfo{}
	}
	if customB == nil {
		customB = []domain.ObjectInfo{}
	}

	return &ObjectsOverview{
		PortalA: PortalObjects{Name: sess.PortalAName, Standard: hubspot.StandardObjects, Custom: customA},
		PortalB: PortalObjects{Name: sess.PortalBName, Standard: hubspot.StandardObjects, Custom: customB},
	}, nil
}

// Properties returns both portals' property definitions for an object type.
func (s *Service) Properties(ctx context.Context, sessionID, objectType string) (*PropertySets, error) {
	sess, err := s.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	clientA := s.client(sess.PortalAToken)
	clientB := s.client(sess.PortalBToken)

	propsA, propsB, err := both(ctx,
		func(ctx context.Context) ([]domain.Property, error) {
			return s.cachedProperties(ctx, sess.ID, store.PortalA, clientA, objectType)
		},
		func(ctx context.Context) ([]domain.Property, error) {
			return s.cachedProperties(ctx, sess.ID, store.PortalB, clientB, objectType)
		},
	)
	if err != nil {
		return nil, err
	}
	if propsA == nil {
		propsA = []domain.Property{}
	}
	if propsB == nil {
		propsB = []domain.Property{}
	}

	return &PropertySets{ObjectType: objectType, PortalA: propsA, PortalB: propsB}, nil
}

// CompareProperties fetches both portals' definitions for an object type and
// diffs them.
func (s *Service) CompareProperties(ctx context.Context, sessionID, objectType string) (*domain.ComparisonResult, error) {
	sets, err := s.Properties(ctx, sessionID, objectType)
	if err != nil {
		return nil, err
	}

	result := compare.CompareProperties(sets.PortalA, sets.PortalB)
	result.ObjectType = objectType
	slog.Info("compared properties",
		"objectType", objectType,
		"identical", result.IdenticalCount,
		"different", result.DifferentCount,
		"onlyInA", result.OnlyInACount,
		"onlyInB", result.OnlyInBCount,
	)
	return result, nil
}

// CompareCustomObjects diffs one custom object type from each portal. Group
// names are portal-specific for custom objects, so the group field is left
// out of the comparison.
func (s *Service) CompareCustomObjects(ctx context.Context, sessionID, objectTypeA, objectTypeB string) (*domain.ComparisonResult, error) {
	sess, err := s.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	clientA := s.client(sess.PortalAToken)
	clientB := s.client(sess.PortalBToken)

	propsA, propsB, err := both(ctx,
		func(ctx context.Context) ([]domain.Property, error) {
			return s.cachedProperties(ctx, sess.ID, store.PortalA, clientA, objectTypeA)
		},
		func(ctx context.Context) ([]domain.Property, error) {
			return s.cachedProperties(ctx, sess.ID, store.PortalB, clientB, objectTypeB)
		},
	)
	if err != nil {
		return nil, err
	}

	result := compare.ComparePropertiesExcludeGroup(propsA, propsB)
	result.ObjectType = fmt.Sprintf("Custom Object (%s vs %s)", objectTypeA, objectTypeB)
	return result, nil
}

// CompareAssociations fetches both portals' association definitions and
// diffs them, matching custom endpoints through schema names.
func (s *Service) CompareAssociations(ctx context.Context, sessionID string) (*domain.AssociationComparisonResult, error) {
	sess, err := s.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	clientA := s.client(sess.PortalAToken)
	clientB := s.client(sess.PortalBToken)

	customA, customB, err := both(ctx,
		func(ctx context.Context) ([]domain.ObjectInfo, error) {
			return s.cachedCustomObjects(ctx, sess.ID, store.PortalA, clientA)
		},
		func(ctx context.Context) ([]domain.ObjectInfo, error) {
			return s.cachedCustomObjects(ctx, sess.ID, store.PortalB, clientB)
		},
	)
	if err != nil {
		return nil, err
	}

	assocA, assocB, err := both(ctx,
		func(ctx context.Context) ([]domain.AssociationConfiguration, error) {
			return s.cachedAssociations(ctx, sess.ID, store.PortalA, clientA, customA)
		},
		func(ctx context.Context) ([]domain.AssociationConfiguration, error) {
			return s.cachedAssociations(ctx, sess.ID, store.PortalB, clientB, customB)
		},
	)
	if err != nil {
		return nil, err
	}

	logUnmappedEndpoints(assocA, assocB, customA, customB)

	result := compare.CompareAssociations(assocA, assocB, customA, customB)
	slog.Info("compared associations",
		"identical", result.IdenticalCount,
		"different", result.DifferentCount,
		"onlyInA", result.OnlyInACount,
		"onlyInB", result.OnlyInBCount,
	)
	return result, nil
}

// logUnmappedEndpoints notes custom endpoints no schema name covers; those
// associations can only match by raw id.
func logUnmappedEndpoints(assocA, assocB []domain.AssociationConfiguration, objectsA, objectsB []domain.ObjectInfo) {
	mapping := compare.BuildObjectNameMapping(objectsA, objectsB)
	seen := make(map[string]bool)
	check := func(assocs []domain.AssociationConfiguration) {
		for _, assoc := range assocs {
			for _, endpoint := range []string{assoc.FromObjectType, assoc.ToObjectType} {
				if seen[endpoint] {
					continue
				}
				seen[endpoint] = true
				if !compare.IsCustomObjectType(endpoint) {
					continue
				}
				if _, ok := mapping[endpoint]; !ok {
					slog.Debug("association endpoint has no custom object name", "objectTypeId", endpoint)
				}
			}
		}
	}
	check(assocA)
	check(assocB)
}

// RefreshCache clears cached responses so the next view refetches. With an
// object type it clears just that type's property definitions on both
// portals; otherwise everything the session has cached.
func (s *Service) RefreshCache(ctx context.Context, sessionID, objectType string) (int, error) {
	sess, err := s.Session(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if objectType == "" {
		return s.store.Cache.Invalidate(ctx, sess.ID)
	}
	return s.store.Cache.Invalidate(ctx, sess.ID, store.PropertiesKey(objectType))
}

// CacheStatus lists what the session has cached and how fresh it is.
func (s *Service) CacheStatus(ctx context.Context, sessionID string) ([]domain.CacheEntry, error) {
	sess, err := s.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.store.Cache.Status(ctx, sess.ID)
}
