package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/johnwards/portaldiff/internal/domain"
)

// PortalA and PortalB identify which side of a session a cached response
// belongs to.
const (
	PortalA = "a"
	PortalB = "b"
)

// PropertiesKey is the cache key for an object type's property definitions.
func PropertiesKey(objectType string) string {
	return "properties:" + objectType
}

// Cache keys for the session-wide fetches.
const (
	ObjectsKey      = "objects"
	AssociationsKey = "associations"
)

// CacheStore defines the interface for cached upstream responses. Payloads
// are opaque JSON; freshness is tracked per entry.
type CacheStore interface {
	Get(ctx context.Context, sessionID, portal, key string) ([]byte, bool, error)
	Put(ctx context.Context, sessionID, portal, key string, payload []byte) error
	Invalidate(ctx context.Context, sessionID string, keys ...string) (int, error)
	Status(ctx context.Context, sessionID string) ([]domain.CacheEntry, error)
}

// SQLiteCacheStore implements CacheStore backed by SQLite.
type SQLiteCacheStore struct {
	db  *sql.DB
	ttl time.Duration
}

// NewSQLiteCacheStore creates a new SQLiteCacheStore. Entries older than ttl
// are treated as misses.
func NewSQLiteCacheStore(db *sql.DB, ttl time.Duration) *SQLiteCacheStore {
	return &SQLiteCacheStore{db: db, ttl: ttl}
}

func (s *SQLiteCacheStore) cutoff() string {
	return formatTime(time.Now().Add(-s.ttl))
}

// Get returns the cached payload for (sessionID, portal, key) if it is still
// fresh.
func (s *SQLiteCacheStore) Get(ctx context.Context, sessionID, portal, key string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM response_cache
		 WHERE session_id = ? AND portal = ? AND cache_key = ? AND fetched_at >= ?`,
		sessionID, portal, key, s.cutoff(),
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get cache entry %s/%s/%s: %w", sessionID, portal, key, err)
	}
	return payload, true, nil
}

// Put stores or refreshes the cached payload for (sessionID, portal, key).
func (s *SQLiteCacheStore) Put(ctx context.Context, sessionID, portal, key string, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO response_cache (session_id, portal, cache_key, payload, fetched_at)
		 VALUES (?, ?, ?, ?, ?)`,
		sessionID, portal, key, payload, now(),
	)
	if err != nil {
		return fmt.Errorf("put cache entry %s/%s/%s: %w", sessionID, portal, key, err)
	}
	return nil
}

// Invalidate removes cached entries for a session on both portals. With no
// keys it clears everything the session has cached. It reports how many
// entries were removed.
func (s *SQLiteCacheStore) Invalidate(ctx context.Context, sessionID string, keys ...string) (int, error) {
	var (
		query string
		args  []any
	)
	if len(keys) == 0 {
		query = `DELETE FROM response_cache WHERE session_id = ?`
		args = []any{sessionID}
	} else {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
		query = `DELETE FROM response_cache WHERE session_id = ? AND cache_key IN (` + placeholders + `)`
		args = make([]any, 0, len(keys)+1)
		args = append(args, sessionID)
		for _, key := range keys {
			args = append(args, key)
		}
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("invalidate cache for session %s: %w", sessionID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("invalidate cache for session %s: %w", sessionID, err)
	}
	return int(affected), nil
}

// Status lists every cached entry for a session with its freshness.
func (s *SQLiteCacheStore) Status(ctx context.Context, sessionID string) ([]domain.CacheEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT portal, cache_key, fetched_at FROM response_cache
		 WHERE session_id = ? ORDER BY portal, cache_key`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("cache status for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	cutoff := s.cutoff()
	entries := []domain.CacheEntry{}
	for rows.Next() {
		var entry domain.CacheEntry
		if err := rows.Scan(&entry.Portal, &entry.Key, &entry.FetchedAt); err != nil {
			return nil, fmt.Errorf("scan cache entry: %w", err)
		}
		entry.Fresh = entry.FetchedAt >= cutoff
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cache entries: %w", err)
	}
	return entries, nil
}
