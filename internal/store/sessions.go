package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/johnwards/portaldiff/internal/domain"
)

// SessionStore defines the interface for comparison session persistence.
type SessionStore interface {
	Create(ctx context.Context, portalAName, portalAToken, portalBName, portalBToken string) (*domain.Session, error)
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	PurgeExpired(ctx context.Context) (int, error)
}

// ErrSessionNotFound is returned when a session does not exist or has
// expired.
var ErrSessionNotFound = fmt.Errorf("session not found")

// SQLiteSessionStore implements SessionStore backed by SQLite.
type SQLiteSessionStore struct {
	db         *sql.DB
	ttl        time.Duration
	purgeEvery time.Duration

	mu        sync.Mutex
	lastPurge time.Time
}

// NewSQLiteSessionStore creates a new SQLiteSessionStore. Sessions untouched
// for longer than ttl are treated as expired; reads sweep expired rows out at
// most once per purgeEvery.
func NewSQLiteSessionStore(db *sql.DB, ttl, purgeEvery time.Duration) *SQLiteSessionStore {
	return &SQLiteSessionStore{db: db, ttl: ttl, purgeEvery: purgeEvery}
}

func (s *SQLiteSessionStore) cutoff() string {
	return formatTime(time.Now().Add(-s.ttl))
}

// maybePurge opportunistically sweeps expired sessions, throttled to once per
// purge interval so reads stay cheap.
func (s *SQLiteSessionStore) maybePurge(ctx context.Context) {
	s.mu.Lock()
	due := time.Since(s.lastPurge) >= s.purgeEvery
	if due {
		s.lastPurge = time.Now()
	}
	s.mu.Unlock()
	if !due {
		return
	}

	purged, err := s.PurgeExpired(ctx)
	if err != nil {
		slog.Warn("session purge failed", "error", err)
		return
	}
	if purged > 0 {
		slog.Info("purged expired sessions", "count", purged)
	}
}

// Create inserts a new session for the given portal credentials and returns
// it with a generated id.
func (s *SQLiteSessionStore) Create(ctx context.Context, portalAName, portalAToken, portalBName, portalBToken string) (*domain.Session, error) {
	ts := now()
	sess := &domain.Session{
		ID:             uuid.NewString(),
		PortalAName:    portalAName,
		PortalAToken:   portalAToken,
		PortalBName:    portalBName,
		PortalBToken:   portalBToken,
		CreatedAt:      ts,
		LastAccessedAt: ts,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, portal_a_name, portal_a_token, portal_b_name, portal_b_token, created_at, last_accessed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.PortalAName, sess.PortalAToken, sess.PortalBName, sess.PortalBToken, sess.CreatedAt, sess.LastAccessedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	return sess, nil
}

// Get retrieves a live session by id and touches its last access time so
// active sessions stay alive. Expired sessions are reported as missing.
func (s *SQLiteSessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	s.maybePurge(ctx)

	var sess domain.Session
	err := s.db.QueryRowContext(ctx,
		`SELECT id, portal_a_name, portal_a_token, portal_b_name, portal_b_token, created_at, last_accessed_at
		 FROM sessions WHERE id = ? AND last_accessed_at >= ?`,
		id, s.cutoff(),
	).Scan(&sess.ID, &sess.PortalAName, &sess.PortalAToken, &sess.PortalBName, &sess.PortalBToken, &sess.CreatedAt, &sess.LastAccessedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}

	ts := now()
	if _, err := s.db.ExecContext(ctx, `UPDATE sessions SET last_accessed_at = ? WHERE id = ?`, ts, id); err != nil {
		return nil, fmt.Errorf("touch session %s: %w", id, err)
	}
	sess.LastAccessedAt = ts

	return &sess, nil
}

// Delete removes a session. Cached responses for it go with it.
func (s *SQLiteSessionStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	if affected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// PurgeExpired deletes every expired session and reports how many were
// removed.
func (s *SQLiteSessionStore) PurgeExpired(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE last_accessed_at < ?`, s.cutoff())
	if err != nil {
		return 0, fmt.Errorf("purge expired sessions: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge expired sessions: %w", err)
	}
	return int(affected), nil
}
