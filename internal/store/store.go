package store

import (
	"database/sql"
	"time"
)

// Store holds all sub-stores used by the application.
type Store struct {
	DB       *sql.DB
	Sessions SessionStore
	Cache    CacheStore
}

// New creates a Store with all sub-stores initialized. sessionTTL bounds how
// long an untouched session stays valid, cacheTTL bounds how long cached
// upstream responses are served, and cleanupInterval throttles the expired
// session sweep that session reads piggyback.
func New(db *sql.DB, sessionTTL, cacheTTL, cleanupInterval time.Duration) *Store {
	return &Store{
		DB:       db,
		Sessions: NewSQLiteSessionStore(db, sessionTTL, cleanupInterval),
		Cache:    NewSQLiteCacheStore(db, cacheTTL),
	}
}
