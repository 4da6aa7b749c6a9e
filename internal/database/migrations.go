package database

// migrations is an ordered list of SQL migration groups. Each entry is a slice
// of SQL statements that are executed together in a single transaction. The
// version number is the 1-based index into this slice.
var migrations = [][]string{
	// Migration 1: comparison sessions and the upstream response cache
	{
		`CREATE TABLE sessions (
			id TEXT PRIMARY KEY,
			portal_a_name TEXT NOT NULL,
			portal_a_token TEXT NOT NULL,
			portal_b_name TEXT NOT NULL,
			portal_b_token TEXT NOT NULL,
			created_at TEXT NOT NULL,
			last_accessed_at TEXT NOT NULL
		)`,
		`CREATE INDEX idx_sessions_last_accessed ON sessions(last_accessed_at)`,

		`CREATE TABLE response_cache (
			session_id TEXT NOT NULL,
			portal TEXT NOT NULL,
			cache_key TEXT NOT NULL,
			payload TEXT NOT NULL,
			fetched_at TEXT NOT NULL,
			PRIMARY KEY (session_id, portal, cache_key),
			FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX idx_response_cache_fetched ON response_cache(fetched_at)`,
	},
}
