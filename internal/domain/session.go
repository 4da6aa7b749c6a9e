package domain

// Session pairs two portals' credentials for the lifetime of a comparison.
// Tokens are never serialized.
type Session struct {
	ID             string `json:"id"`
	PortalAName    string `json:"portal_a_name"`
	PortalAToken   string `json:"-"`
	PortalBName    string `json:"portal_b_name"`
	PortalBToken   string `json:"-"`
	CreatedAt      string `json:"created_at"`
	LastAccessedAt string `json:"last_accessed_at"`
}

// CacheEntry describes one cached upstream response held for a session.
type CacheEntry struct {
	Portal    string `json:"portal"`
	Key       string `json:"key"`
	FetchedAt string `json:"fetched_at"`
	Fresh     bool   `json:"fresh"`
}
