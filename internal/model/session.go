package model

import "time"

// Session models an entry in the `sessions` table. The opaque bearer token
// handed to the client is not stored; only its SHA-256 hash, so a leaked
// table cannot be replayed against the API. A session is live while the
// current time is before ExpiresAt; expired rows are removed lazily on
// lookup rather than by a background sweep.
type Session struct {
	ID        uint64    // sessions.id
	UserID    uint64    // sessions.user_id
	TokenHash string    // sessions.token_hash
	ExpiresAt time.Time // sessions.expires_at
	CreatedAt time.Time // sessions.created_at
}
