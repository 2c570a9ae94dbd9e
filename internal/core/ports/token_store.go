package ports

import "context"

// TokenStore wraps the single persisted credential slot. It is the only
// source of truth for session continuity across restarts; no other
// component may retain a copy of the token beyond one request.
type TokenStore interface {
	// Get reads the current token. An empty string means no credential
	// is stored. Get has no side effects.
	Get(ctx context.Context) (string, error)
	// Set overwrites the slot with token. Idempotent.
	Set(ctx context.Context, token string) error
	// Clear empties the slot. Idempotent; clearing an empty slot is not
	// an error.
	Clear(ctx context.Context) error
}
