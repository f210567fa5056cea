package repository

import "context"

// QueryCache holds list results per entity name. Invalidate drops every
// cached filter of that entity at once and starts a new generation.
//
// Get reports the generation it read under, hit or miss. Set stores only
// under that generation, so a result read before an Invalidate is never
// served after it.
type QueryCache interface {
	Get(ctx context.Context, entity string, filter interface{}, dest interface{}) (bool, int64, error)
	Set(ctx context.Context, entity string, generation int64, filter interface{}, value interface{}) error
	Invalidate(ctx context.Context, entity string) error
}

// SessionStore persists per-browser-session values, addressed by session id and key.
type SessionStore interface {
	Get(ctx context.Context, sid, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, sid, key string, value interface{}) error
	Delete(ctx context.Context, sid, key string) error
}
