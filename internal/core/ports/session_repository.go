package ports

import (
	"context"
	"time"
)

// SessionRecord is the persisted form of a session: the two keyed entries
// (access credential and serialized principal) plus their expiry.
type SessionRecord struct {
	AccessToken string
	User        string
	ExpiresAt   time.Time
}

// SessionRepository persists session records by session ID.
type SessionRepository interface {
	// Load returns domain.ErrSessionNotFound when no record exists or it expired.
	Load(ctx context.Context, id string) (*SessionRecord, error)
	Save(ctx context.Context, id string, rec SessionRecord) error
	// Delete removes the record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
