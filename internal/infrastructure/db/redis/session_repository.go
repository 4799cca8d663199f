package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/schoolsapp/schools-web/internal/core/domain"
	"github.com/schoolsapp/schools-web/internal/core/ports"
)

const (
	fieldAccessToken = "accessToken"
	fieldUser        = "user"
	fieldExpiresAt   = "expires_at"
)

// SessionRepository stores each session as a hash with the accessToken and
// user entries. The key expires together with the session.
// Key format: session:<session_id>
type SessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a SessionRepository wrapping the given Redis client.
func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

// Load reads the hash for id. A missing key maps to domain.ErrSessionNotFound.
func (r *SessionRepository) Load(ctx context.Context, id string) (*ports.SessionRecord, error) {
	fields, err := r.client.HGetAll(ctx, r.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis session load: %w", err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrSessionNotFound
	}

	rec := &ports.SessionRecord{
		AccessToken: fields[fieldAccessToken],
		User:        fields[fieldUser],
	}
	if raw := fields[fieldExpiresAt]; raw != "" {
		if exp, err := time.Parse(time.RFC3339, raw); err == nil {
			rec.ExpiresAt = exp
		}
	}
	return rec, nil
}

// Save writes the record and sets the key to expire at rec.ExpiresAt.
func (r *SessionRepository) Save(ctx context.Context, id string, rec ports.SessionRecord) error {
	key := r.key(id)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			fieldAccessToken, rec.AccessToken,
			fieldUser, rec.User,
			fieldExpiresAt, rec.ExpiresAt.UTC().Format(time.RFC3339),
		)
		if !rec.ExpiresAt.IsZero() {
			pipe.ExpireAt(ctx, key, rec.ExpiresAt)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis session save: %w", err)
	}
	return nil
}

// Delete removes the hash. Deleting a missing key is a no-op.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("redis session delete: %w", err)
	}
	return nil
}

// Ping verifies connectivity for readiness checks.
func (r *SessionRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *SessionRepository) key(id string) string {
	return fmt.Sprintf("session:%s", id)
}
