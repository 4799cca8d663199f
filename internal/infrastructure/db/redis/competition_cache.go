package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/schoolsapp/schools-web/internal/core/domain"
)

const defaultCacheTTL = 15 * time.Second

// CompetitionCache keeps the last competition list fetched for a session.
// Key format: competitions:<session_id>
type CompetitionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCompetitionCache creates a CompetitionCache wrapping the given Redis client.
func NewCompetitionCache(client *redis.Client, ttl time.Duration) *CompetitionCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CompetitionCache{client: client, ttl: ttl}
}

type cachedCompetition struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	Visibility    string    `json:"visibility"`
	RivalTeamName string    `json:"rival_team_name"`
	OwnerTenantID string    `json:"owner_tenant_id"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Get returns the cached list for sessionID, if present.
func (c *CompetitionCache) Get(ctx context.Context, sessionID string) ([]domain.Competition, bool, error) {
	raw, err := c.client.Get(ctx, c.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("competition cache get: %w", err)
	}

	var rows []cachedCompetition
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, false, fmt.Errorf("competition cache decode: %w", err)
	}
	comps := make([]domain.Competition, len(rows))
	for i, r := range rows {
		comps[i] = domain.Competition{
			ID:            r.ID,
			Title:         r.Title,
			Description:   r.Description,
			StartAt:       r.StartAt,
			EndAt:         r.EndAt,
			Visibility:    domain.Visibility(r.Visibility),
			RivalTeamName: r.RivalTeamName,
			OwnerTenantID: r.OwnerTenantID,
			CreatedBy:     r.CreatedBy,
			CreatedAt:     r.CreatedAt,
			UpdatedAt:     r.UpdatedAt,
		}
	}
	return comps, true, nil
}

// Set stores comps for sessionID (expires after the cache TTL).
func (c *CompetitionCache) Set(ctx context.Context, sessionID string, comps []domain.Competition) error {
	rows := make([]cachedCompetition, len(comps))
	for i, comp := range comps {
		rows[i] = cachedCompetition{
			ID:            comp.ID,
			Title:         comp.Title,
			Description:   comp.Description,
			StartAt:       comp.StartAt,
			EndAt:         comp.EndAt,
			Visibility:    string(comp.Visibility),
			RivalTeamName: comp.RivalTeamName,
			OwnerTenantID: comp.OwnerTenantID,
			CreatedBy:     comp.CreatedBy,
			CreatedAt:     comp.CreatedAt,
			UpdatedAt:     comp.UpdatedAt,
		}
	}
	raw, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("competition cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(sessionID), raw, c.ttl).Err()
}

// Invalidate drops the cached list for sessionID.
func (c *CompetitionCache) Invalidate(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, c.key(sessionID)).Err()
}

func (c *CompetitionCache) key(sessionID string) string {
	return fmt.Sprintf("competitions:%s", sessionID)
}
