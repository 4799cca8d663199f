package memory

import (
	"context"
	"sync"
	"time"

	"github.com/schoolsapp/schools-web/internal/core/domain"
)

type cachedList struct {
	comps     []domain.Competition
	expiresAt time.Time
}

// CompetitionCache is an in-memory ports.CompetitionCache with a fixed TTL.
type CompetitionCache struct {
	mu      sync.Mutex
	entries map[string]cachedList
	ttl     time.Duration
	now     func() time.Time
}

func NewCompetitionCache(ttl time.Duration) *CompetitionCache {
	return &CompetitionCache{
		entries: make(map[string]cachedList),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *CompetitionCache) Get(_ context.Context, sessionID string) ([]domain.Competition, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[sessionID]
	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.After(c.now()) {
		delete(c.entries, sessionID)
		return nil, false, nil
	}
	return append([]domain.Competition(nil), entry.comps...), true, nil
}

func (c *CompetitionCache) Set(_ context.Context, sessionID string, comps []domain.Competition) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[sessionID] = cachedList{
		comps:     append([]domain.Competition(nil), comps...),
		expiresAt: c.now().Add(c.ttl),
	}
	return nil
}

func (c *CompetitionCache) Invalidate(_ context.Context, sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, sessionID)
	return nil
}
