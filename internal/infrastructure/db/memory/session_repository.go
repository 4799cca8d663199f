// Package memory holds in-process session and cache backends for development
// and tests. State is lost on restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/schoolsapp/schools-web/internal/core/domain"
	"github.com/schoolsapp/schools-web/internal/core/ports"
)

// SessionRepository is an in-memory implementation of ports.SessionRepository.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]ports.SessionRecord
	now      func() time.Time
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]ports.SessionRecord),
		now:      time.Now,
	}
}

// Load returns a copy of the record. Expired records are reported as missing.
func (r *SessionRepository) Load(_ context.Context, id string) (*ports.SessionRecord, error) {
	r.mu.RLock()
	rec, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if !rec.ExpiresAt.IsZero() && !rec.ExpiresAt.After(r.now()) {
		r.mu.Lock()
		delete(r.sessions, id)
		r.mu.Unlock()
		return nil, domain.ErrSessionNotFound
	}
	return &rec, nil
}

func (r *SessionRepository) Save(_ context.Context, id string, rec ports.SessionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[id] = rec
	return nil
}

func (r *SessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

// Ping always succeeds.
func (r *SessionRepository) Ping(context.Context) error {
	return nil
}

// Len reports how many records are held, expired ones included.
func (r *SessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
