package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/schoolsapp/schools-web/internal/core/domain"
	"github.com/schoolsapp/schools-web/internal/core/ports"
	"github.com/schoolsapp/schools-web/internal/metrics"
)

const defaultSessionTTL = 24 * time.Hour

// SessionService implements the session lifecycle on top of the external auth
// API and a session repository.
type SessionService struct {
	auth ports.AuthGateway
	repo ports.SessionRepository
	ttl  time.Duration
	log  zerolog.Logger

	now   func() time.Time
	newID func() (uuid.UUID, error)
}

func NewSessionService(auth ports.AuthGateway, repo ports.SessionRepository, ttl time.Duration, log zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionService{
		auth:  auth,
		repo:  repo,
		ttl:   ttl,
		log:   log,
		now:   time.Now,
		newID: uuid.NewV7,
	}
}

// Hydrate restores the session stored under id. Anything short of a complete
// record (both entries present, principal decodable, token not expired) yields
// an empty session rather than an error.
func (s *SessionService) Hydrate(ctx context.Context, id string) (*domain.Session, error) {
	empty := &domain.Session{}
	if id == "" {
		return empty, nil
	}

	rec, err := s.repo.Load(ctx, id)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return empty, nil
	}
	if err != nil {
		return nil, fmt.Errorf("hydrate session: %w", err)
	}
	if rec.AccessToken == "" || rec.User == "" {
		return empty, nil
	}

	var principal domain.Principal
	if err := json.Unmarshal([]byte(rec.User), &principal); err != nil {
		s.log.Warn().Err(err).Str("session_id", id).Msg("discarding session with unreadable principal")
		return empty, nil
	}

	if exp, ok := tokenExpiry(rec.AccessToken); ok && !exp.After(s.now()) {
		s.log.Debug().Str("session_id", id).Msg("access token expired, dropping session")
		if err := s.repo.Delete(ctx, id); err != nil {
			s.log.Warn().Err(err).Str("session_id", id).Msg("failed to delete expired session")
		}
		return empty, nil
	}

	return &domain.Session{
		ID:          id,
		AccessToken: rec.AccessToken,
		Principal:   &principal,
		ExpiresAt:   rec.ExpiresAt,
	}, nil
}

// Login authenticates against the auth API for tenant and persists a new session.
func (s *SessionService) Login(ctx context.Context, email, password, tenant string) (*domain.Session, error) {
	res, err := s.auth.Login(ctx, ports.Credentials{
		Email:    email,
		Password: password,
		Tenant:   tenant,
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}
	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return s.establish(ctx, res)
}

// Register creates the account and signs it in. The role follows the admin flag.
func (s *SessionService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Session, error) {
	res, err := s.auth.Register(ctx, ports.Registration{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  in.Password,
		Tenant:    in.Tenant,
		Role:      domain.RoleFor(in.IsAdmin),
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "failure").Inc()
		return nil, fmt.Errorf("register: %w", err)
	}
	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	return s.establish(ctx, res)
}

// Logout drops the persisted record. It is safe to call for an unknown or
// empty session ID.
func (s *SessionService) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	metrics.AuthAttemptsTotal.WithLabelValues("logout", "success").Inc()
	return nil
}

func (s *SessionService) establish(ctx context.Context, res *ports.AuthResult) (*domain.Session, error) {
	if res == nil || res.AccessToken == "" {
		return nil, errors.New("auth response missing access token")
	}

	user, err := json.Marshal(res.User)
	if err != nil {
		return nil, fmt.Errorf("encode principal: %w", err)
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	expiresAt := s.now().Add(s.ttl)
	if exp, ok := tokenExpiry(res.AccessToken); ok {
		expiresAt = exp
	}

	rec := ports.SessionRecord{
		AccessToken: res.AccessToken,
		User:        string(user),
		ExpiresAt:   expiresAt.UTC(),
	}
	if err := s.repo.Save(ctx, id.String(), rec); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	principal := res.User
	return &domain.Session{
		ID:          id.String(),
		AccessToken: res.AccessToken,
		Principal:   &principal,
		ExpiresAt:   rec.ExpiresAt,
	}, nil
}
