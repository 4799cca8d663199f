package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/schoolsapp/schools-web/internal/core/domain"
	"github.com/schoolsapp/schools-web/internal/core/ports"
	"github.com/schoolsapp/schools-web/internal/metrics"
)

// CompetitionService gates competition operations with the authorization
// predicate and forwards them to the external API with the caller's credential.
type CompetitionService struct {
	gateway ports.CompetitionGateway
	cache   ports.CompetitionCache
	logger  zerolog.Logger
}

// NewCompetitionService wires the service. cache may be nil, in which case
// every List goes to the API.
func NewCompetitionService(gateway ports.CompetitionGateway, cache ports.CompetitionCache, logger zerolog.Logger) *CompetitionService {
	return &CompetitionService{gateway: gateway, cache: cache, logger: logger}
}

// List returns every competition visible to the caller, in one call.
func (s *CompetitionService) List(ctx context.Context, sess *domain.Session) ([]domain.Competition, error) {
	if !domain.CanView(sess.User()) {
		return nil, domain.ErrUnauthenticated
	}

	if s.cache != nil {
		comps, ok, err := s.cache.Get(ctx, sess.ID)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Str("session_id", sess.ID).Msg("competition cache read failed")
		case ok:
			metrics.CompetitionCacheTotal.WithLabelValues("hit").Inc()
			return comps, nil
		default:
			metrics.CompetitionCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	comps, err := s.gateway.List(withCredential(ctx, sess))
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, sess.ID, comps); err != nil {
			s.logger.Warn().Err(err).Str("session_id", sess.ID).Msg("competition cache write failed")
		}
	}
	return comps, nil
}

// Find looks id up in the caller's listed collection.
func (s *CompetitionService) Find(ctx context.Context, sess *domain.Session, id string) (*domain.Competition, error) {
	comps, err := s.List(ctx, sess)
	if err != nil {
		return nil, err
	}
	c, ok := lo.Find(comps, func(c domain.Competition) bool { return c.ID == id })
	if !ok {
		return nil, domain.ErrCompetitionNotFound
	}
	return &c, nil
}

// Create submits draft owned by the caller's tenant and attributed to the
// caller. Only admins may create.
func (s *CompetitionService) Create(ctx context.Context, sess *domain.Session, draft domain.CompetitionDraft) (*domain.Competition, error) {
	p := sess.User()
	if p == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !domain.CanCreate(p) {
		observeMutation("create", domain.ErrForbidden)
		return nil, domain.ErrForbidden
	}

	created, err := s.gateway.Create(withCredential(ctx, sess), draft, p.TenantID, p.ID)
	observeMutation("create", err)
	if err != nil {
		return nil, fmt.Errorf("create competition: %w", err)
	}

	s.invalidate(ctx, sess)
	s.logger.Info().Str("tenant_id", p.TenantID).Str("user_id", p.ID).Msg("competition created")
	return created, nil
}

// Update replaces the competition id with draft.
func (s *CompetitionService) Update(ctx context.Context, sess *domain.Session, id string, draft domain.CompetitionDraft) (*domain.Competition, error) {
	if err := s.authorizeEdit(ctx, sess, id); err != nil {
		observeMutation("update", err)
		return nil, err
	}

	updated, err := s.gateway.Update(withCredential(ctx, sess), id, draft)
	observeMutation("update", err)
	if err != nil {
		return nil, fmt.Errorf("update competition %s: %w", id, err)
	}

	s.invalidate(ctx, sess)
	s.logger.Info().Str("competition_id", id).Str("user_id", sess.Principal.ID).Msg("competition updated")
	return updated, nil
}

// Delete removes the competition id.
func (s *CompetitionService) Delete(ctx context.Context, sess *domain.Session, id string) error {
	if err := s.authorizeEdit(ctx, sess, id); err != nil {
		observeMutation("delete", err)
		return err
	}

	err := s.gateway.Delete(withCredential(ctx, sess), id)
	observeMutation("delete", err)
	if err != nil {
		return fmt.Errorf("delete competition %s: %w", id, err)
	}

	s.invalidate(ctx, sess)
	s.logger.Info().Str("competition_id", id).Str("user_id", sess.Principal.ID).Msg("competition deleted")
	return nil
}

func (s *CompetitionService) authorizeEdit(ctx context.Context, sess *domain.Session, id string) error {
	if sess.User() == nil {
		return domain.ErrUnauthenticated
	}
	target, err := s.Find(ctx, sess, id)
	if err != nil {
		return err
	}
	if !domain.CanEdit(sess.User(), *target) {
		return domain.ErrForbidden
	}
	return nil
}

// invalidate drops the cached list so the next page load refetches.
func (s *CompetitionService) invalidate(ctx context.Context, sess *domain.Session) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, sess.ID); err != nil {
		s.logger.Warn().Err(err).Str("session_id", sess.ID).Msg("competition cache invalidation failed")
	}
}

func withCredential(ctx context.Context, sess *domain.Session) context.Context {
	return ports.WithAccessToken(ctx, sess.AccessToken)
}

func observeMutation(action string, err error) {
	result := "success"
	switch {
	case errors.Is(err, domain.ErrForbidden):
		result = "forbidden"
	case err != nil:
		result = "error"
	}
	metrics.CompetitionMutationsTotal.WithLabelValues(action, result).Inc()
}
