package ports

import (
	"context"

	"github.com/schoolsapp/schools-web/internal/core/domain"
)

// RegisterInput carries the registration form after validation.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Tenant    string
	IsAdmin   bool
}

// SessionService owns the session lifecycle: hydrate, login, register, logout.
type SessionService interface {
	Hydrate(ctx context.Context, id string) (*domain.Session, error)
	Login(ctx context.Context, email, password, tenant string) (*domain.Session, error)
	Register(ctx context.Context, in RegisterInput) (*domain.Session, error)
	Logout(ctx context.Context, id string) error
}

// CompetitionService is the competition use-case layer. Every call takes the
// caller's session explicitly.
type CompetitionService interface {
	List(ctx context.Context, sess *domain.Session) ([]domain.Competition, error)
	Find(ctx context.Context, sess *domain.Session, id string) (*domain.Competition, error)
	Create(ctx context.Context, sess *domain.Session, draft domain.CompetitionDraft) (*domain.Competition, error)
	Update(ctx context.Context, sess *domain.Session, id string, draft domain.CompetitionDraft) (*domain.Competition, error)
	Delete(ctx context.Context, sess *domain.Session, id string) error
}
