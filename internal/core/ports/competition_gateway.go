package ports

import (
	"context"

	"github.com/schoolsapp/schools-web/internal/core/domain"
)

// CompetitionGateway is the competition resource of the external API. The
// bearer credential travels in ctx (see WithAccessToken).
type CompetitionGateway interface {
	List(ctx context.Context) ([]domain.Competition, error)
	// Create sends draft together with the owner tenant and creator IDs.
	Create(ctx context.Context, draft domain.CompetitionDraft, ownerTenantID, createdBy string) (*domain.Competition, error)
	Update(ctx context.Context, id string, draft domain.CompetitionDraft) (*domain.Competition, error)
	Delete(ctx context.Context, id string) error
}

// CompetitionCache holds the last fetched list per session.
type CompetitionCache interface {
	Get(ctx context.Context, sessionID string) ([]domain.Competition, bool, error)
	Set(ctx context.Context, sessionID string, comps []domain.Competition) error
	Invalidate(ctx context.Context, sessionID string) error
}
