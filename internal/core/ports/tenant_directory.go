package ports

import (
	"context"

	"github.com/schoolsapp/schools-web/internal/core/domain"
)

// TenantDirectory resolves tenant display data from the external API. Nothing
// here validates a tenant key locally; an unknown key surfaces as an API error.
type TenantDirectory interface {
	BySubdomain(ctx context.Context, key string) (*domain.TenantDisplay, error)
	List(ctx context.Context) ([]domain.TenantSummary, error)
}
