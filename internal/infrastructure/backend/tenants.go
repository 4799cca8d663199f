package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/schoolsapp/schools-web/internal/core/domain"
)

// TenantDirectory implements ports.TenantDirectory against /subdomain.
type TenantDirectory struct {
	client *Client
}

func NewTenantDirectory(client *Client) *TenantDirectory {
	return &TenantDirectory{client: client}
}

// BySubdomain fetches the display record for key. It bypasses the HTTP cache.
func (d *TenantDirectory) BySubdomain(ctx context.Context, key string) (*domain.TenantDisplay, error) {
	var display domain.TenantDisplay
	err := d.client.do(ctx, call{
		op:     "tenants.get",
		method: http.MethodGet,
		path:   "/subdomain/" + url.PathEscape(key),
		out:    &display,
	})
	if err != nil {
		return nil, err
	}
	return &display, nil
}

// List returns every tenant. Responses are cached according to the API's
// Cache-Control headers; the caller's credential is still attached.
func (d *TenantDirectory) List(ctx context.Context) ([]domain.TenantSummary, error) {
	var tenants []domain.TenantSummary
	err := d.client.do(ctx, call{
		op:     "tenants.list",
		method: http.MethodGet,
		path:   "/subdomain/tenants",
		out:    &tenants,
		cached: true,
	})
	if err != nil {
		return nil, err
	}
	return tenants, nil
}
