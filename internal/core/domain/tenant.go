package domain

import "github.com/samber/lo"

// UnknownTenant is used when a request reached a page without a resolved tenant key.
const UnknownTenant = "unknown"

// TenantDisplay is the branding record shown on the login and register pages.
type TenantDisplay struct {
	Name           string `json:"name"`
	WelcomeMessage string `json:"welcome_message"`
}

// TenantSummary is one entry of the tenant directory.
type TenantSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
}

// FindTenantByName returns the tenant whose display name equals name.
func FindTenantByName(tenants []TenantSummary, name string) (TenantSummary, bool) {
	return lo.Find(tenants, func(t TenantSummary) bool {
		return t.Name == name
	})
}

// RivalCandidates lists every tenant except the caller's own.
func RivalCandidates(tenants []TenantSummary, ownTenantID string) []TenantSummary {
	return lo.Filter(tenants, func(t TenantSummary, _ int) bool {
		return t.ID != ownTenantID
	})
}
