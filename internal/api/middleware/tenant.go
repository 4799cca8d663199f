package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/schoolsapp/schools-web/internal/core/domain"
	"github.com/schoolsapp/schools-web/internal/metrics"
)

// SubdomainHeader carries the resolved tenant key on the inbound request.
const SubdomainHeader = "x-subdomain"

const tenantKey = "tenant"

// skippedPrefixes are never tenant-resolved.
var skippedPrefixes = []string{"/api", "/static", "/swagger", "/metrics", "/health"}

// TenantConfig drives tenant resolution.
type TenantConfig struct {
	// DevHostToken is the host value treated as "no tenant" in development.
	DevHostToken string
	// DefaultTenant is the subdomain requests without a tenant are sent to.
	DefaultTenant string
	// PublicHost is the redirect host outside development.
	PublicHost string
	// Development selects http://localhost:3000 as the redirect base.
	Development bool
}

// Tenant derives the tenant key from the Host header: the label before the
// first dot. Hosts without a dot, and the development token itself, are
// redirected (307) to the default tenant with the path preserved.
func Tenant(cfg TenantConfig) echo.MiddlewareFunc {
	scheme, host := "https", cfg.PublicHost
	if cfg.Development {
		scheme, host = "http", "localhost:3000"
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if skipTenant(req.URL.Path) {
				return next(c)
			}

			key, reason := resolveTenant(req.Host, cfg.DevHostToken)
			if reason != "" {
				metrics.TenantRedirectsTotal.WithLabelValues(reason).Inc()
				target := fmt.Sprintf("%s://%s.%s%s", scheme, cfg.DefaultTenant, host, req.URL.Path)
				return c.Redirect(http.StatusTemporaryRedirect, target)
			}

			req.Header.Set(SubdomainHeader, key)
			c.Set(tenantKey, key)
			return next(c)
		}
	}
}

// resolveTenant returns the tenant key of host, or a non-empty redirect
// reason when host carries none.
func resolveTenant(host, devToken string) (key, redirectReason string) {
	key, _, hasDot := strings.Cut(host, ".")
	switch {
	case key == devToken:
		return "", "dev_token"
	case !hasDot:
		return "", "no_subdomain"
	}
	return key, ""
}

func skipTenant(path string) bool {
	if path == "/favicon.ico" {
		return true
	}
	for _, p := range skippedPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// TenantFrom returns the tenant key resolved for this request, or
// domain.UnknownTenant when none was resolved.
func TenantFrom(c echo.Context) string {
	if key, _ := c.Get(tenantKey).(string); key != "" {
		return key
	}
	return domain.UnknownTenant
}
