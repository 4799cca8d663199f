package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/schoolsapp/schools-web/internal/core/domain"
)

// RBAC admits only session principals holding one of allowedRoles. Anything
// else fails with domain.ErrForbidden, which the error handler renders as 403.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := SessionFrom(c).User()
			if p == nil {
				return domain.ErrForbidden
			}
			if _, ok := allowed[p.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
