package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/schoolsapp/schools-web/internal/api/middleware"
	"github.com/schoolsapp/schools-web/internal/api/views"
	"github.com/schoolsapp/schools-web/internal/core/domain"
	"github.com/schoolsapp/schools-web/internal/core/ports"
	"github.com/schoolsapp/schools-web/internal/infrastructure/backend"
)

func layout(c echo.Context, title string) views.Layout {
	return views.Layout{
		Title:     title,
		Tenant:    middleware.TenantFrom(c),
		Principal: middleware.SessionFrom(c).User(),
	}
}

// credentialContext is the request context carrying the session's access
// token, for tenant directory calls made outside the services.
func credentialContext(c echo.Context) context.Context {
	return ports.WithAccessToken(c.Request().Context(), middleware.SessionFrom(c).AccessToken)
}

// failureStatus is the status a form is re-rendered with after err. Client
// errors reported by the API keep their status; anything else upstream is a
// bad gateway.
func failureStatus(err error) int {
	var ve *ValidationError
	if errors.As(err, &ve) || errors.Is(err, domain.ErrPasswordMismatch) {
		return http.StatusUnprocessableEntity
	}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		return apiErr.Status
	}
	return http.StatusBadGateway
}

// failureMessage is the inline text for err. Unexpected errors fall back to
// a generic message so no internals reach the page.
func failureMessage(err error, fallback string) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	if errors.Is(err, domain.ErrPasswordMismatch) {
		return "Passwords do not match"
	}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// isAccessError reports errors that must surface as an error page rather
// than an inline message.
func isAccessError(err error) bool {
	return errors.Is(err, domain.ErrForbidden) ||
		errors.Is(err, domain.ErrUnauthenticated) ||
		errors.Is(err, domain.ErrCompetitionNotFound)
}
