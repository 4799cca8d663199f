package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/schoolsapp/schools-web/internal/api/middleware"
	"github.com/schoolsapp/schools-web/internal/api/views"
	"github.com/schoolsapp/schools-web/internal/core/domain"
	"github.com/schoolsapp/schools-web/internal/infrastructure/backend"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Maps failures of the external API to 502.
//   - Logs unexpected errors internally without leaking details to the page.
//   - Renders the HTML error page.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrUnauthenticated) {
			_ = c.Redirect(http.StatusSeeOther, "/login")
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}

		page := views.ErrorPage{
			Layout: views.Layout{
				Title:     http.StatusText(code),
				Tenant:    middleware.TenantFrom(c),
				Principal: middleware.SessionFrom(c).User(),
			},
			Status:  code,
			Message: msg,
		}
		if rerr := c.Render(code, views.PageError, page); rerr != nil {
			log.Error().Err(rerr).Msg("render error page")
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "You are not allowed to do that."
	case errors.Is(err, domain.ErrCompetitionNotFound):
		return http.StatusNotFound, "Competition not found."
	}

	// External API failures: rejected requests, unreachable host, timeouts.
	var urlErr *url.Error
	if backend.IsAPIError(err) || errors.As(err, &urlErr) || errors.Is(err, context.DeadlineExceeded) {
		log.Warn().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("external API failure")
		return http.StatusBadGateway, "The schools service is unavailable right now. Please try again."
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Something went wrong."
}
