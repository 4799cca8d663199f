package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/schoolsapp/schools-web/internal/core/domain"
	"github.com/schoolsapp/schools-web/internal/core/ports"
)

// SessionCookieName holds the opaque session ID.
const SessionCookieName = "_session"

const sessionKey = "session"

// Session hydrates the caller's session from the cookie before the handler
// runs. Handlers read it with SessionFrom. A cookie that no longer maps to a
// usable session is cleared.
func Session(sessions ports.SessionService, secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var id string
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				id = cookie.Value
			}

			sess, err := sessions.Hydrate(c.Request().Context(), id)
			if err != nil {
				return fmt.Errorf("session middleware: %w", err)
			}
			if id != "" && !sess.Authenticated() {
				ClearSessionCookie(c, secure)
			}

			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

// SessionFrom returns the hydrated session. It never returns nil.
func SessionFrom(c echo.Context) *domain.Session {
	if sess, ok := c.Get(sessionKey).(*domain.Session); ok && sess != nil {
		return sess
	}
	return &domain.Session{}
}

// SetSession makes sess the request's session and writes its cookie.
func SetSession(c echo.Context, sess *domain.Session, secure bool) {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	if !sess.ExpiresAt.IsZero() {
		cookie.Expires = sess.ExpiresAt
	}
	c.SetCookie(cookie)
	c.Set(sessionKey, sess)
}

// ClearSessionCookie expires the session cookie in the browser.
func ClearSessionCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
	c.Set(sessionKey, &domain.Session{})
}

// RequireSession sends callers without a principal to the login page.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if SessionFrom(c).User() == nil {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			return next(c)
		}
	}
}
