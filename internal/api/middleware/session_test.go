package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/schoolsapp/schools-web/internal/core/domain"
	"github.com/schoolsapp/schools-web/internal/core/ports"
)

type stubSessionService struct {
	sessions map[string]*domain.Session
	err      error
}

func (s *stubSessionService) Hydrate(_ context.Context, id string) (*domain.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	if sess, ok := s.sessions[id]; ok {
		return sess, nil
	}
	return &domain.Session{}, nil
}

func (s *stubSessionService) Login(context.Context, string, string, string) (*domain.Session, error) {
	return nil, errors.New("not implemented")
}

func (s *stubSessionService) Register(context.Context, ports.RegisterInput) (*domain.Session, error) {
	return nil, errors.New("not implemented")
}

func (s *stubSessionService) Logout(context.Context, string) error { return nil }

func TestSession_HydratesFromCookie(t *testing.T) {
	alice := &domain.Session{ID: "s1", AccessToken: "tok", Principal: &domain.Principal{ID: "u1", Role: domain.RoleAdmin}}
	svc := &stubSessionService{sessions: map[string]*domain.Session{"s1": alice}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "s1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session(svc, false)(func(c echo.Context) error {
		if SessionFrom(c).User() == nil || SessionFrom(c).User().ID != "u1" {
			t.Fatalf("session not hydrated")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("valid session must not touch the cookie")
	}
}

func TestSession_StaleCookieIsCleared(t *testing.T) {
	svc := &stubSessionService{}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "gone"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session(svc, false)(func(c echo.Context) error {
		if SessionFrom(c).User() != nil {
			t.Fatalf("expected empty session")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookieName || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected session cookie to be cleared, got %+v", cookies)
	}
}

func TestSession_RepositoryFailure(t *testing.T) {
	svc := &stubSessionService{err: errors.New("redis down")}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session(svc, false)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSessionFrom_NeverNil(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	if SessionFrom(c) == nil {
		t.Fatalf("expected empty session, got nil")
	}
}

func TestRequireSession_RedirectsAnonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/competitions", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireSession()(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("expected 303 to /login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}
