package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/schoolsapp/schools-web/internal/api/middleware"
	"github.com/schoolsapp/schools-web/internal/api/views"
	"github.com/schoolsapp/schools-web/internal/core/domain"
	"github.com/schoolsapp/schools-web/internal/core/ports"
	"github.com/schoolsapp/schools-web/internal/metrics"
)

type AuthHandler struct {
	sessions     ports.SessionService
	tenants      ports.TenantDirectory
	secureCookie bool
	log          zerolog.Logger
}

func NewAuthHandler(sessions ports.SessionService, tenants ports.TenantDirectory, secureCookie bool, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, tenants: tenants, secureCookie: secureCookie, log: log}
}

type loginForm struct {
	Email    string `form:"email"    validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type registerForm struct {
	FirstName       string `form:"first_name"       validate:"required"`
	LastName        string `form:"last_name"        validate:"required"`
	Email           string `form:"email"            validate:"required,email"`
	Password        string `form:"password"         validate:"required"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
	IsAdmin         bool   `form:"is_admin"`
}

// LoginPage renders the tenant-branded login form.
//
// @Summary      Login form
// @Tags         auth
// @Produce      html
// @Success      200
// @Failure      502  "tenant display could not be loaded"
// @Router       /login [get]
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return h.renderAuth(c, views.PageLogin, http.StatusOK, domain.Submission{}, nil)
}

// Login authenticates against the auth API for the request's tenant and
// starts a session.
//
// @Summary      Submit login
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        email     formData  string  true  "Email"
// @Param        password  formData  string  true  "Password"
// @Success      303  "redirect to /"
// @Failure      401  "credentials rejected, form re-rendered"
// @Failure      422  "validation failed, form re-rendered"
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	values := map[string]string{"email": form.Email}

	if err := c.Validate(&form); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid").Inc()
		return h.renderAuth(c, views.PageLogin, failureStatus(err), domain.FailedSubmission(failureMessage(err, "Invalid form")), values)
	}

	sess, err := h.sessions.Login(c.Request().Context(), form.Email, form.Password, middleware.TenantFrom(c))
	if err != nil {
		h.log.Warn().Err(err).Str("tenant", middleware.TenantFrom(c)).Msg("login failed")
		return h.renderAuth(c, views.PageLogin, failureStatus(err), domain.FailedSubmission(failureMessage(err, "Login failed")), values)
	}

	middleware.SetSession(c, sess, h.secureCookie)
	return c.Redirect(http.StatusSeeOther, "/")
}

// RegisterPage renders the tenant-branded registration form.
//
// @Summary      Registration form
// @Tags         auth
// @Produce      html
// @Success      200
// @Failure      502  "tenant display could not be loaded"
// @Router       /register [get]
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return h.renderAuth(c, views.PageRegister, http.StatusOK, domain.Submission{}, nil)
}

// Register creates the account in the request's tenant and starts a session.
// Password confirmation is checked before the API is called.
//
// @Summary      Submit registration
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        first_name        formData  string  true   "First name"
// @Param        last_name         formData  string  true   "Last name"
// @Param        email             formData  string  true   "Email"
// @Param        password          formData  string  true   "Password"
// @Param        confirm_password  formData  string  true   "Password confirmation"
// @Param        is_admin          formData  bool    false  "Register as administrator"
// @Success      303  "redirect to /"
// @Failure      422  "validation failed, form re-rendered"
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	values := map[string]string{
		"first_name": form.FirstName,
		"last_name":  form.LastName,
		"email":      form.Email,
	}
	if form.IsAdmin {
		values["is_admin"] = "true"
	}

	if form.Password != form.ConfirmPassword {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "invalid").Inc()
		err := domain.ErrPasswordMismatch
		return h.renderAuth(c, views.PageRegister, failureStatus(err), domain.FailedSubmission(failureMessage(err, "")), values)
	}
	if err := c.Validate(&form); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "invalid").Inc()
		return h.renderAuth(c, views.PageRegister, failureStatus(err), domain.FailedSubmission(failureMessage(err, "Invalid form")), values)
	}

	sess, err := h.sessions.Register(c.Request().Context(), ports.RegisterInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  form.Password,
		Tenant:    middleware.TenantFrom(c),
		IsAdmin:   form.IsAdmin,
	})
	if err != nil {
		h.log.Warn().Err(err).Str("tenant", middleware.TenantFrom(c)).Msg("registration failed")
		return h.renderAuth(c, views.PageRegister, failureStatus(err), domain.FailedSubmission(failureMessage(err, "Registration failed")), values)
	}

	middleware.SetSession(c, sess, h.secureCookie)
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout ends the session. Calling it without a session, or twice, has the
// same outcome as calling it once.
//
// @Summary      Logout
// @Tags         auth
// @Success      303  "redirect to /"
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var id string
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		id = cookie.Value
	}

	if err := h.sessions.Logout(c.Request().Context(), id); err != nil {
		h.log.Error().Err(err).Msg("logout failed to drop persisted session")
	}

	middleware.ClearSessionCookie(c, h.secureCookie)
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) renderAuth(c echo.Context, page string, status int, sub domain.Submission, values map[string]string) error {
	tenant := middleware.TenantFrom(c)
	display, err := h.tenants.BySubdomain(credentialContext(c), tenant)
	if err != nil {
		return err
	}

	title := "Login"
	if page == views.PageRegister {
		title = "Register"
	}
	return c.Render(status, page, views.AuthPage{
		Layout:         layout(c, title),
		TenantName:     display.Name,
		WelcomeMessage: display.WelcomeMessage,
		Submission:     sub,
		Values:         values,
	})
}
