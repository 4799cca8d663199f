package api

import (
	"net/http"

	"filippo.io/csrf"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/schoolsapp/schools-web/docs"
	"github.com/schoolsapp/schools-web/internal/api/handler"
	"github.com/schoolsapp/schools-web/internal/api/middleware"
	"github.com/schoolsapp/schools-web/internal/api/views"
	"github.com/schoolsapp/schools-web/internal/core/domain"
	"github.com/schoolsapp/schools-web/internal/core/ports"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Sessions     ports.SessionService
	Competitions ports.CompetitionService
	Tenants      ports.TenantDirectory
	// Ready lists the dependencies pinged by the readiness probe.
	Ready map[string]handler.Pinger

	Tenancy      middleware.TenantConfig
	SecureCookie bool
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	renderer, err := views.NewRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddleware("schools_web"))
	e.Use(echo.WrapMiddleware(csrf.New().Handler))
	e.Use(middleware.Tenant(deps.Tenancy))

	// --- Operational routes (not tenant-resolved) ---
	health := handler.NewHealthHandler(deps.Ready)
	e.GET("/health", health.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", health.Readiness) // readiness – is the session backend up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.StaticFS("/static", views.Static())
	e.GET("/favicon.ico", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	// --- Pages ---
	pages := e.Group("", middleware.Session(deps.Sessions, deps.SecureCookie))

	auth := handler.NewAuthHandler(deps.Sessions, deps.Tenants, deps.SecureCookie, deps.Log)
	pages.GET("/login", auth.LoginPage)
	pages.POST("/login", auth.Login)
	pages.GET("/register", auth.RegisterPage)
	pages.POST("/register", auth.Register)
	pages.POST("/logout", auth.Logout)
	pages.GET("/logout", auth.Logout)

	comps := handler.NewCompetitionHandler(deps.Competitions, deps.Tenants, deps.Log)
	pages.GET("/", comps.Home)

	signedIn := pages.Group("/competitions", middleware.RequireSession())
	signedIn.POST("", comps.Create, middleware.RBAC(domain.RoleAdmin))
	signedIn.GET("/:id/edit", comps.Edit)
	signedIn.POST("/:id", comps.Update)
	signedIn.POST("/:id/delete", comps.Delete)

	return e, nil
}
