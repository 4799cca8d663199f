package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"

	"github.com/schoolsapp/schools-web/internal/api"
	"github.com/schoolsapp/schools-web/internal/api/handler"
	"github.com/schoolsapp/schools-web/internal/api/middleware"
	"github.com/schoolsapp/schools-web/internal/core/ports"
	"github.com/schoolsapp/schools-web/internal/core/service"
	"github.com/schoolsapp/schools-web/internal/infrastructure/backend"
	"github.com/schoolsapp/schools-web/internal/infrastructure/config"
	"github.com/schoolsapp/schools-web/internal/infrastructure/db/memory"
	"github.com/schoolsapp/schools-web/internal/infrastructure/db/mongo"
	"github.com/schoolsapp/schools-web/internal/infrastructure/db/redis"
	"github.com/schoolsapp/schools-web/pkg/logger"
)

// ServeCmd runs the HTTP server. Settings come from the environment.
type ServeCmd struct{}

func (c *ServeCmd) Run(ctx context.Context, globals *Globals) error {
	cfg, err := config.Process(ctx, envconfig.OsLookuper())
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	level := cfg.LogLevel
	if globals.Debug {
		level = "debug"
	}
	log := logger.Init(logger.Options{
		Level:   level,
		Pretty:  cfg.IsDevelopment(),
		Service: "schools-web",
		Version: globals.Version,
	})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openSessionStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.close()

	client := backend.New(backend.Config{BaseURL: cfg.Backend.URL, Timeout: cfg.Backend.Timeout})
	tenants := backend.NewTenantDirectory(client)

	sessions := service.NewSessionService(backend.NewAuthGateway(client), store.sessions, cfg.Session.TTL, log)
	competitions := service.NewCompetitionService(backend.NewCompetitionGateway(client), store.cache, log)

	e, err := api.NewRouter(api.Dependencies{
		Sessions:     sessions,
		Competitions: competitions,
		Tenants:      tenants,
		Ready:        map[string]handler.Pinger{"sessions": store.sessions},
		Tenancy: middleware.TenantConfig{
			DevHostToken:  cfg.Tenancy.DevHostToken,
			DefaultTenant: cfg.Tenancy.DefaultTenant,
			PublicHost:    cfg.Tenancy.PublicHost,
			Development:   cfg.IsDevelopment(),
		},
		SecureCookie: cfg.Session.CookieSecure,
		Log:          log,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	srv := configureHTTPServer(net.JoinHostPort("", cfg.Port), e)
	srv.BaseContext = func(net.Listener) context.Context { return ctx }

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("env", cfg.Env).
			Str("session_backend", cfg.Session.Backend).
			Str("backend_url", cfg.Backend.URL).
			Msg("starting HTTP server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// sessionStore is the session repository and list cache chosen by
// SESSION_BACKEND, plus whatever must be released on exit.
type sessionStore struct {
	sessions ports.SessionRepository
	cache    ports.CompetitionCache
	closers  []func() error
}

func (s *sessionStore) close() {
	for _, fn := range s.closers {
		_ = fn()
	}
}

func openSessionStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*sessionStore, error) {
	store := &sessionStore{}
	cacheEnabled := cfg.CompetitionCacheTTL > 0

	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		rs, err := redis.Open(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB}, cfg.CompetitionCacheTTL)
		if err != nil {
			return nil, fmt.Errorf("open redis session store: %w", err)
		}
		store.sessions = rs.Sessions
		if cacheEnabled {
			store.cache = rs.Competitions
		}
		store.closers = append(store.closers, rs.Close)

	case config.SessionBackendMongo:
		repo, disconnect, err := mongo.OpenSessionRepository(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, fmt.Errorf("open mongo session store: %w", err)
		}
		store.sessions = repo
		store.closers = append(store.closers, func() error { return disconnect(context.Background()) })

	default:
		log.Warn().Msg("using in-memory sessions; they are lost on restart")
		store.sessions = memory.NewSessionRepository()
	}

	if cacheEnabled && store.cache == nil {
		store.cache = memory.NewCompetitionCache(cfg.CompetitionCacheTTL)
	}
	return store, nil
}
