package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Session backends selectable through SESSION_BACKEND.
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
	SessionBackendMongo  = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Tenancy TenancyConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig

	CompetitionCacheTTL time.Duration `env:"COMPETITION_CACHE_TTL, default=15s"`
	ShutdownTimeout     time.Duration `env:"SHUTDOWN_TIMEOUT,      default=10s"`
}

type BackendConfig struct {
	URL     string        `env:"BACKEND_URL,     default=http://localhost:4000"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=10s"`
}

type TenancyConfig struct {
	PublicHost    string `env:"PUBLIC_HOST,    default=localhost:3000"`
	DevHostToken  string `env:"DEV_HOST_TOKEN, default=localhost:3000"`
	DefaultTenant string `env:"DEFAULT_TENANT, default=utah"`
}

type SessionConfig struct {
	Backend      string        `env:"SESSION_BACKEND,       default=memory"`
	TTL          time.Duration `env:"SESSION_TTL,           default=24h"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE, default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=schools_web"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// IsDevelopment reports whether redirects and logging run in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Process reads configuration through lookuper and validates it.
func Process(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}

	switch cfg.Session.Backend {
	case SessionBackendMemory, SessionBackendRedis, SessionBackendMongo:
	default:
		return nil, fmt.Errorf("SESSION_BACKEND: unsupported backend %q", cfg.Session.Backend)
	}
	return &cfg, nil
}
