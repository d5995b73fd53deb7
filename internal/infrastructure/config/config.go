package config

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8090"`
	Env       string `env:"ENV,        default=development"`
	JWTSecret string `env:"JWT_SECRET, default=console-dev-secret"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`

	// SessionTTL bounds the lifetime of issued session tokens. The session
	// itself lives in process memory and dies with logout or restart.
	SessionTTL time.Duration `env:"SESSION_TTL, default=24h"`

	// RefreshSchedule is an optional cron expression; when set, every live
	// session's collections are re-synchronised on that schedule.
	RefreshSchedule string `env:"REFRESH_SCHEDULE"`

	Remote RemoteConfig
	Notify NotifyConfig
}

// RemoteConfig addresses the remote resource service.
type RemoteConfig struct {
	BaseURL string        `env:"API_BASE_URL,   default=http://localhost:8080"`
	Timeout time.Duration `env:"REMOTE_TIMEOUT, default=10s"`
}

// NotifyConfig controls how long transient feedback stays visible.
type NotifyConfig struct {
	SuccessTTL time.Duration `env:"NOTIFY_SUCCESS_TTL, default=3s"`
	ErrorTTL   time.Duration `env:"NOTIFY_ERROR_TTL,   default=5s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(log zerolog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		panic(err)
	}
	return &cfg
}

// Development reports whether the service runs in a development environment.
func (c *Config) Development() bool { return c.Env == "development" }
