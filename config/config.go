package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config is the full runtime configuration, loaded once at startup.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Feed     FeedConfig
	Media    MediaConfig
	Sentry   SentryConfig
	Tracing  TracingConfig
	LogLevel string
}

type ServerConfig struct {
	Addr string
	Mode string // gin mode: debug, release, test
}

type DatabaseConfig struct {
	Driver string // sqlite or postgres
	DSN    string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Enabled  bool
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

type FeedConfig struct {
	PageSize int
	CacheTTL time.Duration
}

type MediaConfig struct {
	Dir string
}

type SentryConfig struct {
	DSN string
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

// Load reads configuration from config.yaml (optional) and environment
// variables, with sane defaults for local development.
func Load() (*Config, error) {
	viper.SetDefault("SERVER_ADDR", ":8080")
	viper.SetDefault("SERVER_MODE", "debug")

	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "plume.db")

	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("SESSION_SECRET", "dev-secret-change-me")
	viper.SetDefault("SESSION_TTL", "168h")

	viper.SetDefault("FEED_PAGE_SIZE", 10)
	viper.SetDefault("FEED_CACHE_TTL", "20s")

	viper.SetDefault("MEDIA_DIR", "media")

	viper.SetDefault("SENTRY_DSN", "")

	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACING_ENDPOINT", "localhost:4318")

	viper.SetDefault("LOG_LEVEL", "info")

	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr: viper.GetString("SERVER_ADDR"),
			Mode: viper.GetString("SERVER_MODE"),
		},
		Database: DatabaseConfig{
			Driver: viper.GetString("DB_DRIVER"),
			DSN:    viper.GetString("DB_DSN"),
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("REDIS_ENABLED"),
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			Secret: viper.GetString("SESSION_SECRET"),
			TTL:    viper.GetDuration("SESSION_TTL"),
		},
		Feed: FeedConfig{
			PageSize: viper.GetInt("FEED_PAGE_SIZE"),
			CacheTTL: viper.GetDuration("FEED_CACHE_TTL"),
		},
		Media: MediaConfig{
			Dir: viper.GetString("MEDIA_DIR"),
		},
		Sentry: SentryConfig{
			DSN: viper.GetString("SENTRY_DSN"),
		},
		Tracing: TracingConfig{
			Enabled:  viper.GetBool("TRACING_ENABLED"),
			Endpoint: viper.GetString("TRACING_ENDPOINT"),
		},
		LogLevel: viper.GetString("LOG_LEVEL"),
	}
	return cfg, nil
}
