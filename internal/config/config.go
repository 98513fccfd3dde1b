package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/songsmith/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
	MigrationsSource    string        `env:"MIGRATIONS_SOURCE" envDefault:"file://internal/repository/migrations"`

	// External service configurations
	MusicConnectorCfg     MusicConnectorConfig     `envPrefix:"MUSIC_"`
	InferenceConnectorCfg InferenceConnectorConfig `envPrefix:"INFERENCE_"`
	CallbackConnectorCfg  CallbackConnectorConfig  `envPrefix:"CALLBACK_"`

	// Job store configuration
	JobStoreCfg JobStoreConfig `envPrefix:"JOB_STORE_"`

	// Generation policy
	GenerationCfg GenerationConfig `envPrefix:"GENERATION_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

type MusicConnectorConfig struct {
	HTTPClientConfig
	SubmitEndpoint string               `env:"SUBMIT_ENDPOINT" envDefault:"/fal-ai/minimax-music/v2"`
	StatusEndpoint string               `env:"STATUS_ENDPOINT" envDefault:"/fal-ai/minimax-music/requests"`
	SampleRate     int                  `env:"SAMPLE_RATE" envDefault:"44100"`
	Bitrate        int                  `env:"BITRATE" envDefault:"256000"`
	Format         string               `env:"FORMAT" envDefault:"mp3"`
	Retry          pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type InferenceConnectorConfig struct {
	APIKey    string        `env:"API_KEY"`
	BaseURL   string        `env:"BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	Model     string        `env:"MODEL" envDefault:"anthropic/claude-3.5-haiku"`
	MaxTokens int64         `env:"MAX_TOKENS" envDefault:"500"`
	Timeout   time.Duration `env:"TIMEOUT" envDefault:"20s"`
}

type CallbackConnectorConfig struct {
	HTTPClientConfig
	Retry pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"30s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"10s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

// JobStoreConfig controls how long provider job snapshots are kept
type JobStoreConfig struct {
	TTL             time.Duration `env:"TTL" envDefault:"24h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
}

// GenerationConfig holds revision and background watch settings
type GenerationConfig struct {
	BaseRevisions int           `env:"BASE_REVISIONS" envDefault:"3"`
	WatchInterval time.Duration `env:"WATCH_INTERVAL" envDefault:"5s"`
	WatchTimeout  time.Duration `env:"WATCH_TIMEOUT" envDefault:"15m"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	cfg.Environment = *envFlag

	return cfg, nil
}

// Parse reads the configuration from the process environment and validates it
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	// Validate Database configuration
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	// Validate generation policy
	if cfg.GenerationCfg.BaseRevisions < 1 || cfg.GenerationCfg.BaseRevisions > 20 {
		errors = append(errors, fmt.Sprintf("GENERATION_BASE_REVISIONS must be between 1 and 20, got %d", cfg.GenerationCfg.BaseRevisions))
	}

	if cfg.GenerationCfg.WatchInterval <= 0 || cfg.GenerationCfg.WatchTimeout < cfg.GenerationCfg.WatchInterval {
		errors = append(errors, "GENERATION_WATCH_INTERVAL must be positive and not exceed GENERATION_WATCH_TIMEOUT")
	}

	// Real connectors need an upstream
	if !cfg.EnableMocks {
		if cfg.MusicConnectorCfg.Url == "" {
			errors = append(errors, "MUSIC_SERVICE_URL is required when ENABLE_MOCKS is false")
		}
		if cfg.MusicConnectorCfg.Token == "" {
			errors = append(errors, "MUSIC_TOKEN is required when ENABLE_MOCKS is false")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
