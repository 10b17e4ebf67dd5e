package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	StorageBackendPostgres = "postgres"
	StorageBackendMemory   = "memory"

	defaultPlanWriterTimeout = 8 * time.Second
	minPlanWriterTimeout     = 5 * time.Second
	maxPlanWriterTimeout     = 10 * time.Second
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// storage
	StorageBackend string `toml:"storage_backend"`
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// fitness
	DefaultTimezone             string `toml:"default_timezone"`
	PlanWriterEnabled           bool   `toml:"plan_writer_enabled"`
	PlanWriterBaseURL           string `toml:"plan_writer_base_url"`
	PlanWriterModel             string `toml:"plan_writer_model"`
	PlanWriterTimeoutSec        int    `toml:"plan_writer_timeout_sec"`
	PlanGenerateRateLimitPerMin int    `toml:"plan_generate_rate_limit_per_min"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the section for env, with defaults applied.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode toml config [%s]: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config section for env [%s] missing", env)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.StorageBackend == "" {
		c.StorageBackend = StorageBackendPostgres
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.DefaultTimezone == "" {
		c.DefaultTimezone = "UTC"
	}
	if c.PlanGenerateRateLimitPerMin <= 0 {
		c.PlanGenerateRateLimitPerMin = 10
	}
}

func (c *Config) Validate() error {
	if c.Port <= 0 {
		return errors.New("port must be set")
	}
	switch c.StorageBackend {
	case StorageBackendPostgres, StorageBackendMemory:
	default:
		return fmt.Errorf("unknown storage backend: %s", c.StorageBackend)
	}
	if _, err := time.LoadLocation(c.DefaultTimezone); err != nil {
		return fmt.Errorf("default timezone: %w", err)
	}
	if c.PlanWriterEnabled && c.PlanWriterBaseURL == "" {
		return errors.New("plan writer enabled, but base url not set")
	}
	return nil
}

// PlanWriterTimeout returns the configured plan writer deadline, kept within 5-10s.
func (c *Config) PlanWriterTimeout() time.Duration {
	if c.PlanWriterTimeoutSec <= 0 {
		return defaultPlanWriterTimeout
	}
	d := time.Duration(c.PlanWriterTimeoutSec) * time.Second
	if d < minPlanWriterTimeout {
		return minPlanWriterTimeout
	}
	if d > maxPlanWriterTimeout {
		return maxPlanWriterTimeout
	}
	return d
}

func (c *Config) DefaultLocation() *time.Location {
	loc, err := time.LoadLocation(c.DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Secrets are never kept in the TOML file.
type Secrets struct {
	PostgresPassword string
	RedisPassword    string
	SentryDSN        string
	IPInfoToken      string
	PlanWriterAPIKey string
	HoneycombEnabled bool
}

// LoadSecrets reads secrets from the environment, after optionally loading dotEnvPath.
// A missing .env file is not an error.
func LoadSecrets(dotEnvPath string) Secrets {
	if dotEnvPath != "" {
		if err := godotenv.Load(dotEnvPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warnf("load env file [%s]: %s", dotEnvPath, err)
		}
	}

	return Secrets{
		PostgresPassword: os.Getenv("FITPLAN_POSTGRES_PASS"),
		RedisPassword:    os.Getenv("FITPLAN_REDIS_PASS"),
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		IPInfoToken:      os.Getenv("IP_INFO_API_KEY"),
		PlanWriterAPIKey: os.Getenv("PLAN_WRITER_API_KEY"),
		HoneycombEnabled: os.Getenv("HONEYCOMB_ENABLED") == "true",
	}
}
