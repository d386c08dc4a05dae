package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/yield-ingester/internal/domain"
)

const (
	serviceName = "ingester"
	envPrefix   = "YIELD_INGESTER"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	// URL is a full connection string; when set it takes precedence over the discrete fields
	URL             string        `mapstructure:"url"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// SourcesConfig holds the feed endpoints
type SourcesConfig struct {
	PoolsURL     string        `mapstructure:"pools_url"`
	ProtocolsURL string        `mapstructure:"protocols_url"`
	HTTPTimeout  time.Duration `mapstructure:"http_timeout"`
}

// StartupConfig controls how long the service waits for the database
type StartupConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	RetryDelay  time.Duration `mapstructure:"retry_delay"`
}

// MetricsConfig holds the metrics server configuration
type MetricsConfig struct {
	// Address to serve /metrics and /healthz on, disabled when empty
	Address string `mapstructure:"address"`
}

// IngesterConfig holds configuration for the ingester
type IngesterConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Sources    SourcesConfig  `mapstructure:"sources"`
	Startup    StartupConfig  `mapstructure:"startup"`
	Metrics    MetricsConfig  `mapstructure:"metrics"`
	// Schedule is a cron spec; empty runs the pipeline once and exits
	Schedule   string        `mapstructure:"schedule"`
	RunTimeout time.Duration `mapstructure:"run_timeout"`
}

// LoadIngesterConfig loads configuration for the ingester
func LoadIngesterConfig(configFile string, envPath string) (*IngesterConfig, error) {
	v := configureViper(serviceName, configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 4)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.conn_max_idle_time", "5m")
	v.SetDefault("sources.pools_url", domain.DEFAULT_POOLS_URL)
	v.SetDefault("sources.protocols_url", domain.DEFAULT_PROTOCOLS_URL)
	v.SetDefault("sources.http_timeout", "30s")
	v.SetDefault("startup.max_attempts", 10)
	v.SetDefault("startup.retry_delay", "3s")
	v.SetDefault("run_timeout", "10m")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use environment variables
	}

	var cfg IngesterConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the fields the ingester cannot run without
func (c *IngesterConfig) Validate() error {
	for key, raw := range map[string]string{
		"sources.pools_url":     c.Sources.PoolsURL,
		"sources.protocols_url": c.Sources.ProtocolsURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s is not a valid URL: %q", key, raw)
		}
	}
	if c.Startup.MaxAttempts < 1 {
		return errors.New("startup.max_attempts must be at least 1")
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service directory (cmd/ingester/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.url",
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Sources
		"sources.pools_url",
		"sources.protocols_url",
		"sources.http_timeout",
		// Startup
		"startup.max_attempts",
		"startup.retry_delay",
		// Runtime
		"schedule",
		"run_timeout",
		"metrics.address",
	}

	for _, key := range keys {
		if legacy, ok := legacyEnvVars[key]; ok {
			_ = v.BindEnv(key, envPrefix+"_"+envKeyReplacer.Replace(strings.ToUpper(key)), legacy)
			continue
		}
		_ = v.BindEnv(key)
	}
}

// legacyEnvVars are unprefixed names still honored by existing deployments.
// The prefixed name wins when both are set.
var legacyEnvVars = map[string]string{
	"database.url":      "DATABASE_URL",
	"sources.pools_url": "SOURCE_URL",
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string.
// URL wins over the discrete fields; with neither set the local default is used.
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	if c.Host == "" {
		return domain.DEFAULT_DATABASE_URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
