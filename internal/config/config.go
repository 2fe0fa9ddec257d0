// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types and validates that required
// values are present so they can be reused across the application runtime.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from every variable read by koanf.
//
// Nesting levels are separated by a double underscore:
//
//	PORTFOLIO_SERVER__PORT            -> server.port
//	PORTFOLIO_STORAGE__MINIO__BUCKET  -> storage.minio.bucket
const EnvPrefix = "PORTFOLIO_"

// DatabaseURLEnv is read without the prefix so the usual PaaS variable works.
const DatabaseURLEnv = "DATABASE_URL"

// Config is the root configuration object for the application.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Storage       StorageConfig        `koanf:"storage" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=local development staging production test"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	MaxBodySize        string   `koanf:"max_body_size" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`
}

// DatabaseConfig selects and tunes the persistent store.
//
// When URL is empty the application falls back to a SQLite file at SQLitePath.
type DatabaseConfig struct {
	URL             string `koanf:"url"`
	SQLitePath      string `koanf:"sqlite_path" validate:"required_without=URL"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"min=0"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"min=0"`
}

// Driver reports which database/sql driver the URL selects.
func (d DatabaseConfig) Driver() string {
	if d.URL != "" {
		return DriverPostgres
	}
	return DriverSQLite
}

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// StorageConfig describes where uploaded images live.
type StorageConfig struct {
	Backend   string      `koanf:"backend" validate:"required,oneof=local minio"`
	StaticDir string      `koanf:"static_dir" validate:"required"`
	Minio     MinioConfig `koanf:"minio"`
}

// UploadDir is the directory local uploads are written to and served from.
func (s StorageConfig) UploadDir() string {
	return s.StaticDir + string(os.PathSeparator) + "uploads"
}

// MinioConfig is only consulted when Backend is "minio".
type MinioConfig struct {
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	Bucket    string `koanf:"bucket"`
}

// RedisConfig contains Redis connection details. An empty Address disables
// Redis and everything that depends on it (notification jobs).
type RedisConfig struct {
	Address string `koanf:"address"`
}

// IntegrationConfig stores third-party keys.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`
	AdminEmail   string `koanf:"admin_email"`
}

// NotificationsEnabled reports whether background emails can be sent.
func (c *Config) NotificationsEnabled() bool {
	return c.Redis.Address != "" && c.Integration.ResendAPIKey != ""
}

// Defaults returns a config populated with values suitable for local runs.
// Environment variables override individual fields.
func Defaults() *Config {
	return &Config{
		Primary: Primary{Env: "local"},
		Server: ServerConfig{
			Port:               "5000",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			MaxBodySize:        "16M",
			CORSAllowedOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			SQLitePath:      "site.db",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 60,
		},
		Storage: StorageConfig{
			Backend:   "local",
			StaticDir: "static",
		},
		Integration: IntegrationConfig{
			EmailFrom: "Portfolio <onboarding@resend.dev>",
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// envKey maps PORTFOLIO_SERVER__READ_TIMEOUT to server.read_timeout.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// listKeys are read as comma-separated lists.
var listKeys = map[string]bool{
	"server.cors_allowed_origins":        true,
	"observability.health_checks.checks": true,
}

// envValue maps the variable name like envKey and splits list values.
func envValue(name, value string) (string, interface{}) {
	key := envKey(name)
	if !listKeys[key] {
		return key, value
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}

// LoadConfig loads configuration from the environment on top of Defaults,
// validates it and fills in the observability block.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := Defaults()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if url, ok := os.LookupEnv(DatabaseURLEnv); ok && url != "" {
		mainConfig.Database.URL = url
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Storage.Backend == "minio" {
		m := mainConfig.Storage.Minio
		if m.Endpoint == "" || m.AccessKey == "" || m.SecretKey == "" || m.Bucket == "" {
			return nil, fmt.Errorf("minio storage backend requires endpoint, access_key, secret_key and bucket")
		}
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}
	mainConfig.Observability.ServiceName = "portfolio"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
