package config

import (
	"fmt"
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the application's configuration values.
// Tags like `envconfig:"APP_PORT"` specify the environment variable name.
// `default:""` provides a default value if the env var is not set.
type Config struct {
	AppEnv     string `envconfig:"APP_ENV" default:"development"` // e.g., development, staging, production
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`      // e.g., debug, info, warn, error
	HttpServer ServerConfig
	GrpcServer GrpcServerConfig
	Storage    StorageConfig
	Postgres   PostgresConfig
}

// ServerConfig holds HTTP server-specific configurations.
type ServerConfig struct {
	Port         string        `envconfig:"HTTP_SERVER_PORT" default:"8080"`
	TimeoutRead  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_READ" default:"15s"`
	TimeoutWrite time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_WRITE" default:"15s"`
	TimeoutIdle  time.Duration `envconfig:"HTTP_SERVER_TIMEOUT_IDLE" default:"60s"`
}

// GrpcServerConfig holds gRPC server-specific configurations.
type GrpcServerConfig struct {
	Port string `envconfig:"GRPC_SERVER_PORT" default:"9090"`
}

// StorageConfig selects the catalog backend. The in-memory store is
// the default; "postgres" moves products and categories into
// PostgreSQL while per-user state stays in memory.
type StorageConfig struct {
	Driver       string `envconfig:"STORAGE_DRIVER" default:"memory"` // memory | postgres
	SeedFixtures bool   `envconfig:"STORAGE_SEED_FIXTURES" default:"true"`
}

// PostgresConfig holds PostgreSQL database connection details. The
// fields are only validated when the postgres driver is selected, so
// memory-only deployments need no database environment at all.
type PostgresConfig struct {
	Host     string `envconfig:"POSTGRES_HOST"`
	Port     string `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER"`
	Password string `envconfig:"POSTGRES_PASSWORD"`
	DBName   string `envconfig:"POSTGRES_DBNAME"`
}

// DSN constructs the Data Source Name string for connecting to PostgreSQL.
func (pc *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		pc.Host, pc.Port, pc.User, pc.Password, pc.DBName)
}

// Validate reports the connection fields the selected driver needs but
// the environment did not provide.
func (pc *PostgresConfig) Validate() error {
	var missing []string
	if pc.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if pc.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if pc.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if pc.DBName == "" {
		missing = append(missing, "POSTGRES_DBNAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("postgres storage driver requires %v", missing)
	}
	return nil
}

var cfg Config

// Load initializes the configuration from environment variables.
// It should be called once during application startup.
func Load() (*Config, error) {
	log.Println("Loading service configuration...")
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}

	if cfg.Storage.Driver != "memory" && cfg.Storage.Driver != "postgres" {
		return nil, fmt.Errorf("invalid STORAGE_DRIVER: %s", cfg.Storage.Driver)
	}
	if cfg.Storage.Driver == "postgres" {
		if err := cfg.Postgres.Validate(); err != nil {
			return nil, err
		}
	}

	log.Printf("Configuration loaded successfully for APP_ENV: %s", cfg.AppEnv)
	return &cfg, nil
}
