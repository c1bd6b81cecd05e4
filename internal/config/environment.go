// Package config provides configuration loading and management for the library service.
package config

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/roguepikachu/libraryual/pkg/logger"
)

// Store backends accepted by STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds environment configuration for the library service.
type Config struct {
	// LibraryPort is the port on which the HTTP server listens.
	LibraryPort string `env:"LIBRARY_PORT" envDefault:"8080"`
	// StoreBackend selects the primary author store.
	StoreBackend string `env:"STORE_BACKEND" envDefault:"memory"`
	// CacheEnabled puts a Redis cache-aside layer in front of the primary store.
	CacheEnabled bool          `env:"CACHE_ENABLED" envDefault:"false"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	PostgresURL      string `env:"POSTGRES_URL"`
	PostgresHost     string `env:"POSTGRES_HOST"`
	PostgresPort     string `env:"POSTGRES_PORT"`
	PostgresUser     string `env:"POSTGRES_USER"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresDB       string `env:"POSTGRES_DB"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE"`

	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Conf holds the global configuration for the library service.
var Conf Config

func loadDotEnv() {
	// Load .env files listed in DOTENV_PATHS into the environment if present.
	// Does not override existing environ variables.
	path := os.Getenv("DOTENV_PATHS")
	if path != "" {
		err := godotenv.Load(strings.Split(path, ",")...)
		if err != nil {
			logger.Fatal(context.Background(), err.Error())
		}
	}
}

// Load parses the environment into a fresh Config.
func Load() (Config, error) {
	loadDotEnv()
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, err
	}
	c.StoreBackend = strings.ToLower(strings.TrimSpace(c.StoreBackend))
	return c, nil
}

// InitConf initializes the global configuration by loading environment variables and .env files.
func InitConf() {
	c, err := Load()
	if err != nil {
		logger.Fatal(context.Background(), err.Error())
	}
	Conf = c
}
