// Package config loads process configuration from the environment and opens
// the database the rest of the service runs on.
package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is only acceptable outside production.
const DefaultJWTSecret = "food-ordering-dev-secret"

type Config struct {
	Env        string
	Port       string
	GinMode    string
	LogLevel   string
	CORSOrigin string
	DB         DBConfig
	Auth       AuthConfig
}

type DBConfig struct {
	Driver string // "sqlite" or "postgres"
	DSN    string
}

type AuthConfig struct {
	JWTSecret     []byte
	AdminUsername string
	AdminPassword string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:        getEnv("APP_ENV", "development"),
		Port:       getEnv("PORT", "3001"),
		GinMode:    os.Getenv("GIN_MODE"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),
		DB: DBConfig{
			Driver: getEnv("DB_DRIVER", "sqlite"),
			DSN:    getEnv("DB_DSN", "database.db"),
		},
		Auth: AuthConfig{
			JWTSecret:     []byte(getEnv("JWT_SECRET", DefaultJWTSecret)),
			AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
			AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
		},
	}

	if cfg.IsProduction() && string(cfg.Auth.JWTSecret) == DefaultJWTSecret {
		return nil, errors.New("JWT_SECRET must be set in production")
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
