// Package config gathers the service's environment-driven configuration.
package config

import (
	"os"
	"time"
)

// Config holds everything main() needs to wire the service.
type Config struct {
	// HTTPAddr is the listen address of the order API.
	HTTPAddr string

	// CatalogBaseURL is the base URL of the catalog service.
	CatalogBaseURL string
	// CatalogTimeout bounds each catalog lookup. An unreachable catalog
	// must fail the request, not hang it.
	CatalogTimeout time.Duration

	// DatabasePath is the SQLite file holding the order store.
	DatabasePath string

	// RedisAddr enables the create-order idempotency store when set.
	RedisAddr string

	// JWTPublicKeyFile is a PEM file with the identity provider's RS256
	// public key. When empty, JWTSecret (HS256) is used instead — dev only.
	JWTPublicKeyFile string
	JWTSecret        string

	// AuthClientID selects which resource_access entry of the token's
	// claims contributes client-scoped roles.
	AuthClientID string
}

// Load reads the configuration from the environment, with local-dev defaults.
func Load() Config {
	return Config{
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		CatalogBaseURL:   getEnv("CATALOG_BASE_URL", "http://localhost:8081"),
		CatalogTimeout:   getDuration("CATALOG_TIMEOUT", 5*time.Second),
		DatabasePath:     getEnv("DATABASE_PATH", "./data/orders.db"),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		JWTPublicKeyFile: getEnv("JWT_PUBLIC_KEY_FILE", ""),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		AuthClientID:     getEnv("AUTH_CLIENT_ID", "microservices-app"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
