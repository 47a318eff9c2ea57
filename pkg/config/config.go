package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var (
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is not set")
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is not set")
	ErrUnknownDriver      = errors.New("unknown STORAGE_DRIVER")
)

type Config struct {
	Port          string
	DatabaseURL   string
	StorageDriver string
	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int
	BcryptCost    int
	CORSOrigins   []string
	LogLevel      string
}

// Load reads environment variables, optionally from a .env file if present.
// The signing secret has no default: a process without one must not start.
func Load() (Config, error) {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:          getEnv("PORT", "5000"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", DriverPostgres)),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTIssuer:     getEnv("JWT_ISSUER", "job-reviews"),
		JWTTTLMinutes: getEnvInt("JWT_TTL_MINUTES", 24*60),
		BcryptCost:    getEnvInt("BCRYPT_COST", 10),
		CORSOrigins:   splitList(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}
	switch cfg.StorageDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, ErrMissingDatabaseURL
		}
	case DriverMemory:
	default:
		return Config{}, ErrUnknownDriver
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
