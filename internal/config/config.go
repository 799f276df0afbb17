package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	minSecretLength = 32
	devSeedPassword = "admin123"
)

type Config struct {
	Env         string
	HTTPPort    string
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigins string
	LogLevel    string

	// Production serves the built SPA from StaticDir, development proxies
	// every non-API request to the Vite dev server at DevAssetURL.
	StaticDir   string
	DevAssetURL string

	SeedAdmin SeedAdmin
}

// SeedAdmin is the administrator created on first boot when none exists.
type SeedAdmin struct {
	Name     string
	Email    string
	Password string
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Load reads the configuration from the environment, after loading a .env
// file when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("TOKEN_TTL: %w", err)
	}

	cfg := &Config{
		Env:         strings.ToLower(getEnv("APP_ENV", EnvDevelopment)),
		HTTPPort:    getEnv("HTTP_PORT", "3000"),
		DatabaseURL: getEnv("DATABASE_URL", "unnichat.db"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		TokenTTL:    ttl,
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		StaticDir:   getEnv("STATIC_DIR", "./dist"),
		DevAssetURL: getEnv("DEV_ASSET_URL", "http://localhost:5173"),
		SeedAdmin: SeedAdmin{
			Name:     getEnv("SEED_ADMIN_NAME", "Administrator"),
			Email:    getEnv("SEED_ADMIN_EMAIL", "admin@unnichat.com"),
			Password: os.Getenv("SEED_ADMIN_PASSWORD"),
		},
	}

	if cfg.SeedAdmin.Password == "" && !cfg.IsProduction() {
		cfg.SeedAdmin.Password = devSeedPassword
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server must not start with.
func (c *Config) Validate() error {
	var errs []error

	switch c.Env {
	case EnvDevelopment, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Env))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	} else if len(c.JWTSecret) < minSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretLength))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if c.IsProduction() && c.SeedAdmin.Password == "" {
		errs = append(errs, errors.New("SEED_ADMIN_PASSWORD is required in production"))
	}

	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
