package config // package config loads application configuration from environment variables

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// devJWTSecret signs tokens in dev when JWT_SECRET is unset.
const devJWTSecret = "dev-secret-change-me"

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.
type Config struct {
	Env          string  // application environment (e.g. "dev", "prod")
	Port         string  // HTTP port to listen on
	JWTSecret    string  // secret used to sign JWTs
	AccessTTLMin int     // access token time‑to‑live in minutes
	BcryptCost   int     // bcrypt cost for password hashing
	SeedRatio    float64 // share of seeded seats that start booked
	SeedRandom   int64   // seed for the seat generator; 0 picks one from the clock
}

// Load reads an optional .env file and then the environment.  Values
// already present in the environment win over the file.  JWT_SECRET is
// required outside dev.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := Config{
		Env:          envStr("APP_ENV", "dev"),
		Port:         envStr("APP_PORT", "5000"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		AccessTTLMin: envInt("ACCESS_TOKEN_TTL_MIN", 60),
		BcryptCost:   envInt("BCRYPT_COST", 10),
		SeedRatio:    envFloat("SEED_UNAVAILABLE_RATIO", 0.2),
		SeedRandom:   int64(envInt("SEED_RANDOM", 0)),
	}
	if cfg.JWTSecret == "" {
		if cfg.Env != "dev" {
			return Config{}, fmt.Errorf("missing required env var: JWT_SECRET")
		}
		cfg.JWTSecret = devJWTSecret
	}
	if cfg.SeedRatio < 0 || cfg.SeedRatio > 1 {
		return Config{}, fmt.Errorf("invalid SEED_UNAVAILABLE_RATIO %v: must be within [0, 1]", cfg.SeedRatio)
	}
	if cfg.AccessTTLMin < 1 {
		return Config{}, fmt.Errorf("invalid ACCESS_TOKEN_TTL_MIN %d", cfg.AccessTTLMin)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string { return ":" + c.Port }
