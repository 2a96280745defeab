package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// ClientConfig holds the defaults of the moviechat terminal client.  Flags
// override every field.
type ClientConfig struct {
	Server    string        // API base URL (MOVIECHAT_SERVER)
	Password  string        // password for --user (MOVIECHAT_PASSWORD)
	ChatDelay time.Duration // simulated typing delay (CHAT_DELAY)
}

// LoadClient reads an optional .env file and the MOVIECHAT_* and
// CHAT_DELAY variables.
func LoadClient() (ClientConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return ClientConfig{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := ClientConfig{
		Server:    envStr("MOVIECHAT_SERVER", "http://localhost:5000"),
		Password:  os.Getenv("MOVIECHAT_PASSWORD"),
		ChatDelay: envDur("CHAT_DELAY", time.Second),
	}
	if cfg.ChatDelay < 0 {
		return ClientConfig{}, fmt.Errorf("invalid CHAT_DELAY %s: must not be negative", cfg.ChatDelay)
	}
	return cfg, nil
}
