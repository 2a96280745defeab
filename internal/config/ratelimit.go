package config

import (
	"strings"
	"time"
)

// rateKeyStrategies are the bucket keys the rate limiter understands.
var rateKeyStrategies = map[string]bool{
	"ip": true, "user": true, "ip_user": true, "ip_route": true, "ip_user_route": true,
}

// RateLimitConfig tunes the Redis token bucket guarding the chat, auth and
// booking endpoints.  Each bucket holds Capacity tokens and regains
// RefillTokens every RefillInterval; idle buckets expire after TTL.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string // ip, user, ip_user, ip_route or ip_user_route
	Prefix         string
	Debug          bool // adds X-RateLimit-Key and logs blocks
}

// LoadRateLimitConfig reads RATE_LIMIT_* variables.  Out of range values
// are pulled back to the nearest usable one and an unknown key strategy
// falls back to ip_route.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:        envBool("RATE_LIMIT_ENABLED", true),
		Capacity:       envInt("RATE_LIMIT_CAPACITY", 30),
		RefillTokens:   max(envInt("RATE_LIMIT_REFILL_TOKENS", 1), 1),
		RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
		TTL:            envDur("RATE_LIMIT_TTL", 10*time.Minute),
		KeyStrategy:    strings.ToLower(envStr("RATE_LIMIT_KEY_STRATEGY", "ip_route")),
		Prefix:         envStr("RATE_LIMIT_PREFIX", "moviechat:rl"),
		Debug:          envBool("RATE_LIMIT_DEBUG", false),
	}
	// RATE_LIMIT_BURST is accepted as an alias for the capacity.
	if burst := envInt("RATE_LIMIT_BURST", 0); burst > 0 {
		cfg.Capacity = burst
	}
	cfg.Capacity = max(cfg.Capacity, 1)
	if cfg.RefillInterval <= 0 {
		cfg.RefillInterval = time.Second
	}
	// a bucket must outlive a few refills or it resets to full too early
	cfg.TTL = max(cfg.TTL, 5*cfg.RefillInterval)
	if !rateKeyStrategies[cfg.KeyStrategy] {
		cfg.KeyStrategy = "ip_route"
	}
	return cfg
}
