package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Provider API keys. Absence is not validated at startup: the
	// corresponding provider path fails at call time instead.
	OpenAIAPIKey string
	GroqAPIKey   string

	StaticDir       string
	UseMockProvider bool // true = serve canned replies, useful for dev

	ContextMaxTurns int           // non-system turns retained per connection
	ContextTTL      time.Duration // inactivity before a context is sweep-eligible
	SweepInterval   time.Duration
	EvictionDelay   time.Duration // grace after disconnect before the context is dropped
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func getIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// Load reads all env vars and builds the config
func Load() *Config {
	return &Config{
		Port: getEnv("RELAY_PORT", "8080"),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		GroqAPIKey:   getEnv("GROQ_API_KEY", ""),

		StaticDir:       getEnv("RELAY_STATIC_DIR", ""),
		UseMockProvider: getBoolEnv("RELAY_USE_MOCK_PROVIDER", false),

		ContextMaxTurns: getIntEnv("RELAY_CONTEXT_MAX_TURNS", 10),
		ContextTTL:      getDurationEnv("RELAY_CONTEXT_TTL", time.Hour),
		SweepInterval:   getDurationEnv("RELAY_SWEEP_INTERVAL", time.Hour),
		EvictionDelay:   getDurationEnv("RELAY_EVICTION_DELAY", time.Hour),
	}
}
