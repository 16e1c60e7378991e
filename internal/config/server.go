package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ServerConfig is read from the environment by the serve command
type ServerConfig struct {
	Addr         string
	DatabaseURL  string // empty selects the in-memory profile store
	RedisAddr    string // empty selects the in-memory cache
	RulesFile    string
	CacheTTL     time.Duration
	MaxBodyBytes int64
	Debug        bool
}

// LoadServerConfig reads RMGO_* and service URLs from the environment
func LoadServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         getEnv("RMGO_ADDR", ":8080"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		RulesFile:    getEnv("RMGO_RULES_FILE", ""),
		CacheTTL:     getEnvDuration("RMGO_CACHE_TTL", 10*time.Minute),
		MaxBodyBytes: int64(getEnvInt("RMGO_MAX_BODY_BYTES", 1048576)),
		Debug:        getEnvBool("RMGO_DEBUG", false),
	}
}

// Validate checks the values that have no safe fallback
func (c ServerConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("RMGO_ADDR must not be empty")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("RMGO_CACHE_TTL must be positive")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("RMGO_MAX_BODY_BYTES must be at least 1024")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
