// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// R2Config holds the object-storage credentials for résumé archival.
type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
}

// Enabled reports whether archival is configured at all.
func (r R2Config) Enabled() bool {
	return r.AccountID != "" && r.Bucket != "" && r.AccessKey != "" && r.SecretKey != ""
}

// Config holds all application configuration.
type Config struct {
	Port           string
	GoogleAPIKey   string
	ModelName      string
	UseMockModel   bool
	ModelTimeout   time.Duration
	DBURL          string // empty = in-memory session store
	RabbitMQURL    string // empty = no event publishing
	R2             R2Config
	MaxUploadBytes int64
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		GoogleAPIKey:   getEnv("GOOGLE_API_KEY", ""),
		ModelName:      getEnv("MODEL_NAME", "gemini-2.5-flash"),
		UseMockModel:   getEnvBool("USE_MOCK_MODEL", false),
		ModelTimeout:   getEnvDuration("MODEL_TIMEOUT", 30*time.Second),
		DBURL:          getEnv("DB_URL", ""),
		RabbitMQURL:    getEnv("RABBITMQ_URL", ""),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),
		R2: R2Config{
			AccountID: getEnv("R2_ACCOUNT_ID", ""),
			Bucket:    getEnv("R2_BUCKET", ""),
			AccessKey: getEnv("R2_ACCESS_KEY", ""),
			SecretKey: getEnv("R2_SECRET_KEY", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is runnable.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if !c.UseMockModel && c.GoogleAPIKey == "" {
		return fmt.Errorf("GOOGLE_API_KEY must be set unless USE_MOCK_MODEL is enabled")
	}
	if c.ModelTimeout <= 0 {
		return fmt.Errorf("MODEL_TIMEOUT must be > 0")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be > 0")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
